package ports

import (
	"context"
	"errors"
)

var ErrStateNotFound = errors.New("state not found")

// Port: key/value persistence for serialized session state.
type StateStore interface {
	// Return the bytes stored under key, or ErrStateNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
