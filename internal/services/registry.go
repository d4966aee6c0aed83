package services

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/ports"
	"sync"

	"github.com/google/uuid"
)

const (
	// StorageKey is the state key of the default session.
	StorageKey       = "route_waypoints_v1"
	DefaultSessionID = "default"
)

var ErrSessionNotFound = errors.New("session not found")

// StorageKeyFor returns the state key under which a session persists its
// waypoints.
func StorageKeyFor(sessionID string) string {
	if sessionID == DefaultSessionID {
		return StorageKey
	}
	return StorageKey + ":" + sessionID
}

// Registry owns the live sessions of the process. Sessions are created
// explicitly or restored lazily from the state store on first access.
type Registry struct {
	deps SessionDeps

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(deps SessionDeps) *Registry {
	return &Registry{deps: deps, sessions: make(map[string]*Session)}
}

// Create starts a new empty session and persists it.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	s := NewSession(id, StorageKeyFor(id), r.deps)

	if err := s.Clear(ctx); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns the live session for id, restoring it from storage when needed.
// The default session always exists; other ids must be UUIDs with persisted
// state.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s, nil
	}

	if id != DefaultSessionID {
		if _, err := uuid.Parse(id); err != nil {
			return nil, ErrSessionNotFound
		}
		if _, err := r.deps.State.Load(ctx, StorageKeyFor(id)); err != nil {
			if errors.Is(err, ports.ErrStateNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("get session %s: %w", id, err)
		}
	}

	s := NewSession(id, StorageKeyFor(id), r.deps)
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}

	r.sessions[id] = s
	return s, nil
}
