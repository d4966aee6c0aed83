package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Optional cache of nearest-road lookups keyed by the raw coordinate.
type SnapCache interface {
	Get(ctx context.Context, raw domain.Coordinates) (domain.Coordinates, bool, error)
	Put(ctx context.Context, raw, snapped domain.Coordinates) error
}
