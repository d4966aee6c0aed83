package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Contract for a single-host route computation service (OSRM-compatible).
// Implementations own per-attempt timeouts and retries; host fallthrough is
// the caller's concern.
type RouteProvider interface {
	// Compute and order a multi-stop trip that starts at the first point and
	// ends at the last.
	Trip(ctx context.Context, host string, points []domain.Coordinates) (domain.Trip, error)
	// Compute the route between two points.
	Route(ctx context.Context, host string, from, to domain.Coordinates) (domain.Segment, error)
	// Snap a coordinate onto the nearest routable road.
	Nearest(ctx context.Context, host string, point domain.Coordinates) (domain.Coordinates, error)
}
