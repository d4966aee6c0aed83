package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-planner-service/internal/domain"
)

const (
	MinWaypoints = 2
	// MaxWaypoints caps a single optimize call to keep the native request and
	// the pairwise fallback within reasonable latency.
	MaxWaypoints = 12
)

var (
	ErrTooFewWaypoints  = fmt.Errorf("optimize requires at least %d waypoints", MinWaypoints)
	ErrTooManyWaypoints = fmt.Errorf("optimize accepts at most %d waypoints", MaxWaypoints)
	ErrRouteUnavailable = errors.New("routing service unavailable")
)

func ValidateWaypointCount(n int) error {
	if n < MinWaypoints {
		return ErrTooFewWaypoints
	}
	if n > MaxWaypoints {
		return ErrTooManyWaypoints
	}
	return nil
}

// Optimizer computes a RoutePlan, preferring the native multi-stop service
// and falling back to a greedy order routed segment by segment.
type Optimizer struct {
	Client *RoutingClient
}

func NewOptimizer(client *RoutingClient) *Optimizer {
	return &Optimizer{Client: client}
}

// Plan validates the point count before any network activity, then tries the
// native trip on every host, then the greedy chain. The run is checked after
// each network step; a superseded run returns ErrSuperseded. When both paths
// are exhausted the error wraps ErrRouteUnavailable.
func (o *Optimizer) Plan(
	ctx context.Context,
	run *Run,
	points []domain.Coordinates,
) (*domain.RoutePlan, error) {
	if err := ValidateWaypointCount(len(points)); err != nil {
		return nil, err
	}

	trip, err := o.Client.Trip(ctx, run, points)
	if err == nil {
		if !run.Current() {
			return nil, ErrSuperseded
		}
		return &domain.RoutePlan{
			Source:               domain.PlanSourceNative,
			Order:                trip.Order,
			Polyline:             trip.Coordinates,
			TotalDistanceMeters:  trip.DistanceMeters,
			TotalDurationSeconds: trip.DurationSeconds,
		}, nil
	}
	if errors.Is(err, ErrSuperseded) {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("plan: %w", ctx.Err())
	}

	log.Printf("native trip exhausted, falling back to greedy chain points=%d err=%v", len(points), err)

	order, err := GreedyOrder(points)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	chain, err := ComposeChain(ctx, o.Client, run, points, order)
	if err != nil {
		if errors.Is(err, ErrSuperseded) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("plan: %w", ctx.Err())
		}
		return nil, fmt.Errorf("plan: %w: %w", ErrRouteUnavailable, err)
	}
	if !run.Current() {
		return nil, ErrSuperseded
	}

	return &domain.RoutePlan{
		Source:               domain.PlanSourceFallback,
		Order:                order,
		Polyline:             chain.Coordinates,
		TotalDistanceMeters:  chain.DistanceMeters,
		TotalDurationSeconds: chain.DurationSeconds,
	}, nil
}
