package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

var (
	ErrAllHostsFailed = errors.New("all routing hosts failed")
	ErrSuperseded     = errors.New("optimize run superseded")
)

// RoutingClient runs routing requests across a fixed host priority list.
//
// Hosts are tried in order; any failure on one host (transport, timeout,
// non-Ok status, empty result) moves on to the next one. Only when every host
// failed does the call fail. Nothing is carried over between hosts.
type RoutingClient struct {
	Provider ports.RouteProvider
	Hosts    []string
}

func NewRoutingClient(provider ports.RouteProvider, hosts []string) (*RoutingClient, error) {
	if provider == nil {
		return nil, errors.New("routing client: provider is nil")
	}
	if len(hosts) == 0 {
		return nil, errors.New("routing client: at least one host is required")
	}
	return &RoutingClient{Provider: provider, Hosts: append([]string(nil), hosts...)}, nil
}

// Trip requests a native multi-stop trip. A superseded run stops the host
// walk with ErrSuperseded.
func (c *RoutingClient) Trip(
	ctx context.Context,
	run *Run,
	points []domain.Coordinates,
) (_ domain.Trip, err error) {
	defer obs.Time(ctx, "routing.Trip")(&err)

	var errs []error
	for _, host := range c.Hosts {
		if !run.Current() {
			return domain.Trip{}, ErrSuperseded
		}

		trip, err := c.Provider.Trip(ctx, host, points)
		if err == nil && !isPermutation(trip.Order, len(points)) {
			err = fmt.Errorf("invalid visiting order %v for %d points", trip.Order, len(points))
		}
		if err == nil {
			return trip, nil
		}

		log.Printf("routing trip failed host=%s err=%v", host, err)
		errs = append(errs, fmt.Errorf("host %s: %w", host, err))

		if ctx.Err() != nil {
			return domain.Trip{}, fmt.Errorf("routing trip: %w", ctx.Err())
		}
	}

	return domain.Trip{}, fmt.Errorf("routing trip: %w: %w", ErrAllHostsFailed, errors.Join(errs...))
}

// Segment requests the route between two points.
func (c *RoutingClient) Segment(
	ctx context.Context,
	run *Run,
	from domain.Coordinates,
	to domain.Coordinates,
) (domain.Segment, error) {
	var errs []error
	for _, host := range c.Hosts {
		if !run.Current() {
			return domain.Segment{}, ErrSuperseded
		}

		seg, err := c.Provider.Route(ctx, host, from, to)
		if err == nil {
			return seg, nil
		}

		log.Printf("routing segment failed host=%s err=%v", host, err)
		errs = append(errs, fmt.Errorf("host %s: %w", host, err))

		if ctx.Err() != nil {
			return domain.Segment{}, fmt.Errorf("routing segment: %w", ctx.Err())
		}
	}

	return domain.Segment{}, fmt.Errorf("routing segment: %w: %w", ErrAllHostsFailed, errors.Join(errs...))
}
