package services

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// ComposeChain builds a route by requesting one pairwise segment for each
// adjacent pair in order and stitching them together.
//
// Distances and durations are summed; the first coordinate of every segment
// after the first is dropped because it repeats the previous segment's end.
// A segment that fails on every host fails the whole composition.
func ComposeChain(
	ctx context.Context,
	client *RoutingClient,
	run *Run,
	points []domain.Coordinates,
	order []int,
) (_ domain.Segment, err error) {
	defer obs.Time(ctx, "routing.ComposeChain")(&err)

	if len(points) < 2 {
		return domain.Segment{}, errors.New("compose chain: at least two points are required")
	}
	if !isPermutation(order, len(points)) {
		return domain.Segment{}, fmt.Errorf("compose chain: order %v is not a permutation of %d points", order, len(points))
	}

	var out domain.Segment
	for i := 0; i+1 < len(order); i++ {
		from, to := order[i], order[i+1]

		seg, err := client.Segment(ctx, run, points[from], points[to])
		if err != nil {
			if errors.Is(err, ErrSuperseded) {
				return domain.Segment{}, err
			}
			return domain.Segment{}, fmt.Errorf("compose chain: segment %d (%d -> %d): %w", i, from, to, err)
		}

		coords := seg.Coordinates
		if i > 0 && len(coords) > 0 {
			coords = coords[1:]
		}

		out.Coordinates = append(out.Coordinates, coords...)
		out.DistanceMeters += seg.DistanceMeters
		out.DurationSeconds += seg.DurationSeconds
	}

	return out, nil
}
