package osrm

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// Trip requests a multi-stop trip from host with fixed first and last stops.
func (c *Client) Trip(
	ctx context.Context,
	host string,
	points []domain.Coordinates,
) (_ domain.Trip, err error) {
	defer obs.Time(ctx, "osrm.Trip host="+host)(&err)

	if len(points) < 2 {
		return domain.Trip{}, errors.New("osrm trip: at least two points are required")
	}

	url := fmt.Sprintf(
		"%s/trip/v1/%s/%s?source=first&destination=last&roundtrip=false&overview=full&geometries=geojson",
		baseURL(host), c.profile, coordsPath(points),
	)

	var resp response
	if err := c.getJSON(ctx, "trip", host, url, &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("osrm trip: %w", err)
	}
	if err := resp.check(); err != nil {
		return domain.Trip{}, fmt.Errorf("osrm trip: %w", err)
	}
	if len(resp.Trips) == 0 {
		return domain.Trip{}, fmt.Errorf("osrm trip: %w: empty trips", ErrNoRoute)
	}

	t := resp.Trips[0]
	seg, err := t.toSegment()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("osrm trip: %w", err)
	}

	return domain.Trip{
		Segment: seg,
		Order:   tripOrder(len(points), t, resp.Waypoints),
	}, nil
}
