package osrm

import (
	"context"
	"fmt"
	"route-planner-service/internal/domain"
)

// Nearest snaps point onto the closest routable road known to host.
func (c *Client) Nearest(
	ctx context.Context,
	host string,
	point domain.Coordinates,
) (domain.Coordinates, error) {
	url := fmt.Sprintf(
		"%s/nearest/v1/%s/%s",
		baseURL(host), c.profile, coordsPath([]domain.Coordinates{point}),
	)

	var resp response
	if err := c.getJSON(ctx, "nearest", host, url, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("osrm nearest: %w", err)
	}
	// Some deployments omit "code" on nearest responses; only an explicit
	// non-Ok code is treated as a failure.
	if resp.Code != "" {
		if err := resp.check(); err != nil {
			return domain.Coordinates{}, fmt.Errorf("osrm nearest: %w", err)
		}
	}
	if len(resp.Waypoints) == 0 || len(resp.Waypoints[0].Location) < 2 {
		return domain.Coordinates{}, fmt.Errorf("osrm nearest: %w: no waypoint location", ErrNoRoute)
	}

	loc := resp.Waypoints[0].Location
	return domain.Coordinates{Lat: loc[1], Lng: loc[0]}, nil
}
