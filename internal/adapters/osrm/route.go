package osrm

import (
	"context"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// Route requests the driving route between two points from host.
func (c *Client) Route(
	ctx context.Context,
	host string,
	from domain.Coordinates,
	to domain.Coordinates,
) (_ domain.Segment, err error) {
	defer obs.Time(ctx, "osrm.Route host="+host)(&err)

	url := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=geojson",
		baseURL(host), c.profile, coordsPath([]domain.Coordinates{from, to}),
	)

	var resp response
	if err := c.getJSON(ctx, "route", host, url, &resp); err != nil {
		return domain.Segment{}, fmt.Errorf("osrm route: %w", err)
	}
	if err := resp.check(); err != nil {
		return domain.Segment{}, fmt.Errorf("osrm route: %w", err)
	}
	if len(resp.Routes) == 0 {
		return domain.Segment{}, fmt.Errorf("osrm route: %w: empty routes", ErrNoRoute)
	}

	seg, err := resp.Routes[0].toSegment()
	if err != nil {
		return domain.Segment{}, fmt.Errorf("osrm route: %w", err)
	}
	return seg, nil
}
