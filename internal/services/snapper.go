package services

import (
	"context"
	"log"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// Snapper moves coordinates inside a priority zone onto the nearest road.
// Any failure (outside the zone, lookup error, bad result) returns the input
// unchanged; snapping never blocks adding a waypoint.
type Snapper struct {
	Provider ports.RouteProvider
	Host     string
	Zone     domain.BoundingBox
	Cache    ports.SnapCache // optional
}

func (s *Snapper) Snap(ctx context.Context, c domain.Coordinates) domain.Coordinates {
	if s == nil || s.Provider == nil || s.Host == "" || s.Zone.IsZero() || !s.Zone.Contains(c) {
		return c
	}

	if s.Cache != nil {
		snapped, ok, err := s.Cache.Get(ctx, c)
		if err != nil {
			log.Printf("snap cache get failed lat=%v lng=%v err=%v", c.Lat, c.Lng, err)
		} else if ok {
			return snapped
		}
	}

	snapped, err := s.Provider.Nearest(ctx, s.Host, c)
	if err != nil {
		log.Printf("snap failed, keeping raw point lat=%v lng=%v err=%v", c.Lat, c.Lng, err)
		return c
	}
	if !snapped.Valid() {
		return c
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, c, snapped); err != nil {
			log.Printf("snap cache put failed lat=%v lng=%v err=%v", c.Lat, c.Lng, err)
		}
	}
	return snapped
}
