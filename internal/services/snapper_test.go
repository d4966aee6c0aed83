package services

import (
	"context"
	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/osrm"
	"route-planner-service/internal/domain"
	"testing"
)

var binhThanh = domain.BoundingBox{West: 106.677, East: 106.740, South: 10.784, North: 10.858}

func TestSnapperSnapsInsideZone(t *testing.T) {
	provider := osrm.NewMockRouteProvider()
	provider.NearestFunc = func(_ context.Context, _ string, c domain.Coordinates) (domain.Coordinates, error) {
		return domain.Coordinates{Lat: c.Lat + 0.0001, Lng: c.Lng}, nil
	}
	snapCache := cache.NewMemorySnapCache()
	s := &Snapper{Provider: provider, Host: testHosts[0], Zone: binhThanh, Cache: snapCache}
	ctx := context.Background()

	raw := domain.Coordinates{Lat: 10.80, Lng: 106.70}
	got := s.Snap(ctx, raw)
	if got == raw {
		t.Fatalf("expected snapped coordinate")
	}

	again := s.Snap(ctx, raw)
	if again != got {
		t.Fatalf("cached snap = %v, want %v", again, got)
	}
	if n := len(provider.Calls("nearest")); n != 1 {
		t.Fatalf("nearest calls = %d, want 1 (second served from cache)", n)
	}
}

func TestSnapperPassesThrough(t *testing.T) {
	provider := osrm.NewMockRouteProvider()
	s := &Snapper{Provider: provider, Host: testHosts[0], Zone: binhThanh}
	ctx := context.Background()

	outside := domain.Coordinates{Lat: 21.03, Lng: 105.85}
	if got := s.Snap(ctx, outside); got != outside {
		t.Fatalf("outside zone should pass through, got %v", got)
	}
	if n := len(provider.Calls("nearest")); n != 0 {
		t.Fatalf("nearest calls = %d, want 0", n)
	}

	inside := domain.Coordinates{Lat: 10.80, Lng: 106.70}
	if got := s.Snap(ctx, inside); got != inside {
		t.Fatalf("failed lookup should return input, got %v", got)
	}

	var nilSnapper *Snapper
	if got := nilSnapper.Snap(ctx, inside); got != inside {
		t.Fatalf("nil snapper should pass through")
	}
}

func TestSessionAddSnapped(t *testing.T) {
	provider := osrm.NewMockRouteProvider()
	provider.NearestFunc = func(context.Context, string, domain.Coordinates) (domain.Coordinates, error) {
		return domain.Coordinates{Lat: 10.8005, Lng: 106.7005}, nil
	}
	s, _, _ := newTestSession(t, provider)
	s.deps.Snapper = &Snapper{Provider: provider, Host: testHosts[0], Zone: binhThanh}

	wp, err := s.AddSnapped(context.Background(), 10.80, 106.70, "A")
	if err != nil {
		t.Fatalf("add snapped: %v", err)
	}
	if wp.Lat != 10.8005 || wp.Lng != 106.7005 || wp.Label != "A" {
		t.Fatalf("unexpected waypoint: %+v", wp)
	}
	if list := s.List(); len(list) != 1 || list[0] != wp {
		t.Fatalf("unexpected list: %+v", list)
	}
}
