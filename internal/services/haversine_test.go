package services

import (
	"math"
	"route-planner-service/internal/domain"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	cases := []struct {
		name string
		a, b domain.Coordinates
		want float64
	}{
		{"same point", domain.Coordinates{Lat: 10.8, Lng: 106.7}, domain.Coordinates{Lat: 10.8, Lng: 106.7}, 0},
		{"one degree of longitude at the equator", domain.Coordinates{}, domain.Coordinates{Lng: 1}, 111194.93},
		{"one degree of latitude", domain.Coordinates{}, domain.Coordinates{Lat: 1}, 111194.93},
		{"antipodes", domain.Coordinates{}, domain.Coordinates{Lng: 180}, math.Pi * EarthRadiusMeters},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineMeters(tc.a, tc.b)
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("distance = %.4f, want %.4f", got, tc.want)
			}
			if back := HaversineMeters(tc.b, tc.a); math.Abs(back-got) > 1e-9 {
				t.Fatalf("distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}
