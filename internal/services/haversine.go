package services

import (
	"math"
	"route-planner-service/internal/domain"
)

// EarthRadiusMeters is the fixed mean Earth radius used for great-circle
// distances.
const EarthRadiusMeters = 6_371_000.0

// HaversineMeters returns the great-circle distance between a and b.
func HaversineMeters(a, b domain.Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}
