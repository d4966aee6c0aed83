package dto

import (
	"route-planner-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

type PlanResponse struct {
	Token                uint64             `json:"token"`
	Source               string             `json:"source"`
	Order                []int              `json:"order"`
	Stops                []WaypointResponse `json:"stops"`
	Coordinates          [][]float64        `json:"coordinates"` // [lng, lat]
	Polyline             string             `json:"polyline"`
	TotalDistanceMeters  float64            `json:"total_distance_meters"`
	TotalDurationSeconds float64            `json:"total_duration_seconds"`
	ShareHash            string             `json:"share_hash"`
}

type OptimizeAcceptedResponse struct {
	Token uint64 `json:"token"`
}

// FromPlan renders a committed plan. Stops are listed in visiting order; the
// geometry is given both as GeoJSON-ordered pairs and as a Google encoded
// polyline (precision 5).
func FromPlan(p *domain.RoutePlan) PlanResponse {
	coords := make([][]float64, 0, len(p.Polyline))
	latLng := make([][]float64, 0, len(p.Polyline))
	for _, c := range p.Polyline {
		coords = append(coords, c.CoordsToList())
		latLng = append(latLng, []float64{c.Lat, c.Lng})
	}

	order := p.Order
	if order == nil {
		order = []int{}
	}

	return PlanResponse{
		Token:                uint64(p.Token),
		Source:               string(p.Source),
		Order:                order,
		Stops:                FromWaypoints(p.OrderedWaypoints()),
		Coordinates:          coords,
		Polyline:             string(polyline.EncodeCoords(latLng)),
		TotalDistanceMeters:  p.TotalDistanceMeters,
		TotalDurationSeconds: p.TotalDurationSeconds,
		ShareHash:            p.ShareHash,
	}
}
