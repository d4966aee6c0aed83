package osrm

import (
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
)

// ErrNoRoute marks a reachable host answering without a usable result
// (a code other than "Ok" or an empty result set).
var ErrNoRoute = errors.New("routing service returned no result")

const codeOK = "Ok"

type lineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type route struct {
	Geometry      lineString `json:"geometry"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	WaypointOrder []int      `json:"waypoint_order,omitempty"`
}

type waypoint struct {
	Location      []float64 `json:"location"`
	WaypointIndex *int      `json:"waypoint_index,omitempty"`
	TripsIndex    int       `json:"trips_index,omitempty"`
}

type response struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Trips     []route    `json:"trips,omitempty"`
	Routes    []route    `json:"routes,omitempty"`
	Waypoints []waypoint `json:"waypoints,omitempty"`
}

func (r *response) check() error {
	if r.Code != codeOK {
		return fmt.Errorf("%w: code=%q message=%q", ErrNoRoute, r.Code, r.Message)
	}
	return nil
}

// toSegment converts a GeoJSON route into a domain segment, flipping
// [lng, lat] pairs into (lat, lng).
func (r route) toSegment() (domain.Segment, error) {
	coords := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
	for i, p := range r.Geometry.Coordinates {
		if len(p) < 2 {
			return domain.Segment{}, fmt.Errorf("geometry position %d: expected [lng, lat], got %v", i, p)
		}
		coords = append(coords, domain.Coordinates{Lat: p[1], Lng: p[0]})
	}

	return domain.Segment{
		Coordinates:     coords,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}, nil
}

// tripOrder returns the visiting order of n input points: trip-level
// waypoint_order when present, else derived from each input waypoint's
// waypoint_index, else the input order.
func tripOrder(n int, t route, wps []waypoint) []int {
	if isPermutation(t.WaypointOrder, n) {
		return append([]int(nil), t.WaypointOrder...)
	}

	if len(wps) == n {
		order := make([]int, n)
		for i := range order {
			order[i] = -1
		}
		ok := true
		for input, w := range wps {
			if w.WaypointIndex == nil || *w.WaypointIndex < 0 || *w.WaypointIndex >= n || order[*w.WaypointIndex] != -1 {
				ok = false
				break
			}
			order[*w.WaypointIndex] = input
		}
		if ok {
			return order
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
