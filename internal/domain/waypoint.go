package domain

// Represents a single stop the route must pass through.
// Identity is positional: a Waypoint is addressed by its index in the
// owning WaypointStore. Coordinates need not be unique.
type Waypoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

func (w Waypoint) Coordinates() Coordinates {
	return Coordinates{Lat: w.Lat, Lng: w.Lng}
}

// Return the coordinates of each waypoint, preserving order.
func CoordinatesOf(wps []Waypoint) []Coordinates {
	out := make([]Coordinates, len(wps))
	for i, w := range wps {
		out[i] = w.Coordinates()
	}
	return out
}
