package domain

// Source of a computed plan.
type PlanSource string

const (
	PlanSourceNative   PlanSource = "native"
	PlanSourceFallback PlanSource = "fallback"
)

// Monotonically increasing identifier of an optimize cycle.
type RunToken uint64

// A routed path between consecutive stops, as returned by the routing service
// or stitched together from several pairwise routes.
type Segment struct {
	Coordinates     []Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Result of a native multi-stop request. Order maps visiting position to the
// index of the input point.
type Trip struct {
	Segment
	Order []int
}

// Represents the route computed by one successful optimize cycle.
// A RoutePlan is superseded in full by the next committed plan and is never
// updated in place. Order indexes into Waypoints, the snapshot of the store
// taken when the cycle was issued.
type RoutePlan struct {
	Token                RunToken
	Source               PlanSource
	Order                []int
	Waypoints            []Waypoint
	Polyline             []Coordinates
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	ShareHash            string
}

// Return the waypoints in visiting order.
func (p *RoutePlan) OrderedWaypoints() []Waypoint {
	out := make([]Waypoint, 0, len(p.Order))
	for _, i := range p.Order {
		if i >= 0 && i < len(p.Waypoints) {
			out = append(out, p.Waypoints[i])
		}
	}
	return out
}
