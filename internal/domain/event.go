package domain

type EventType string

const (
	EventWaypointsChanged EventType = "waypoints_changed"
	EventPlanCommitted    EventType = "plan_committed"
	EventOptimizeFailed   EventType = "optimize_failed"
)

// Externally visible session change, delivered to renderers and subscribers.
type Event struct {
	SessionID string
	Type      EventType
	Token     RunToken
	Message   string
	Waypoints []Waypoint
	Plan      *RoutePlan
}
