package dto

import "route-planner-service/internal/domain"

type EventMessage struct {
	Type      string             `json:"type"`
	SessionID string             `json:"session_id"`
	Token     uint64             `json:"token,omitempty"`
	Message   string             `json:"message,omitempty"`
	Waypoints []WaypointResponse `json:"waypoints,omitempty"`
	Plan      *PlanResponse      `json:"plan,omitempty"`
}

func FromEvent(evt domain.Event) EventMessage {
	msg := EventMessage{
		Type:      string(evt.Type),
		SessionID: evt.SessionID,
		Token:     uint64(evt.Token),
		Message:   evt.Message,
	}
	if evt.Type == domain.EventWaypointsChanged {
		msg.Waypoints = FromWaypoints(evt.Waypoints)
	}
	if evt.Plan != nil && evt.Type == domain.EventPlanCommitted {
		p := FromPlan(evt.Plan)
		msg.Plan = &p
	}
	return msg
}
