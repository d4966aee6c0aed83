package notify

import (
	"context"
	"log"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// LogNotifier writes one line per event.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, evt domain.Event) {
	switch evt.Type {
	case domain.EventOptimizeFailed:
		log.Printf("event=%s session=%s token=%d message=%q", evt.Type, evt.SessionID, evt.Token, evt.Message)
	case domain.EventPlanCommitted:
		var source domain.PlanSource
		var meters float64
		if evt.Plan != nil {
			source, meters = evt.Plan.Source, evt.Plan.TotalDistanceMeters
		}
		log.Printf("event=%s session=%s token=%d source=%s distance_m=%.0f", evt.Type, evt.SessionID, evt.Token, source, meters)
	default:
		log.Printf("event=%s session=%s waypoints=%d", evt.Type, evt.SessionID, len(evt.Waypoints))
	}
}

// Multi delivers each event to every notifier in order.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, evt domain.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, evt)
		}
	}
}
