package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Receives externally visible session events (rendering, user notification).
// Implementations must not block the caller for long.
type Notifier interface {
	Notify(ctx context.Context, evt domain.Event)
}
