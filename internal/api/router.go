package api

import (
	"context"
	"net/http"
	"route-planner-service/internal/adapters/notify"
	"route-planner-service/internal/api/handlers"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface needs. Orders and Checks are
// optional.
type Deps struct {
	Registry *services.Registry
	Orders   ports.OrderRepository
	Broker   *notify.Broker
	Checks   map[string]func(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{Checks: d.Checks}
	orders := &handlers.OrderHandler{Repo: d.Orders}
	sessions := &handlers.SessionHandler{Registry: d.Registry}
	events := &handlers.EventHandler{Sessions: sessions, Broker: d.Broker}

	mux.HandleFunc("/health", health.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/orders", orders.List)

	mux.HandleFunc("/sessions", sessions.Create)
	mux.HandleFunc("/sessions/{id}/waypoints", sessions.Waypoints)
	mux.HandleFunc("/sessions/{id}/waypoints/{index}", sessions.WaypointAt)
	mux.HandleFunc("/sessions/{id}/undo", sessions.Undo)
	mux.HandleFunc("/sessions/{id}/clear", sessions.Clear)
	mux.HandleFunc("/sessions/{id}/orders/{orderID}", sessions.AddOrder)
	mux.HandleFunc("/sessions/{id}/hash", sessions.Hash)
	mux.HandleFunc("/sessions/{id}/optimize", sessions.Optimize)
	mux.HandleFunc("/sessions/{id}/plan", sessions.Plan)
	mux.HandleFunc("/sessions/{id}/events", events.Stream)

	return requestIDMiddleware(loggingMiddleware(mux))
}
