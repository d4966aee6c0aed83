package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler reports liveness plus the state of optional backing services.
type HealthHandler struct {
	Checks map[string]func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	res := map[string]string{"status": "ok"}
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			res[name] = err.Error()
			res["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res[name] = "ok"
	}

	writeJSON(w, r, status, res)
}
