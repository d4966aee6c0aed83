package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
	"strconv"
)

type SessionHandler struct {
	Registry *services.Registry
}

// session resolves the {id} path value, writing 404 when unknown.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, context.Context, bool) {
	ctx := obs.WithSession(r.Context(), r.PathValue("id"))

	sess, err := h.Registry.Get(ctx, r.PathValue("id"))
	if errors.Is(err, services.ErrSessionNotFound) {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, nil, false
	}
	if err != nil {
		log.Printf("load session failed: id=%s err=%v", r.PathValue("id"), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}
	return sess, ctx, true
}

// writeMutationError maps store and persistence failures to HTTP errors.
func writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinates):
		writeError(w, r, http.StatusBadRequest, "lat and lng must be finite numbers")
	case errors.Is(err, ports.ErrOrderNotFound):
		writeError(w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, services.ErrNoOrderSource):
		writeError(w, r, http.StatusServiceUnavailable, "order source not configured")
	default:
		log.Printf("session mutation failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func writeWaypoints(w http.ResponseWriter, r *http.Request, status int, sess *services.Session) {
	writeJSON(w, r, status, dto.WaypointListResponse{
		SessionID: sess.ID(),
		Waypoints: dto.FromWaypoints(sess.List()),
		Hash:      sess.Hash(),
	})
}

// Create starts a new empty session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	sess, err := h.Registry.Create(r.Context())
	if err != nil {
		log.Printf("create session failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.SessionResponse{SessionID: sess.ID()})
}

// Waypoints lists (GET), appends (POST) or removes (DELETE) waypoints.
// DELETE with lat and lng removes the first exact match; without a query it
// clears the session.
func (h *SessionHandler) Waypoints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeWaypoints(w, r, http.StatusOK, sess)

	case http.MethodPost:
		var req dto.AddWaypointRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if req.Lat == nil || req.Lng == nil {
			writeError(w, r, http.StatusBadRequest, "lat and lng are required")
			return
		}

		var err error
		if req.Snap {
			_, err = sess.AddSnapped(ctx, *req.Lat, *req.Lng, req.Label)
		} else {
			err = sess.Add(ctx, *req.Lat, *req.Lng, req.Label)
		}
		if err != nil {
			writeMutationError(w, r, err)
			return
		}
		writeWaypoints(w, r, http.StatusCreated, sess)

	case http.MethodDelete:
		q := r.URL.Query()
		if !q.Has("lat") && !q.Has("lng") {
			if err := sess.Clear(ctx); err != nil {
				writeMutationError(w, r, err)
				return
			}
			writeWaypoints(w, r, http.StatusOK, sess)
			return
		}

		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			writeError(w, r, http.StatusBadRequest, "lat and lng must be numbers")
			return
		}

		removed, err := sess.RemoveMatching(ctx, lat, lng)
		if err != nil {
			writeMutationError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.RemoveResponse{Removed: removed})
	}
}

// WaypointAt removes the waypoint at {index}. Out-of-range indexes are a
// no-op reported as removed=false.
func (h *SessionHandler) WaypointAt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "index must be an integer")
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	removed, err := sess.RemoveAt(ctx, index)
	if err != nil {
		writeMutationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RemoveResponse{Removed: removed})
}

func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	removed, err := sess.UndoLast(ctx)
	if err != nil {
		writeMutationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RemoveResponse{Removed: removed})
}

func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := sess.Clear(ctx); err != nil {
		writeMutationError(w, r, err)
		return
	}
	writeWaypoints(w, r, http.StatusOK, sess)
}

// AddOrder appends the location of {orderID} as a stop.
func (h *SessionHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	orderID, err := strconv.ParseInt(r.PathValue("orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		writeError(w, r, http.StatusBadRequest, "orderID must be a positive integer")
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, err := sess.AddOrder(ctx, orderID); err != nil {
		writeMutationError(w, r, err)
		return
	}
	writeWaypoints(w, r, http.StatusCreated, sess)
}

// Hash returns the share fragment (GET) or replaces the session from one
// (PUT). Invalid pairs in the fragment are skipped.
func (h *SessionHandler) Hash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		writeJSON(w, r, http.StatusOK, dto.HashResponse{Hash: sess.Hash()})
		return
	}

	var req dto.HashRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n, err := sess.RestoreFromHash(ctx, req.Hash)
	if err != nil {
		writeMutationError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.HashResponse{Hash: sess.Hash(), Restored: &n})
}

// Optimize computes a plan for the current waypoints. With async=true it
// returns the run token immediately; the result arrives on the event stream
// and through GET /plan. The run is detached from the request so a client
// disconnect does not abort it.
func (h *SessionHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	sess, ctx, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx = context.WithoutCancel(ctx)

	if r.URL.Query().Get("async") == "true" {
		token, _, err := sess.StartOptimize(ctx)
		if err != nil {
			writeOptimizeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusAccepted, dto.OptimizeAcceptedResponse{Token: uint64(token)})
		return
	}

	out, err := sess.Optimize(ctx)
	switch {
	case out.Status == services.OutcomeCommitted:
		writeJSON(w, r, http.StatusOK, dto.FromPlan(out.Plan))
	case out.Status == services.OutcomeSuperseded:
		writeError(w, r, http.StatusConflict, "superseded by a newer optimize request")
	default:
		writeOptimizeError(w, r, err)
	}
}

func writeOptimizeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrTooFewWaypoints), errors.Is(err, services.ErrTooManyWaypoints):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("optimize failed: path=%s err=%v", r.URL.Path, err)
		writeError(w, r, http.StatusServiceUnavailable, "routing service unavailable, try again later")
	}
}

// Plan returns the last committed plan.
func (h *SessionHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	sess, _, ok := h.session(w, r)
	if !ok {
		return
	}

	plan := sess.Plan()
	if plan == nil {
		writeError(w, r, http.StatusNotFound, "no plan")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromPlan(plan))
}
