package handlers

import (
	"log"
	"net/http"
	"route-planner-service/internal/adapters/notify"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 20 * time.Second
)

type EventHandler struct {
	Sessions *SessionHandler
	Broker   *notify.Broker
}

// Stream upgrades to a websocket and pushes session events as JSON. The first
// message is a snapshot of the current waypoints, followed by the committed
// plan if there is one.
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	sess, _, ok := h.Sessions.session(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	ch := h.Broker.Subscribe(sess.ID())
	defer h.Broker.Unsubscribe(sess.ID(), ch)

	snapshot := []domain.Event{{SessionID: sess.ID(), Type: domain.EventWaypointsChanged, Waypoints: sess.List()}}
	if plan := sess.Plan(); plan != nil {
		snapshot = append(snapshot, domain.Event{SessionID: sess.ID(), Type: domain.EventPlanCommitted, Token: plan.Token, Plan: plan})
	}
	for _, evt := range snapshot {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(dto.FromEvent(evt)); err != nil {
			return
		}
	}

	// Reads only serve pong handling and close detection.
	done := make(chan struct{})
	conn.SetReadLimit(1 << 12)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(wsPongWait)) })
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(dto.FromEvent(evt)); err != nil {
				log.Printf("ws write failed: session=%s err=%v", sess.ID(), err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
