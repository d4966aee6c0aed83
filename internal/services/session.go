package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"route-planner-service/internal/codec"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"sync"
)

// RestoredLabel is attached to waypoints decoded from a share hash, which
// carries no labels.
const RestoredLabel = "WP"

var ErrNoOrderSource = errors.New("no order source configured")

type OutcomeStatus string

const (
	OutcomeCommitted  OutcomeStatus = "committed"
	OutcomeSuperseded OutcomeStatus = "superseded"
	OutcomeFailed     OutcomeStatus = "failed"
	OutcomeCanceled   OutcomeStatus = "canceled"
)

// Outcome reports how one optimize cycle ended.
type Outcome struct {
	Token  domain.RunToken
	Status OutcomeStatus
	Plan   *domain.RoutePlan
	Err    error
}

// SessionDeps are the collaborators shared by every session.
type SessionDeps struct {
	State     ports.StateStore
	Optimizer *Optimizer
	Snapper   *Snapper              // optional
	Orders    ports.OrderRepository // optional
	Notifier  ports.Notifier        // optional
}

// Session is one planning session: a waypoint store, its persisted copy and
// share hash, and the optimize cycles run against it.
//
// Every mutation is staged on a copy of the store, persisted, and only then
// made visible, so storage and the hash never disagree with the store. A
// failed save leaves the session unchanged.
type Session struct {
	id   string
	key  string
	deps SessionDeps
	runs *RunController

	mu    sync.Mutex
	store *domain.WaypointStore
	hash  string
}

func NewSession(id, storageKey string, deps SessionDeps) *Session {
	return &Session{
		id:    id,
		key:   storageKey,
		deps:  deps,
		runs:  NewRunController(id, deps.Notifier),
		store: domain.NewWaypointStore(nil),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) List() []domain.Waypoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// Hash returns the share fragment of the current store, in store order.
func (s *Session) Hash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash
}

// Plan returns the last committed plan, or nil.
func (s *Session) Plan() *domain.RoutePlan {
	return s.runs.Plan()
}

func (s *Session) CurrentToken() domain.RunToken {
	return s.runs.CurrentToken()
}

func (s *Session) Add(ctx context.Context, lat, lng float64, label string) error {
	_, err := s.mutate(ctx, func(st *domain.WaypointStore) (bool, error) {
		return true, st.Add(lat, lng, label)
	})
	return err
}

// AddSnapped snaps the point onto the nearest road first when it falls in the
// priority zone. A failed snap adds the raw point.
func (s *Session) AddSnapped(ctx context.Context, lat, lng float64, label string) (domain.Waypoint, error) {
	c := domain.Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return domain.Waypoint{}, fmt.Errorf("add waypoint (%v, %v): %w", lat, lng, domain.ErrInvalidCoordinates)
	}

	c = s.deps.Snapper.Snap(ctx, c)
	if err := s.Add(ctx, c.Lat, c.Lng, label); err != nil {
		return domain.Waypoint{}, err
	}
	return domain.Waypoint{Lat: c.Lat, Lng: c.Lng, Label: label}, nil
}

// AddOrder appends the order's location labeled "{customer} ({code})".
func (s *Session) AddOrder(ctx context.Context, orderID int64) (domain.Waypoint, error) {
	if s.deps.Orders == nil {
		return domain.Waypoint{}, ErrNoOrderSource
	}

	o, err := s.deps.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Waypoint{}, fmt.Errorf("add order %d: %w", orderID, err)
	}

	wp := domain.Waypoint{Lat: o.Latitude, Lng: o.Longitude, Label: o.StopLabel()}
	if err := s.Add(ctx, wp.Lat, wp.Lng, wp.Label); err != nil {
		return domain.Waypoint{}, fmt.Errorf("add order %d: %w", orderID, err)
	}
	return wp, nil
}

func (s *Session) RemoveAt(ctx context.Context, index int) (bool, error) {
	return s.mutate(ctx, func(st *domain.WaypointStore) (bool, error) {
		return st.RemoveAt(index), nil
	})
}

func (s *Session) RemoveMatching(ctx context.Context, lat, lng float64) (bool, error) {
	return s.mutate(ctx, func(st *domain.WaypointStore) (bool, error) {
		return st.RemoveMatching(lat, lng), nil
	})
}

func (s *Session) UndoLast(ctx context.Context) (bool, error) {
	return s.mutate(ctx, func(st *domain.WaypointStore) (bool, error) {
		return st.UndoLast(), nil
	})
}

// Clear empties the store, drops the visible plan and supersedes any
// in-flight optimize cycle.
func (s *Session) Clear(ctx context.Context) error {
	_, err := s.mutateAndReset(ctx, true, func(st *domain.WaypointStore) (bool, error) {
		st.Clear()
		return true, nil
	})
	return err
}

// RestoreFromHash replaces the store with the coordinates decoded from
// fragment. Invalid pairs are skipped; an empty fragment clears the session.
func (s *Session) RestoreFromHash(ctx context.Context, fragment string) (int, error) {
	coords := codec.DecodeHash(fragment)

	wps := make([]domain.Waypoint, 0, len(coords))
	for _, c := range coords {
		wps = append(wps, domain.Waypoint{Lat: c.Lat, Lng: c.Lng, Label: RestoredLabel})
	}

	_, err := s.mutateAndReset(ctx, true, func(st *domain.WaypointStore) (bool, error) {
		return true, st.Replace(wps)
	})
	if err != nil {
		return 0, fmt.Errorf("restore from hash: %w", err)
	}
	return len(wps), nil
}

// Restore loads the persisted waypoints for this session. Missing state is
// not an error; entries that fail validation are skipped.
func (s *Session) Restore(ctx context.Context) (err error) {
	defer obs.Time(obs.WithSession(ctx, s.id), "session.Restore")(&err)

	data, err := s.deps.State.Load(ctx, s.key)
	if errors.Is(err, ports.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session %s: %w", s.id, err)
	}

	wps, err := codec.DecodeState(data)
	if err != nil {
		return fmt.Errorf("restore session %s: %w", s.id, err)
	}

	_, err = s.mutate(ctx, func(st *domain.WaypointStore) (bool, error) {
		st.Clear()
		for _, w := range wps {
			if err := st.Add(w.Lat, w.Lng, w.Label); err != nil {
				log.Printf("session=%s skipping stored waypoint err=%v", s.id, err)
			}
		}
		return true, nil
	})
	return err
}

func (s *Session) mutate(ctx context.Context, fn func(*domain.WaypointStore) (bool, error)) (bool, error) {
	return s.mutateAndReset(ctx, false, fn)
}

// mutateAndReset stages fn on a copy of the store, persists the result and
// swaps it in. fn reports whether anything changed; unchanged stores are not
// saved. With reset, the visible plan is dropped once the save succeeded.
func (s *Session) mutateAndReset(
	ctx context.Context,
	reset bool,
	fn func(*domain.WaypointStore) (bool, error),
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.store.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		return false, err
	}

	wps := next.List()
	data, err := codec.EncodeState(wps)
	if err != nil {
		return false, fmt.Errorf("encode waypoints: %w", err)
	}
	if err := s.deps.State.Save(ctx, s.key, data); err != nil {
		return false, fmt.Errorf("persist waypoints: %w", err)
	}

	s.store = next
	s.hash = codec.EncodeHash(wps)
	if reset {
		s.runs.Reset()
	}

	if s.deps.Notifier != nil {
		s.deps.Notifier.Notify(ctx, domain.Event{
			SessionID: s.id,
			Type:      domain.EventWaypointsChanged,
			Waypoints: wps,
			Plan:      s.runs.Plan(),
		})
	}
	return true, nil
}

// StartOptimize validates the waypoint count, issues a new token and runs the
// cycle in the background. The returned channel yields exactly one Outcome.
// Rejected requests never reach the network and never consume a token.
func (s *Session) StartOptimize(ctx context.Context) (domain.RunToken, <-chan Outcome, error) {
	wps := s.List()
	if err := ValidateWaypointCount(len(wps)); err != nil {
		metrics.OptimizeRuns.WithLabelValues("rejected").Inc()
		return 0, nil, err
	}

	run := s.runs.Begin()
	out := make(chan Outcome, 1)

	go func() {
		defer close(out)
		out <- s.runOptimize(obs.WithSession(ctx, s.id), run, wps)
	}()

	return run.Token(), out, nil
}

// Optimize runs a cycle and waits for it to finish.
func (s *Session) Optimize(ctx context.Context) (Outcome, error) {
	_, ch, err := s.StartOptimize(ctx)
	if err != nil {
		return Outcome{}, err
	}
	out := <-ch
	return out, out.Err
}

func (s *Session) runOptimize(ctx context.Context, run *Run, wps []domain.Waypoint) Outcome {
	plan, err := s.deps.Optimizer.Plan(ctx, run, domain.CoordinatesOf(wps))
	if err != nil {
		switch {
		case errors.Is(err, ErrSuperseded) || !run.Current():
			metrics.OptimizeRuns.WithLabelValues("superseded").Inc()
			return Outcome{Token: run.Token(), Status: OutcomeSuperseded, Err: ErrSuperseded}
		case ctx.Err() != nil:
			metrics.OptimizeRuns.WithLabelValues("canceled").Inc()
			return Outcome{Token: run.Token(), Status: OutcomeCanceled, Err: err}
		}

		s.runs.Fail(ctx, run, err)
		metrics.OptimizeRuns.WithLabelValues("failed").Inc()
		log.Printf("session=%s token=%d optimize failed err=%v", s.id, run.Token(), err)
		return Outcome{Token: run.Token(), Status: OutcomeFailed, Err: err}
	}

	plan.Waypoints = wps
	plan.ShareHash = codec.EncodeHash(plan.OrderedWaypoints())

	if !s.runs.Commit(ctx, run, plan) {
		metrics.OptimizeRuns.WithLabelValues("superseded").Inc()
		return Outcome{Token: run.Token(), Status: OutcomeSuperseded, Err: ErrSuperseded}
	}

	metrics.OptimizeRuns.WithLabelValues("committed_" + string(plan.Source)).Inc()
	return Outcome{Token: run.Token(), Status: OutcomeCommitted, Plan: plan}
}
