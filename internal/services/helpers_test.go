package services

import (
	"context"
	"errors"
	"route-planner-service/internal/adapters/osrm"
	"route-planner-service/internal/adapters/state"
	"route-planner-service/internal/domain"
	"sync"
	"testing"
)

var testHosts = []string{"https://osrm-a.test", "https://osrm-b.test"}

// Three points where the nearest neighbor of the first is the third.
var triangle = []domain.Coordinates{
	{Lat: 10.80, Lng: 106.70},
	{Lat: 10.82, Lng: 106.71},
	{Lat: 10.79, Lng: 106.69},
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingNotifier) Notify(_ context.Context, evt domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingNotifier) byType(typ domain.EventType) []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type failingStateStore struct{ state.MemoryStateStore }

func (*failingStateStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func nativeTrip(points []domain.Coordinates, order []int) domain.Trip {
	coords := make([]domain.Coordinates, 0, len(order))
	for _, i := range order {
		coords = append(coords, points[i])
	}
	return domain.Trip{
		Segment: domain.Segment{Coordinates: coords, DistanceMeters: 5000, DurationSeconds: 600},
		Order:   order,
	}
}

func newTestRoutingClient(t *testing.T, provider *osrm.MockRouteProvider) *RoutingClient {
	t.Helper()
	client, err := NewRoutingClient(provider, testHosts)
	if err != nil {
		t.Fatalf("new routing client: %v", err)
	}
	return client
}

func newTestSession(t *testing.T, provider *osrm.MockRouteProvider) (*Session, *recordingNotifier, *state.MemoryStateStore) {
	t.Helper()

	notifier := &recordingNotifier{}
	store := state.NewMemoryStateStore()
	s := NewSession("test", StorageKey, SessionDeps{
		State:     store,
		Optimizer: NewOptimizer(newTestRoutingClient(t, provider)),
		Notifier:  notifier,
	})
	return s, notifier, store
}

func addAll(t *testing.T, s *Session, points []domain.Coordinates) {
	t.Helper()
	for _, p := range points {
		if err := s.Add(context.Background(), p.Lat, p.Lng, ""); err != nil {
			t.Fatalf("add %v: %v", p, err)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
