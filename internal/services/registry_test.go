package services

import (
	"context"
	"errors"
	"route-planner-service/internal/adapters/osrm"
	"route-planner-service/internal/adapters/state"
	"testing"

	"github.com/google/uuid"
)

func newTestRegistry(t *testing.T, store *state.MemoryStateStore) *Registry {
	t.Helper()
	return NewRegistry(SessionDeps{
		State:     store,
		Optimizer: NewOptimizer(newTestRoutingClient(t, osrm.NewMockRouteProvider())),
	})
}

func TestRegistryCreateAndGet(t *testing.T) {
	store := state.NewMemoryStateStore()
	reg := newTestRegistry(t, store)
	ctx := context.Background()

	s, err := reg.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Fatalf("session id %q is not a uuid", s.ID())
	}
	if err := s.Add(ctx, 10.8, 106.7, "A"); err != nil {
		t.Fatalf("add: %v", err)
	}

	same, err := reg.Get(ctx, s.ID())
	if err != nil || same != s {
		t.Fatalf("get returned %p (err %v), want %p", same, err, s)
	}

	// a fresh registry over the same storage restores the session
	restored, err := newTestRegistry(t, store).Get(ctx, s.ID())
	if err != nil {
		t.Fatalf("get after restart: %v", err)
	}
	if list := restored.List(); len(list) != 1 || list[0].Label != "A" {
		t.Fatalf("restored list = %+v", list)
	}
}

func TestRegistryUnknownSessions(t *testing.T) {
	reg := newTestRegistry(t, state.NewMemoryStateStore())
	ctx := context.Background()

	for _, id := range []string{"nope", uuid.NewString()} {
		if _, err := reg.Get(ctx, id); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("get %q: err = %v, want ErrSessionNotFound", id, err)
		}
	}

	def, err := reg.Get(ctx, DefaultSessionID)
	if err != nil {
		t.Fatalf("default session should always exist: %v", err)
	}
	if def.ID() != DefaultSessionID {
		t.Fatalf("id = %q", def.ID())
	}
}

func TestStorageKeyFor(t *testing.T) {
	if got := StorageKeyFor(DefaultSessionID); got != "route_waypoints_v1" {
		t.Fatalf("default key = %q", got)
	}
	if got := StorageKeyFor("abc"); got != "route_waypoints_v1:abc" {
		t.Fatalf("key = %q", got)
	}
}
