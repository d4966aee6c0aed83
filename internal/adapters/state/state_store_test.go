package state

import (
	"context"
	"route-planner-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func exerciseStateStore(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "route_waypoints_v1")
	require.ErrorIs(t, err, ports.ErrStateNotFound)

	require.NoError(t, store.Save(ctx, "route_waypoints_v1", []byte(`[{"lat":10.8,"lng":106.7}]`)))
	got, err := store.Load(ctx, "route_waypoints_v1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"lat":10.8,"lng":106.7}]`, string(got))

	require.NoError(t, store.Save(ctx, "route_waypoints_v1", []byte(`[]`)))
	got, err = store.Load(ctx, "route_waypoints_v1")
	require.NoError(t, err)
	require.Equal(t, "[]", string(got))

	_, err = store.Load(ctx, "route_waypoints_v1:other")
	require.ErrorIs(t, err, ports.ErrStateNotFound)
}

func TestMemoryStateStore(t *testing.T) {
	exerciseStateStore(t, NewMemoryStateStore())
}

func TestMemoryStateStoreCopiesData(t *testing.T) {
	store := NewMemoryStateStore()
	buf := []byte("[]")
	require.NoError(t, store.Save(context.Background(), "k", buf))
	buf[0] = 'x'

	got, err := store.Load(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "[]", string(got))
}

func TestRedisStateStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStateStore(t, NewRedisStateStore(client))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = OpenRedis(context.Background(), "not a url")
	require.Error(t, err)
}
