package osrm

import (
	"context"
	"errors"
	"route-planner-service/internal/domain"
	"sync"
)

var ErrMockUnavailable = errors.New("mock host unavailable")

type MockCall struct {
	Method string
	Host   string
	Points []domain.Coordinates
}

// MockRouteProvider is an in-memory RouteProvider for tests. Behaviour is
// scripted through the *Func fields; every call is recorded.
//
// Defaults: Trip fails, Route returns a two-point segment of 1000 m / 60 s,
// Nearest fails.
type MockRouteProvider struct {
	TripFunc    func(ctx context.Context, host string, points []domain.Coordinates) (domain.Trip, error)
	RouteFunc   func(ctx context.Context, host string, from, to domain.Coordinates) (domain.Segment, error)
	NearestFunc func(ctx context.Context, host string, point domain.Coordinates) (domain.Coordinates, error)

	mu    sync.Mutex
	calls []MockCall
}

func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{}
}

func (m *MockRouteProvider) record(method, host string, points ...domain.Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Host: host, Points: append([]domain.Coordinates(nil), points...)})
}

func (m *MockRouteProvider) Trip(ctx context.Context, host string, points []domain.Coordinates) (domain.Trip, error) {
	m.record("trip", host, points...)
	if m.TripFunc == nil {
		return domain.Trip{}, ErrMockUnavailable
	}
	return m.TripFunc(ctx, host, points)
}

func (m *MockRouteProvider) Route(ctx context.Context, host string, from, to domain.Coordinates) (domain.Segment, error) {
	m.record("route", host, from, to)
	if m.RouteFunc == nil {
		return domain.Segment{
			Coordinates:     []domain.Coordinates{from, to},
			DistanceMeters:  1000,
			DurationSeconds: 60,
		}, nil
	}
	return m.RouteFunc(ctx, host, from, to)
}

func (m *MockRouteProvider) Nearest(ctx context.Context, host string, point domain.Coordinates) (domain.Coordinates, error) {
	m.record("nearest", host, point)
	if m.NearestFunc == nil {
		return domain.Coordinates{}, ErrMockUnavailable
	}
	return m.NearestFunc(ctx, host, point)
}

// Calls returns the recorded calls for method ("trip", "route", "nearest"),
// or all calls when method is empty.
func (m *MockRouteProvider) Calls(method string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockCall, 0, len(m.calls))
	for _, c := range m.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
