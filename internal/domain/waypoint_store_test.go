package domain

import (
	"errors"
	"math"
	"testing"
)

func TestWaypointStoreMutations(t *testing.T) {
	s := NewWaypointStore(nil)

	if err := s.Add(10.80, 106.70, "A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(10.82, 106.71, "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(10.80, 106.70, "C"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}

	// Duplicate coordinates: only the first exact match is removed.
	if !s.RemoveMatching(10.80, 106.70) {
		t.Fatalf("expected RemoveMatching to remove an entry")
	}
	got := s.List()
	if len(got) != 2 || got[0].Label != "B" || got[1].Label != "C" {
		t.Fatalf("after RemoveMatching got %+v", got)
	}

	if s.RemoveMatching(1, 1) {
		t.Errorf("RemoveMatching without a match should be a no-op")
	}
	if s.RemoveAt(5) || s.RemoveAt(-1) {
		t.Errorf("RemoveAt out of range should be a no-op")
	}

	if !s.UndoLast() {
		t.Fatalf("expected UndoLast to remove an entry")
	}
	if got := s.List(); len(got) != 1 || got[0].Label != "B" {
		t.Fatalf("after UndoLast got %+v", got)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len after Clear = %d", s.Len())
	}
	if s.UndoLast() {
		t.Errorf("UndoLast on empty store should be a no-op")
	}
}

func TestWaypointStoreRejectsNonFinite(t *testing.T) {
	s := NewWaypointStore(nil)

	cases := [][2]float64{
		{math.NaN(), 1},
		{1, math.Inf(1)},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		err := s.Add(c[0], c[1], "")
		if !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("Add(%v, %v) err = %v, want ErrInvalidCoordinates", c[0], c[1], err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("invalid adds must not change the store")
	}
}

func TestWaypointStoreListIsACopy(t *testing.T) {
	s := NewWaypointStore([]Waypoint{{Lat: 1, Lng: 2, Label: "x"}})

	l := s.List()
	l[0].Label = "mutated"

	if s.List()[0].Label != "x" {
		t.Fatalf("List must not expose internal state")
	}

	c := s.Clone()
	c.Clear()
	if s.Len() != 1 {
		t.Fatalf("Clone must be independent")
	}
}

func TestRoutePlanOrderedWaypoints(t *testing.T) {
	plan := RoutePlan{
		Order: []int{0, 2, 1},
		Waypoints: []Waypoint{
			{Lat: 1, Lng: 1, Label: "A"},
			{Lat: 2, Lng: 2, Label: "B"},
			{Lat: 3, Lng: 3, Label: "C"},
		},
	}

	got := plan.OrderedWaypoints()
	want := []string{"A", "C", "B"}
	for i, w := range got {
		if w.Label != want[i] {
			t.Errorf("position %d = %q, want %q", i, w.Label, want[i])
		}
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{West: 106.677, East: 106.740, South: 10.784, North: 10.858}

	if !box.Contains(Coordinates{Lat: 10.80, Lng: 106.70}) {
		t.Errorf("expected point inside box")
	}
	if box.Contains(Coordinates{Lat: 21.0285, Lng: 105.8542}) {
		t.Errorf("expected point outside box")
	}
	if !box.Contains(Coordinates{Lat: 10.784, Lng: 106.677}) {
		t.Errorf("bounds are inclusive")
	}
}

func TestOrderStopLabel(t *testing.T) {
	o := Order{CustomerName: "Nguyen Van A", Code: "DH001"}
	if got := o.StopLabel(); got != "Nguyen Van A (DH001)" {
		t.Fatalf("label = %q", got)
	}
}
