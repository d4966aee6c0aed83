package domain

import "fmt"

// Ordered collection of waypoints owned by a single planning session.
//
// The store itself enforces only coordinate validity; the waypoint cap is an
// optimize-time concern. All removal operations are no-ops (reported through
// the boolean result) when nothing matches.
type WaypointStore struct {
	items []Waypoint
}

func NewWaypointStore(items []Waypoint) *WaypointStore {
	s := &WaypointStore{}
	s.items = append(s.items, items...)
	return s
}

// Append a waypoint to the end of the sequence.
func (s *WaypointStore) Add(lat, lng float64, label string) error {
	c := Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return fmt.Errorf("add waypoint (%v, %v): %w", lat, lng, ErrInvalidCoordinates)
	}
	s.items = append(s.items, Waypoint{Lat: lat, Lng: lng, Label: label})
	return nil
}

func (s *WaypointStore) RemoveAt(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index:index], s.items[index+1:]...)
	return true
}

// Remove the first waypoint whose coordinates equal (lat, lng) exactly.
func (s *WaypointStore) RemoveMatching(lat, lng float64) bool {
	for i, w := range s.items {
		if w.Lat == lat && w.Lng == lng {
			return s.RemoveAt(i)
		}
	}
	return false
}

func (s *WaypointStore) UndoLast() bool {
	if len(s.items) == 0 {
		return false
	}
	s.items = s.items[:len(s.items)-1]
	return true
}

func (s *WaypointStore) Clear() {
	s.items = nil
}

// Replace the whole sequence. Entries are validated like Add; on failure the
// store is left untouched.
func (s *WaypointStore) Replace(items []Waypoint) error {
	for i, w := range items {
		if !w.Coordinates().Valid() {
			return fmt.Errorf("replace waypoints: entry %d: %w", i, ErrInvalidCoordinates)
		}
	}
	s.items = append([]Waypoint(nil), items...)
	return nil
}

// Return a copy of the current ordered sequence.
func (s *WaypointStore) List() []Waypoint {
	out := make([]Waypoint, len(s.items))
	copy(out, s.items)
	return out
}

func (s *WaypointStore) Len() int { return len(s.items) }

// Clone returns an independent copy, used to stage a mutation before it is
// persisted.
func (s *WaypointStore) Clone() *WaypointStore {
	return NewWaypointStore(s.items)
}
