package services

import (
	"route-planner-service/internal/domain"
	"testing"
)

func TestGreedyOrderVisitsNearestFirst(t *testing.T) {
	order, err := GreedyOrder(triangle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{0, 2, 1}; !equalInts(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestGreedyOrderTiesPickLowestIndex(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 0, Lng: -1},
		{Lat: 1, Lng: 0},
	}

	order, err := GreedyOrder(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order[0] != 0 || order[1] != 1 {
		t.Fatalf("order = %v, want [0 1 ...]", order)
	}
	if !isPermutation(order, len(points)) {
		t.Fatalf("order %v is not a permutation", order)
	}

	again, _ := GreedyOrder(points)
	if !equalInts(order, again) {
		t.Fatalf("order not deterministic: %v vs %v", order, again)
	}
}

func TestGreedyOrderEdgeCases(t *testing.T) {
	if _, err := GreedyOrder(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}

	order, err := GreedyOrder([]domain.Coordinates{{Lat: 1, Lng: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalInts(order, []int{0}) {
		t.Fatalf("order = %v, want [0]", order)
	}
}

func TestIsPermutation(t *testing.T) {
	cases := []struct {
		order []int
		n     int
		want  bool
	}{
		{[]int{0, 2, 1}, 3, true},
		{[]int{0, 1}, 3, false},
		{[]int{0, 0, 1}, 3, false},
		{[]int{0, 3, 1}, 3, false},
		{[]int{-1, 0, 1}, 3, false},
	}
	for _, tc := range cases {
		if got := isPermutation(tc.order, tc.n); got != tc.want {
			t.Fatalf("isPermutation(%v, %d) = %v, want %v", tc.order, tc.n, got, tc.want)
		}
	}
}
