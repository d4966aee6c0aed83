package services

import (
	"errors"
	"route-planner-service/internal/domain"
)

// GreedyOrder returns a visiting order for points using a nearest-neighbor
// heuristic that starts at index 0.
//
// At each step the closest unvisited point by great-circle distance is
// chosen; equal distances resolve to the lowest original index, so the result
// is reproducible for a fixed input. The heuristic is O(n²) and does not
// attempt to find an optimal tour.
func GreedyOrder(points []domain.Coordinates) ([]int, error) {
	n := len(points)
	if n == 0 {
		return nil, errors.New("greedy order: points must not be empty")
	}

	order := make([]int, 0, n)
	order = append(order, 0)

	// Kept in ascending index order so the first minimum found is also the
	// lowest index.
	remaining := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		remaining = append(remaining, i)
	}

	current := 0
	for len(remaining) > 0 {
		bestPos := 0
		bestDist := HaversineMeters(points[current], points[remaining[0]])

		for k := 1; k < len(remaining); k++ {
			d := HaversineMeters(points[current], points[remaining[k]])
			if d < bestDist {
				bestPos = k
				bestDist = d
			}
		}

		current = remaining[bestPos]
		order = append(order, current)
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	return order, nil
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
