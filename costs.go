package gridastar

import (
	"fmt"
	"math"
)

// Heuristic estimates the remaining cost between two cells.
type Heuristic func(from, to Point) float64

// Euclidean is the straight-line distance between two cells. It never
// overestimates the 8-connected StepCost metric, so searches using it are optimal.
func Euclidean(from, to Point) float64 {
	return math.Hypot(float64(from.X-to.X), float64(from.Y-to.Y))
}

// StepCost is the cost of moving between two adjacent cells: 1 orthogonally,
// √2 diagonally and 0 for the same cell. Any other pair is a bug in neighbor
// generation and panics.
func StepCost(from, to Point) float64 {
	dx, dy := abs(from.X-to.X), abs(from.Y-to.Y)
	switch {
	case dx == 0 && dy == 0:
		return 0
	case dx+dy == 1:
		return 1
	case dx == 1 && dy == 1:
		return math.Sqrt2
	}
	panic(fmt.Sprintf("gridastar: step cost requested for non-adjacent cells %v -> %v", from, to))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
