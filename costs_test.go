package gridastar

import (
	"math"
	"math/rand"
	"testing"
)

func TestStepCost(t *testing.T) {
	tests := []struct {
		to   Point
		want float64
	}{
		{Point{5, 5}, 0},
		{Point{6, 5}, 1},
		{Point{5, 4}, 1},
		{Point{4, 4}, math.Sqrt2},
		{Point{6, 6}, math.Sqrt2},
	}
	for _, tt := range tests {
		if got := StepCost(Point{5, 5}, tt.to); got != tt.want {
			t.Errorf("StepCost((5,5), %v) = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestStepCostPanicsOnNonAdjacent(t *testing.T) {
	for _, to := range []Point{{7, 5}, {5, 3}, {7, 6}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for (5,5) -> %v", to)
				}
			}()
			StepCost(Point{5, 5}, to)
		}()
	}
}

// octile is the exact 8-connected distance on an obstacle-free grid.
func octile(a, b Point) float64 {
	dx, dy := float64(abs(a.X-b.X)), float64(abs(a.Y-b.Y))
	return math.Max(dx, dy) - math.Min(dx, dy) + math.Sqrt2*math.Min(dx, dy)
}

func TestEuclideanIsAdmissible(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		a := Point{rng.Intn(200) - 100, rng.Intn(200) - 100}
		b := Point{rng.Intn(200) - 100, rng.Intn(200) - 100}
		if h, d := Euclidean(a, b), octile(a, b); h > d+1e-9 {
			t.Fatalf("Euclidean(%v,%v) = %v overestimates %v", a, b, h, d)
		}
	}
}
