package gridastar

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func runStepper(t *testing.T, s *Stepper[cell]) StepSnapshot {
	t.Helper()
	for i := 0; i < 10000; i++ {
		snap, err := s.Step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		snap.Open.Each(func(p Point) {
			if snap.Closed.Has(p) {
				t.Fatalf("step %d: %v is both open and closed", i, p)
			}
		})
		if snap.Done {
			return snap
		}
	}
	t.Fatal("stepper never finished")
	return StepSnapshot{}
}

func TestStepperMatchesSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for round := 0; round < 50; round++ {
		g := randomGrid(rng, 10, 10, 0.25)
		start := Point{rng.Intn(10), rng.Intn(10)}
		goal := Point{rng.Intn(10), rng.Intn(10)}

		s, err := NewStepper(context.Background(), New(g), start, goal)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		final := runStepper(t, s)
		s.Close()

		var path []*cell
		e := New(g)
		found, _ := e.Search(start.X, start.Y, goal.X, goal.Y, &path)
		if final.Found != found {
			t.Fatalf("round %d: stepper found=%v, search found=%v", round, final.Found, found)
		}
		if len(final.Path) != len(path) {
			t.Fatalf("round %d: stepper path %d nodes, search %d", round, len(final.Path), len(path))
		}
		for i, p := range final.Path {
			if p != (Point{path[i].x, path[i].y}) {
				t.Fatalf("round %d: paths diverge at %d", round, i)
			}
		}
		if math.Abs(final.TotalCost-e.Stats().TotalCost) > 1e-9 {
			t.Fatalf("round %d: cost %v vs %v", round, final.TotalCost, e.Stats().TotalCost)
		}
	}
}

func TestStepperRepeatsFinalSnapshot(t *testing.T) {
	s, err := NewStepper(context.Background(), New(newTestGrid("...", "...")), Point{0, 0}, Point{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	final := runStepper(t, s)
	again, err := s.Step()
	if err != nil {
		t.Fatal(err)
	}
	if !again.Done || !again.Found || again.StepIndex != final.StepIndex || len(again.Path) != len(final.Path) {
		t.Errorf("Expected final snapshot to repeat, got %+v", again)
	}
	if final.CameFrom[Point{2, 1}] != final.Path[len(final.Path)-2] {
		t.Error("CameFrom does not agree with the path")
	}
}

func TestStepperTrivial(t *testing.T) {
	s, err := NewStepper(context.Background(), New(newTestGrid("..")), Point{1, 0}, Point{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := s.Step()
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Done || !snap.Found || len(snap.Path) != 0 {
		t.Errorf("Expected immediate empty success, got %+v", snap)
	}
}

func TestStepperOutOfBounds(t *testing.T) {
	_, err := NewStepper(context.Background(), New(newTestGrid("..")), Point{0, 0}, Point{5, 0})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestStepperInvalidatedBySearch(t *testing.T) {
	e := New(newTestGrid("....", "....", "...."))
	s, err := NewStepper(context.Background(), e, Point{0, 0}, Point{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Step(); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Find(Point{3, 0}, Point{0, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Step(); !errors.Is(err, ErrStepperStale) {
		t.Errorf("Expected ErrStepperStale, got %v", err)
	}
}

func TestStepperClose(t *testing.T) {
	s, err := NewStepper(context.Background(), New(newTestGrid("....")), Point{0, 0}, Point{3, 0})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, err := s.Step(); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
