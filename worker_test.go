package gridastar

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestSearchAllMatchesSingleEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	g := randomGrid(rng, 16, 16, 0.2)

	requests := make([]Request, 64)
	for i := range requests {
		requests[i] = Request{
			Start: Point{rng.Intn(16), rng.Intn(16)},
			Goal:  Point{rng.Intn(16), rng.Intn(16)},
		}
	}
	requests = append(requests, Request{Start: Point{0, 0}, Goal: Point{16, 0}})

	responses, err := SearchAll(context.Background(), g, requests, WithWorkers(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(responses) != len(requests) {
		t.Fatalf("Expected %d responses, got %d", len(requests), len(responses))
	}

	single := New(g)
	for i, response := range responses {
		if response.Request != requests[i] {
			t.Fatalf("response %d is for %+v, expected %+v", i, response.Request, requests[i])
		}
		want, wantErr := single.Find(requests[i].Start, requests[i].Goal)
		if !errors.Is(response.Err, unwrapSentinel(wantErr)) {
			t.Errorf("response %d: err %v, expected %v", i, response.Err, wantErr)
		}
		if response.Result.Found != want.Found || !slices.Equal(response.Result.Path, want.Path) {
			t.Errorf("response %d: result differs from a single engine", i)
		}
		if math.Abs(response.Result.TotalCost-want.TotalCost) > 1e-9 {
			t.Errorf("response %d: cost %v, expected %v", i, response.Result.TotalCost, want.TotalCost)
		}
	}

	if last := responses[len(responses)-1]; !errors.Is(last.Err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for the off-grid request, got %v", last.Err)
	}
}

func unwrapSentinel(err error) error {
	switch {
	case errors.Is(err, ErrNoPath):
		return ErrNoPath
	case errors.Is(err, ErrOutOfBounds):
		return ErrOutOfBounds
	}
	return err
}

func TestSearchAllCancelled(t *testing.T) {
	g := newTestGrid("....", "....")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := make([]Request, 100)
	for i := range requests {
		requests[i] = Request{Start: Point{0, 0}, Goal: Point{3, 1}}
	}
	_, err := SearchAll(ctx, g, requests, WithWorkers(2))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSearchAllEmpty(t *testing.T) {
	responses, err := SearchAll(context.Background(), newTestGrid(".."), nil)
	if err != nil || len(responses) != 0 {
		t.Errorf("Expected no responses and no error, got %d, %v", len(responses), err)
	}
}

func TestSearchAllCancelledAfterDispatch(t *testing.T) {
	g := newTestGrid("....", "....")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the only request is already with its worker when ctx is cancelled
	cancelling := func(from, to Point) float64 {
		cancel()
		return Euclidean(from, to)
	}
	requests := []Request{{Start: Point{0, 0}, Goal: Point{3, 1}}}
	responses, err := SearchAll(ctx, g, requests, WithWorkers(1), WithHeuristic(cancelling))
	if err != nil {
		t.Fatalf("Expected no error once every request was answered, got %v", err)
	}
	if responses[0].Err != nil || !responses[0].Result.Found {
		t.Errorf("Expected a found path, got %+v", responses[0])
	}
}
