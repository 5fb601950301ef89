package gridastar

import (
	"context"
	"errors"

	"github.com/zyedidia/generic/mapset"

	"github.com/pdrpinto/gridastar/internal"
)

// ErrStepperStale is returned by Step once its engine has started another search.
var ErrStepperStale = errors.New("stepper invalidated by a newer search on the same engine")

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Point
	Open      mapset.Set[Point]
	Closed    mapset.Set[Point]
	CameFrom  map[Point]Point
	Done      bool
	Found     bool
	Path      []Point
	TotalCost float64
	StepIndex int
}

// Stepper runs a search on an Engine one expansion at a time.
// It borrows the engine's scratch state, so any other search started on the
// same engine invalidates it.
type Stepper[T Walkable[T]] struct {
	ctx    context.Context
	cancel context.CancelFunc
	engine *Engine[T]
	epoch  uint64

	current   Point
	stepCount int
	done      bool
	found     bool
}

// NewStepper prepares a step-by-step search from start to goal on engine.
func NewStepper[T Walkable[T]](parent context.Context, engine *Engine[T], start, goal Point) (*Stepper[T], error) {
	engine.epoch++
	engine.stats = Stats{}
	engine.scored.Clear()
	if err := engine.checkBounds(start, goal); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Stepper[T]{
		ctx:     ctx,
		cancel:  cancel,
		engine:  engine,
		epoch:   engine.epoch,
		current: start,
	}
	engine.begin(engine.nodes.At(start.X, start.Y), engine.nodes.At(goal.X, goal.Y))
	if start == goal {
		s.done, s.found = true, true
		engine.stats.Found = true
	}
	return s, nil
}

// Close releases the stepper; further Steps return context.Canceled.
func (s *Stepper[T]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is over every call returns the final snapshot again.
func (s *Stepper[T]) Step() (StepSnapshot, error) {
	if err := s.ctx.Err(); err != nil {
		return StepSnapshot{Done: true, StepIndex: s.stepCount}, err
	}
	if s.epoch != s.engine.epoch {
		return StepSnapshot{Done: true, StepIndex: s.stepCount}, ErrStepperStale
	}
	if s.done {
		return s.snapshot(), nil
	}

	s.stepCount++
	node, done := s.engine.expand()
	if node != nil {
		s.current = node.Point()
	}
	if done {
		s.done = true
		s.found = s.engine.stats.Found
	}
	return s.snapshot(), nil
}

func (s *Stepper[T]) snapshot() StepSnapshot {
	e := s.engine
	snap := StepSnapshot{
		Current:   s.current,
		Open:      mapset.New[Point](),
		Closed:    mapset.New[Point](),
		CameFrom:  make(map[Point]Point),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}

	e.queue.each(func(node *SearchNode[T]) { snap.Open.Put(node.Point()) })
	e.nodes.ForEach(func(p Point, node *SearchNode[T]) {
		if e.closed.Contains(node.index) {
			snap.Closed.Put(p)
		}
		if from := e.cameFrom.cells[node.index]; from != noPredecessor {
			snap.CameFrom[p] = e.nodes.point(from)
		}
	})

	if s.found && e.start != e.goal {
		snap.TotalCost = e.stats.TotalCost
		e.trail = internal.ReconstructPath(e.cameFrom.cells, e.goal.index, e.trail[:0])
		snap.Path = make([]Point, 0, len(e.trail))
		for _, index := range e.trail {
			snap.Path = append(snap.Path, e.nodes.point(index))
		}
	}
	return snap
}
