package gridastar

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar/internal"
)

var (
	// ErrOutOfBounds is returned when a start or goal coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrNoPath is returned by Find when the goal is unreachable from the start.
	ErrNoPath = errors.New("no path found")
)

const noPredecessor = -1

// Walkable is the one capability the engine needs from a cell type.
// It is called as current.IsWalkable(candidate) before every transition, so
// it may be asymmetric.
type Walkable[T any] interface {
	IsWalkable(other T) bool
}

// Result contains the outcome of a search
type Result[T any] struct {
	Path          []*T
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Stats describes the most recent search run by an Engine.
type Stats struct {
	ExpandedNodes int
	TotalCost     float64
	Found         bool
}

// Options defines parameters for engines and batch searches.
type Options struct {
	NumberOfWorkers int
	Heuristic       Heuristic
	Logger          *logrus.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many engines SearchAll runs in parallel.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithHeuristic replaces the Euclidean heuristic. Paths are only guaranteed
// optimal when h never overestimates the StepCost distance.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) { options.Heuristic = h }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(logger *logrus.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Heuristic:       Euclidean,
		Logger:          logrus.StandardLogger(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Euclidean
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Engine runs A* searches over a borrowed grid of cells. It allocates its
// scratch state once and reuses it on every search; it is not safe for
// concurrent use. The grid must outlive the engine and must not be mutated
// while a search is running.
type Engine[T Walkable[T]] struct {
	grid  *Grid[T]
	nodes *Grid[SearchNode[T]]

	open     *MembershipSet
	closed   *MembershipSet
	scored   *MembershipSet // nodes whose G/H/F belong to the current search
	queue    *PriorityQueue[T]
	cameFrom *Grid[int]

	neighbors [8]*SearchNode[T]
	trail     []int

	heuristic Heuristic
	logger    *logrus.Logger

	start, goal *SearchNode[T]
	epoch       uint64
	stats       Stats
}

// New builds an engine sized to grid.
func New[T Walkable[T]](grid *Grid[T], options ...Option) *Engine[T] {
	if grid == nil {
		panic("gridastar: New called with a nil grid")
	}
	opts := buildOptions(options)
	w, h := grid.Width(), grid.Height()

	e := &Engine[T]{
		grid:      grid,
		nodes:     NewGrid[SearchNode[T]](w, h),
		open:      NewMembershipSet(w * h),
		closed:    NewMembershipSet(w * h),
		scored:    NewMembershipSet(w * h),
		queue:     NewPriorityQueue[T](w + h),
		cameFrom:  NewGrid[int](w, h),
		heuristic: opts.Heuristic,
		logger:    opts.Logger,
	}
	e.nodes.ForEach(func(p Point, node *SearchNode[T]) {
		*node = SearchNode[T]{
			X:            p.X,
			Y:            p.Y,
			Cell:         grid.At(p.X, p.Y),
			index:        e.nodes.index(p.X, p.Y),
			IndexInQueue: -1,
		}
	})
	return e
}

// Grid returns the grid the engine searches.
func (e *Engine[T]) Grid() *Grid[T] { return e.grid }

// Width is the grid width in cells.
func (e *Engine[T]) Width() int { return e.grid.Width() }

// Height is the grid height in cells.
func (e *Engine[T]) Height() int { return e.grid.Height() }

// Score reports the g, h and f values the last search computed for p. ok is
// false for cells that search never reached, including every cell when the
// last search started on its goal.
func (e *Engine[T]) Score(p Point) (g, h, f float64, ok bool) {
	if !e.grid.InBounds(p.X, p.Y) {
		return 0, 0, 0, false
	}
	n := e.nodes.At(p.X, p.Y)
	if !e.scored.Contains(n.index) {
		return 0, 0, 0, false
	}
	return n.G, n.H, n.F, true
}

// Stats reports the outcome of the last search.
func (e *Engine[T]) Stats() Stats { return e.stats }

// Search finds a minimum-cost path from (startX, startY) to (goalX, goalY).
//
// *path is truncated on every return. On success it holds references to the
// grid cells from start to goal inclusive, except when start equals goal, in
// which case it stays empty. A nil path pointer is allowed.
//
// An unreachable goal returns false and a nil error. Out-of-range coordinates
// return an error wrapping ErrOutOfBounds.
func (e *Engine[T]) Search(startX, startY, goalX, goalY int, path *[]*T) (bool, error) {
	if path != nil {
		*path = (*path)[:0]
	}
	e.epoch++
	e.stats = Stats{}
	e.scored.Clear()

	if err := e.checkBounds(Point{startX, startY}, Point{goalX, goalY}); err != nil {
		return false, err
	}

	startNode := e.nodes.At(startX, startY)
	goalNode := e.nodes.At(goalX, goalY)
	if startNode == goalNode {
		e.stats.Found = true
		return true, nil
	}

	e.begin(startNode, goalNode)
	for {
		if _, done := e.expand(); done {
			break
		}
	}
	e.logSearch()

	if !e.stats.Found {
		return false, nil
	}
	if path != nil {
		e.trail = internal.ReconstructPath(e.cameFrom.cells, e.goal.index, e.trail[:0])
		for _, index := range e.trail {
			*path = append(*path, e.nodes.cells[index].Cell)
		}
	}
	return true, nil
}

// Find is Search with a freshly allocated Result. It returns ErrNoPath when
// the goal is unreachable.
func (e *Engine[T]) Find(start, goal Point) (Result[T], error) {
	var path []*T
	found, err := e.Search(start.X, start.Y, goal.X, goal.Y, &path)
	if err != nil {
		return Result[T]{}, err
	}
	result := Result[T]{
		Path:          path,
		TotalCost:     e.stats.TotalCost,
		ExpandedNodes: e.stats.ExpandedNodes,
		Found:         found,
	}
	if !found {
		return result, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, goal)
	}
	return result, nil
}

func (e *Engine[T]) checkBounds(start, goal Point) error {
	for _, p := range [2]Point{start, goal} {
		if !e.grid.InBounds(p.X, p.Y) {
			return fmt.Errorf("%w: %v on a %dx%d grid", ErrOutOfBounds, p, e.grid.Width(), e.grid.Height())
		}
	}
	return nil
}

// begin resets the scratch state and seeds the open set with start.
func (e *Engine[T]) begin(start, goal *SearchNode[T]) {
	e.open.Clear()
	e.closed.Clear()
	e.scored.Clear()
	e.queue.Clear()
	e.cameFrom.ForEach(func(_ Point, from *int) { *from = noPredecessor })

	e.start, e.goal = start, goal
	start.G = 0
	start.H = e.heuristic(start.Point(), goal.Point())
	start.F = start.H

	e.open.Add(start.index)
	e.queue.Push(start)
	e.scored.Add(start.index)
}

// expand runs one iteration of the main loop. It returns the node taken from
// the queue, or nil if the open set was already exhausted, and whether the
// search is over.
func (e *Engine[T]) expand() (*SearchNode[T], bool) {
	if e.open.Count() == 0 {
		return nil, true
	}

	current := e.queue.Pop()
	e.stats.ExpandedNodes++
	if current == e.goal {
		e.stats.Found = true
		e.stats.TotalCost = current.G
		return current, true
	}

	e.open.Remove(current.index)
	e.closed.Add(current.index)

	e.fillNeighbors(current)
	for _, neighbor := range e.neighbors {
		if neighbor == nil ||
			!(*current.Cell).IsWalkable(*neighbor.Cell) ||
			e.closed.Contains(neighbor.index) {
			continue
		}

		score := e.runtimeG(current) + StepCost(current.Point(), neighbor.Point())
		if score >= e.runtimeG(neighbor) {
			// equal cost keeps the earlier predecessor
			continue
		}

		e.cameFrom.Set(neighbor.X, neighbor.Y, current.index)
		e.scored.Add(neighbor.index)
		neighbor.G = score
		neighbor.H = e.heuristic(neighbor.Point(), e.goal.Point())
		neighbor.F = neighbor.G + neighbor.H

		if e.open.Contains(neighbor.index) {
			e.queue.Update(neighbor)
		} else {
			e.open.Add(neighbor.index)
			e.queue.Push(neighbor)
		}
	}
	return current, false
}

// runtimeG is the cost from start recorded for n in the current search. Nodes
// not yet scored keep whatever an earlier search left behind, so they read as
// unreached.
func (e *Engine[T]) runtimeG(n *SearchNode[T]) float64 {
	if !e.scored.Contains(n.index) {
		return math.Inf(1)
	}
	return n.G
}

var neighborOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// fillNeighbors loads the 8 surrounding nodes of n; slots off the grid are nil.
func (e *Engine[T]) fillNeighbors(n *SearchNode[T]) {
	for i, offset := range neighborOffsets {
		x, y := n.X+offset.X, n.Y+offset.Y
		if e.nodes.InBounds(x, y) {
			e.neighbors[i] = e.nodes.At(x, y)
		} else {
			e.neighbors[i] = nil
		}
	}
}

func (e *Engine[T]) logSearch() {
	if e.logger == nil || !e.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	e.logger.WithFields(logrus.Fields{
		"start":    e.start.Point().String(),
		"goal":     e.goal.Point().String(),
		"found":    e.stats.Found,
		"expanded": e.stats.ExpandedNodes,
		"cost":     e.stats.TotalCost,
	}).Debug("grid search finished")
}
