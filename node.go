package gridastar

// SearchNode is the per-cell bookkeeping the engine keeps next to each user cell.
// G, H and F are only meaningful while the node is open or closed in the
// current search.
type SearchNode[T any] struct {
	X, Y int
	Cell *T

	G float64
	H float64
	F float64

	index        int
	IndexInQueue int
}

func (n *SearchNode[T]) Point() Point { return Point{X: n.X, Y: n.Y} }
