package gridastar

import "fmt"

// Point is a cell coordinate on a grid.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Grid is a fixed-size, row-major 2D container. Bounds are [0,w) x [0,h).
type Grid[V any] struct {
	width, height int
	cells         []V
}

// NewGrid allocates a w x h grid of zero values.
func NewGrid[V any](width, height int) *Grid[V] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("gridastar: invalid grid size %dx%d", width, height))
	}
	return &Grid[V]{
		width:  width,
		height: height,
		cells:  make([]V, width*height),
	}
}

func (g *Grid[V]) Width() int  { return g.width }
func (g *Grid[V]) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of g.
func (g *Grid[V]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns a reference to the cell at (x, y). The coordinates must be in bounds.
func (g *Grid[V]) At(x, y int) *V {
	return &g.cells[g.index(x, y)]
}

// Set stores v at (x, y). The coordinates must be in bounds.
func (g *Grid[V]) Set(x, y int, v V) {
	g.cells[g.index(x, y)] = v
}

// ForEach calls fn for every cell. Visiting order is not part of the contract.
func (g *Grid[V]) ForEach(fn func(p Point, v *V)) {
	for i := range g.cells {
		fn(Point{X: i % g.width, Y: i / g.width}, &g.cells[i])
	}
}

func (g *Grid[V]) index(x, y int) int { return y*g.width + x }

func (g *Grid[V]) point(index int) Point {
	return Point{X: index % g.width, Y: index / g.width}
}
