package mapfile

import (
	"math/rand"

	"github.com/pdrpinto/gridastar"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	Width, Height int
	Clusters      int     // number of random walks
	Steps         int     // length of each walk
	Density       float64 // chance a visited cell becomes a wall
}

// DefaultGenerateOptions matches the visualisers' defaults.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25}
}

// Generate builds a random map with clustered walls laid down by random walks,
// and picks distinct start and goal cells that are left as floor.
func Generate(opts GenerateOptions, rng *rand.Rand) *Map {
	w, h := opts.Width, opts.Height
	m := &Map{Name: "random", Grid: gridastar.NewGrid[Tile](w, h)}
	m.Grid.ForEach(func(p gridastar.Point, tile *Tile) {
		*tile = Tile{X: p.X, Y: p.Y}
	})
	if w*h < 2 {
		return m
	}

	for {
		m.Start = gridastar.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		m.Goal = gridastar.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		if m.Start != m.Goal {
			break
		}
	}
	m.HasStart, m.HasGoal = true, true

	directions := [4]gridastar.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	for c := 0; c < opts.Clusters; c++ {
		p := gridastar.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		for s := 0; s < opts.Steps; s++ {
			if rng.Float64() < opts.Density && p != m.Start && p != m.Goal {
				m.Grid.At(p.X, p.Y).Wall = true
			}
			d := directions[rng.Intn(len(directions))]
			if next := (gridastar.Point{X: p.X + d.X, Y: p.Y + d.Y}); m.Grid.InBounds(next.X, next.Y) {
				p = next
			}
		}
	}
	return m
}
