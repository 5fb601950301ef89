// Package mapfile loads and renders the tile maps used by the gridastar tools.
//
// Two formats are understood. Plain text maps use one character per cell:
//
//	#  wall
//	.  floor
//	S  floor, search start
//	G  floor, search goal
//
// JSON maps wrap the same rows: {"name": "...", "tiles": ["#..", ...]} and may
// give "start"/"goal" explicitly as {"x": 1, "y": 2}.
package mapfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdrpinto/gridastar"
)

const (
	wallGlyph  = '#'
	floorGlyph = '.'
	startGlyph = 'S'
	goalGlyph  = 'G'
	pathGlyph  = '*'
)

// ErrEmptyMap is returned for a map without any rows.
var ErrEmptyMap = errors.New("map has no tiles")

// Tile is a single map cell.
type Tile struct {
	X, Y int
	Wall bool
}

// IsWalkable reports whether a move into other is allowed.
func (t Tile) IsWalkable(other Tile) bool { return !other.Wall }

// Map is a parsed tile map.
type Map struct {
	Name     string
	Grid     *gridastar.Grid[Tile]
	Start    gridastar.Point
	Goal     gridastar.Point
	HasStart bool
	HasGoal  bool
}

type pointData struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type mapData struct {
	Name  string     `json:"name"`
	Tiles []string   `json:"tiles"`
	Start *pointData `json:"start,omitempty"`
	Goal  *pointData `json:"goal,omitempty"`
}

// Load reads a map from path. Files ending in .json are decoded as JSON,
// anything else as plain text.
func Load(path string) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer file.Close()

	var m *Map
	if strings.EqualFold(filepath.Ext(path), ".json") {
		m, err = ParseJSON(file)
	} else {
		m, err = Parse(file)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Parse reads a plain text map. Blank lines are ignored.
func Parse(r io.Reader) (*Map, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	return fromRows(rows)
}

// ParseJSON reads a JSON map.
func ParseJSON(r io.Reader) (*Map, error) {
	var data mapData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	m, err := fromRows(data.Tiles)
	if err != nil {
		return nil, err
	}
	m.Name = data.Name
	if data.Start != nil {
		if m.Start, err = m.marker("start", *data.Start); err != nil {
			return nil, err
		}
		m.HasStart = true
	}
	if data.Goal != nil {
		if m.Goal, err = m.marker("goal", *data.Goal); err != nil {
			return nil, err
		}
		m.HasGoal = true
	}
	return m, nil
}

func (m *Map) marker(name string, p pointData) (gridastar.Point, error) {
	if !m.Grid.InBounds(p.X, p.Y) {
		return gridastar.Point{}, fmt.Errorf("%s (%d,%d) outside %dx%d map", name, p.X, p.Y, m.Grid.Width(), m.Grid.Height())
	}
	return gridastar.Point{X: p.X, Y: p.Y}, nil
}

func fromRows(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(rows[0])
	m := &Map{Grid: gridastar.NewGrid[Tile](width, len(rows))}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d width mismatch: expected %d, got %d", y, width, len(row))
		}
		for x := 0; x < width; x++ {
			tile := Tile{X: x, Y: y}
			switch row[x] {
			case wallGlyph:
				tile.Wall = true
			case floorGlyph:
			case startGlyph:
				m.Start, m.HasStart = gridastar.Point{X: x, Y: y}, true
			case goalGlyph:
				m.Goal, m.HasGoal = gridastar.Point{X: x, Y: y}, true
			default:
				return nil, fmt.Errorf("unknown tile %q at (%d,%d)", row[x], x, y)
			}
			m.Grid.Set(x, y, tile)
		}
	}
	return m, nil
}

// Render writes the map as text with path drawn over it.
func Render(w io.Writer, m *Map, path []*Tile) error {
	onPath := make(map[gridastar.Point]bool, len(path))
	for _, tile := range path {
		onPath[gridastar.Point{X: tile.X, Y: tile.Y}] = true
	}

	buf := bufio.NewWriter(w)
	for y := 0; y < m.Grid.Height(); y++ {
		for x := 0; x < m.Grid.Width(); x++ {
			p := gridastar.Point{X: x, Y: y}
			glyph := byte(floorGlyph)
			switch {
			case m.HasStart && p == m.Start:
				glyph = startGlyph
			case m.HasGoal && p == m.Goal:
				glyph = goalGlyph
			case m.Grid.At(x, y).Wall:
				glyph = wallGlyph
			case onPath[p]:
				glyph = pathGlyph
			}
			if err := buf.WriteByte(glyph); err != nil {
				return err
			}
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return buf.Flush()
}
