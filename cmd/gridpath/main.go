// Command gridpath finds a shortest path on a tile map and prints it.
//
//	gridpath -map level.txt [-from 1,1] [-to 8,5]
//
// Without -from/-to the map's S and G markers are used. The exit status is 1
// when the goal is unreachable.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/logger"
	"github.com/pdrpinto/gridastar/mapfile"
)

func init() {
	logger.Init()
}

func main() {
	var mapPath, from, to string
	flag.StringVar(&mapPath, "map", "", "Path to a .txt or .json map file")
	flag.StringVar(&from, "from", "", "Start cell as x,y (defaults to the map's S)")
	flag.StringVar(&to, "to", "", "Goal cell as x,y (defaults to the map's G)")
	flag.Parse()

	if mapPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	m, err := mapfile.Load(mapPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load map")
	}

	start, err := resolvePoint(from, m.Start, m.HasStart)
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid start")
	}
	goal, err := resolvePoint(to, m.Goal, m.HasGoal)
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid goal")
	}
	m.Start, m.Goal, m.HasStart, m.HasGoal = start, goal, true, true

	engine := gridastar.New(m.Grid, gridastar.WithLogger(logger.Log))
	result, err := engine.Find(start, goal)
	switch {
	case errors.Is(err, gridastar.ErrNoPath):
		logger.Log.WithFields(logrus.Fields{
			"map":      m.Name,
			"expanded": result.ExpandedNodes,
		}).Warn(err.Error())
		os.Exit(1)
	case err != nil:
		logger.Log.WithError(err).Fatal("Search failed")
	}

	if err := mapfile.Render(os.Stdout, m, result.Path); err != nil {
		logger.Log.WithError(err).Fatal("Failed to render map")
	}
	logger.Log.WithFields(logrus.Fields{
		"map":      m.Name,
		"steps":    max(len(result.Path)-1, 0),
		"cost":     strconv.FormatFloat(result.TotalCost, 'f', 3, 64),
		"expanded": result.ExpandedNodes,
	}).Info("Path found")
}

// resolvePoint parses an "x,y" flag value, falling back to the map marker.
func resolvePoint(value string, marker gridastar.Point, hasMarker bool) (gridastar.Point, error) {
	if value == "" {
		if !hasMarker {
			return gridastar.Point{}, errors.New("no coordinate given and the map has no marker")
		}
		return marker, nil
	}
	xs, ys, ok := strings.Cut(value, ",")
	if !ok {
		return gridastar.Point{}, fmt.Errorf("expected x,y, got %q", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridastar.Point{}, fmt.Errorf("bad x in %q: %w", value, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridastar.Point{}, fmt.Errorf("bad y in %q: %w", value, err)
	}
	return gridastar.Point{X: x, Y: y}, nil
}
