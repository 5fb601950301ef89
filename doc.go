// Package gridastar provides a reusable A* pathfinding engine over fixed-size 2D grids.
//
// It exposes three entry points:
//
//   - Engine.Search / Engine.Find: run a search to completion on a grid of user cells.
//   - Stepper: iterate a search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: fan a batch of independent requests out to a pool of engines.
//
// Cells are generic; the only capability the engine needs from them is Walkable.
// An Engine owns its scratch state (open/closed sets, queue, came-from map) and
// reuses it across searches, so a single Engine must not be used from more than
// one goroutine at a time.
package gridastar
