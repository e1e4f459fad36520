// Package pathfind runs A* searches over a voxel grid, with stair-style
// jump moves between vertical levels. Traversal policy lives entirely in
// the caller's cost function; the search itself knows nothing about cell
// labels.
package pathfind

import (
	"math"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/halstein/dungeon-forge/internal/grid"
)

// CostFunc judges a single move from one cell to an adjacent (or jumped-to)
// cell. It returns the non-negative incremental cost of entering to, and
// whether the move is allowed at all. Out-of-grid cells must report false.
type CostFunc func(from, to grid.Point) (cost float64, traversable bool)

// offsets are the legal moves: four horizontal unit steps plus eight stair
// jumps spanning three horizontal cells and one vertical level.
var offsets = []grid.Point{
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},

	{X: 3, Y: 1, Z: 0},
	{X: -3, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 3},
	{X: 0, Y: 1, Z: -3},

	{X: 3, Y: -1, Z: 0},
	{X: -3, Y: -1, Z: 0},
	{X: 0, Y: -1, Z: 3},
	{X: 0, Y: -1, Z: -3},
}

// StairCells returns the four intermediate cells a stair jump passes
// through, in walking order: the two cells at the starting level, then the
// two at the destination level. Unit moves return nil.
func StairCells(from, to grid.Point) []grid.Point {
	d := to.Sub(from)
	if d.Y == 0 {
		return nil
	}
	h := grid.Point{X: clampUnit(d.X), Z: clampUnit(d.Z)}
	v := grid.Point{Y: d.Y}
	lower1 := from.Add(h)
	lower2 := lower1.Add(h)
	return []grid.Point{lower1, lower2, lower1.Add(v), lower2.Add(v)}
}

func clampUnit(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

type node struct {
	pos   grid.Point
	f     float64
	order int
}

// FindPath searches from start to goal and returns the cell sequence
// including both endpoints, or nil when the goal is unreachable. For a
// fixed grid state and cost function the result is fully deterministic:
// frontier ties break on insertion order.
func FindPath(start, goal grid.Point, cost CostFunc) []grid.Point {
	if start == goal {
		return []grid.Point{start}
	}

	open := heap.New(func(a, b node) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.order < b.order
	})
	closed := mapset.New[grid.Point]()
	gScore := map[grid.Point]float64{start: 0}
	cameFrom := make(map[grid.Point]grid.Point)

	order := 0
	open.Push(node{pos: start, f: heuristic(start, goal)})

	for open.Size() > 0 {
		current, _ := open.Pop()
		if closed.Has(current.pos) {
			continue
		}
		closed.Put(current.pos)

		if current.pos == goal {
			return reconstruct(cameFrom, start, goal)
		}

		currentG := gScore[current.pos]
		for _, off := range offsets {
			next := current.pos.Add(off)
			if closed.Has(next) {
				continue
			}

			stepCost, ok := cost(current.pos, next)
			if !ok {
				continue
			}
			// A jump is only legal when every cell it passes through is
			// traversable; their costs accumulate into the move.
			blocked := false
			for _, mid := range StairCells(current.pos, next) {
				midCost, midOK := cost(current.pos, mid)
				if !midOK {
					blocked = true
					break
				}
				stepCost += midCost
			}
			if blocked {
				continue
			}

			tentative := currentG + stepCost
			if known, seen := gScore[next]; seen && tentative >= known {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.pos
			order++
			open.Push(node{pos: next, f: tentative + heuristic(next, goal), order: order})
		}
	}

	return nil
}

func heuristic(p, goal grid.Point) float64 {
	dx := float64(p.X - goal.X)
	dy := float64(p.Y - goal.Y)
	dz := float64(p.Z - goal.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func reconstruct(cameFrom map[grid.Point]grid.Point, start, goal grid.Point) []grid.Point {
	path := []grid.Point{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
