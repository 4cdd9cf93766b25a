// Package path finds routes across a 4-connected grid with A*.
package path

import (
	"slices"

	"github.com/zyedidia/generic/heap"

	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Graph is the grid view the pathfinder walks.
type Graph interface {
	Len() int
	IsBlocked(i int) bool
	Neighbors4(i int) []world.Exit
	Heuristic(a, b int) float32
}

// Result is the outcome of a search. Steps runs from start to goal inclusive.
type Result struct {
	Steps   []int
	Success bool
	Cost    float32
}

// NextStep returns the first cell after the start, if the path has one.
func (r Result) NextStep() (int, bool) {
	if !r.Success || len(r.Steps) < 2 {
		return 0, false
	}
	return r.Steps[1], true
}

type node struct {
	idx int
	g   float32
	h   float32
}

func (n node) f() float32 { return n.g + n.h }

// less orders by f, then by h, then by index, so equal inputs give equal paths.
func less(a, b node) bool {
	if fa, fb := a.f(), b.f(); fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.idx < b.idx
}

// FindPath runs A* from start to goal. Searches with an index outside the
// graph, or with a blocked goal other than start, fail immediately.
func FindPath(start, goal int, g Graph) Result {
	n := g.Len()
	if start < 0 || start >= n || goal < 0 || goal >= n {
		return Result{}
	}
	if start == goal {
		return Result{Steps: []int{start}, Success: true}
	}
	if g.IsBlocked(goal) {
		return Result{}
	}

	best := make(map[int]float32, 64)
	parent := make(map[int]int, 64)
	closed := make(map[int]bool, 64)

	open := heap.New(less)
	best[start] = 0
	open.Push(node{idx: start, g: 0, h: g.Heuristic(start, goal)})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.idx] || cur.g > best[cur.idx] {
			continue
		}
		if cur.idx == goal {
			return Result{Steps: walkBack(parent, start, goal), Success: true, Cost: cur.g}
		}
		closed[cur.idx] = true

		for _, e := range g.Neighbors4(cur.idx) {
			if closed[e.Index] {
				continue
			}
			ng := cur.g + e.Cost
			if old, seen := best[e.Index]; seen && ng >= old {
				continue
			}
			best[e.Index] = ng
			parent[e.Index] = cur.idx
			open.Push(node{idx: e.Index, g: ng, h: g.Heuristic(e.Index, goal)})
		}
	}
	return Result{}
}

func walkBack(parent map[int]int, start, goal int) []int {
	steps := []int{goal}
	for at := goal; at != start; {
		at = parent[at]
		steps = append(steps, at)
	}
	slices.Reverse(steps)
	return steps
}
