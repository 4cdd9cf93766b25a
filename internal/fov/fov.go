// Package fov computes which cells are visible from a point on a grid.
package fov

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Opacity is the read-only view of a map the FOV engine needs.
type Opacity interface {
	InBounds(x, y int) bool
	IsOpaqueAt(x, y int) bool
}

// ComputeVisible returns every in-bounds cell within rangeCells (Euclidean,
// inclusive) of origin that has an unobstructed line from origin. Opaque
// cells are visible themselves but hide what lies behind them.
//
// The origin is always visible when it is on the map; an off-map origin sees
// nothing. A negative range behaves like zero.
func ComputeVisible(origin world.Point, rangeCells int, g Opacity) mapset.Set[world.Point] {
	visible := mapset.New[world.Point]()
	if !g.InBounds(origin.X, origin.Y) {
		return visible
	}
	r := max(rangeCells, 0)
	r2 := r * r

	visible.Put(origin)
	for y := origin.Y - r; y <= origin.Y+r; y++ {
		for x := origin.X - r; x <= origin.X+r; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			dx, dy := x-origin.X, y-origin.Y
			if dx*dx+dy*dy > r2 {
				continue
			}
			p := world.Point{X: x, Y: y}
			if LineOfSight(origin, p, g) {
				visible.Put(p)
			}
		}
	}
	return visible
}

// LineOfSight walks a Bresenham line from one point to another and reports
// whether every cell strictly between them is on the map and transparent.
func LineOfSight(from, to world.Point, g Opacity) bool {
	if from == to {
		return true
	}

	x0, y0 := from.X, from.Y
	dx := abs(to.X - x0)
	dy := abs(to.Y - y0)
	sx, sy := sign(to.X-x0), sign(to.Y-y0)
	err := dx - dy

	for {
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		if x0 == to.X && y0 == to.Y {
			return true
		}
		if !g.InBounds(x0, y0) || g.IsOpaqueAt(x0, y0) {
			return false
		}
	}
}

// Sorted returns the points of set in row-major order.
func Sorted(set mapset.Set[world.Point]) []world.Point {
	pts := make([]world.Point, 0, set.Size())
	set.Each(func(p world.Point) {
		pts = append(pts, p)
	})
	slices.SortFunc(pts, func(a, b world.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
