package world

import (
	"fmt"
	"math"
)

// Terrain is the structural type of a map cell.
type Terrain uint8

const (
	TerrainWall  Terrain = iota // impassable, blocks sight
	TerrainFloor                // walkable, transparent
)

// Char returns the map glyph for the terrain.
func (t Terrain) Char() byte {
	if t == TerrainFloor {
		return '.'
	}
	return '#'
}

func (t Terrain) String() string {
	switch t {
	case TerrainWall:
		return "wall"
	case TerrainFloor:
		return "floor"
	default:
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Exit is a traversable edge to a neighboring cell.
type Exit struct {
	Index int
	Cost  float32
}

// Glyph is an entity glyph cached on a cell for the renderer.
type Glyph struct {
	Char byte  // CP437 code
	FG   uint8 // palette index
	Set  bool
}

// GridMap is a dense rectangular map. Cell i lives at (i%Width, i/Width).
type GridMap struct {
	Width  int
	Height int

	terrain  []Terrain
	blocked  []bool
	opaque   []bool
	revealed []bool
	visible  []bool
	glyphs   []Glyph
}

// NewGridMap creates a grid of w*h wall cells with nothing revealed.
func NewGridMap(w, h int) *GridMap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	m := &GridMap{
		Width:    w,
		Height:   h,
		terrain:  make([]Terrain, n),
		blocked:  make([]bool, n),
		opaque:   make([]bool, n),
		revealed: make([]bool, n),
		visible:  make([]bool, n),
		glyphs:   make([]Glyph, n),
	}
	for i := range n {
		m.SetTerrain(i, TerrainWall)
	}
	return m
}

// Len returns the number of cells.
func (m *GridMap) Len() int { return len(m.terrain) }

// InBounds reports whether (x, y) lies on the map.
func (m *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IndexOf returns the linear index of (x, y). Panics outside the map.
func (m *GridMap) IndexOf(x, y int) int {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("world: coordinate (%d,%d) outside %dx%d map", x, y, m.Width, m.Height))
	}
	return y*m.Width + x
}

// PositionOf returns the coordinate of index i. Panics outside the map.
func (m *GridMap) PositionOf(i int) (int, int) {
	m.mustIndex(i)
	return i % m.Width, i / m.Width
}

// PointOf is PositionOf as a Point.
func (m *GridMap) PointOf(i int) Point {
	x, y := m.PositionOf(i)
	return Point{X: x, Y: y}
}

// Clamp pulls (x, y) into [0, Width-1] x [0, Height-1].
func (m *GridMap) Clamp(x, y int) (int, int) {
	return min(max(x, 0), m.Width-1), min(max(y, 0), m.Height-1)
}

func (m *GridMap) mustIndex(i int) {
	if i < 0 || i >= len(m.terrain) {
		panic(fmt.Sprintf("world: index %d outside [0,%d)", i, len(m.terrain)))
	}
}

// Terrain returns the terrain at index i.
func (m *GridMap) Terrain(i int) Terrain {
	m.mustIndex(i)
	return m.terrain[i]
}

// TerrainAt returns the terrain at (x, y). Out-of-bounds reads return wall.
func (m *GridMap) TerrainAt(x, y int) Terrain {
	if !m.InBounds(x, y) {
		return TerrainWall
	}
	return m.terrain[y*m.Width+x]
}

// SetTerrain writes terrain and its derived blocked/opaque flags together.
func (m *GridMap) SetTerrain(i int, t Terrain) {
	m.mustIndex(i)
	m.terrain[i] = t
	solid := t == TerrainWall
	m.blocked[i] = solid
	m.opaque[i] = solid
}

// IsOpaque reports whether the cell at i blocks sight.
func (m *GridMap) IsOpaque(i int) bool {
	m.mustIndex(i)
	return m.opaque[i]
}

// IsOpaqueAt is IsOpaque by coordinate. Off-map cells are opaque.
func (m *GridMap) IsOpaqueAt(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.opaque[y*m.Width+x]
}

// IsBlocked reports whether the cell at i blocks movement.
func (m *GridMap) IsBlocked(i int) bool {
	m.mustIndex(i)
	return m.blocked[i]
}

// IsWalkable returns true if (x, y) is on the map and not blocked.
func (m *GridMap) IsWalkable(x, y int) bool {
	return m.InBounds(x, y) && !m.blocked[y*m.Width+x]
}

// orthogonal offsets in the fixed order up, right, down, left.
var orthogonal = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Neighbors4 returns the walkable orthogonal neighbors of i, each at cost 1.
func (m *GridMap) Neighbors4(i int) []Exit {
	x, y := m.PositionOf(i)
	exits := make([]Exit, 0, 4)
	for _, d := range orthogonal {
		nx, ny := x+d.X, y+d.Y
		if m.IsWalkable(nx, ny) {
			exits = append(exits, Exit{Index: ny*m.Width + nx, Cost: 1.0})
		}
	}
	return exits
}

// Heuristic is the Euclidean distance between the centers of cells a and b.
func (m *GridMap) Heuristic(a, b int) float32 {
	ax, ay := m.PositionOf(a)
	bx, by := m.PositionOf(b)
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// --- visibility ---

// MarkVisible flags i as visible this tick and revealed for good.
func (m *GridMap) MarkVisible(i int) {
	m.mustIndex(i)
	m.visible[i] = true
	m.revealed[i] = true
}

// ResetVisibility clears every visible flag. Revealed flags are untouched.
func (m *GridMap) ResetVisibility() {
	clear(m.visible)
}

// IsVisible reports whether i was seen this tick.
func (m *GridMap) IsVisible(i int) bool {
	m.mustIndex(i)
	return m.visible[i]
}

// IsRevealed reports whether i has ever been seen.
func (m *GridMap) IsRevealed(i int) bool {
	m.mustIndex(i)
	return m.revealed[i]
}

// --- glyph overlay ---

// ClearGlyphs drops every cached entity glyph.
func (m *GridMap) ClearGlyphs() {
	clear(m.glyphs)
}

// SetGlyph caches an entity glyph on cell i.
func (m *GridMap) SetGlyph(i int, g Glyph) {
	m.mustIndex(i)
	g.Set = true
	m.glyphs[i] = g
}

// GlyphAt returns the cached entity glyph on cell i, if any.
func (m *GridMap) GlyphAt(i int) (Glyph, bool) {
	m.mustIndex(i)
	g := m.glyphs[i]
	return g, g.Set
}

// --- queries ---

// FloorCells returns the indices of all floor cells in ascending order.
func (m *GridMap) FloorCells() []int {
	var cells []int
	for i, t := range m.terrain {
		if t == TerrainFloor {
			cells = append(cells, i)
		}
	}
	return cells
}

// CountTerrain returns how many cells hold terrain t.
func (m *GridMap) CountTerrain(t Terrain) int {
	n := 0
	for _, c := range m.terrain {
		if c == t {
			n++
		}
	}
	return n
}

// Rows renders the terrain as one string per row ('#' wall, '.' floor).
func (m *GridMap) Rows() []string {
	rows := make([]string, m.Height)
	line := make([]byte, m.Width)
	for y := range m.Height {
		for x := range m.Width {
			line[x] = m.terrain[y*m.Width+x].Char()
		}
		rows[y] = string(line)
	}
	return rows
}
