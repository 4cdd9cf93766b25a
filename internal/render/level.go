package render

import "github.com/spacehole-rogue/cavern_rogue/internal/world"

// Viewport is a rectangle of the screen showing the map from a camera origin.
type Viewport struct {
	X, Y       int // top-left screen cell
	Cols, Rows int // size in cells
	CamX, CamY int // map cell drawn at (X, Y)
}

// CenterOn returns a viewport of the given size whose camera keeps (px, py)
// centered, clamped so the map edge is not scrolled past when the map is
// larger than the view.
func CenterOn(x, y, cols, rows, px, py, mapW, mapH int) Viewport {
	return Viewport{
		X: x, Y: y, Cols: cols, Rows: rows,
		CamX: centerAxis(px, cols, mapW),
		CamY: centerAxis(py, rows, mapH),
	}
}

func centerAxis(p, view, size int) int {
	if size <= view {
		return -(view - size) / 2
	}
	return min(max(p-view/2, 0), size-view)
}

// TileVisuals returns how a cell looks when in view and when only remembered.
func TileVisuals(t world.Terrain, visible bool) (glyph byte, fg, bg uint8) {
	switch {
	case t == world.TerrainWall && visible:
		return '#', ColorBrown, ColorBlack
	case t == world.TerrainWall:
		return '#', ColorDarkGray, ColorBlack
	case visible:
		return '.', ColorLightGray, ColorBlack
	default:
		return '.', ColorDarkGray, ColorBlack
	}
}

// RenderLevel writes the map into buf through vp. Visible cells show terrain
// and any entity glyph, revealed cells show dimmed terrain only, and cells
// never seen stay blank.
func RenderLevel(buf *CellBuffer, m *world.GridMap, vp Viewport) {
	for sy := range vp.Rows {
		for sx := range vp.Cols {
			mx, my := vp.CamX+sx, vp.CamY+sy
			if !m.InBounds(mx, my) {
				continue
			}
			i := m.IndexOf(mx, my)
			visible := m.IsVisible(i)
			if !visible && !m.IsRevealed(i) {
				continue
			}
			glyph, fg, bg := TileVisuals(m.Terrain(i), visible)
			if visible {
				if g, ok := m.GlyphAt(i); ok {
					glyph, fg = g.Char, g.FG
				}
			}
			buf.Set(vp.X+sx, vp.Y+sy, glyph, fg, bg)
		}
	}
}
