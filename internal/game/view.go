package game

import (
	"fmt"

	"github.com/spacehole-rogue/cavern_rogue/internal/render"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Screen layout shared by every front-end.
const (
	Title = "Cavern Rogue"

	panelWidth = 22 // right-hand status panel
	logLines   = 6  // message rows at the bottom
)

// Compose draws the whole screen (map, side panel, message log and key help)
// into buf. hover, if non-nil, is the screen cell under the mouse.
func (s *Sim) Compose(buf *render.CellBuffer, hover *world.Point) {
	buf.Clear()
	cols, rows := buf.Cols, buf.Rows

	buf.WriteString(1, 0, Title, render.ColorWhite, render.ColorBlack)
	if s.Paused {
		buf.WriteString(len(Title)+3, 0, "[ PAUSED ]", render.ColorYellow, render.ColorBlack)
	}

	mapCols := max(cols-panelWidth, 1)
	mapRows := max(rows-logLines-4, 1)
	px, py := s.PlayerPos()
	vp := render.CenterOn(0, 2, mapCols, mapRows, px, py, s.Grid.Width, s.Grid.Height)
	render.RenderLevel(buf, s.Grid, vp)

	s.drawPanel(buf, mapCols+1, 2)

	logY := 2 + mapRows + 1
	buf.HLine(0, logY-1, cols, render.GlyphHLine, render.ColorDarkGray, render.ColorBlack)
	for i, msg := range s.Log.Recent(logLines) {
		buf.WriteString(1, logY+i, msg.Text, msg.Priority.Color(), render.ColorBlack)
	}

	buf.WriteString(1, rows-1, "Arrows/WASD: move  P: pause  ESC: quit", render.ColorDarkGray, render.ColorBlack)

	if hover != nil {
		if text, ok := s.describe(vp, *hover); ok {
			buf.WriteString(1, 1, text, render.ColorYellow, render.ColorBlack)
		}
	}
}

func (s *Sim) drawPanel(buf *render.CellBuffer, x, y int) {
	px, py := s.PlayerPos()
	lines := []struct {
		text string
		fg   uint8
	}{
		{"--- Status ---", render.ColorLightCyan},
		{fmt.Sprintf("Pos   %d,%d", px, py), render.ColorLightGray},
		{fmt.Sprintf("Turn  %d", s.Ticks), render.ColorLightGray},
		{fmt.Sprintf("Seed  %d", s.seed), render.ColorDarkGray},
		{fmt.Sprintf("Map   %dx%d", s.Grid.Width, s.Grid.Height), render.ColorDarkGray},
		{"", 0},
		{"--- In view ---", render.ColorLightCyan},
	}
	for i, l := range lines {
		buf.WriteString(x, y+i, l.text, l.fg, render.ColorBlack)
	}

	row := y + len(lines)
	for _, v := range s.Entities() {
		if v.Player || !s.Grid.IsVisible(s.Grid.IndexOf(v.X, v.Y)) {
			continue
		}
		buf.Set(x, row, v.Glyph, v.FG, render.ColorBlack)
		buf.WriteString(x+2, row, v.Name, render.ColorLightGray, render.ColorBlack)
		row++
	}
}

// describe names whatever is drawn at screen cell c inside vp.
func (s *Sim) describe(vp render.Viewport, c world.Point) (string, bool) {
	if c.X < vp.X || c.Y < vp.Y || c.X >= vp.X+vp.Cols || c.Y >= vp.Y+vp.Rows {
		return "", false
	}
	mx, my := vp.CamX+c.X-vp.X, vp.CamY+c.Y-vp.Y
	if !s.Grid.InBounds(mx, my) {
		return "", false
	}
	i := s.Grid.IndexOf(mx, my)
	if !s.Grid.IsRevealed(i) {
		return "", false
	}
	if s.Grid.IsVisible(i) {
		for _, v := range s.Entities() {
			if v.X == mx && v.Y == my {
				return fmt.Sprintf("%s  [%d,%d]", v.Name, mx, my), true
			}
		}
	}
	return fmt.Sprintf("%s  [%d,%d]", s.Grid.Terrain(i), mx, my), true
}
