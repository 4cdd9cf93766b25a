package game

import (
	"strings"
	"testing"

	"github.com/spacehole-rogue/cavern_rogue/internal/render"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

func rowText(b *render.CellBuffer, y int) string {
	var sb strings.Builder
	for x := range b.Cols {
		sb.WriteByte(b.Get(x, y).Glyph)
	}
	return sb.String()
}

func TestComposeDrawsPlayerAndLog(t *testing.T) {
	s := newTestSim(t, world.Point{X: 2, Y: 1},
		"######",
		"#....#",
		"######",
	)
	buf := render.NewCellBuffer(60, 20)
	s.Compose(buf, nil)

	found := false
	for y := range buf.Rows {
		for x := range buf.Cols - panelWidth {
			if c := buf.Get(x, y); c.Glyph == '@' && c.FG == render.ColorLightBlue {
				found = true
			}
		}
	}
	if !found {
		t.Error("player glyph not drawn in the map area")
	}

	all := ""
	for y := range buf.Rows {
		all += rowText(buf, y) + "\n"
	}
	if !strings.Contains(all, "descend into the caverns") {
		t.Error("message log not drawn")
	}
	if !strings.Contains(all, Title) {
		t.Error("title not drawn")
	}
}

func TestComposeHover(t *testing.T) {
	s := newTestSim(t, world.Point{X: 2, Y: 1},
		"######",
		"#....#",
		"######",
	)
	buf := render.NewCellBuffer(60, 20)
	s.Compose(buf, nil)

	var at *world.Point
	for y := range buf.Rows {
		for x := range buf.Cols - panelWidth {
			if buf.Get(x, y).Glyph == '@' {
				at = &world.Point{X: x, Y: y}
			}
		}
	}
	if at == nil {
		t.Fatal("player not on screen")
	}
	s.Compose(buf, at)
	if line := rowText(buf, 1); !strings.Contains(line, "You") {
		t.Errorf("hover line = %q", line)
	}
}

func TestComposeShowsPause(t *testing.T) {
	s := newTestSim(t, world.Point{X: 1, Y: 1}, "###", "#.#", "###")
	s.Tick(Intent{TogglePause: true})
	buf := render.NewCellBuffer(60, 20)
	s.Compose(buf, nil)
	if !strings.Contains(rowText(buf, 0), "PAUSED") {
		t.Error("pause banner missing")
	}
}
