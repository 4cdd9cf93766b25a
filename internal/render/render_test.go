package render

import (
	"testing"

	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

func TestCellBufferBounds(t *testing.T) {
	b := NewCellBuffer(4, 2)
	b.Set(-1, 0, 'x', ColorRed, ColorBlack)
	b.Set(4, 1, 'x', ColorRed, ColorBlack)
	for _, c := range b.Cells {
		if c != blank {
			t.Fatalf("out-of-bounds write landed: %+v", c)
		}
	}
	if n := b.WriteString(2, 1, "hello", ColorWhite, ColorBlack); n != 5 {
		t.Errorf("WriteString wrote %d, want 5", n)
	}
	if c := b.Get(3, 1); c.Glyph != 'e' {
		t.Errorf("Get(3,1) = %q", c.Glyph)
	}
	if c := b.Get(9, 9); c != (Cell{}) {
		t.Errorf("out-of-bounds Get = %+v", c)
	}
	b.Resize(3, 3)
	if len(b.Cells) != 9 || b.Get(2, 2) != blank {
		t.Error("Resize did not reallocate and clear")
	}
}

func TestFitCells(t *testing.T) {
	cases := []struct {
		w, h, cw, ch       int
		wantCols, wantRows int
	}{
		{1280, 720, 16, 16, 80, 45},
		{1290, 730, 16, 16, 80, 45},
		{1920, 1080, 16, 16, 120, 67},
		{10, 10, 16, 16, 1, 1},
		{640, 480, 0, 16, 1, 1},
	}
	for _, c := range cases {
		cols, rows := FitCells(c.w, c.h, c.cw, c.ch)
		if cols != c.wantCols || rows != c.wantRows {
			t.Errorf("FitCells(%d,%d,%d,%d) = %d,%d want %d,%d",
				c.w, c.h, c.cw, c.ch, cols, rows, c.wantCols, c.wantRows)
		}
	}
}

func TestCenterOn(t *testing.T) {
	cases := []struct {
		name             string
		px, py, mw, mh   int
		wantCamX, wantCY int
	}{
		{"middle", 30, 20, 64, 36, 20, 15},
		{"left edge", 2, 20, 64, 36, 0, 15},
		{"right edge", 63, 35, 64, 36, 44, 26},
		{"small map", 3, 3, 10, 6, -5, -2},
	}
	for _, c := range cases {
		vp := CenterOn(0, 0, 20, 10, c.px, c.py, c.mw, c.mh)
		if vp.CamX != c.wantCamX || vp.CamY != c.wantCY {
			t.Errorf("%s: cam = (%d,%d), want (%d,%d)", c.name, vp.CamX, vp.CamY, c.wantCamX, c.wantCY)
		}
	}
}

func TestRenderLevelVisibility(t *testing.T) {
	m, err := world.ParseRows([]string{
		"#####",
		"#...#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}
	seen := m.IndexOf(1, 1)
	remembered := m.IndexOf(3, 1)
	m.MarkVisible(remembered)
	m.ResetVisibility()
	m.MarkVisible(seen)
	m.SetGlyph(seen, world.Glyph{Char: '@', FG: ColorLightBlue})
	m.SetGlyph(remembered, world.Glyph{Char: 'g', FG: ColorRed})

	b := NewCellBuffer(5, 3)
	RenderLevel(b, m, Viewport{Cols: 5, Rows: 3})

	if c := b.Get(1, 1); c.Glyph != '@' || c.FG != ColorLightBlue {
		t.Errorf("visible cell = %+v, want player glyph", c)
	}
	if c := b.Get(3, 1); c.Glyph != '.' || c.FG != ColorDarkGray {
		t.Errorf("remembered cell = %+v, want dim floor without entity", c)
	}
	if c := b.Get(2, 1); c != blank {
		t.Errorf("unseen cell = %+v, want blank", c)
	}
}

func TestRenderLevelOffset(t *testing.T) {
	m := world.NewGridMap(3, 3)
	m.MarkVisible(m.IndexOf(0, 0))
	b := NewCellBuffer(6, 6)
	RenderLevel(b, m, Viewport{X: 2, Y: 1, Cols: 4, Rows: 4, CamX: -1, CamY: 0})
	if c := b.Get(3, 1); c.Glyph != '#' || c.FG != ColorBrown {
		t.Errorf("map (0,0) drawn as %+v at (3,1)", c)
	}
}

func TestAtlasGlyphs(t *testing.T) {
	img := BuildAtlas()
	if img.Bounds().Dx() != AtlasCols*GlyphWidth || img.Bounds().Dy() != AtlasRows*GlyphHeight {
		t.Fatalf("atlas size %v", img.Bounds())
	}
	inked := func(code byte) int {
		n := 0
		r := GlyphRect(code)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if img.NRGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	if inked(' ') != 0 {
		t.Error("space has ink")
	}
	for _, code := range []byte{'#', '@', 'g', GlyphHLine, GlyphFullBlock} {
		if inked(code) == 0 {
			t.Errorf("glyph %d is empty", code)
		}
	}
	if inked(GlyphFullBlock) != GlyphWidth*GlyphHeight {
		t.Error("full block is not full")
	}
	if CP437Rune(GlyphVLine) != '│' || CP437Rune('A') != 'A' || CP437Rune(1) != '?' {
		t.Error("CP437Rune mapping")
	}
}
