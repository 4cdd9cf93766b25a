package world

import (
	"math"
	"testing"
)

func TestIndexRoundTrip(t *testing.T) {
	m := NewGridMap(7, 5)
	for i := range m.Len() {
		x, y := m.PositionOf(i)
		if got := m.IndexOf(x, y); got != i {
			t.Fatalf("IndexOf(PositionOf(%d)) = %d", i, got)
		}
	}
	for y := range m.Height {
		for x := range m.Width {
			gx, gy := m.PositionOf(m.IndexOf(x, y))
			if gx != x || gy != y {
				t.Fatalf("PositionOf(IndexOf(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
	if m.IndexOf(3, 2) != 2*7+3 {
		t.Errorf("IndexOf(3,2) = %d, want %d", m.IndexOf(3, 2), 2*7+3)
	}
}

func TestIndexOfPanicsOutOfBounds(t *testing.T) {
	m := NewGridMap(4, 4)
	for _, c := range []Point{{-1, 0}, {4, 0}, {0, 4}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("IndexOf(%d,%d) did not panic", c.X, c.Y)
				}
			}()
			m.IndexOf(c.X, c.Y)
		}()
	}
	defer func() {
		if recover() == nil {
			t.Error("PositionOf(16) did not panic")
		}
	}()
	m.PositionOf(16)
}

func TestSetTerrainUpdatesFlags(t *testing.T) {
	m := NewGridMap(3, 3)
	i := m.IndexOf(1, 1)
	if !m.IsOpaque(i) || !m.IsBlocked(i) || m.IsWalkable(1, 1) {
		t.Fatal("new map cell should be an opaque, blocked wall")
	}
	m.SetTerrain(i, TerrainFloor)
	if m.IsOpaque(i) || m.IsBlocked(i) || !m.IsWalkable(1, 1) {
		t.Fatal("floor cell should be transparent and walkable")
	}
	m.SetTerrain(i, TerrainWall)
	if !m.IsOpaque(i) || !m.IsBlocked(i) {
		t.Fatal("wall cell should be opaque and blocked again")
	}
	if m.IsWalkable(-1, 1) || m.IsWalkable(1, 3) {
		t.Error("out-of-bounds cells must not be walkable")
	}
	if !m.IsOpaqueAt(5, 5) {
		t.Error("out-of-bounds cells must be opaque")
	}
}

func TestNeighbors4(t *testing.T) {
	m, err := ParseRows([]string{
		"#####",
		"#...#",
		"#.#.#",
		"#...#",
		"#####",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := m.Neighbors4(m.IndexOf(1, 1))
	want := []int{m.IndexOf(2, 1), m.IndexOf(1, 2)}
	if len(got) != len(want) {
		t.Fatalf("got %d exits, want %d", len(got), len(want))
	}
	for k, e := range got {
		if e.Index != want[k] || e.Cost != 1.0 {
			t.Errorf("exit %d = %+v, want index %d cost 1", k, e, want[k])
		}
	}

	// (2,1) is between two floors with a wall below it.
	got = m.Neighbors4(m.IndexOf(2, 1))
	if len(got) != 2 {
		t.Fatalf("got %d exits around (2,1), want 2", len(got))
	}
	for _, e := range got {
		if m.IsBlocked(e.Index) {
			t.Errorf("exit %d is blocked", e.Index)
		}
	}
}

func TestHeuristic(t *testing.T) {
	m := NewGridMap(10, 10)
	a := m.IndexOf(1, 1)
	b := m.IndexOf(4, 5)
	if h := m.Heuristic(a, b); math.Abs(float64(h)-5) > 1e-6 {
		t.Errorf("Heuristic = %v, want 5", h)
	}
	if h := m.Heuristic(a, a); h != 0 {
		t.Errorf("Heuristic to self = %v, want 0", h)
	}
}

func TestVisibilityFlags(t *testing.T) {
	m := NewGridMap(4, 4)
	i := m.IndexOf(2, 2)
	m.MarkVisible(i)
	if !m.IsVisible(i) || !m.IsRevealed(i) {
		t.Fatal("marked cell should be visible and revealed")
	}
	m.ResetVisibility()
	if m.IsVisible(i) {
		t.Error("reset should clear visible flag")
	}
	if !m.IsRevealed(i) {
		t.Error("reset must not clear revealed flag")
	}
}

func TestGlyphOverlay(t *testing.T) {
	m := NewGridMap(3, 3)
	i := m.IndexOf(1, 2)
	if _, ok := m.GlyphAt(i); ok {
		t.Fatal("fresh map should have no glyphs")
	}
	m.SetGlyph(i, Glyph{Char: 'g', FG: 4})
	g, ok := m.GlyphAt(i)
	if !ok || g.Char != 'g' || g.FG != 4 {
		t.Fatalf("GlyphAt = %+v, %v", g, ok)
	}
	m.ClearGlyphs()
	if _, ok := m.GlyphAt(i); ok {
		t.Error("ClearGlyphs left a glyph behind")
	}
}

func TestClamp(t *testing.T) {
	m := NewGridMap(10, 6)
	cases := []struct{ x, y, wx, wy int }{
		{-3, 2, 0, 2},
		{12, 2, 9, 2},
		{4, -1, 4, 0},
		{4, 9, 4, 5},
		{5, 5, 5, 5},
	}
	for _, c := range cases {
		x, y := m.Clamp(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Errorf("Clamp(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
}
