package app

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spacehole-rogue/cavern_rogue/internal/logger"
)

func TestParseFlags(t *testing.T) {
	o, err := Parse("cavern", []string{"-width", "30", "-height", "20", "-seed", "9", "-monsters", "2", "-layout", "den"})
	if err != nil {
		t.Fatal(err)
	}
	if o.Game.Width != 30 || o.Game.Height != 20 || o.Game.Seed != 9 || o.Game.Monsters != 2 || o.Layout != "den" {
		t.Errorf("options = %+v", o)
	}
	if _, err := Parse("cavern", []string{"-bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestEmbeddedLevels(t *testing.T) {
	if !slices.Contains(EmbeddedLevels(), "den") {
		t.Fatalf("levels = %v", EmbeddedLevels())
	}
	o := NewOptions()
	o.Layout = "den"
	o.Game.Seed = 1
	s, err := NewSim(o, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if x, y := s.PlayerPos(); x != 2 || y != 4 {
		t.Errorf("spawn = (%d,%d), want (2,4)", x, y)
	}
	if s.Grid.Width != 24 || s.Grid.Height != 10 {
		t.Errorf("grid = %dx%d", s.Grid.Width, s.Grid.Height)
	}
}

func TestLayoutFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.json")
	data := `{"name":"tiny","width":4,"height":3,"tiles":["####","#..#","####"],"spawn":[1,1]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	o := NewOptions()
	o.Layout = path
	o.Game.Monsters = 0
	o.Game.Critters = 0
	s, err := NewSim(o, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if x, y := s.PlayerPos(); x != 1 || y != 1 {
		t.Errorf("spawn = (%d,%d)", x, y)
	}

	o.Layout = filepath.Join(t.TempDir(), "missing.json")
	if _, err := NewSim(o, logger.Discard()); err == nil {
		t.Error("missing layout accepted")
	}
}

func TestGeneratedByDefault(t *testing.T) {
	o := NewOptions()
	o.Game.Seed = 21
	s, err := NewSim(o, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed() != 21 || s.Grid.Width != o.Game.Width {
		t.Errorf("seed %d, width %d", s.Seed(), s.Grid.Width)
	}
}
