package world

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadLayout is returned for malformed fixed map definitions.
var ErrBadLayout = errors.New("bad layout")

// Layout is the JSON-serializable definition of a fixed level.
type Layout struct {
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  []string `json:"tiles"`
	Spawn  [2]int   `json:"spawn"`
}

// LoadLayout parses a Layout from JSON bytes.
func LoadLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("layout %q is %dx%d: %w", layout.Name, layout.Width, layout.Height, ErrBadLayout)
	}
	if len(layout.Tiles) != layout.Height {
		return nil, fmt.Errorf("tile rows (%d) != declared height (%d): %w", len(layout.Tiles), layout.Height, ErrBadLayout)
	}
	return &layout, nil
}

// ToGridMap converts the layout into a GridMap.
func (l *Layout) ToGridMap() (*GridMap, error) {
	m, err := ParseRows(l.Tiles)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	if m.Width != l.Width {
		return nil, fmt.Errorf("layout %q rows are %d wide, declared %d: %w", l.Name, m.Width, l.Width, ErrBadLayout)
	}
	sp := l.SpawnPoint()
	if !m.IsWalkable(sp.X, sp.Y) {
		return nil, fmt.Errorf("layout %q spawn (%d,%d) is not walkable: %w", l.Name, sp.X, sp.Y, ErrBadLayout)
	}
	return m, nil
}

// SpawnPoint returns the player spawn coordinate.
func (l *Layout) SpawnPoint() Point { return Point{X: l.Spawn[0], Y: l.Spawn[1]} }

// ParseRows builds a GridMap from rows of '#' (wall) and '.' (floor).
func ParseRows(rows []string) (*GridMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty map: %w", ErrBadLayout)
	}
	w := len(rows[0])
	m := NewGridMap(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), w, ErrBadLayout)
		}
		for x := range len(row) {
			t, err := charToTerrain(row[x])
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			m.SetTerrain(y*w+x, t)
		}
	}
	return m, nil
}

func charToTerrain(ch byte) (Terrain, error) {
	switch ch {
	case '#':
		return TerrainWall, nil
	case '.':
		return TerrainFloor, nil
	default:
		return TerrainWall, fmt.Errorf("unknown tile %q: %w", ch, ErrBadLayout)
	}
}
