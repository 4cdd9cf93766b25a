package world

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Cave generation errors.
var (
	ErrInvalidSize       = errors.New("map dimensions must be positive")
	ErrInvalidChance     = errors.New("wall chance must be within [0, 1]")
	ErrInvalidIterations = errors.New("smoothing iterations must not be negative")
)

// Smoothing thresholds over the 8-cell Moore neighborhood.
const (
	wallSurvive = 4 // a wall with at least this many wall neighbors stays wall
	wallBirth   = 5 // a floor with at least this many wall neighbors becomes wall
)

// CaveConfig controls the cellular automaton cave generator.
type CaveConfig struct {
	Width      int
	Height     int
	WallChance float64 // probability an interior cell is seeded as wall
	Iterations int     // number of smoothing passes
}

// DefaultCaveConfig returns the standard cave parameters.
func DefaultCaveConfig() CaveConfig {
	return CaveConfig{
		Width:      64,
		Height:     36,
		WallChance: 0.45,
		Iterations: 5,
	}
}

// Validate reports the first invalid field.
func (c CaveConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("cave %dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if c.WallChance < 0 || c.WallChance > 1 {
		return fmt.Errorf("cave wall chance %.2f: %w", c.WallChance, ErrInvalidChance)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("cave iterations %d: %w", c.Iterations, ErrInvalidIterations)
	}
	return nil
}

// GenerateCave seeds a grid with random walls and smooths it into caves.
// Floor regions are not guaranteed to be connected to each other.
func GenerateCave(cfg CaveConfig, rng *rand.Rand) (*GridMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := NewGridMap(cfg.Width, cfg.Height)
	Seed(m, cfg.WallChance, rng)
	for range cfg.Iterations {
		Smooth(m)
	}
	return m, nil
}

// Seed fills every cell independently: wall with probability wallChance,
// floor otherwise. Border cells are always wall.
func Seed(m *GridMap, wallChance float64, rng *rand.Rand) {
	for y := range m.Height {
		for x := range m.Width {
			// Draw for every cell so the stream does not depend on border layout.
			roll := rng.Float64()
			t := TerrainFloor
			if IsBorder(m, x, y) || roll < wallChance {
				t = TerrainWall
			}
			m.SetTerrain(y*m.Width+x, t)
		}
	}
}

// IsBorder reports whether (x, y) sits on the outer ring of the map.
func IsBorder(m *GridMap, x, y int) bool {
	return x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
}

// Smooth runs one synchronous automaton pass and returns how many cells changed.
// Every decision reads the terrain as it was before the pass.
func Smooth(m *GridMap) int {
	prev := make([]Terrain, m.Len())
	copy(prev, m.terrain)

	changed := 0
	for y := range m.Height {
		for x := range m.Width {
			i := y*m.Width + x
			next := TerrainWall
			if !IsBorder(m, x, y) {
				walls := wallNeighbors(prev, m.Width, m.Height, x, y)
				if prev[i] == TerrainWall && walls >= wallSurvive {
					next = TerrainWall
				} else if prev[i] == TerrainFloor && walls >= wallBirth {
					next = TerrainWall
				} else {
					next = TerrainFloor
				}
			}
			if next != prev[i] {
				m.SetTerrain(i, next)
				changed++
			}
		}
	}
	return changed
}

// wallNeighbors counts walls among the in-bounds Moore neighbors of (x, y).
func wallNeighbors(cells []Terrain, w, h, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if cells[ny*w+nx] == TerrainWall {
				n++
			}
		}
	}
	return n
}
