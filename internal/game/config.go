package game

import (
	"errors"
	"flag"
	"fmt"

	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// ErrInvalidConfig is returned for gameplay settings out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables for one session.
type Config struct {
	Width      int
	Height     int
	WallChance float64
	Iterations int

	SightRange   int // player FOV radius in cells
	MonsterSight int // monster FOV radius in cells
	Monsters     int
	Critters     int

	WanderChance        int // a critter moves with probability 1/WanderChance per tick
	MonsterStepInterval int // monsters act every N ticks

	Seed uint64 // 0 seeds from the clock
}

// DefaultConfig returns a Config populated with playable defaults.
func DefaultConfig() Config {
	cave := world.DefaultCaveConfig()
	return Config{
		Width:               cave.Width,
		Height:              cave.Height,
		WallChance:          cave.WallChance,
		Iterations:          cave.Iterations,
		SightRange:          8,
		MonsterSight:        6,
		Monsters:            4,
		Critters:            3,
		WanderChance:        60,
		MonsterStepInterval: 12,
	}
}

// Cave returns the generator settings.
func (c Config) Cave() world.CaveConfig {
	return world.CaveConfig{
		Width:      c.Width,
		Height:     c.Height,
		WallChance: c.WallChance,
		Iterations: c.Iterations,
	}
}

// Validate checks generator and gameplay settings.
func (c Config) Validate() error {
	if err := c.Cave().Validate(); err != nil {
		return err
	}
	switch {
	case c.SightRange < 0 || c.MonsterSight < 0:
		return fmt.Errorf("sight range must not be negative: %w", ErrInvalidConfig)
	case c.Monsters < 0 || c.Critters < 0:
		return fmt.Errorf("entity counts must not be negative: %w", ErrInvalidConfig)
	case c.WanderChance < 1:
		return fmt.Errorf("wander chance %d must be at least 1: %w", c.WanderChance, ErrInvalidConfig)
	case c.MonsterStepInterval < 1:
		return fmt.Errorf("monster step interval %d must be at least 1: %w", c.MonsterStepInterval, ErrInvalidConfig)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "map width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "map height in cells")
	fs.Float64Var(&c.WallChance, "wall-chance", c.WallChance, "initial wall probability")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "cave smoothing passes")
	fs.IntVar(&c.SightRange, "sight", c.SightRange, "player sight radius")
	fs.IntVar(&c.Monsters, "monsters", c.Monsters, "number of monsters")
	fs.IntVar(&c.Critters, "critters", c.Critters, "number of wandering critters")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed (0 = from clock)")
}
