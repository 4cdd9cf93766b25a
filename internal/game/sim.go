package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/cavern_rogue/internal/render"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Session errors.
var (
	ErrNoFloor   = errors.New("level has no floor to spawn on")
	ErrBadSpawn  = errors.New("spawn cell is not walkable")
	errNilLogger = errors.New("nil logger")
)

const (
	messageLogSize  = 50
	messageLogWidth = 48
)

// Direction is a player move request.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Delta returns the cell offset for d.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Intent is everything the front-end tells the core for one tick.
type Intent struct {
	Move        Direction
	TogglePause bool
}

// EntityView is the read-only render data for one entity.
type EntityView struct {
	Serial uint64
	X, Y   int
	Glyph  byte
	FG     uint8
	Name   string
	Player bool
}

// Sim is the game session. It owns the level, the entity store and the
// random source; all access happens on the update goroutine.
type Sim struct {
	Store  *Store
	Grid   *world.GridMap
	Log    *MessageLog
	Ticks  uint64
	Paused bool

	cfg    Config
	rng    *rand.Rand
	seed   uint64
	log    logrus.FieldLogger
	player Entity
}

// NewSim generates a cave from cfg and populates it.
func NewSim(cfg Config, log logrus.FieldLogger) (*Sim, error) {
	if log == nil {
		return nil, errNilLogger
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	seed := resolveSeed(cfg.Seed)
	rng := newRNG(seed)

	grid, err := world.GenerateCave(cfg.Cave(), rng)
	if err != nil {
		return nil, fmt.Errorf("generate cave: %w", err)
	}
	floors := grid.FloorCells()
	if len(floors) == 0 {
		return nil, fmt.Errorf("cave %dx%d seed %d: %w", cfg.Width, cfg.Height, seed, ErrNoFloor)
	}
	spawn := grid.PointOf(floors[rng.IntN(len(floors))])
	return setup(cfg, grid, spawn, rng, seed, log), nil
}

// NewSimFromGrid populates a prebuilt level with the player at spawn.
// The generator settings in cfg are replaced by the grid's dimensions.
func NewSimFromGrid(cfg Config, grid *world.GridMap, spawn world.Point, log logrus.FieldLogger) (*Sim, error) {
	if log == nil {
		return nil, errNilLogger
	}
	cfg.Width, cfg.Height = grid.Width, grid.Height
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	if !grid.IsWalkable(spawn.X, spawn.Y) {
		return nil, fmt.Errorf("spawn (%d,%d): %w", spawn.X, spawn.Y, ErrBadSpawn)
	}
	seed := resolveSeed(cfg.Seed)
	return setup(cfg, grid, spawn, newRNG(seed), seed, log), nil
}

func resolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	if s := uint64(time.Now().UnixNano()); s != 0 {
		return s
	}
	return 1
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func setup(cfg Config, grid *world.GridMap, spawn world.Point, rng *rand.Rand, seed uint64, log logrus.FieldLogger) *Sim {
	st := NewStore()

	player := st.Create()
	Attach(st, player, Position{X: spawn.X, Y: spawn.Y})
	Attach(st, player, Renderable{Glyph: '@', FG: render.ColorLightBlue})
	Attach(st, player, NewViewshed(cfg.SightRange))
	Attach(st, player, Name{Name: "You"})
	Attach(st, player, Player{})
	Attach(st, player, BlocksTile{})

	var free []int
	for _, i := range grid.FloorCells() {
		if grid.PointOf(i) != spawn {
			free = append(free, i)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	take := func() (Position, bool) {
		if len(free) == 0 {
			return Position{}, false
		}
		x, y := grid.PositionOf(free[0])
		free = free[1:]
		return Position{X: x, Y: y}, true
	}

	monsters := 0
	for monsters < cfg.Monsters {
		pos, ok := take()
		if !ok {
			break
		}
		monsters++
		e := st.Create()
		Attach(st, e, pos)
		Attach(st, e, Renderable{Glyph: 'g', FG: render.ColorRed})
		Attach(st, e, NewViewshed(cfg.MonsterSight))
		Attach(st, e, Name{Name: fmt.Sprintf("Goblin #%d", monsters)})
		Attach(st, e, Monster{})
		Attach(st, e, BlocksTile{})
	}

	critters := 0
	for critters < cfg.Critters {
		pos, ok := take()
		if !ok {
			break
		}
		critters++
		e := st.Create()
		Attach(st, e, pos)
		Attach(st, e, Renderable{Glyph: '%', FG: render.ColorGreen})
		Attach(st, e, NewViewshed(cfg.MonsterSight))
		Attach(st, e, Name{Name: fmt.Sprintf("Slime #%d", critters)})
		Attach(st, e, RandomMover{})
		Attach(st, e, BlocksTile{})
	}

	fields := logrus.Fields{
		"seed":     seed,
		"width":    grid.Width,
		"height":   grid.Height,
		"floor":    grid.CountTerrain(world.TerrainFloor),
		"spawn":    spawn,
		"monsters": monsters,
		"critters": critters,
	}
	if monsters < cfg.Monsters || critters < cfg.Critters {
		log.WithFields(fields).Warn("not enough floor for every entity")
	}
	log.WithFields(fields).Info("level ready")

	msgs := NewMessageLog(messageLogSize, messageLogWidth)
	msgs.Add("You descend into the caverns.", MsgInfo)

	s := &Sim{
		Store:  st,
		Grid:   grid,
		Log:    msgs,
		cfg:    cfg,
		rng:    rng,
		seed:   seed,
		log:    log,
		player: player,
	}
	VisibilitySystem(st, grid, log)
	GlyphMapperSystem(st, grid)
	return s
}

// Tick advances the session by one step. A pause toggle is applied first;
// while paused nothing else happens.
func (s *Sim) Tick(in Intent) {
	if in.TogglePause {
		s.Paused = !s.Paused
		if s.Paused {
			s.Log.Add("Paused.", MsgInfo)
		} else {
			s.Log.Add("Resumed.", MsgInfo)
		}
	}
	if s.Paused {
		return
	}
	s.Log.SetTick(s.Ticks)

	s.movePlayer(in.Move)
	RandomMoverSystem(s.Store, s.Grid, s.rng, s.cfg.WanderChance, s.log)
	if s.Ticks%uint64(s.cfg.MonsterStepInterval) == 0 {
		MonsterAISystem(s.Store, s.Grid, s.Log, s.log)
	}
	VisibilitySystem(s.Store, s.Grid, s.log)
	GlyphMapperSystem(s.Store, s.Grid)
	s.Ticks++
}

// movePlayer applies a move, clamped to the map. Walls and occupied cells
// block it.
func (s *Sim) movePlayer(d Direction) {
	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return
	}
	pos, _ := Get[Position](s.Store, s.player)
	nx, ny := s.Grid.Clamp(pos.X+dx, pos.Y+dy)
	to := Position{X: nx, Y: ny}
	if to == *pos || !s.Grid.IsWalkable(nx, ny) {
		return
	}
	if other, taken := s.Store.Occupied()[to]; taken && other != s.player {
		s.Log.Add(displayName(s.Store, other)+" is in the way.", MsgInfo)
		return
	}
	*pos = to
	markDirty(s.Store, s.player)
}

// Player returns the player entity.
func (s *Sim) Player() Entity { return s.player }

// PlayerPos returns the player's current tile coordinates.
func (s *Sim) PlayerPos() (int, int) {
	pos, _ := Get[Position](s.Store, s.player)
	return pos.X, pos.Y
}

// Seed returns the seed the session's random source was built from.
func (s *Sim) Seed() uint64 { return s.seed }

// Config returns the settings the session was created with.
func (s *Sim) Config() Config { return s.cfg }

// Entities returns render data for every drawable entity in serial order.
func (s *Sim) Entities() []EntityView {
	drawables := s.Store.Drawables()
	views := make([]EntityView, 0, len(drawables))
	for _, e := range drawables {
		pos, _ := Get[Position](s.Store, e)
		r, _ := Get[Renderable](s.Store, e)
		v := EntityView{
			Serial: s.Store.Serial(e),
			X:      pos.X,
			Y:      pos.Y,
			Glyph:  r.Glyph,
			FG:     r.FG,
			Player: e == s.player,
		}
		if n, ok := Get[Name](s.Store, e); ok {
			v.Name = n.Name
		}
		views = append(views, v)
	}
	return views
}
