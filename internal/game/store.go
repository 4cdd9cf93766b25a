package game

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
)

// Entity is a stable handle into the store.
type Entity = ecs.Entity

// Store is the entity/component store for one level. Every entity carries an
// Identity; iteration helpers return entities in ascending serial order so
// systems visit them the same way every run.
type Store struct {
	world *ecs.World
	ids   *ecs.Map[Identity]
	next  uint64

	movers    *ecs.Filter3[Identity, Position, RandomMover]
	monsters  *ecs.Filter3[Identity, Position, Monster]
	observers *ecs.Filter3[Identity, Position, Viewshed]
	drawables *ecs.Filter3[Identity, Position, Renderable]
	blockers  *ecs.Filter3[Identity, Position, BlocksTile]
	players   *ecs.Filter2[Identity, Player]
}

// NewStore creates an empty store.
func NewStore() *Store {
	w := ecs.NewWorld(256)
	return &Store{
		world:     w,
		ids:       ecs.NewMap[Identity](w),
		movers:    ecs.NewFilter3[Identity, Position, RandomMover](w),
		monsters:  ecs.NewFilter3[Identity, Position, Monster](w),
		observers: ecs.NewFilter3[Identity, Position, Viewshed](w),
		drawables: ecs.NewFilter3[Identity, Position, Renderable](w),
		blockers:  ecs.NewFilter3[Identity, Position, BlocksTile](w),
		players:   ecs.NewFilter2[Identity, Player](w),
	}
}

// Create makes a new entity with a fresh serial and no other components.
func (s *Store) Create() Entity {
	s.next++
	return s.ids.NewEntity(&Identity{Serial: s.next})
}

// Len returns the number of entities created so far.
func (s *Store) Len() int { return int(s.next) }

// Serial returns the identity serial of e.
func (s *Store) Serial(e Entity) uint64 {
	return s.ids.Get(e).Serial
}

// Attach adds component c to e. Attaching a type e already has overwrites it.
func Attach[T any](s *Store, e Entity, c T) {
	m := ecs.NewMap[T](s.world)
	if m.Has(e) {
		*m.Get(e) = c
		return
	}
	m.Add(e, &c)
}

// Get returns a pointer to e's component of type T.
func Get[T any](s *Store, e Entity) (*T, bool) {
	m := ecs.NewMap[T](s.world)
	if !m.Has(e) {
		return nil, false
	}
	return m.Get(e), true
}

// Has reports whether e has a component of type T.
func Has[T any](s *Store, e Entity) bool {
	return ecs.NewMap[T](s.world).Has(e)
}

type hit struct {
	serial uint64
	e      Entity
}

func bySerial(hits []hit) []Entity {
	slices.SortFunc(hits, func(a, b hit) int {
		switch {
		case a.serial < b.serial:
			return -1
		case a.serial > b.serial:
			return 1
		}
		return 0
	})
	out := make([]Entity, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

// collect drains a filter over Identity-carrying entities in serial order.
func collect[A, B any](f *ecs.Filter3[Identity, A, B]) []Entity {
	var hits []hit
	q := f.Query()
	for q.Next() {
		id, _, _ := q.Get()
		hits = append(hits, hit{id.Serial, q.Entity()})
	}
	return bySerial(hits)
}

// Movers returns entities tagged RandomMover.
func (s *Store) Movers() []Entity { return collect(s.movers) }

// Monsters returns entities tagged Monster.
func (s *Store) Monsters() []Entity { return collect(s.monsters) }

// Observers returns entities with a Viewshed.
func (s *Store) Observers() []Entity { return collect(s.observers) }

// Drawables returns entities with a Renderable.
func (s *Store) Drawables() []Entity { return collect(s.drawables) }

// Blockers returns entities tagged BlocksTile.
func (s *Store) Blockers() []Entity { return collect(s.blockers) }

// Player returns the lowest-serial entity tagged Player.
func (s *Store) Player() (Entity, bool) {
	var hits []hit
	q := s.players.Query()
	for q.Next() {
		id, _ := q.Get()
		hits = append(hits, hit{id.Serial, q.Entity()})
	}
	if len(hits) == 0 {
		return Entity{}, false
	}
	return bySerial(hits)[0], true
}

// Occupied returns the cells held by BlocksTile entities, keyed to the occupant.
func (s *Store) Occupied() map[Position]Entity {
	occ := make(map[Position]Entity)
	q := s.blockers.Query()
	for q.Next() {
		_, pos, _ := q.Get()
		occ[*pos] = q.Entity()
	}
	return occ
}
