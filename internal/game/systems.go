package game

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/cavern_rogue/internal/fov"
	"github.com/spacehole-rogue/cavern_rogue/internal/path"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// The systems below run once per unpaused tick in this order:
// RandomMoverSystem, MonsterAISystem, VisibilitySystem, GlyphMapperSystem.

// RandomMoverSystem jitters every wandering entity by one cell in a random
// direction with probability 1/wanderChance. Returns the number of moves.
func RandomMoverSystem(st *Store, m *world.GridMap, rng *rand.Rand, wanderChance int, log logrus.FieldLogger) int {
	occ := st.Occupied()
	moved := 0
	for _, e := range st.Movers() {
		if rng.IntN(wanderChance) != 0 {
			continue
		}
		dx, dy := rng.IntN(3)-1, rng.IntN(3)-1
		if dx == 0 && dy == 0 {
			continue
		}
		pos, _ := Get[Position](st, e)
		nx, ny := m.Clamp(pos.X+dx, pos.Y+dy)
		to := Position{X: nx, Y: ny}
		if to == *pos || !m.IsWalkable(nx, ny) {
			continue
		}
		if other, taken := occ[to]; taken && other != e {
			continue
		}
		if Has[BlocksTile](st, e) {
			delete(occ, *pos)
			occ[to] = e
		}
		*pos = to
		markDirty(st, e)
		moved++
	}
	if moved > 0 {
		log.WithFields(logrus.Fields{"system": "random_mover", "moved": moved}).Debug("critters wandered")
	}
	return moved
}

// MonsterAISystem steps each monster that can see the player one cell along an A*
// path toward it. A monster never enters an occupied cell, the player's
// included, and stays put when no path exists.
func MonsterAISystem(st *Store, m *world.GridMap, msgs *MessageLog, log logrus.FieldLogger) int {
	player, ok := st.Player()
	if !ok {
		return 0
	}
	ppos, _ := Get[Position](st, player)
	target := ppos.Point()
	occ := st.Occupied()

	moved := 0
	for _, e := range st.Monsters() {
		vs, ok := Get[Viewshed](st, e)
		if !ok {
			continue
		}
		pos, _ := Get[Position](st, e)
		refresh(vs, pos.Point(), m)

		mon, _ := Get[Monster](st, e)
		if !vs.Sees(target) {
			mon.Alerted = false
			continue
		}
		if !mon.Alerted {
			mon.Alerted = true
			msgs.Add(displayName(st, e)+" spots you!", MsgWarning)
		}

		res := path.FindPath(m.IndexOf(pos.X, pos.Y), m.IndexOf(target.X, target.Y), m)
		next, ok := res.NextStep()
		if !ok {
			log.WithFields(logrus.Fields{
				"system":  "monster_ai",
				"serial":  st.Serial(e),
				"from":    pos.Point(),
				"success": res.Success,
			}).Debug("no step toward player")
			continue
		}
		nx, ny := m.PositionOf(next)
		to := Position{X: nx, Y: ny}
		if _, taken := occ[to]; taken {
			continue
		}
		if Has[BlocksTile](st, e) {
			delete(occ, *pos)
			occ[to] = e
		}
		*pos = to
		vs.Dirty = true
		moved++
	}
	if moved > 0 {
		log.WithFields(logrus.Fields{"system": "monster_ai", "moved": moved}).Debug("monsters closed in")
	}
	return moved
}

// VisibilitySystem recomputes every dirty viewshed, then rebuilds the map's
// visible flags from the player's viewshed. Returns the number recomputed.
func VisibilitySystem(st *Store, m *world.GridMap, log logrus.FieldLogger) int {
	recomputed := 0
	for _, e := range st.Observers() {
		vs, _ := Get[Viewshed](st, e)
		pos, _ := Get[Position](st, e)
		if refresh(vs, pos.Point(), m) {
			recomputed++
		}
	}

	m.ResetVisibility()
	if player, ok := st.Player(); ok {
		if vs, ok := Get[Viewshed](st, player); ok {
			vs.Visible.Each(func(p world.Point) {
				m.MarkVisible(m.IndexOf(p.X, p.Y))
			})
		}
	}
	if recomputed > 0 {
		log.WithFields(logrus.Fields{"system": "visibility", "recomputed": recomputed}).Debug("viewsheds refreshed")
	}
	return recomputed
}

// GlyphMapperSystem rewrites the map's glyph overlay from every drawable entity.
// The player is written last so it is never hidden by another entity.
func GlyphMapperSystem(st *Store, m *world.GridMap) {
	m.ClearGlyphs()
	player, hasPlayer := st.Player()
	for _, e := range st.Drawables() {
		if hasPlayer && e == player {
			continue
		}
		stamp(st, m, e)
	}
	if hasPlayer && Has[Renderable](st, player) {
		stamp(st, m, player)
	}
}

func stamp(st *Store, m *world.GridMap, e Entity) {
	pos, _ := Get[Position](st, e)
	r, _ := Get[Renderable](st, e)
	if !m.InBounds(pos.X, pos.Y) {
		return
	}
	m.SetGlyph(m.IndexOf(pos.X, pos.Y), world.Glyph{Char: r.Glyph, FG: r.FG})
}

// refresh recomputes vs from origin if it is dirty and reports whether it did.
func refresh(vs *Viewshed, origin world.Point, m *world.GridMap) bool {
	if !vs.Dirty {
		return false
	}
	vs.Visible = fov.ComputeVisible(origin, vs.Range, m)
	vs.Dirty = false
	return true
}

func markDirty(st *Store, e Entity) {
	if vs, ok := Get[Viewshed](st, e); ok {
		vs.Dirty = true
	}
}

func displayName(st *Store, e Entity) string {
	if n, ok := Get[Name](st, e); ok && n.Name != "" {
		return n.Name
	}
	return "Something"
}
