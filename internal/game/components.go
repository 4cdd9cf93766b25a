package game

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Identity carries the stable serial assigned at creation. Serials are never reused.
type Identity struct {
	Serial uint64
}

// Position is a tile coordinate on the level.
type Position struct {
	X, Y int
}

// Point converts the position to a world.Point.
func (p Position) Point() world.Point { return world.Point{X: p.X, Y: p.Y} }

// Renderable is a CP437 glyph with a palette color.
type Renderable struct {
	Glyph byte
	FG    uint8
}

// Viewshed caches what an entity can see. Visible is only meaningful while
// Dirty is false; movement sets Dirty and the visibility pass clears it.
type Viewshed struct {
	Visible mapset.Set[world.Point]
	Range   int
	Dirty   bool
}

// NewViewshed returns a viewshed that will be computed on the next pass.
func NewViewshed(rangeCells int) Viewshed {
	return Viewshed{Visible: mapset.New[world.Point](), Range: rangeCells, Dirty: true}
}

// Sees reports whether p is in the visible set.
// The viewshed must have been recomputed since it was last marked dirty.
func (v *Viewshed) Sees(p world.Point) bool {
	if v.Dirty {
		panic(fmt.Sprintf("game: viewshed read at %v while dirty", p))
	}
	return v.Visible.Has(p)
}

// Name is a display name for log messages.
type Name struct {
	Name string
}

// Player tags the entity driven by input.
type Player struct{}

// Monster tags a hostile that chases the player on sight.
type Monster struct {
	Alerted bool // the player was in view on the last AI step
}

// RandomMover tags an entity that wanders aimlessly.
type RandomMover struct{}

// BlocksTile tags an entity that occupies its cell.
type BlocksTile struct{}
