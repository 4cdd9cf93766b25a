package game

import (
	"testing"
)

func TestStoreSerialsAreMonotonic(t *testing.T) {
	st := NewStore()
	var last uint64
	for range 10 {
		e := st.Create()
		s := st.Serial(e)
		if s <= last {
			t.Fatalf("serial %d after %d", s, last)
		}
		last = s
	}
	if st.Len() != 10 {
		t.Errorf("Len = %d, want 10", st.Len())
	}
}

func TestStoreAttachGetHas(t *testing.T) {
	st := NewStore()
	e := st.Create()
	if Has[Position](st, e) {
		t.Fatal("fresh entity has a Position")
	}
	if _, ok := Get[Position](st, e); ok {
		t.Fatal("Get on missing component succeeded")
	}

	Attach(st, e, Position{X: 3, Y: 4})
	pos, ok := Get[Position](st, e)
	if !ok || *pos != (Position{X: 3, Y: 4}) {
		t.Fatalf("Get = %+v, %v", pos, ok)
	}

	pos.X = 7
	if again, _ := Get[Position](st, e); again.X != 7 {
		t.Error("component pointer does not write through")
	}

	Attach(st, e, Position{X: 1, Y: 1})
	if pos, _ := Get[Position](st, e); *pos != (Position{X: 1, Y: 1}) {
		t.Errorf("re-attach did not overwrite: %+v", *pos)
	}
}

func TestStoreIterationOrder(t *testing.T) {
	st := NewStore()
	var want []Entity
	for i := range 6 {
		e := st.Create()
		Attach(st, e, Position{X: i})
		if i%2 == 0 {
			Attach(st, e, RandomMover{})
			want = append(want, e)
		} else {
			Attach(st, e, Monster{})
		}
	}

	got := st.Movers()
	if len(got) != len(want) {
		t.Fatalf("Movers = %d entities, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Movers[%d] serial %d, want %d", i, st.Serial(got[i]), st.Serial(want[i]))
		}
	}
	if n := len(st.Monsters()); n != 3 {
		t.Errorf("Monsters = %d, want 3", n)
	}
	if n := len(st.Observers()); n != 0 {
		t.Errorf("Observers = %d, want 0", n)
	}
}

func TestStoreHelpersSortAcrossArchetypes(t *testing.T) {
	st := NewStore()
	var all []Entity
	for i := range 8 {
		e := st.Create()
		Attach(st, e, Position{X: i})
		Attach(st, e, Renderable{Glyph: 'x'})
		Attach(st, e, NewViewshed(3))
		Attach(st, e, BlocksTile{})
		Attach(st, e, RandomMover{})
		Attach(st, e, Monster{})
		// Odd serials land in a different archetype.
		if i%2 == 1 {
			Attach(st, e, Name{Name: "odd"})
		}
		all = append(all, e)
	}

	helpers := map[string]func() []Entity{
		"Movers":    st.Movers,
		"Monsters":  st.Monsters,
		"Observers": st.Observers,
		"Drawables": st.Drawables,
		"Blockers":  st.Blockers,
	}
	for name, fn := range helpers {
		got := fn()
		if len(got) != len(all) {
			t.Fatalf("%s = %d entities, want %d", name, len(got), len(all))
		}
		for i := range got {
			if got[i] != all[i] {
				t.Errorf("%s[%d] serial %d, want %d", name, i, st.Serial(got[i]), st.Serial(all[i]))
			}
		}
	}
}

func TestStorePlayerAndOccupancy(t *testing.T) {
	st := NewStore()
	if _, ok := st.Player(); ok {
		t.Fatal("empty store has a player")
	}
	rock := st.Create()
	Attach(st, rock, Position{X: 2, Y: 2})
	Attach(st, rock, BlocksTile{})

	p := st.Create()
	Attach(st, p, Position{X: 5, Y: 1})
	Attach(st, p, Player{})

	got, ok := st.Player()
	if !ok || got != p {
		t.Fatal("Player did not return the tagged entity")
	}

	occ := st.Occupied()
	if len(occ) != 1 || occ[Position{X: 2, Y: 2}] != rock {
		t.Errorf("Occupied = %v", occ)
	}
}

func TestViewshedSeesPanicsWhenDirty(t *testing.T) {
	vs := NewViewshed(4)
	defer func() {
		if recover() == nil {
			t.Error("Sees on a dirty viewshed did not panic")
		}
	}()
	vs.Sees(Position{}.Point())
}
