package main

import (
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/spacehole-rogue/cavern_rogue/internal/app"
	"github.com/spacehole-rogue/cavern_rogue/internal/game"
	"github.com/spacehole-rogue/cavern_rogue/internal/logger"
	"github.com/spacehole-rogue/cavern_rogue/internal/render"
)

const tickInterval = 16 * time.Millisecond // ~60 TPS, same pacing as the window build

// Game drives a Sim from a terminal.
type Game struct {
	screen  tcell.Screen
	sim     *game.Sim
	buffer  *render.CellBuffer
	pending game.Intent
	styles  [16][16]tcell.Style
}

func NewGame(sim *game.Sim) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	w, h := screen.Size()
	g := &Game{
		screen: screen,
		sim:    sim,
		buffer: render.NewCellBuffer(w, h),
	}
	for fg := range 16 {
		for bg := range 16 {
			g.styles[fg][bg] = tcell.StyleDefault.
				Foreground(paletteColor(uint8(fg))).
				Background(paletteColor(uint8(bg)))
		}
	}
	return g, nil
}

func paletteColor(i uint8) tcell.Color {
	c := render.RGB(i)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// handleInput folds an event into the pending intent. Returns false to quit.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.pending.Move = game.DirUp
		case tcell.KeyRight:
			g.pending.Move = game.DirRight
		case tcell.KeyDown:
			g.pending.Move = game.DirDown
		case tcell.KeyLeft:
			g.pending.Move = game.DirLeft
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'w', 'k':
				g.pending.Move = game.DirUp
			case 'd', 'l':
				g.pending.Move = game.DirRight
			case 's', 'j':
				g.pending.Move = game.DirDown
			case 'a', 'h':
				g.pending.Move = game.DirLeft
			case 'p':
				g.pending.TogglePause = !g.pending.TogglePause
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		w, h := g.screen.Size()
		g.buffer.Resize(w, h)
		g.screen.Sync()
	}
	return true
}

func (g *Game) draw() {
	g.sim.Compose(g.buffer, nil)
	for y := range g.buffer.Rows {
		for x := range g.buffer.Cols {
			c := g.buffer.Cells[y*g.buffer.Cols+x]
			r := ' '
			if c.Glyph != 0 {
				r = render.CP437Rune(c.Glyph)
			}
			g.screen.SetContent(x, y, r, nil, g.styles[c.FG%16][c.BG%16])
		}
	}
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.sim.Tick(g.pending)
			g.pending = game.Intent{}
			g.draw()
		}
	}
}

func main() {
	// The terminal is the UI; logs only go somewhere when LOG_FILE is set.
	closeLog, err := logger.Init(io.Discard)
	if err != nil {
		logger.Log.SetOutput(os.Stderr)
		logger.Log.WithError(err).Warn("log file unavailable")
		logger.Log.SetOutput(io.Discard)
	}
	defer closeLog()

	opts, err := app.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	sim, err := app.NewSim(opts, logger.Log)
	if err != nil {
		logger.Log.SetOutput(os.Stderr)
		logger.Log.WithError(err).Error("could not start")
		closeLog()
		os.Exit(1)
	}

	g, err := NewGame(sim)
	if err != nil {
		logger.Log.SetOutput(os.Stderr)
		logger.Log.WithError(err).Error("terminal init failed")
		closeLog()
		os.Exit(1)
	}
	g.run()
	g.screen.Fini()
	logger.Log.WithField("ticks", sim.Ticks).Info("bye")
}
