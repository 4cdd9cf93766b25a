package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/spacehole-rogue/cavern_rogue/internal/app"
	"github.com/spacehole-rogue/cavern_rogue/internal/game"
	"github.com/spacehole-rogue/cavern_rogue/internal/gfx"
	"github.com/spacehole-rogue/cavern_rogue/internal/logger"
	"github.com/spacehole-rogue/cavern_rogue/internal/render"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	cellWidth  = 16
	cellHeight = 16
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in sim.
type Game struct {
	renderer *gfx.GridRenderer
	buffer   *render.CellBuffer
	sim      *game.Sim

	// Window size in pixels as last reported to Layout.
	width, height int
}

func NewGame(sim *game.Sim) *Game {
	atlas := gfx.NewFontAtlas()
	renderer := gfx.NewGridRenderer(atlas, cellWidth, cellHeight)
	g := &Game{
		renderer: renderer,
		buffer:   render.NewCellBuffer(renderer.ScreenCells(screenWidth, screenHeight)),
		sim:      sim,
		width:    screenWidth,
		height:   screenHeight,
	}
	g.sim.Compose(g.buffer, nil)
	return g
}

var moveKeys = []struct {
	keys []ebiten.Key
	dir  game.Direction
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyUp}, game.DirUp},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyRight}, game.DirRight},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, game.DirDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, game.DirLeft},
}

func readIntent() game.Intent {
	var in game.Intent
	for _, mk := range moveKeys {
		for _, k := range mk.keys {
			if inpututil.IsKeyJustPressed(k) {
				in.Move = mk.dir
			}
		}
	}
	in.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	return in
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.sim.Tick(readIntent())

	g.buffer.Resize(g.renderer.ScreenCells(g.width, g.height))
	mx, my := ebiten.CursorPosition()
	hover := world.Point{X: mx / cellWidth, Y: my / cellHeight}
	g.sim.Compose(g.buffer, &hover)

	fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	g.buffer.WriteString(g.buffer.Cols-len(fps)-1, g.buffer.Rows-1, fps, render.ColorDarkGray, render.ColorBlack)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.buffer)
}

// Layout tracks the window size so the cell grid grows and shrinks with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	closeLog, err := logger.Init(os.Stdout)
	if err != nil {
		logger.Log.WithError(err).Warn("log file unavailable, logging to stdout")
	}
	defer closeLog()

	opts, err := app.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	sim, err := app.NewSim(opts, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Error("could not start")
		closeLog()
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(game.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(sim)); err != nil {
		logger.Log.WithError(err).Error("game exited")
		closeLog()
		os.Exit(1)
	}
	logger.Log.WithField("ticks", sim.Ticks).Info("bye")
}
