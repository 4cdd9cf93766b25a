// Package app holds the start-up plumbing shared by the front-ends.
package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/cavern_rogue/assets"
	"github.com/spacehole-rogue/cavern_rogue/internal/game"
	"github.com/spacehole-rogue/cavern_rogue/internal/world"
)

// Options are the parsed command-line parameters.
type Options struct {
	Game   game.Config
	Layout string // embedded level name or JSON file path; empty generates a cave
}

// NewOptions returns Options populated with defaults.
func NewOptions() *Options {
	return &Options{Game: game.DefaultConfig()}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fset *flag.FlagSet) {
	o.Game.Bind(fset)
	fset.StringVar(&o.Layout, "layout", o.Layout, "fixed level: embedded name (e.g. den) or path to a JSON layout")
}

// Parse binds and parses args into fresh Options.
func Parse(name string, args []string) (*Options, error) {
	o := NewOptions()
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	o.Bind(fset)
	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// NewSim builds the session the options describe.
func NewSim(o *Options, log logrus.FieldLogger) (*game.Sim, error) {
	if o.Layout == "" {
		return game.NewSim(o.Game, log)
	}
	data, err := readLayout(o.Layout)
	if err != nil {
		return nil, err
	}
	layout, err := world.LoadLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", o.Layout, err)
	}
	grid, err := layout.ToGridMap()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"layout": layout.Name, "source": o.Layout}).Info("loaded fixed level")
	return game.NewSimFromGrid(o.Game, grid, layout.SpawnPoint(), log)
}

// readLayout prefers an embedded level by name and falls back to the file system.
func readLayout(ref string) ([]byte, error) {
	if !strings.ContainsAny(ref, `/\`) && !strings.HasSuffix(ref, ".json") {
		data, err := assets.Levels.ReadFile("levels/" + ref + ".json")
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return data, nil
}

// EmbeddedLevels lists the names of the built-in layouts.
func EmbeddedLevels() []string {
	entries, err := assets.Levels.ReadDir("levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}
