// Package assets embeds the fixed level layouts.
package assets

import "embed"

// Levels holds levels/*.json, each a world.Layout.
//
//go:embed levels/*.json
var Levels embed.FS
