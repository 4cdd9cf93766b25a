// Package gfx draws render.CellBuffers with Ebitengine.
package gfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/spacehole-rogue/cavern_rogue/internal/render"
)

// FontAtlas holds the CP437 glyph atlas as GPU images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas uploads the generated CP437 atlas and slices it per glyph.
func NewFontAtlas() *FontAtlas {
	img := ebiten.NewImageFromImage(render.BuildAtlas())
	a := &FontAtlas{image: img}
	for code := range 256 {
		a.glyphs[code] = img.SubImage(render.GlyphRect(byte(code))).(*ebiten.Image)
	}
	return a
}

// Glyph returns the sub-image for a CP437 code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white pixel for backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell size in pixels.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{
		Atlas:   atlas,
		CellW:   cellW,
		CellH:   cellH,
		bgPixel: bgPixel,
	}
}

// Draw renders the whole buffer with its top-left cell at the screen origin.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *render.CellBuffer) {
	scaleX := float64(r.CellW) / float64(render.GlyphWidth)
	scaleY := float64(r.CellH) / float64(render.GlyphHeight)

	for y := range buf.Rows {
		for x := range buf.Cols {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x * r.CellW)
			py := float64(y * r.CellH)

			if cell.BG != render.ColorBlack {
				var op ebiten.DrawImageOptions
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(render.RGB(cell.BG))
				screen.DrawImage(r.bgPixel, &op)
			}

			if cell.Glyph == ' ' || cell.Glyph == 0 {
				continue
			}
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(scaleX, scaleY)
			op.GeoM.Translate(px, py)
			op.ColorScale.ScaleWithColor(render.RGB(cell.FG))
			screen.DrawImage(r.Atlas.Glyph(cell.Glyph), &op)
		}
	}
}

// ScreenCells returns the grid size that fills a w x h pixel screen.
func (r *GridRenderer) ScreenCells(w, h int) (cols, rows int) {
	return render.FitCells(w, h, r.CellW, r.CellH)
}
