package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell geometry in the generated atlas.
const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// CP437 codes drawn by hand instead of from the font.
const (
	GlyphLightShade  byte = 176
	GlyphMediumShade byte = 177
	GlyphDarkShade   byte = 178
	GlyphVLine       byte = 179
	GlyphHLine       byte = 196
	GlyphFullBlock   byte = 219
	GlyphSquare      byte = 254
)

// cp437 maps the non-ASCII codes the game draws to Unicode.
var cp437 = map[byte]rune{
	176: '░', 177: '▒', 178: '▓',
	179: '│', 180: '┤', 191: '┐', 192: '└', 193: '┴', 194: '┬',
	195: '├', 196: '─', 197: '┼', 217: '┘', 218: '┌',
	219: '█', 220: '▄', 221: '▌', 222: '▐', 223: '▀', 254: '■',
}

// CP437Rune returns the Unicode rune for a CP437 code. Printable ASCII maps
// to itself; codes without a mapping become '?'.
func CP437Rune(code byte) rune {
	if code >= 32 && code <= 126 {
		return rune(code)
	}
	if r, ok := cp437[code]; ok {
		return r
	}
	return '?'
}

// box connection flags per code: left, right, top, bottom.
var boxArms = map[byte][4]bool{
	179: {false, false, true, true},
	180: {true, false, true, true},
	191: {true, false, false, true},
	192: {false, true, true, false},
	193: {true, true, true, false},
	194: {true, true, false, true},
	195: {false, true, true, true},
	196: {true, true, false, false},
	197: {true, true, true, true},
	217: {true, false, true, false},
	218: {false, true, false, true},
}

// BuildAtlas renders all 256 CP437 glyphs, white on transparent, into a
// 16x16 grid of GlyphWidth x GlyphHeight cells.
func BuildAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13
	for code := range 256 {
		cell := GlyphRect(byte(code))
		r := CP437Rune(byte(code))
		switch {
		case r >= 32 && r <= 126:
			drawFontGlyph(img, face, cell.Min.X, cell.Min.Y, r)
		case boxArms[byte(code)] != [4]bool{}:
			drawBox(img, cell, boxArms[byte(code)])
		default:
			drawBlock(img, cell, byte(code))
		}
	}
	return img
}

// GlyphRect returns the atlas rectangle for a CP437 code.
func GlyphRect(code byte) image.Rectangle {
	x := int(code) % AtlasCols * GlyphWidth
	y := int(code) / AtlasCols * GlyphHeight
	return image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
}

// basicfont glyphs are 7x13; center them horizontally with the baseline at 13.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

var ink = color.NRGBA{255, 255, 255, 255}

func fill(img *image.NRGBA, r image.Rectangle, keep func(x, y int) bool) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if keep == nil || keep(x, y) {
				img.SetNRGBA(x, y, ink)
			}
		}
	}
}

// drawBox draws 2px single-line arms from the cell center.
func drawBox(img *image.NRGBA, cell image.Rectangle, arms [4]bool) {
	cx, cy := cell.Min.X+7, cell.Min.Y+7
	if arms[0] {
		fill(img, image.Rect(cell.Min.X, cy, cx+2, cy+2), nil)
	}
	if arms[1] {
		fill(img, image.Rect(cx, cy, cell.Max.X, cy+2), nil)
	}
	if arms[2] {
		fill(img, image.Rect(cx, cell.Min.Y, cx+2, cy+2), nil)
	}
	if arms[3] {
		fill(img, image.Rect(cx, cy, cx+2, cell.Max.Y), nil)
	}
}

func drawBlock(img *image.NRGBA, cell image.Rectangle, code byte) {
	halfX := cell.Min.X + GlyphWidth/2
	halfY := cell.Min.Y + GlyphHeight/2
	switch code {
	case GlyphLightShade:
		fill(img, cell, func(x, y int) bool { return (x+y)%4 == 0 })
	case GlyphMediumShade:
		fill(img, cell, func(x, y int) bool { return (x+y)%2 == 0 })
	case GlyphDarkShade:
		fill(img, cell, func(x, y int) bool { return (x+y)%4 != 0 })
	case GlyphFullBlock:
		fill(img, cell, nil)
	case 220:
		fill(img, image.Rect(cell.Min.X, halfY, cell.Max.X, cell.Max.Y), nil)
	case 221:
		fill(img, image.Rect(cell.Min.X, cell.Min.Y, halfX, cell.Max.Y), nil)
	case 222:
		fill(img, image.Rect(halfX, cell.Min.Y, cell.Max.X, cell.Max.Y), nil)
	case 223:
		fill(img, image.Rect(cell.Min.X, cell.Min.Y, cell.Max.X, halfY), nil)
	case GlyphSquare:
		fill(img, image.Rect(cell.Min.X+4, cell.Min.Y+4, cell.Min.X+12, cell.Min.Y+12), nil)
	}
}
