// Package render maps game state into a grid of character cells. It has no
// graphics dependencies; front-ends draw the resulting CellBuffer.
package render

// Cell represents a single character cell on screen.
type Cell struct {
	Glyph byte  // CP437 code (0-255)
	FG    uint8 // foreground palette index (0-15)
	BG    uint8 // background palette index (0-15)
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is a 2D grid of character cells.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a new cell buffer filled with blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a zero cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets all cells to blank (space on black).
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// Resize reallocates the buffer if the dimensions changed, clearing it either way.
func (b *CellBuffer) Resize(cols, rows int) {
	if cols != b.Cols || rows != b.Rows {
		b.Cols, b.Rows = cols, rows
		b.Cells = make([]Cell, cols*rows)
	}
	b.Clear()
}

// WriteString writes s starting at (x, y), one cell per rune. Runes outside
// CP437's single-byte range become '?'. Returns the number of cells written.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	n := 0
	for _, ch := range s {
		if ch > 255 {
			ch = '?'
		}
		b.Set(x+n, y, byte(ch), fg, bg)
		n++
	}
	return n
}

// HLine draws a horizontal run of glyph from x for n cells.
func (b *CellBuffer) HLine(x, y, n int, glyph byte, fg, bg uint8) {
	for i := range n {
		b.Set(x+i, y, glyph, fg, bg)
	}
}

// FitCells returns how many whole cellW x cellH cells fit in a w x h pixel
// area, never less than one in each direction.
func FitCells(w, h, cellW, cellH int) (cols, rows int) {
	if cellW <= 0 || cellH <= 0 {
		return 1, 1
	}
	return max(w/cellW, 1), max(h/cellH, 1)
}
