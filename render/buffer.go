package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kernel-lens/core"
)

// Buffer is a compositor backed by a Cell array with touched tracking
// Views draw into it in layer order, FlushTo copies it to the screen once per frame
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize reuses the backing arrays when they are large enough
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear blanks every cell to the background, doubling the filled prefix each pass
func (b *Buffer) Clear() {
	clear(b.touched)
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbText, Bg: RgbBackground}
	for n := 1; n < len(b.cells); {
		n += copy(b.cells[n:], b.cells[:n])
	}
}

// Bounds returns buffer dimensions
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y, the zero Cell when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Touched reports whether any view wrote the cell since the last Clear
func (b *Buffer) Touched(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.touched[y*b.width+x]
}

// Set composites a cell with specified blend mode, a zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg core.RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}

	if flags&flagBg != 0 {
		switch op {
		case opReplace:
			dst.Bg = bg
		case opAlpha:
			dst.Bg = dst.Bg.Blend(bg, alpha)
		case opMax:
			dst.Bg = maxRGB(dst.Bg, bg.Scale(alpha))
		}
	}

	if flags&flagFg != 0 {
		switch op {
		case opReplace:
			dst.Fg = fg
		case opAlpha:
			// Glyph fades into whatever sits beneath it
			dst.Fg = dst.Bg.Blend(fg, alpha)
		case opMax:
			dst.Fg = maxRGB(dst.Fg, fg.Scale(alpha))
		}
	}
	b.touched[idx] = true
}

// SetWithBg writes an opaque cell
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// SetFgOnly writes rune and foreground, preserving background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg core.RGB, bold bool) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Bold = bold
	b.touched[idx] = true
}

// SetBgOnly updates the background color while preserving rune and foreground
func (b *Buffer) SetBgOnly(x, y int, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = bg
	b.touched[idx] = true
}

// DrawText writes s left to right from x, clipped at the buffer edge, returns the next column
func (b *Buffer) DrawText(x, y int, s string, fg core.RGB, bold bool) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg, bold)
		x++
	}
	return x
}

// FillRect paints a rectangle background
func (b *Buffer) FillRect(x, y, w, h int, bg core.RGB) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.SetBgOnly(col, row, bg)
		}
	}
}

// FlushTo copies every cell to the screen, the caller calls Show
func (b *Buffer) FlushTo(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := b.cells[row+x]
			screen.SetContent(x, y, c.Rune, nil, Style(c.Fg, c.Bg, c.Bold))
		}
	}
}

func maxRGB(a, c core.RGB) core.RGB {
	return core.RGB{R: max(a.R, c.R), G: max(a.G, c.G), B: max(a.B, c.B)}
}
