package render

import (
	"math"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Viewport maps the fixed design space onto a rectangle of terminal cells
type Viewport struct {
	X, Y          int // Top-left cell of the drawing area
	Width, Height int // Drawing area in cells

	sx, sy float64
}

// NewViewport fits the design space into the given cell rectangle
func NewViewport(x, y, width, height int) Viewport {
	width, height = max(width, 1), max(height, 1)
	return Viewport{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		sx:     float64(width) / parameter.ViewWidth,
		sy:     float64(height) / parameter.ViewHeight,
	}
}

// LayoutViewport reserves the band column and margins of a screen of the given size
func LayoutViewport(screenW, screenH int) Viewport {
	return NewViewport(
		parameter.LayerBandWidth,
		parameter.TopMargin,
		screenW-parameter.LayerBandWidth,
		screenH-parameter.TopMargin-parameter.BottomMargin,
	)
}

// ToCell converts a design-space point to a cell
func (v Viewport) ToCell(p core.Point) (int, int) {
	return v.X + int(math.Floor(p.X*v.sx)), v.Y + int(math.Floor(p.Y*v.sy))
}

// Row converts a design-space Y to a cell row
func (v Viewport) Row(y float64) int {
	return v.Y + int(math.Floor(y*v.sy))
}

// Column converts a design-space X to a cell column
func (v Viewport) Column(x float64) int {
	return v.X + int(math.Floor(x*v.sx))
}

// ToDesign converts the center of a cell back to design space
func (v Viewport) ToDesign(x, y int) core.Point {
	return core.Point{
		X: (float64(x-v.X) + 0.5) / v.sx,
		Y: (float64(y-v.Y) + 0.5) / v.sy,
	}
}

// Contains reports whether a cell lies inside the drawing area
func (v Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}
