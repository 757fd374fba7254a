package render

import (
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// LayerBands draws the stage names and guides, and marks the active stage
type LayerBands struct {
	layers *layer.Set
	active int
	hover  int
}

// NewLayerBands creates bands for a layer set with nothing active
func NewLayerBands(set *layer.Set) *LayerBands {
	return &LayerBands{layers: set, active: -1, hover: -1}
}

// SetActiveLayer marks one stage active
func (lb *LayerBands) SetActiveLayer(index int) {
	if index < 0 || index >= lb.layers.Len() {
		return
	}
	lb.active = index
}

// ClearAllActive removes the active mark
func (lb *LayerBands) ClearAllActive() {
	lb.active = -1
}

// Active returns the active stage or -1
func (lb *LayerBands) Active() int {
	return lb.active
}

// SetHover marks the stage under the pointer, -1 for none
func (lb *LayerBands) SetHover(index int) {
	lb.hover = index
}

// HitTest maps a cell to the stage whose band contains it, -1 outside every band
// A stage owns the rows halfway to its neighbours; the first and last extend by the same half gap
func (lb *LayerBands) HitTest(vp Viewport, x, y int) int {
	if x < 0 || x >= vp.X+vp.Width {
		return -1
	}
	n := lb.layers.Len()
	for i := 0; i < n; i++ {
		row := vp.Row(lb.layers.Layers[i].Y)

		var up, down int
		if i > 0 {
			up = (row - vp.Row(lb.layers.Layers[i-1].Y) + 1) / 2
		}
		if i < n-1 {
			down = (vp.Row(lb.layers.Layers[i+1].Y) - row) / 2
		}
		if i == 0 {
			up = down
		}
		if i == n-1 {
			down = up
		}

		if y >= row-up && y <= row+down {
			return i
		}
	}
	return -1
}

// Draw paints guides across the viewport and the name column to its left
func (lb *LayerBands) Draw(buf *Buffer, vp Viewport) {
	for i, l := range lb.layers.Layers {
		row := vp.Row(l.Y)

		for x := vp.X; x < vp.X+vp.Width; x += parameter.GuideDashEvery {
			buf.SetFgOnly(x, row, '─', RgbGuide, false)
		}

		fg, bold := RgbDim, false
		marker := "  "
		switch {
		case i == lb.active:
			for x := 0; x < parameter.LayerBandWidth-1; x++ {
				buf.Set(x, row, 0, l.Color, l.Color, BlendAlphaBg, parameter.HighlightTint)
			}
			fg, bold, marker = l.Color, true, "▶ "
		case i == lb.hover:
			fg = RgbText
		}
		buf.DrawText(1, row, marker+truncate(l.Name, parameter.LayerBandWidth-4), fg, bold)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-1]) + "…"
}
