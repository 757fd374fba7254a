package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/visualizer"
)

// Renderer owns the terminal views and composites them once per frame
type Renderer struct {
	screen tcell.Screen
	buf    *Buffer
	vp     Viewport
	title  string

	Canvas  *Canvas
	Shape   *ShapeView
	Bands   *LayerBands
	Tooltip *TooltipView
	Metrics *MetricsPanel
}

// NewRenderer builds every view for a layer set, sized to the screen
func NewRenderer(screen tcell.Screen, set *layer.Set) (*Renderer, error) {
	shape, err := NewShapeView(set)
	if err != nil {
		return nil, fmt.Errorf("creating shape view: %w", err)
	}

	names := make([]string, set.Len())
	for i, l := range set.Layers {
		names[i] = l.ID
	}

	r := &Renderer{
		screen:  screen,
		buf:     NewBuffer(0, 0),
		title:   fmt.Sprintf(" %s(2): user space to device ", set.Syscall),
		Canvas:  NewCanvas(),
		Shape:   shape,
		Bands:   NewLayerBands(set),
		Tooltip: NewTooltipView(),
		Metrics: NewMetricsPanel(names),
	}
	w, h := screen.Size()
	r.Resize(w, h)
	return r, nil
}

// Collaborators exposes the views as visualizer sinks
func (r *Renderer) Collaborators() visualizer.Collaborators {
	return visualizer.Collaborators{
		Surface:   r.Canvas,
		Shape:     r.Shape,
		Highlight: r.Bands,
		Metrics:   r.Metrics,
		Tooltip:   r.Tooltip,
	}
}

// Resize adapts the buffer and viewport to a new screen size
func (r *Renderer) Resize(w, h int) {
	r.buf.Resize(w, h)
	r.vp = LayoutViewport(w, h)
}

// Viewport returns the current drawing area
func (r *Renderer) Viewport() Viewport {
	return r.vp
}

// HitTest maps a screen cell to a layer index, -1 when none
func (r *Renderer) HitTest(x, y int) int {
	return r.Bands.HitTest(r.vp, x, y)
}

// Step advances view animations by one frame of dt
func (r *Renderer) Step(dt time.Duration) {
	r.Shape.Step(dt)
	r.Metrics.Step(dt)
}

// Frame composites all views and shows the result
func (r *Renderer) Frame(st Status) {
	r.Compose(st)
	r.buf.FlushTo(r.screen)
	r.screen.Show()
}

// Compose draws the frame into the buffer without touching the screen
func (r *Renderer) Compose(st Status) {
	w, h := r.buf.Bounds()
	r.buf.Clear()
	if w == 0 || h == 0 {
		return
	}

	r.buf.DrawText(parameter.LayerBandWidth, 0, r.title, RgbTitle, true)

	r.Bands.Draw(r.buf, r.vp)
	r.Shape.Draw(r.buf, r.vp)
	r.Canvas.Paint(r.buf, r.vp)

	metricsRow := h - parameter.BottomMargin
	r.Metrics.Draw(r.buf, 1, metricsRow)
	drawStatusBar(r.buf, h-1, st)

	// Tooltip last so it covers everything
	r.Tooltip.Draw(r.buf)
}

// Buffer exposes the composited frame, for tests
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}
