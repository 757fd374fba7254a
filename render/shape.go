package render

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/tween"
)

// ShapeView is the morphing outline with its travelling label
// Tweens are stepped by the frame loop through Step, never by wall time
type ShapeView struct {
	outlines map[string]Outline

	from, to  Outline
	fromColor core.RGB
	toColor   core.RGB
	morph     tween.Tween

	text      []rune
	textTween tween.Tween

	anchor tween.Tween
}

// NewShapeView pre-parses every shape of the set and rests on layer 0
func NewShapeView(set *layer.Set) (*ShapeView, error) {
	v := &ShapeView{outlines: make(map[string]Outline, len(set.Shapes))}
	for id, d := range set.Shapes {
		o, err := ParsePath(d)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", id, err)
		}
		v.outlines[d] = o
	}

	origin := set.Layers[0]
	v.to = v.outlines[set.Path(0)]
	v.from = v.to
	v.fromColor, v.toColor = origin.Color, origin.Color
	v.morph = tween.New(1, 1, 0, tween.Linear)
	v.text = []rune(origin.Label)
	v.textTween = tween.New(1, 1, 0, tween.Linear)
	v.anchor = tween.New(origin.Y, origin.Y, 0, tween.Linear)
	return v, nil
}

// MorphTo starts a morph from the current (possibly mid-flight) outline
func (v *ShapeView) MorphTo(path string, color core.RGB, d time.Duration, ease tween.Easing) {
	target, ok := v.outlines[path]
	if !ok {
		o, err := ParsePath(path)
		if err != nil {
			return
		}
		v.outlines[path] = o
		target = o
	}
	v.from = v.Outline()
	v.fromColor = v.Color()
	v.to = target
	v.toColor = color
	v.morph = tween.New(0, 1, d, ease)
}

// SetText swaps the label, revealing the new text over the label duration
func (v *ShapeView) SetText(value string) {
	v.text = []rune(value)
	v.textTween = tween.New(0, 1, parameter.LabelTextDuration, tween.Power2Out)
}

// MoveAnchorTo moves the label row from its current position
func (v *ShapeView) MoveAnchorTo(y float64, d time.Duration, ease tween.Easing) {
	v.anchor = tween.New(v.anchor.Value(), y, d, ease)
}

// Step advances every tween by dt
func (v *ShapeView) Step(dt time.Duration) {
	v.morph.Step(dt)
	v.textTween.Step(dt)
	v.anchor.Step(dt)
}

// Outline returns the current interpolated outline
func (v *ShapeView) Outline() Outline {
	if v.morph.Done() {
		return v.to
	}
	return LerpOutline(v.from, v.to, v.morph.Value())
}

// Color returns the current interpolated color
func (v *ShapeView) Color() core.RGB {
	return v.fromColor.Lerp(v.toColor, v.morph.Value())
}

// Text returns the visible part of the label
func (v *ShapeView) Text() string {
	n := int(math.Ceil(v.textTween.Value() * float64(len(v.text))))
	return string(v.text[:min(max(n, 0), len(v.text))])
}

// Anchor returns the label's current design-space Y
func (v *ShapeView) Anchor() float64 {
	return v.anchor.Value()
}

// Draw paints the outline and label
func (v *ShapeView) Draw(buf *Buffer, vp Viewport) {
	color := v.Color()
	for _, r := range v.Outline() {
		drawRect(buf, vp, r, color)
	}

	row := vp.Row(v.Anchor())
	buf.DrawText(vp.Column(parameter.LabelX), row, v.Text(), color, true)
}

func drawRect(buf *Buffer, vp Viewport, r Rect, color core.RGB) {
	x0, x1 := vp.Column(r.MinX), vp.Column(r.MaxX)
	y0, y1 := vp.Row(r.MinY), vp.Row(r.MaxY)

	inside := func(x, y int) bool {
		if x < x0 || x > x1 || y < y0 || y > y1 {
			return false
		}
		// Too few cells for a recognizable ellipse
		if !r.Round || x1-x0 < 3 || y1-y0 < 2 {
			return true
		}
		cx, cy := r.Center()
		rx, ry := (r.MaxX-r.MinX)/2, (r.MaxY-r.MinY)/2
		if rx <= 0 || ry <= 0 {
			return true
		}
		p := vp.ToDesign(x, y)
		dx, dy := (p.X-cx)/rx, (p.Y-cy)/ry
		return dx*dx+dy*dy <= 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !inside(x, y) {
				continue
			}
			edge := !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1)
			if edge {
				buf.SetFgOnly(x, y, parameter.ShapeEdge, color, false)
			} else {
				buf.Set(x, y, ' ', color, color, BlendAlphaBg, parameter.ShapeFillTint)
			}
		}
	}
}
