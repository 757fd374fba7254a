package render

import (
	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
)

type dot struct {
	center core.Point
	radius float64
	color  core.RGB
	alpha  float64
	ring   bool
}

// Canvas is the particle surface: it records one frame of circles in design space
// and composites them into a Buffer through the viewport
type Canvas struct {
	dots []dot
}

// NewCanvas creates an empty canvas
func NewCanvas() *Canvas {
	return &Canvas{dots: make([]dot, 0, 256)}
}

// Clear drops the recorded frame
func (c *Canvas) Clear() {
	c.dots = c.dots[:0]
}

// DrawCircle records a filled particle
func (c *Canvas) DrawCircle(center core.Point, radius float64, fill core.RGB, alpha float64) {
	c.dots = append(c.dots, dot{center: center, radius: radius, color: fill, alpha: alpha})
}

// DrawStrokeRing records an outline around a particle, width is sub-cell and ignored
func (c *Canvas) DrawStrokeRing(center core.Point, radius float64, stroke core.RGB, alpha, _ float64) {
	c.dots = append(c.dots, dot{center: center, radius: radius, color: stroke, alpha: alpha, ring: true})
}

// Width is the design-space width particles are centered in
func (c *Canvas) Width() float64 {
	return parameter.ViewWidth
}

// Len returns the number of recorded primitives
func (c *Canvas) Len() int {
	return len(c.dots)
}

// Paint composites the recorded frame: rings tint the cell background, fills blend the glyph
func (c *Canvas) Paint(buf *Buffer, vp Viewport) {
	for _, d := range c.dots {
		x, y := vp.ToCell(d.center)
		if !vp.Contains(x, y) {
			continue
		}
		if d.ring {
			buf.Set(x, y, 0, d.color, d.color, BlendMaxBg, d.alpha)
			continue
		}
		glyph := parameter.SmallRune
		if d.radius >= parameter.ParticleRadiusHit {
			glyph = parameter.ParticleRune
		}
		buf.Set(x, y, glyph, d.color, d.color, BlendAlphaFg, d.alpha)
	}
}
