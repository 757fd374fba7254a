package engine

import (
	"time"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/tween"
)

// fixedRandom returns values from a cycle, a single value makes every draw identical
type fixedRandom struct {
	values []float64
	i      int
}

func newFixedRandom(values ...float64) *fixedRandom {
	return &fixedRandom{values: values}
}

func (r *fixedRandom) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

type circleCall struct {
	center core.Point
	radius float64
	color  core.RGB
	alpha  float64
}

type fakeSurface struct {
	width   float64
	clears  int
	circles []circleCall
	rings   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{width: 600}
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.rings = 0
}

func (s *fakeSurface) DrawCircle(center core.Point, radius float64, fill core.RGB, alpha float64) {
	s.circles = append(s.circles, circleCall{center, radius, fill, alpha})
}

func (s *fakeSurface) DrawStrokeRing(core.Point, float64, core.RGB, float64, float64) {
	s.rings++
}

func (s *fakeSurface) Width() float64 {
	return s.width
}

type morphCall struct {
	path     string
	color    core.RGB
	duration time.Duration
}

type fakeShape struct {
	morphs  []morphCall
	texts   []string
	anchors []float64
}

func (f *fakeShape) MorphTo(path string, color core.RGB, d time.Duration, _ tween.Easing) {
	f.morphs = append(f.morphs, morphCall{path, color, d})
}

func (f *fakeShape) SetText(value string) {
	f.texts = append(f.texts, value)
}

func (f *fakeShape) MoveAnchorTo(y float64, _ time.Duration, _ tween.Easing) {
	f.anchors = append(f.anchors, y)
}

type fakeHighlighter struct {
	active int
	clears int
	sets   []int
}

func (h *fakeHighlighter) SetActiveLayer(index int) {
	h.active = index
	h.sets = append(h.sets, index)
}

func (h *fakeHighlighter) ClearAllActive() {
	h.active = -1
	h.clears++
}

type burstCall struct {
	layer int
	hit   bool
	count int
}

type recordingObserver struct {
	bursts []burstCall
}

func (o *recordingObserver) OnBurst(layer int, hit bool, count int) {
	o.bursts = append(o.bursts, burstCall{layer, hit, count})
}
