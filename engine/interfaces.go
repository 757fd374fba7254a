package engine

import (
	"time"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/tween"
)

// Surface is the canvas-equivalent the particle system draws on every frame
// Coordinates are design-space units, Width is the horizontal extent used for the centerline
type Surface interface {
	Clear()
	DrawCircle(center core.Point, radius float64, fill core.RGB, alpha float64)
	DrawStrokeRing(center core.Point, radius float64, stroke core.RGB, alpha, width float64)
	Width() float64
}

// ShapeDisplay is the morphing outline and its label
type ShapeDisplay interface {
	MorphTo(path string, color core.RGB, d time.Duration, ease tween.Easing)
	SetText(value string)
	MoveAnchorTo(y float64, d time.Duration, ease tween.Easing)
}

// Highlighter marks the active pipeline stage
type Highlighter interface {
	SetActiveLayer(index int)
	ClearAllActive()
}

// BurstObserver is notified after each emitted burst, roundtrip bursts report hit=false
type BurstObserver interface {
	OnBurst(layer int, hit bool, count int)
}

// Random is the injectable source for hit/miss draws and particle jitter
// *rand.Rand from math/rand/v2 satisfies it
type Random interface {
	Float64() float64
}

// Clock provides the current real time
type Clock interface {
	Now() time.Time
}

// Deferrer runs one-shot callbacks after a real-time delay, independent of any timeline
type Deferrer interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Scheduler is a repeating timeline of actions keyed by offset within one cycle
type Scheduler interface {
	ScheduleAt(offset time.Duration, effect Effect)
	ScheduleRepeating(delay time.Duration)
	Advance(dt time.Duration)
	Play()
	Pause()
	Kill()
}

// Effect is one scheduled action, Span is how long it occupies the timeline after its offset
type Effect struct {
	Name string
	Span time.Duration
	Fire func()
}

type noopShape struct{}

func (noopShape) MorphTo(string, core.RGB, time.Duration, tween.Easing) {}
func (noopShape) SetText(string)                                        {}
func (noopShape) MoveAnchorTo(float64, time.Duration, tween.Easing)     {}

type noopHighlighter struct{}

func (noopHighlighter) SetActiveLayer(int) {}
func (noopHighlighter) ClearAllActive()    {}

type noopObserver struct{}

func (noopObserver) OnBurst(int, bool, int) {}
