package tween

import "time"

// Tween interpolates a scalar from From to To over Duration with an easing curve
// Zero Duration completes immediately
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     Easing

	elapsed time.Duration
}

// New starts a tween at elapsed zero
func New(from, to float64, d time.Duration, ease Easing) Tween {
	if ease == nil {
		ease = Linear
	}
	return Tween{From: from, To: to, Duration: d, Ease: ease}
}

// Step advances the tween by dt and returns the new value
func (tw *Tween) Step(dt time.Duration) float64 {
	tw.elapsed += dt
	if tw.elapsed > tw.Duration {
		tw.elapsed = tw.Duration
	}
	return tw.Value()
}

// Progress is the eased progress, may exceed [0,1] for elastic curves
func (tw *Tween) Progress() float64 {
	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		return 1
	}
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	return ease(float64(tw.elapsed) / float64(tw.Duration))
}

// Value is the current interpolated value
func (tw *Tween) Value() float64 {
	return tw.From + (tw.To-tw.From)*tw.Progress()
}

// Done reports whether the full duration has elapsed
func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.Duration
}
