// Package tween provides easing curves and a time-driven scalar tween
package tween

import "math"

// Easing maps linear progress in [0,1] to eased progress; elastic curves overshoot 1
type Easing func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 {
	return t
}

// Power2Out decelerates quadratically
func Power2Out(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// ElasticOut returns a spring-like curve that overshoots and oscillates into 1
// amplitude >= 1 scales the overshoot, period is the oscillation length in progress units
func ElasticOut(amplitude, period float64) Easing {
	a := math.Max(amplitude, 1)
	if period <= 0 {
		period = 0.3
	}
	if amplitude < 1 && amplitude > 0 {
		period /= amplitude
	}
	phase := period / (2 * math.Pi) * math.Asin(1/a)
	omega := 2 * math.Pi / period

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return a*math.Pow(2, -10*t)*math.Sin((t-phase)*omega) + 1
	}
}
