package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/kernel-lens/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample evaluates the wave at a phase in [0,1)
func (w WaveType) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// oscillator generates a fixed-length raw wave
type oscillator struct {
	wave      WaveType
	step      float64 // Phase increment per sample
	phase     float64
	remaining int
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), o.remaining)
	for i := range n {
		v := o.wave.sample(o.phase)
		samples[i] = [2]float64{v, v}
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	o.remaining -= n
	return n, n > 0
}

func (o *oscillator) Err() error { return nil }

// envelope scales a stream by a per-sample gain curve and cuts it at total samples
type envelope struct {
	streamer beep.Streamer
	gain     func(pos int) float64
	pos      int
	total    int
}

// NewEnvelope ramps linearly up over attack and down over the final release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, att, rel := rate.N(duration), rate.N(attack), rate.N(release)
	releaseStart := max(total-rel, att)
	return &envelope{
		streamer: s,
		total:    total,
		gain: func(pos int) float64 {
			switch {
			case pos < att:
				return float64(pos) / float64(att)
			case rel > 0 && pos >= releaseStart:
				return float64(total-pos) / float64(rel)
			default:
				return 1
			}
		},
	}
}

// NewDecayEnvelope ramps up over attack then decays exponentially with time constant decay, the shape of a struck bell
func NewDecayEnvelope(s beep.Streamer, duration, attack, decay time.Duration, rate beep.SampleRate) beep.Streamer {
	att, tau := rate.N(attack), float64(max(rate.N(decay), 1))
	return &envelope{
		streamer: s,
		total:    rate.N(duration),
		gain: func(pos int) float64 {
			if pos < att {
				return float64(pos) / float64(att)
			}
			return math.Exp(-float64(pos-att) / tau)
		},
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	left := e.total - e.pos
	if left <= 0 {
		return 0, false
	}
	n, ok := e.streamer.Stream(samples[:min(len(samples), left)])
	for i := range n {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// layerPitch raises the cue a semitone per pipeline stage so a full cycle climbs audibly
func layerPitch(base float64, layer int) float64 {
	return base * math.Pow(2, float64(max(layer, 0))/12)
}

// CreateHitCue generates a short bell for a cache hit at the given layer
func CreateHitCue(cfg Config, layer int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := layerPitch(parameter.HitCueFrequency, layer)

	fund := NewOscillator(freq, parameter.HitCueDuration, WaveSine, rate)
	fundShaped := NewDecayEnvelope(fund, parameter.HitCueDuration, parameter.HitCueAttack, parameter.HitCueFundamentalDecay, rate)

	over := NewOscillator(freq*2, parameter.HitCueDuration, WaveSine, rate)
	overShaped := NewDecayEnvelope(over, parameter.HitCueDuration, parameter.HitCueAttack, parameter.HitCueOvertoneDecay, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, parameter.HitCueVolume*cfg.MasterVolume)
}

// CreateMissCue generates a low buzz for a cache miss at the given layer
func CreateMissCue(cfg Config, layer int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(layerPitch(parameter.MissCueFrequency, layer), parameter.MissCueDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.MissCueDuration, parameter.MissCueAttack, parameter.MissCueRelease, rate)

	return newVolume(shaped, parameter.MissCueVolume*cfg.MasterVolume)
}

// GetCue returns the streamer for a cue type, nil for unknown types
func GetCue(cue CueType, cfg Config, layer int) beep.Streamer {
	switch cue {
	case CueHit:
		return CreateHitCue(cfg, layer)
	case CueMiss:
		return CreateMissCue(cfg, layer)
	default:
		return nil
	}
}
