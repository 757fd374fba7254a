// Package audio plays short synthesized cues for particle bursts
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/kernel-lens/engine"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Player turns burst notifications into cues on the system speaker
// All methods are safe for concurrent use and are no-ops until Initialize succeeds
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	config  Config
	clock   engine.Clock
	logger  *slog.Logger
	started bool
	muted   bool
	lastCue time.Time
	played  [cueTypeCount]int
	dropped int
}

// DefaultConfig returns audio enabled at the default master volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
	}
}

// NewPlayer creates an idle player, clock and logger may be nil
func NewPlayer(cfg Config, clock engine.Clock, logger *slog.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	cfg.MasterVolume = clampVolume(cfg.MasterVolume)
	if clock == nil {
		clock = engine.NewWallClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		config: cfg,
		clock:  clock,
		logger: logger,
	}
}

// Initialize opens the speaker, a disabled config returns ErrDisabled
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if !p.config.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.started = true
	p.logger.Debug("audio started", "sample_rate", p.config.SampleRate, "volume", p.config.MasterVolume)
	return nil
}

// Cleanup silences queued cues
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close, an empty mixer produces silence
	p.started = false
}

// OnBurst plays a hit or miss cue for the layer, dropping cues closer than MinCueGap
func (p *Player) OnBurst(layer int, hit bool, count int) {
	if count <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.muted {
		return
	}

	now := p.clock.Now()
	if !p.lastCue.IsZero() && now.Sub(p.lastCue) < parameter.MinCueGap {
		p.dropped++
		return
	}

	cue := CueMiss
	if hit {
		cue = CueHit
	}
	s := GetCue(cue, p.config, layer)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()

	p.lastCue = now
	p.played[cue]++
}

// SetMuted enables or disables cue playback
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// ToggleMute flips the mute state and returns the new value
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Available reports whether the speaker is open
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// SetVolume sets the master volume, clamped to [0,1]; affects cues created afterwards
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config.MasterVolume = clampVolume(v)
}

// Volume returns the master volume
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config.MasterVolume
}

// Played returns how many cues of a type were queued
func (p *Player) Played(cue CueType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cue < 0 || cue >= cueTypeCount {
		return 0
	}
	return p.played[cue]
}

// Dropped returns how many cues were rate limited
func (p *Player) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
