// Package visualizer wires the particle system, orchestrator and metrics into one controllable instance
package visualizer

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/kernel-lens/engine"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/metrics"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Visualizer is one animated read(2) pipeline
// Not safe for concurrent use: all methods must be called from the goroutine that drives Tick
type Visualizer struct {
	layers    *layer.Set
	levels    *level.Table
	state     engine.State
	collab    Collaborators
	particles *engine.ParticleSystem
	deferred  *engine.DeferQueue
	orch      *engine.Orchestrator
	report    metrics.Report
	logger    *slog.Logger

	hovered   int
	destroyed bool
}

// New builds a visualizer and starts its timeline in the playing state
func New(cfg Config, c Collaborators, opts ...Option) (*Visualizer, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.levels == nil {
		o.levels = level.Builtin()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6b6c))
	}
	if o.clock == nil {
		o.clock = engine.NewWallClock()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	template := o.layers
	if template == nil {
		if cfg.Syscall == "" {
			cfg.Syscall = "read"
		}
		var err error
		if template, err = layer.Load(cfg.Syscall); err != nil {
			return nil, fmt.Errorf("creating visualizer: %w", err)
		}
	}

	v := &Visualizer{
		layers:  template.Clone(),
		levels:  o.levels,
		collab:  c,
		logger:  o.logger,
		hovered: -1,
		state: engine.State{
			Descriptor:   clampDescriptor(cfg.Descriptor),
			TransferSize: clampTransferSize(cfg.TransferSize),
			CacheHit:     clampCacheHit(cfg.CacheHit),
		},
	}
	v.layers.SetOriginLabel(v.state.Descriptor)

	profile := v.lookup(cfg.Difficulty)

	v.particles = engine.NewParticleSystem(c.Surface, o.rng)
	v.deferred = engine.NewDeferQueue(o.clock)
	v.orch = engine.NewOrchestrator(engine.OrchestratorDeps{
		Layers:       v.layers,
		State:        &v.state,
		Shape:        c.Shape,
		Highlight:    c.Highlight,
		Particles:    v.particles,
		Deferrer:     v.deferred,
		Random:       o.rng,
		Observer:     c.Observer,
		NewScheduler: o.newScheduler,
		Logger:       o.logger,
	}, profile)

	v.applyVerbosity(profile.Verbosity)
	v.recompute()
	v.orch.Build()

	v.logger.Info("visualizer created",
		"syscall", v.layers.Syscall,
		"fd", v.state.Descriptor,
		"size", v.state.TransferSize,
		"cache", v.state.CacheHit,
		"level", profile.Name,
	)
	return v, nil
}

// lookup resolves a difficulty name, unknown names fall back to the default with a warning
func (v *Visualizer) lookup(name level.Name) level.Profile {
	p, ok := v.levels.Lookup(name)
	if !ok && name != "" {
		v.logger.Warn("unknown difficulty, using default", "requested", name, "using", p.Name)
	}
	return p
}

// Tick advances one frame: timeline by dt, due roundtrip bursts, then particles
func (v *Visualizer) Tick(dt time.Duration) {
	if v.destroyed {
		return
	}
	dt = min(max(dt, 0), parameter.MaxFrameDelta)

	v.orch.Advance(dt)
	v.deferred.RunDue()
	v.particles.AdvanceAndPrune()
}

// Play resumes the timeline
func (v *Visualizer) Play() {
	if v.destroyed {
		return
	}
	v.orch.Play()
}

// Pause freezes the timeline, live particles settle and pending roundtrips still fire
func (v *Visualizer) Pause() {
	if v.destroyed {
		return
	}
	v.orch.Pause()
}

// Toggle flips between playing and paused
func (v *Visualizer) Toggle() {
	if v.Playing() {
		v.Pause()
	} else {
		v.Play()
	}
}

// Playing reports whether the timeline advances
func (v *Visualizer) Playing() bool {
	return !v.destroyed && !v.orch.Paused()
}

// SetDifficulty swaps the profile and rebuilds the timeline from the start of a cycle
func (v *Visualizer) SetDifficulty(name level.Name) {
	if v.destroyed {
		return
	}
	p := v.lookup(name)
	v.orch.SetProfile(p)
	v.applyVerbosity(p.Verbosity)
	v.showMetrics()

	v.logger.Info("difficulty changed", "level", p.Name, "speed", p.AnimationSpeed, "density", p.ParticleDensity)
}

// CycleDifficulty moves to the next profile in table order
func (v *Visualizer) CycleDifficulty() {
	v.SetDifficulty(v.levels.Next(v.orch.Profile().Name).Name)
}

func (v *Visualizer) applyVerbosity(vb level.Verbosity) {
	for _, t := range v.collab.verbosityTargets() {
		t.SetVerbosity(vb)
	}
	if !vb.ShowTooltips {
		v.Unhover()
	} else if v.hovered >= 0 {
		// Content filtering changed under an open tooltip
		v.collab.Tooltip.HideTooltip()
		v.hovered = -1
	}
}

// SetDescriptor changes the file descriptor shown at the origin, clamped to [0,1023]
func (v *Visualizer) SetDescriptor(fd int) {
	if v.destroyed {
		return
	}
	v.orch.SetDescriptor(clampDescriptor(fd))
	v.recompute()
}

// SetTransferSize changes the bytes per read, clamped to [1, 1MiB], picked up by the next burst
func (v *Visualizer) SetTransferSize(size int) {
	if v.destroyed {
		return
	}
	v.state.TransferSize = clampTransferSize(size)
	v.recompute()
}

// SetCacheHit changes the cache-hit percent, clamped to [0,100], picked up by the next burst
func (v *Visualizer) SetCacheHit(percent int) {
	if v.destroyed {
		return
	}
	v.state.CacheHit = clampCacheHit(percent)
	v.recompute()
}

func (v *Visualizer) recompute() {
	v.report = metrics.Calculate(v.state.TransferSize, v.state.CacheHit)
	v.showMetrics()
}

func (v *Visualizer) showMetrics() {
	if v.collab.Metrics != nil {
		v.collab.Metrics.ShowMetrics(v.report)
	}
}

// Hover shows the tooltip of layer index at screen position x,y if the profile allows tooltips
func (v *Visualizer) Hover(index, x, y int) {
	if v.destroyed || v.collab.Tooltip == nil {
		return
	}
	if index < 0 || index >= v.layers.Len() {
		v.Unhover()
		return
	}
	vb := v.orch.Profile().Verbosity
	if !vb.ShowTooltips {
		return
	}

	stage := v.layers.Layers[index]
	content := TooltipContent{
		Title:       stage.Tooltip.Title,
		Description: stage.Tooltip.Description,
		Color:       stage.Color,
	}
	if vb.ShowCode {
		content.SampleCode = stage.Tooltip.SampleCode
	}

	v.hovered = index
	v.collab.Tooltip.ShowTooltip(index, content, x, y)
}

// Unhover hides any open tooltip
func (v *Visualizer) Unhover() {
	if v.hovered < 0 || v.collab.Tooltip == nil {
		return
	}
	v.hovered = -1
	v.collab.Tooltip.HideTooltip()
}

// Hovered returns the layer whose tooltip is open, or -1
func (v *Visualizer) Hovered() int {
	return v.hovered
}

// Destroy stops the timeline and per-frame work, drops particles and cancels pending roundtrips
// The visualizer is inert afterwards
func (v *Visualizer) Destroy() {
	if v.destroyed {
		return
	}
	v.Unhover()
	v.orch.Stop()
	v.deferred.CancelAll()
	v.particles.Clear()
	v.destroyed = true

	v.logger.Info("visualizer destroyed")
}

// Destroyed reports whether Destroy was called
func (v *Visualizer) Destroyed() bool {
	return v.destroyed
}

// State returns a copy of the simulation state
func (v *Visualizer) State() engine.State {
	return v.state
}

// Metrics returns the current metric report
func (v *Visualizer) Metrics() metrics.Report {
	return v.report
}

// Profile returns the active difficulty profile
func (v *Visualizer) Profile() level.Profile {
	return v.orch.Profile()
}

// Layers returns the instance layer set, read-only for callers
func (v *Visualizer) Layers() *layer.Set {
	return v.layers
}

// ParticleCount returns the number of live particles
func (v *Visualizer) ParticleCount() int {
	return v.particles.Len()
}

// PendingRoundtrips returns the number of deferred bursts not yet fired
func (v *Visualizer) PendingRoundtrips() int {
	return v.deferred.Len()
}

func clampDescriptor(fd int) int {
	return min(max(fd, parameter.MinDescriptor), parameter.MaxDescriptor)
}

func clampTransferSize(size int) int {
	return min(max(size, parameter.MinTransferSize), parameter.MaxTransferSize)
}

func clampCacheHit(percent int) int {
	return min(max(percent, parameter.MinCacheHit), parameter.MaxCacheHit)
}
