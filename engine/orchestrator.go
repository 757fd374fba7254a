package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/tween"
)

// State is the mutable simulation state of one visualizer
type State struct {
	Descriptor   int
	TransferSize int // Bytes, > 0
	CacheHit     int // Percent in [0,100]
	CurrentLayer int
}

// Step is one layer transition in the schedule
type Step struct {
	Layer    int
	Offset   time.Duration
	Duration time.Duration
}

// Plan computes the transition steps for a profile, layer 0 is the origin and never a target
func Plan(profile level.Profile, layerCount int) []Step {
	speed := profile.AnimationSpeed
	if speed <= 0 {
		speed = 1
	}
	duration := time.Duration(float64(parameter.MorphDuration) / speed)

	steps := make([]Step, 0, max(layerCount-1, 0))
	for i := 1; i < layerCount; i++ {
		steps = append(steps, Step{
			Layer:    i,
			Offset:   time.Duration(float64(time.Duration(i)*parameter.LayerInterval) / speed),
			Duration: duration,
		})
	}
	return steps
}

// Orchestrator sequences morph, label, highlight and particle bursts per layer transition
type Orchestrator struct {
	layers    *layer.Set
	state     *State
	profile   level.Profile
	shape     ShapeDisplay
	highlight Highlighter
	particles *ParticleSystem
	deferrer  Deferrer
	rng       Random
	observer  BurstObserver
	logger    *slog.Logger

	newScheduler func() Scheduler
	scheduler    Scheduler
	paused       bool

	morphEase tween.Easing
}

// OrchestratorDeps groups the collaborators of an Orchestrator, nil display collaborators become no-ops
type OrchestratorDeps struct {
	Layers       *layer.Set
	State        *State
	Shape        ShapeDisplay
	Highlight    Highlighter
	Particles    *ParticleSystem
	Deferrer     Deferrer
	Random       Random
	Observer     BurstObserver
	NewScheduler func() Scheduler
	Logger       *slog.Logger
}

// NewOrchestrator creates an orchestrator without a schedule, call Build to start it
func NewOrchestrator(deps OrchestratorDeps, profile level.Profile) *Orchestrator {
	o := &Orchestrator{
		layers:       deps.Layers,
		state:        deps.State,
		profile:      profile,
		shape:        deps.Shape,
		highlight:    deps.Highlight,
		particles:    deps.Particles,
		deferrer:     deps.Deferrer,
		rng:          deps.Random,
		observer:     deps.Observer,
		logger:       deps.Logger,
		newScheduler: deps.NewScheduler,
		morphEase:    tween.ElasticOut(parameter.ElasticAmplitude, parameter.ElasticPeriod),
	}
	if o.shape == nil {
		o.shape = noopShape{}
	}
	if o.highlight == nil {
		o.highlight = noopHighlighter{}
	}
	if o.observer == nil {
		o.observer = noopObserver{}
	}
	if o.newScheduler == nil {
		o.newScheduler = func() Scheduler { return NewTimeline() }
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Build tears down any current schedule and schedules a fresh loop at the current profile
func (o *Orchestrator) Build() {
	if o.scheduler != nil {
		o.scheduler.Kill()
	}

	s := o.newScheduler()
	s.ScheduleAt(0, Effect{Name: "rewind", Fire: o.rewind})

	for _, step := range Plan(o.profile, o.layers.Len()) {
		i, d := step.Layer, step.Duration
		s.ScheduleAt(step.Offset, Effect{
			Name: "morph",
			Span: d,
			Fire: func() {
				o.shape.MorphTo(o.layers.Path(i), o.layers.Layers[i].Color, d, o.morphEase)
			},
		})
		s.ScheduleAt(step.Offset, Effect{
			Name: "label",
			Span: parameter.LabelTextDuration,
			Fire: func() {
				o.shape.SetText(o.layers.Layers[i].Label)
			},
		})
		s.ScheduleAt(step.Offset, Effect{
			Name: "anchor",
			Span: d,
			Fire: func() {
				o.shape.MoveAnchorTo(o.layers.Layers[i].Y, d, o.morphEase)
			},
		})
		s.ScheduleAt(step.Offset, Effect{
			Name: "transition",
			Fire: func() {
				o.transition(i)
			},
		})
	}
	s.ScheduleRepeating(parameter.RepeatDelay)

	if o.paused {
		s.Pause()
	}
	o.scheduler = s

	o.logger.Debug("timeline built",
		"level", o.profile.Name,
		"speed", o.profile.AnimationSpeed,
		"density", o.profile.ParticleDensity,
	)
}

// rewind restores the resting origin visuals at the start of every cycle
func (o *Orchestrator) rewind() {
	origin := o.layers.Layers[0]
	o.shape.MorphTo(o.layers.Path(0), origin.Color, 0, tween.Linear)
	o.shape.SetText(origin.Label)
	o.shape.MoveAnchorTo(origin.Y, 0, tween.Linear)

	o.highlight.ClearAllActive()
	o.highlight.SetActiveLayer(0)
	o.state.CurrentLayer = 0
}

// transition runs the discrete side effects of entering layer i, reading state at fire time
func (o *Orchestrator) transition(i int) {
	o.highlight.ClearAllActive()
	o.highlight.SetActiveLayer(i)
	o.state.CurrentLayer = i

	burst := ceilDiv(o.state.TransferSize, parameter.BurstBytesPerParticle)
	hit := o.rng.Float64()*100 < float64(o.state.CacheHit)

	from, to := o.layers.Layers[i-1], o.layers.Layers[i]
	n := o.emit(burst, from.Y, to.Y, to.Color, hit)
	o.observer.OnBurst(i, hit, n)

	if hit || i >= o.layers.Last() || o.deferrer == nil {
		return
	}

	// Miss: the request continues to the next stage after a fixed wall-clock delay
	half := ceilDiv(burst, 2)
	o.deferrer.After(parameter.MissRoundtripDelay, func() {
		next := i + 1
		if next >= o.layers.Len() {
			return
		}
		dst := o.layers.Layers[next]
		emitted := o.emit(half, o.layers.Layers[i].Y, dst.Y, dst.Color, false)
		o.observer.OnBurst(next, false, emitted)
	})
}

// emit scales count by the profile density (rounded up) and hands it to the particle system
func (o *Orchestrator) emit(count int, fromY, toY float64, color core.RGB, highlighted bool) int {
	if o.particles == nil {
		return 0
	}
	return o.particles.Emit(ScaleDensity(count, o.profile.ParticleDensity), fromY, toY, color, highlighted)
}

// ScaleDensity applies a density multiplier to a burst size, rounding up
func ScaleDensity(count int, density float64) int {
	if count <= 0 || density <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) * density))
}

// SetProfile switches difficulty and rebuilds the schedule from scratch
// In-flight particles and pending deferred bursts are unaffected
func (o *Orchestrator) SetProfile(p level.Profile) {
	o.profile = p
	o.Build()
}

// Profile returns the active profile
func (o *Orchestrator) Profile() level.Profile {
	return o.profile
}

// SetDescriptor updates the origin label only, the schedule is left untouched
func (o *Orchestrator) SetDescriptor(fd int) {
	o.state.Descriptor = fd
	o.layers.SetOriginLabel(fd)
	if o.state.CurrentLayer == 0 {
		o.shape.SetText(o.layers.Layers[0].Label)
	}
}

// Advance feeds elapsed time to the current schedule
func (o *Orchestrator) Advance(dt time.Duration) {
	if o.scheduler != nil {
		o.scheduler.Advance(dt)
	}
}

// Play resumes the schedule
func (o *Orchestrator) Play() {
	o.paused = false
	if o.scheduler != nil {
		o.scheduler.Play()
	}
}

// Pause freezes the schedule, particles keep moving
func (o *Orchestrator) Pause() {
	o.paused = true
	if o.scheduler != nil {
		o.scheduler.Pause()
	}
}

// Paused reports whether the schedule is frozen
func (o *Orchestrator) Paused() bool {
	return o.paused
}

// Stop kills the schedule permanently
func (o *Orchestrator) Stop() {
	if o.scheduler != nil {
		o.scheduler.Kill()
		o.scheduler = nil
	}
}

// Scheduler returns the live schedule, nil after Stop
func (o *Orchestrator) Scheduler() Scheduler {
	return o.scheduler
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
