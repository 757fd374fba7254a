package physics

import (
	"math"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Particle is one visual unit travelling toward a target row under a damped spring
// Y is pulled toward TargetY and may overshoot; X drifts freely and decays
type Particle struct {
	Pos     core.Point
	TargetY float64
	VelX    float64
	VelY    float64

	Color       core.RGB
	Life        float64 // Remaining life in [0,1], decays only inside the convergence band
	Highlighted bool    // Cache hit: larger, brighter, outlined
	Radius      float64
}

// NewParticle creates a particle at origin heading for targetY with initial horizontal drift velX
func NewParticle(origin core.Point, targetY, velX float64, color core.RGB, highlighted bool) *Particle {
	radius := parameter.ParticleRadiusMiss
	if highlighted {
		radius = parameter.ParticleRadiusHit
	}
	return &Particle{
		Pos:         origin,
		TargetY:     targetY,
		VelX:        velX,
		Color:       color,
		Life:        1.0,
		Highlighted: highlighted,
		Radius:      radius,
	}
}

// Advance steps the particle by one frame and reports whether it is still alive
func (p *Particle) Advance() bool {
	dy := p.TargetY - p.Pos.Y

	p.VelY += dy * parameter.ParticleSpringConstant
	p.VelY *= parameter.ParticleDamping
	p.Pos.Y += p.VelY

	p.Pos.X += p.VelX
	p.VelX *= parameter.ParticleDriftDamping

	// Distance is measured before the move, life only drains near the target
	if math.Abs(dy) < parameter.ParticleConvergenceBand {
		p.Life -= parameter.ParticleLifeDecay
	}

	return p.Life > 0
}

// Alive reports whether life remains
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// FillAlpha is the fill opacity for the renderer
func (p *Particle) FillAlpha() float64 {
	if p.Highlighted {
		return p.Life * parameter.ParticleAlphaHit
	}
	return p.Life * parameter.ParticleAlphaMiss
}

// RingAlpha is the outline ring opacity, zero for non-highlighted particles
func (p *Particle) RingAlpha() float64 {
	if !p.Highlighted {
		return 0
	}
	return p.Life * parameter.ParticleRingAlpha
}
