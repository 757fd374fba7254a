package engine

import (
	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/physics"
)

// ParticleSystem owns the live particles of one visualizer
// Without a surface it degrades to a no-op: nothing is emitted, advanced or drawn
type ParticleSystem struct {
	surface   Surface
	rng       Random
	particles []*physics.Particle
}

// NewParticleSystem creates a particle system drawing on surface
func NewParticleSystem(surface Surface, rng Random) *ParticleSystem {
	return &ParticleSystem{
		surface:   surface,
		rng:       rng,
		particles: make([]*physics.Particle, 0, 256),
	}
}

// Emit appends count particles spread around the horizontal centerline, travelling fromY -> toY
// Density scaling is the caller's responsibility. Returns the number emitted
func (ps *ParticleSystem) Emit(count int, fromY, toY float64, color core.RGB, highlighted bool) int {
	if ps.surface == nil || count <= 0 {
		return 0
	}

	centerX := ps.surface.Width() / 2
	for i := 0; i < count; i++ {
		x := centerX + (ps.rng.Float64()-0.5)*parameter.ParticleJitterX
		vx := (ps.rng.Float64() - 0.5) * parameter.ParticleMaxDriftX
		ps.particles = append(ps.particles, physics.NewParticle(core.Point{X: x, Y: fromY}, toY, vx, color, highlighted))
	}
	return count
}

// AdvanceAndPrune steps every particle once, drops the dead, and redraws the survivors
func (ps *ParticleSystem) AdvanceAndPrune() {
	if ps.surface == nil {
		return
	}

	ps.surface.Clear()

	// In-place compaction: survivors shift left, no entry is skipped
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		if !p.Advance() {
			continue
		}
		alive = append(alive, p)
		ps.draw(p)
	}
	for i := len(alive); i < len(ps.particles); i++ {
		ps.particles[i] = nil
	}
	ps.particles = alive
}

func (ps *ParticleSystem) draw(p *physics.Particle) {
	ps.surface.DrawCircle(p.Pos, p.Radius, p.Color, p.FillAlpha())
	if p.Highlighted {
		ps.surface.DrawStrokeRing(p.Pos, p.Radius, p.Color, p.RingAlpha(), parameter.ParticleRingWidth)
	}
}

// Clear drops all particles immediately and blanks the surface
func (ps *ParticleSystem) Clear() {
	for i := range ps.particles {
		ps.particles[i] = nil
	}
	ps.particles = ps.particles[:0]
	if ps.surface != nil {
		ps.surface.Clear()
	}
}

// Len returns the live particle count
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Particles returns the live particles, valid until the next frame
func (ps *ParticleSystem) Particles() []*physics.Particle {
	return ps.particles
}
