package parameter

// Spring Particle Physics (per frame, not per second)
const (
	// ParticleSpringConstant pulls velocity toward the target Y proportionally to distance
	ParticleSpringConstant = 0.05

	// ParticleDamping is the per-frame velocity retention on Y
	ParticleDamping = 0.92

	// ParticleDriftDamping is the per-frame velocity retention on X (no restoring force)
	ParticleDriftDamping = 0.98

	// ParticleConvergenceBand is the distance from target under which life decays
	ParticleConvergenceBand = 30.0

	// ParticleLifeDecay is the life lost per frame inside the convergence band (50 frames to die)
	ParticleLifeDecay = 0.02

	// ParticleJitterX is the full width of the horizontal spawn spread around the centerline
	ParticleJitterX = 100.0

	// ParticleMaxDriftX is the full width of the initial horizontal velocity spread
	ParticleMaxDriftX = 2.0
)

// Particle Appearance
const (
	ParticleRadiusHit  = 3.0
	ParticleRadiusMiss = 2.0

	// ParticleAlphaHit and ParticleAlphaMiss scale fill opacity by remaining life
	ParticleAlphaHit  = 0.8
	ParticleAlphaMiss = 0.6

	// ParticleRingAlpha scales the outline ring opacity of highlighted particles
	ParticleRingAlpha = 0.3
	ParticleRingWidth = 2.0
)
