package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the elapsed time fed to the timeline after a stall (suspend, slow terminal)
	MaxFrameDelta = 250 * time.Millisecond

	// EventChannelSize is the buffered capacity between the terminal poller and the frame loop
	EventChannelSize = 100
)

// Timeline Choreography
const (
	// LayerInterval is the base spacing between consecutive layer transitions (scaled by speed)
	LayerInterval = 2 * time.Second

	// MorphDuration is the base shape morph and label travel duration (scaled by speed)
	MorphDuration = 1500 * time.Millisecond

	// LabelTextDuration is the fixed label text swap duration, not scaled by speed
	LabelTextDuration = 300 * time.Millisecond

	// RepeatDelay is the pause after the last transition before the loop restarts, not scaled by speed
	RepeatDelay = 1 * time.Second

	// MissRoundtripDelay is the real-time delay before the secondary burst on a cache miss
	// Deliberately unscaled by speed: models wall-clock I/O penalty
	MissRoundtripDelay = 500 * time.Millisecond

	// BurstBytesPerParticle divides the transfer size into a particle burst size
	BurstBytesPerParticle = 200

	// ElasticAmplitude and ElasticPeriod shape the morph overshoot curve
	ElasticAmplitude = 1.0
	ElasticPeriod    = 0.5
)
