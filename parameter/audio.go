package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap between consecutive cues, bursts arriving faster are dropped
	MinCueGap = 80 * time.Millisecond
)

// Hit Cue (bell, served from cache)
const (
	HitCueFrequency        = 880.0
	HitCueDuration         = 250 * time.Millisecond
	HitCueAttack           = 5 * time.Millisecond
	HitCueFundamentalDecay = 220 * time.Millisecond
	HitCueOvertoneDecay    = 90 * time.Millisecond
)

// Miss Cue (low buzz, goes to the device)
const (
	MissCueFrequency = 110.0
	MissCueDuration  = 120 * time.Millisecond
	MissCueAttack    = 5 * time.Millisecond
	MissCueRelease   = 40 * time.Millisecond
)

// Volume Defaults
const (
	DefaultMasterVolume = 0.5
	HitCueVolume        = 0.6
	MissCueVolume       = 0.4
)
