package audio

import "errors"

// CueType identifies a burst cue
type CueType int

const (
	CueHit  CueType = iota // Bell, burst served from the page cache
	CueMiss                // Low buzz, request continues to the device
	cueTypeCount
)

// String returns the cue name
func (c CueType) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Config controls audio output
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 to 1.0
	SampleRate   int
}

// Sentinel errors
var (
	ErrDisabled = errors.New("audio disabled")
)
