package visualizer

import (
	"log/slog"

	"github.com/lixenwraith/kernel-lens/engine"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Config holds the initial simulation parameters
type Config struct {
	Descriptor   int
	TransferSize int
	CacheHit     int
	Difficulty   level.Name
	Syscall      string
}

// DefaultConfig returns fd=3, 4KB, 85% cache hits at developer level
func DefaultConfig() Config {
	return Config{
		Descriptor:   parameter.DefaultDescriptor,
		TransferSize: parameter.DefaultTransferSize,
		CacheHit:     parameter.DefaultCacheHit,
		Difficulty:   level.Default,
		Syscall:      "read",
	}
}

type options struct {
	levels       *level.Table
	layers       *layer.Set
	rng          engine.Random
	clock        engine.Clock
	newScheduler func() engine.Scheduler
	logger       *slog.Logger
}

// Option customizes construction, mainly for tests
type Option func(*options)

// WithLevels replaces the embedded difficulty table
func WithLevels(t *level.Table) Option {
	return func(o *options) { o.levels = t }
}

// WithLayers uses a preloaded layer template instead of loading Config.Syscall, it is cloned
func WithLayers(s *layer.Set) Option {
	return func(o *options) { o.layers = s }
}

// WithRandom injects the random source for hit draws and particle jitter
func WithRandom(r engine.Random) Option {
	return func(o *options) { o.rng = r }
}

// WithClock injects the real-time clock backing the deferred queue
func WithClock(c engine.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithScheduler injects the scheduler factory, called on every rebuild
func WithScheduler(f func() engine.Scheduler) Option {
	return func(o *options) { o.newScheduler = f }
}

// WithLogger sets the logger, the default discards
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
