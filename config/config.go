// Package config loads application settings from YAML and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/kernel-lens/audio"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/visualizer"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "KERNEL_LENS_"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the application configuration
type Config struct {
	Descriptor   int         `yaml:"descriptor"`
	TransferSize int         `yaml:"transfer_size"`
	CacheHit     int         `yaml:"cache_hit"`
	Difficulty   string      `yaml:"difficulty"`
	Syscall      string      `yaml:"syscall"`
	FPS          int         `yaml:"fps"`
	Audio        AudioConfig `yaml:"audio"`
}

// AudioConfig controls cue playback, volume is a percentage
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
	Volume  int  `yaml:"volume"`
}

const (
	minFPS = 10
	maxFPS = 120
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Descriptor:   parameter.DefaultDescriptor,
		TransferSize: parameter.DefaultTransferSize,
		CacheHit:     parameter.DefaultCacheHit,
		Difficulty:   string(level.Default),
		Syscall:      "read",
		FPS:          int(1000 / parameter.FrameUpdateInterval.Milliseconds()),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  int(parameter.DefaultMasterVolume * 100),
		},
	}
}

// Load builds a config from defaults, the optional YAML file at path and KERNEL_LENS_* variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &cfg, nil
}

// applyEnv overrides fields from the environment, malformed values are errors rather than ignored
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"DESCRIPTOR", &cfg.Descriptor},
		{"TRANSFER_SIZE", &cfg.TransferSize},
		{"CACHE_HIT", &cfg.CacheHit},
		{"FPS", &cfg.FPS},
		{"AUDIO_VOLUME", &cfg.Audio.Volume},
	}
	for _, e := range ints {
		v, ok := lookup(EnvPrefix + e.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, e.key, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvPrefix + "DIFFICULTY"); ok && v != "" {
		cfg.Difficulty = v
	}
	if v, ok := lookup(EnvPrefix + "SYSCALL"); ok && v != "" {
		cfg.Syscall = v
	}
	if v, ok := lookup(EnvPrefix + "AUDIO_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sAUDIO_ENABLED: %v", ErrInvalid, EnvPrefix, err)
		}
		cfg.Audio.Enabled = b
	}
	return nil
}

// Validate checks ranges and names, unknown difficulties and syscalls are rejected here
// even though the visualizer itself would fall back
func (c *Config) Validate() error {
	c.Difficulty = strings.ToLower(strings.TrimSpace(c.Difficulty))
	c.Syscall = strings.ToLower(strings.TrimSpace(c.Syscall))

	if c.Descriptor < parameter.MinDescriptor || c.Descriptor > parameter.MaxDescriptor {
		return fmt.Errorf("%w: descriptor must be in [%d,%d], got %d", ErrInvalid, parameter.MinDescriptor, parameter.MaxDescriptor, c.Descriptor)
	}
	if c.TransferSize < parameter.MinTransferSize || c.TransferSize > parameter.MaxTransferSize {
		return fmt.Errorf("%w: transfer_size must be in [%d,%d], got %d", ErrInvalid, parameter.MinTransferSize, parameter.MaxTransferSize, c.TransferSize)
	}
	if c.CacheHit < parameter.MinCacheHit || c.CacheHit > parameter.MaxCacheHit {
		return fmt.Errorf("%w: cache_hit must be in [%d,%d], got %d", ErrInvalid, parameter.MinCacheHit, parameter.MaxCacheHit, c.CacheHit)
	}
	if _, ok := level.Builtin().Lookup(level.Name(c.Difficulty)); !ok {
		return fmt.Errorf("%w: unknown difficulty: %q", ErrInvalid, c.Difficulty)
	}
	if !slices.Contains(layer.Syscalls(), c.Syscall) {
		return fmt.Errorf("%w: unsupported syscall: %q", ErrInvalid, c.Syscall)
	}
	if c.FPS < minFPS || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps must be in [%d,%d], got %d", ErrInvalid, minFPS, maxFPS, c.FPS)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("%w: audio volume must be in [0,100], got %d", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Visualizer returns the simulation parameters
func (c *Config) Visualizer() visualizer.Config {
	return visualizer.Config{
		Descriptor:   c.Descriptor,
		TransferSize: c.TransferSize,
		CacheHit:     c.CacheHit,
		Difficulty:   level.Name(c.Difficulty),
		Syscall:      c.Syscall,
	}
}

// AudioPlayer returns the cue player settings
func (c *Config) AudioPlayer() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: float64(c.Audio.Volume) / 100,
		SampleRate:   parameter.AudioSampleRate,
	}
}
