// Package level defines the difficulty profiles that pace the visualization
package level

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Name identifies a difficulty profile
type Name string

const (
	Newcomer  Name = "newcomer"
	Developer Name = "developer"
	Expert    Name = "expert"

	Default = Developer
)

// Detail selects how deep the per-layer information goes
type Detail string

const (
	DetailSimple   Detail = "simple"
	DetailDetailed Detail = "detailed"
	DetailExpert   Detail = "expert"
)

//go:embed levels.yaml
var levelsYAML []byte

// Verbosity flags are consumed by presentation collaborators only
type Verbosity struct {
	ShowTooltips bool   `yaml:"show_tooltips"`
	ShowCode     bool   `yaml:"show_code"`
	ShowMetrics  bool   `yaml:"show_metrics"`
	LayerDetail  Detail `yaml:"layer_detail"`
}

// ShowBreakdown reports whether the per-layer latency row accompanies the metrics
func (v Verbosity) ShowBreakdown() bool {
	return v.ShowMetrics && v.LayerDetail == DetailExpert
}

// Profile controls animation pacing and particle density
type Profile struct {
	Name            Name    `yaml:"name"`
	Title           string  `yaml:"title"`
	Description     string  `yaml:"description"`
	AnimationSpeed  float64 `yaml:"animation_speed"`
	ParticleDensity float64 `yaml:"particle_density"`
	Verbosity       `yaml:",inline"`
}

// Table is an immutable set of profiles with a fallback
type Table struct {
	fallback Name
	order    []Name
	profiles map[Name]Profile
}

type document struct {
	Default Name      `yaml:"default"`
	Levels  []Profile `yaml:"levels"`
}

var builtin = MustParse(levelsYAML)

// Builtin returns the embedded profile table
func Builtin() *Table {
	return builtin
}

// Get looks up a profile in the embedded table, unknown names fall back to the default
func Get(name Name) Profile {
	p, _ := builtin.Lookup(name)
	return p
}

// MustParse panics on an invalid table
func MustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and validates a YAML profile table
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding level table: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("at least one level is required")
	}

	t := &Table{
		fallback: doc.Default,
		profiles: make(map[Name]Profile, len(doc.Levels)),
	}
	for i, p := range doc.Levels {
		p.Name = Name(strings.ToLower(strings.TrimSpace(string(p.Name))))
		if p.Name == "" {
			return nil, fmt.Errorf("level %d name is required", i)
		}
		if _, dup := t.profiles[p.Name]; dup {
			return nil, fmt.Errorf("duplicate level name: %s", p.Name)
		}
		if p.AnimationSpeed <= 0 {
			return nil, fmt.Errorf("level %s: animation_speed must be positive, got %v", p.Name, p.AnimationSpeed)
		}
		if p.ParticleDensity < 0 {
			return nil, fmt.Errorf("level %s: particle_density must not be negative, got %v", p.Name, p.ParticleDensity)
		}
		switch p.LayerDetail {
		case "":
			p.LayerDetail = DetailDetailed
		case DetailSimple, DetailDetailed, DetailExpert:
		default:
			return nil, fmt.Errorf("level %s: unknown layer_detail %q", p.Name, p.LayerDetail)
		}
		if p.Title == "" {
			p.Title = string(p.Name)
		}
		t.profiles[p.Name] = p
		t.order = append(t.order, p.Name)
	}

	if t.fallback == "" {
		t.fallback = t.order[0]
	}
	if _, ok := t.profiles[t.fallback]; !ok {
		return nil, fmt.Errorf("default level %q is not defined", t.fallback)
	}
	return t, nil
}

// Lookup returns the named profile, or the default profile and false when unknown
func (t *Table) Lookup(name Name) (Profile, bool) {
	key := Name(strings.ToLower(strings.TrimSpace(string(name))))
	if p, ok := t.profiles[key]; ok {
		return p, true
	}
	return t.profiles[t.fallback], false
}

// Default returns the fallback profile
func (t *Table) Default() Profile {
	return t.profiles[t.fallback]
}

// Names lists profiles in declaration order
func (t *Table) Names() []Name {
	out := make([]Name, len(t.order))
	copy(out, t.order)
	return out
}

// Next cycles to the profile after name, wrapping around
func (t *Table) Next(name Name) Profile {
	for i, n := range t.order {
		if n == name {
			return t.profiles[t.order[(i+1)%len(t.order)]]
		}
	}
	return t.Default()
}
