// Package layer holds the static description of the pipeline stages a syscall crosses:
// shape outlines, colors, vertical positions, labels and tooltip content.
//
// Sets are decoded from YAML documents embedded under syscalls/ and validated at load.
// A loaded Set is a template; every visualizer works on its own Clone.
package layer

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/kernel-lens/core"
)

// Count is the number of pipeline stages every syscall set describes
const Count = 6

//go:embed syscalls/*.yaml
var syscallFS embed.FS

var ErrUnknownSyscall = errors.New("unknown syscall")

// Tooltip is the explanatory content shown when hovering a layer
type Tooltip struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	SampleCode  string `yaml:"code"`
}

// Stage describes one pipeline stage
type Stage struct {
	ID      string
	Name    string
	ShapeID string
	Color   core.RGB
	Y       float64
	Label   string
	Tooltip Tooltip
}

// Set is the ordered layer sequence for one syscall plus the shapes it references
type Set struct {
	Syscall string
	Shapes  map[string]string
	Layers  []Stage
}

// document is the on-disk form, colors stay strings until validated
type document struct {
	Syscall string            `yaml:"syscall"`
	Shapes  map[string]string `yaml:"shapes"`
	Layers  []struct {
		ID      string  `yaml:"id"`
		Name    string  `yaml:"name"`
		Shape   string  `yaml:"shape"`
		Color   string  `yaml:"color"`
		Y       float64 `yaml:"y"`
		Label   string  `yaml:"label"`
		Tooltip Tooltip `yaml:"tooltip"`
	} `yaml:"layers"`
}

// Syscalls lists the embedded syscall sets
func Syscalls() []string {
	entries, err := fs.ReadDir(syscallFS, "syscalls")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load decodes and validates the embedded set for a syscall
func Load(syscall string) (*Set, error) {
	data, err := syscallFS.ReadFile(path.Join("syscalls", syscall+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading layers for %q: %w", syscall, ErrUnknownSyscall)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading layers for %q: %w", syscall, err)
	}
	return set, nil
}

// MustLoad panics on a missing or invalid set; static data bugs fail at startup
func MustLoad(syscall string) *Set {
	set, err := Load(syscall)
	if err != nil {
		panic(err)
	}
	return set
}

// Parse decodes a YAML layer document and validates it
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding layer document: %w", err)
	}

	set := &Set{
		Syscall: doc.Syscall,
		Shapes:  doc.Shapes,
		Layers:  make([]Stage, 0, len(doc.Layers)),
	}
	for i, l := range doc.Layers {
		color, err := core.ParseHex(l.Color)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		set.Layers = append(set.Layers, Stage{
			ID:      l.ID,
			Name:    l.Name,
			ShapeID: l.Shape,
			Color:   color,
			Y:       l.Y,
			Label:   l.Label,
			Tooltip: l.Tooltip,
		})
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate checks configuration integrity: stage count, shape references, top-to-bottom order
func (s *Set) Validate() error {
	if strings.TrimSpace(s.Syscall) == "" {
		return fmt.Errorf("syscall name is required")
	}
	if len(s.Layers) != Count {
		return fmt.Errorf("expected %d layers, got %d", Count, len(s.Layers))
	}

	seen := make(map[string]struct{}, len(s.Layers))
	for i, l := range s.Layers {
		if strings.TrimSpace(l.ID) == "" {
			return fmt.Errorf("layer %d id is required", i)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("duplicate layer id: %s", l.ID)
		}
		seen[l.ID] = struct{}{}

		if _, ok := s.Shapes[l.ShapeID]; !ok {
			return fmt.Errorf("layer %q references missing shape %q", l.ID, l.ShapeID)
		}
		if i > 0 && l.Y <= s.Layers[i-1].Y {
			return fmt.Errorf("layer %q y=%v must be below layer %q y=%v", l.ID, l.Y, s.Layers[i-1].ID, s.Layers[i-1].Y)
		}
	}
	return nil
}

// Clone returns a deep copy safe for per-instance label edits
func (s *Set) Clone() *Set {
	c := &Set{
		Syscall: s.Syscall,
		Shapes:  make(map[string]string, len(s.Shapes)),
		Layers:  make([]Stage, len(s.Layers)),
	}
	for k, v := range s.Shapes {
		c.Shapes[k] = v
	}
	copy(c.Layers, s.Layers)
	return c
}

// Len returns the number of layers
func (s *Set) Len() int {
	return len(s.Layers)
}

// Last returns the index of the deepest layer
func (s *Set) Last() int {
	return len(s.Layers) - 1
}

// Path returns the shape outline of layer i
func (s *Set) Path(i int) string {
	return s.Shapes[s.Layers[i].ShapeID]
}

// SetOriginLabel rewrites the origin layer label for a new descriptor
func (s *Set) SetOriginLabel(descriptor int) {
	s.Layers[0].Label = DescriptorLabel(descriptor)
}

// DescriptorLabel formats a file descriptor the way the origin layer shows it
func DescriptorLabel(descriptor int) string {
	return fmt.Sprintf("fd=%d", descriptor)
}
