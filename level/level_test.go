package level

import (
	"strings"
	"testing"
)

func TestBuiltinProfiles(t *testing.T) {
	table := Builtin()

	names := table.Names()
	want := []Name{Newcomer, Developer, Expert}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if table.Default().Name != Default {
		t.Errorf("default profile = %q, want %q", table.Default().Name, Default)
	}

	dev := Get(Developer)
	if dev.AnimationSpeed != 1.0 || dev.ParticleDensity != 1.0 {
		t.Errorf("developer profile = %+v, want unit multipliers", dev)
	}
	if !dev.ShowCode {
		t.Error("developer profile should show code samples")
	}

	if dev.ShowBreakdown() {
		t.Error("developer profile should not show the per-layer breakdown")
	}

	newcomer := Get(Newcomer)
	if newcomer.AnimationSpeed != 1.0 || newcomer.ParticleDensity != 0.5 {
		t.Errorf("newcomer profile = %+v, want normal speed at half density", newcomer)
	}
	if newcomer.ShowCode || newcomer.LayerDetail != DetailSimple {
		t.Errorf("newcomer should hide code at simple detail, got %+v", newcomer.Verbosity)
	}

	expert := Get(Expert)
	if expert.AnimationSpeed != 1.5 || expert.ParticleDensity != 1.5 {
		t.Errorf("expert profile = %+v, want 1.5x speed and density", expert)
	}
	if !expert.ShowBreakdown() {
		t.Error("expert profile should show the per-layer breakdown")
	}

	for _, name := range table.Names() {
		p := Get(name)
		if !p.ShowTooltips || !p.ShowMetrics {
			t.Errorf("%s: tooltips and metrics are shown at every level, got %+v", name, p.Verbosity)
		}
		if p.Description == "" {
			t.Errorf("%s: missing description", name)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	table := Builtin()

	p, ok := table.Lookup("wizard")
	if ok {
		t.Error("Lookup of unknown level reported found")
	}
	if p.Name != Developer {
		t.Errorf("unknown level fell back to %q, want %q", p.Name, Developer)
	}

	p, ok = table.Lookup(" Expert ")
	if !ok || p.Name != Expert {
		t.Errorf("Lookup should normalize case and spaces, got %q ok=%v", p.Name, ok)
	}

	if Get("").Name != Developer {
		t.Error("empty level should fall back to developer")
	}
}

func TestNextCycles(t *testing.T) {
	table := Builtin()

	if got := table.Next(Newcomer).Name; got != Developer {
		t.Errorf("Next(newcomer) = %q", got)
	}
	if got := table.Next(Expert).Name; got != Newcomer {
		t.Errorf("Next(expert) = %q, want wrap to newcomer", got)
	}
	if got := table.Next("bogus").Name; got != Developer {
		t.Errorf("Next(bogus) = %q, want default", got)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "levels: []", "at least one level"},
		{"zero speed", "levels:\n  - {name: a, animation_speed: 0, particle_density: 1}", "animation_speed must be positive"},
		{"negative density", "levels:\n  - {name: a, animation_speed: 1, particle_density: -1}", "particle_density must not be negative"},
		{"duplicate", "levels:\n  - {name: a, animation_speed: 1}\n  - {name: A, animation_speed: 2}", "duplicate level name"},
		{"unnamed", "levels:\n  - {animation_speed: 1}", "name is required"},
		{"bad default", "default: z\nlevels:\n  - {name: a, animation_speed: 1}", "default level"},
		{"bad detail", "levels:\n  - {name: a, animation_speed: 1, layer_detail: deep}", "unknown layer_detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseDefaultsToFirst(t *testing.T) {
	table, err := Parse([]byte("levels:\n  - {name: slow, animation_speed: 0.25, particle_density: 0}\n  - {name: fast, animation_speed: 4}"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Default().Name != "slow" {
		t.Errorf("default = %q, want first declared level", table.Default().Name)
	}
	if table.Default().Title != "slow" {
		t.Errorf("title should default to name, got %q", table.Default().Title)
	}
	if table.Default().LayerDetail != DetailDetailed {
		t.Errorf("layer detail should default to detailed, got %q", table.Default().LayerDetail)
	}
}
