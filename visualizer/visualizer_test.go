package visualizer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/engine"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/metrics"
	"github.com/lixenwraith/kernel-lens/tween"
)

type constRandom float64

func (r constRandom) Float64() float64 { return float64(r) }

type nullSurface struct{ clears int }

func (s *nullSurface) Clear()                                                         { s.clears++ }
func (s *nullSurface) DrawCircle(core.Point, float64, core.RGB, float64)              {}
func (s *nullSurface) DrawStrokeRing(core.Point, float64, core.RGB, float64, float64) {}
func (s *nullSurface) Width() float64                                                 { return 600 }

type recordingShape struct{ texts []string }

func (s *recordingShape) MorphTo(string, core.RGB, time.Duration, tween.Easing) {}
func (s *recordingShape) SetText(v string)                                      { s.texts = append(s.texts, v) }
func (s *recordingShape) MoveAnchorTo(float64, time.Duration, tween.Easing)     {}

type recordingMetrics struct {
	reports   []metrics.Report
	verbosity level.Verbosity
}

func (m *recordingMetrics) ShowMetrics(r metrics.Report)   { m.reports = append(m.reports, r) }
func (m *recordingMetrics) SetVerbosity(v level.Verbosity) { m.verbosity = v }

func (m *recordingMetrics) last() metrics.Report { return m.reports[len(m.reports)-1] }

type recordingTooltip struct {
	shown   []TooltipContent
	index   int
	visible bool
}

func (t *recordingTooltip) ShowTooltip(index int, c TooltipContent, _, _ int) {
	t.shown = append(t.shown, c)
	t.index = index
	t.visible = true
}

func (t *recordingTooltip) HideTooltip() { t.visible = false }

type fixture struct {
	vis     *Visualizer
	surface *nullSurface
	shape   *recordingShape
	metrics *recordingMetrics
	tooltip *recordingTooltip
	clock   *engine.ManualClock
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, cfg Config, draw float64) *fixture {
	t.Helper()
	f := &fixture{
		surface: &nullSurface{},
		shape:   &recordingShape{},
		metrics: &recordingMetrics{},
		tooltip: &recordingTooltip{},
		clock:   engine.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		logs:    &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	vis, err := New(cfg, Collaborators{
		Surface: f.surface,
		Shape:   f.shape,
		Metrics: f.metrics,
		Tooltip: f.tooltip,
	}, WithRandom(constRandom(draw)), WithClock(f.clock), WithLogger(logger))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	f.vis = vis
	return f
}

// run ticks in frame-sized steps so particle physics advance as in the live loop
func (f *fixture) run(d time.Duration) {
	const frame = 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		f.clock.Advance(frame)
		f.vis.Tick(frame)
	}
}

func TestNewDefaults(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)

	st := f.vis.State()
	if st.Descriptor != 3 || st.TransferSize != 4096 || st.CacheHit != 85 || st.CurrentLayer != 0 {
		t.Errorf("State() = %+v", st)
	}
	if f.vis.Profile().Name != level.Developer {
		t.Errorf("Profile() = %q", f.vis.Profile().Name)
	}
	if !f.vis.Playing() {
		t.Error("visualizer should start playing")
	}
	if len(f.metrics.reports) == 0 {
		t.Fatal("metrics not shown on creation")
	}
	r := f.metrics.last()
	if r.Latency != 163.5 || r.IOOps != 1 || r.TransferKB != 4 {
		t.Errorf("initial report = %+v", r)
	}
}

func TestNewUnknownSyscall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Syscall = "write"
	if _, err := New(cfg, Collaborators{}); err == nil {
		t.Fatal("expected error for unknown syscall")
	}
}

func TestUnknownDifficultyFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Difficulty = "wizard"
	f := newFixture(t, cfg, 0.5)

	if f.vis.Profile().Name != level.Developer {
		t.Errorf("Profile() = %q, want developer", f.vis.Profile().Name)
	}
	if !strings.Contains(f.logs.String(), "unknown difficulty") {
		t.Error("fallback not logged")
	}

	f.vis.SetDifficulty("nope")
	if !strings.Contains(f.logs.String(), "level=WARN") {
		t.Error("fallback should log at warn")
	}
}

func TestInputClamping(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *Visualizer)
		check func(st engine.State) bool
	}{
		{"negative fd", func(v *Visualizer) { v.SetDescriptor(-4) }, func(st engine.State) bool { return st.Descriptor == 0 }},
		{"huge fd", func(v *Visualizer) { v.SetDescriptor(5000) }, func(st engine.State) bool { return st.Descriptor == 1023 }},
		{"zero size", func(v *Visualizer) { v.SetTransferSize(0) }, func(st engine.State) bool { return st.TransferSize == 1 }},
		{"huge size", func(v *Visualizer) { v.SetTransferSize(1 << 30) }, func(st engine.State) bool { return st.TransferSize == 1<<20 }},
		{"negative cache", func(v *Visualizer) { v.SetCacheHit(-1) }, func(st engine.State) bool { return st.CacheHit == 0 }},
		{"cache over 100", func(v *Visualizer) { v.SetCacheHit(150) }, func(st engine.State) bool { return st.CacheHit == 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, DefaultConfig(), 0.5)
			tt.apply(f.vis)
			if st := f.vis.State(); !tt.check(st) {
				t.Errorf("state after clamp = %+v", st)
			}
		})
	}
}

func TestSettersRecomputeMetrics(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	before := len(f.metrics.reports)

	f.vis.SetCacheHit(0)
	if got := f.metrics.last(); got.Latency != 163.5 || got.IOOps != 1 {
		t.Errorf("report at cache 0 = %+v", got)
	}

	f.vis.SetTransferSize(65536)
	if got := f.metrics.last(); got.IOOps != 16 || got.TransferKB != 64 || got.Latency != 2563.5 {
		t.Errorf("report at 64KB = %+v", got)
	}

	f.vis.SetDescriptor(9)
	if len(f.metrics.reports) != before+3 {
		t.Errorf("each setter should push metrics, got %d updates", len(f.metrics.reports)-before)
	}
	if f.vis.Metrics() != f.metrics.last() {
		t.Error("Metrics() out of sync with display")
	}
}

func TestDescriptorUpdatesOriginLabel(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	f.vis.Tick(0)

	f.vis.SetDescriptor(42)
	if f.vis.Layers().Layers[0].Label != "fd=42" {
		t.Errorf("origin label = %q", f.vis.Layers().Layers[0].Label)
	}
	if last := f.shape.texts[len(f.shape.texts)-1]; last != "fd=42" {
		t.Errorf("displayed label = %q", last)
	}
}

func TestInstancesAreIsolated(t *testing.T) {
	a := newFixture(t, DefaultConfig(), 0.5)
	b := newFixture(t, DefaultConfig(), 0.5)

	a.vis.SetDescriptor(11)
	if b.vis.Layers().Layers[0].Label != "fd=3" {
		t.Errorf("label leaked across instances: %q", b.vis.Layers().Layers[0].Label)
	}
}

func TestPlayPauseToggle(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)

	f.vis.Pause()
	if f.vis.Playing() {
		t.Fatal("Pause did not pause")
	}
	f.run(5 * time.Second)
	if f.vis.State().CurrentLayer != 0 || f.vis.ParticleCount() != 0 {
		t.Errorf("paused visualizer progressed: %+v", f.vis.State())
	}

	f.vis.Toggle()
	if !f.vis.Playing() {
		t.Fatal("Toggle did not resume")
	}
	f.run(2100 * time.Millisecond)
	if f.vis.State().CurrentLayer != 1 {
		t.Errorf("CurrentLayer = %d, want 1", f.vis.State().CurrentLayer)
	}
	if f.vis.ParticleCount() == 0 {
		t.Error("no particles after first transition")
	}
}

func TestParticlesDrainAfterCycle(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	f.run(10100 * time.Millisecond)
	if f.vis.ParticleCount() == 0 {
		t.Fatal("expected live particles after the last transition")
	}

	f.vis.Pause()
	f.run(10 * time.Second)
	if f.vis.ParticleCount() != 0 {
		t.Errorf("%d particles still alive after settling", f.vis.ParticleCount())
	}
}

func TestMissRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheHit = 0
	f := newFixture(t, cfg, 0.5)

	f.run(2010 * time.Millisecond)
	if f.vis.PendingRoundtrips() != 1 {
		t.Fatalf("PendingRoundtrips() = %d, want 1", f.vis.PendingRoundtrips())
	}
	count := f.vis.ParticleCount()

	f.run(520 * time.Millisecond)
	if f.vis.PendingRoundtrips() != 0 {
		t.Error("roundtrip did not fire after 500ms")
	}
	if f.vis.ParticleCount() != count+11 {
		t.Errorf("particles = %d, want %d after roundtrip", f.vis.ParticleCount(), count+11)
	}
}

func TestSetDifficulty(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	f.run(3 * time.Second)

	f.vis.SetDifficulty(level.Expert)
	if f.vis.Profile().Name != level.Expert {
		t.Fatalf("Profile() = %q", f.vis.Profile().Name)
	}
	if !f.metrics.verbosity.ShowBreakdown() {
		t.Error("expert verbosity not pushed to metrics display")
	}

	// Rebuilt timeline starts a fresh cycle: at 1.5x expert reaches layer 1 after 1.33s
	f.run(1300 * time.Millisecond)
	if f.vis.State().CurrentLayer != 0 {
		t.Errorf("CurrentLayer = %d, want 0 before the first transition", f.vis.State().CurrentLayer)
	}
	f.run(50 * time.Millisecond)
	if f.vis.State().CurrentLayer != 1 {
		t.Errorf("CurrentLayer = %d, want 1", f.vis.State().CurrentLayer)
	}

	f.vis.CycleDifficulty()
	if f.vis.Profile().Name != level.Newcomer {
		t.Errorf("CycleDifficulty from expert = %q, want newcomer", f.vis.Profile().Name)
	}
}

func TestDifficultyKeepsPause(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	f.vis.Pause()
	f.vis.SetDifficulty(level.Newcomer)
	if f.vis.Playing() {
		t.Error("difficulty change resumed a paused visualizer")
	}
}

func TestHoverFiltersByVerbosity(t *testing.T) {
	tests := []struct {
		level    level.Name
		wantDesc bool
		wantCode bool
	}{
		{level.Newcomer, true, false},
		{level.Developer, true, true},
		{level.Expert, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Difficulty = tt.level
			f := newFixture(t, cfg, 0.5)

			f.vis.Hover(2, 10, 10)
			if !f.tooltip.visible || f.tooltip.index != 2 {
				t.Fatal("tooltip not shown")
			}
			c := f.tooltip.shown[len(f.tooltip.shown)-1]
			if c.Title == "" {
				t.Error("title missing")
			}
			if (c.Description != "") != tt.wantDesc {
				t.Errorf("description present = %v, want %v", c.Description != "", tt.wantDesc)
			}
			if (c.SampleCode != "") != tt.wantCode {
				t.Errorf("sample code present = %v, want %v", c.SampleCode != "", tt.wantCode)
			}
			if f.vis.Hovered() != 2 {
				t.Errorf("Hovered() = %d", f.vis.Hovered())
			}

			f.vis.Unhover()
			if f.tooltip.visible || f.vis.Hovered() != -1 {
				t.Error("Unhover did not hide the tooltip")
			}
		})
	}
}

func TestHoverOutOfRange(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0.5)
	f.vis.Hover(1, 0, 0)
	f.vis.Hover(9, 0, 0)
	if f.tooltip.visible {
		t.Error("hover outside the layer range should hide the tooltip")
	}
}

func TestDestroy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheHit = 0
	f := newFixture(t, cfg, 0.5)
	f.run(2010 * time.Millisecond)
	f.vis.Hover(0, 0, 0)

	if f.vis.ParticleCount() == 0 || f.vis.PendingRoundtrips() == 0 {
		t.Fatal("fixture should have particles and a pending roundtrip")
	}

	f.vis.Destroy()
	if !f.vis.Destroyed() || f.vis.Playing() {
		t.Error("Destroy did not stop the visualizer")
	}
	if f.vis.ParticleCount() != 0 || f.vis.PendingRoundtrips() != 0 {
		t.Error("Destroy left particles or roundtrips behind")
	}
	if f.tooltip.visible {
		t.Error("Destroy left the tooltip open")
	}

	clears := f.surface.clears
	texts := len(f.shape.texts)
	f.run(20 * time.Second)
	f.vis.Play()
	f.vis.SetDifficulty(level.Expert)
	f.vis.SetCacheHit(50)
	f.vis.Destroy()

	if f.surface.clears != clears || len(f.shape.texts) != texts {
		t.Error("destroyed visualizer still renders")
	}
	if f.vis.State().CacheHit != 0 {
		t.Error("destroyed visualizer accepted input")
	}
}

func TestNilCollaborators(t *testing.T) {
	v, err := New(DefaultConfig(), Collaborators{}, WithRandom(constRandom(0)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 1000; i++ {
		v.Tick(16 * time.Millisecond)
	}
	v.Hover(1, 0, 0)
	v.SetDifficulty(level.Expert)
	v.Destroy()
	if v.ParticleCount() != 0 {
		t.Error("headless visualizer should not hold particles")
	}
}
