package visualizer

import (
	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/engine"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/metrics"
)

// MetricsDisplay shows the derived metric report
type MetricsDisplay interface {
	ShowMetrics(r metrics.Report)
}

// TooltipContent is a layer tooltip already filtered by the active verbosity
type TooltipContent struct {
	Title       string
	Description string
	SampleCode  string
	Color       core.RGB
}

// TooltipDisplay shows a tooltip for a hovered layer at a screen position
type TooltipDisplay interface {
	ShowTooltip(index int, content TooltipContent, x, y int)
	HideTooltip()
}

// VerbosityAware collaborators are told when the difficulty changes
type VerbosityAware interface {
	SetVerbosity(v level.Verbosity)
}

// Collaborators are the presentation sinks of a visualizer, any of them may be nil
type Collaborators struct {
	Surface   engine.Surface
	Shape     engine.ShapeDisplay
	Highlight engine.Highlighter
	Metrics   MetricsDisplay
	Tooltip   TooltipDisplay
	Observer  engine.BurstObserver
}

// verbosityTargets lists collaborators that want verbosity updates
// A value passed in several roles appears once per role, SetVerbosity must be idempotent
func (c Collaborators) verbosityTargets() []VerbosityAware {
	var out []VerbosityAware
	for _, x := range []any{c.Surface, c.Shape, c.Highlight, c.Metrics, c.Tooltip, c.Observer} {
		if va, ok := x.(VerbosityAware); ok {
			out = append(out, va)
		}
	}
	return out
}
