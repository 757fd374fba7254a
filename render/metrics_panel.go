package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/metrics"
	"github.com/lixenwraith/kernel-lens/parameter"
)

const (
	metricLatency = iota
	metricCache
	metricIOOps
	metricTransfer
	metricCount
)

// MetricsPanel shows the metric report, digits glide to new values on a spring
type MetricsPanel struct {
	spring   harmonica.Spring
	springDT time.Duration // Frame delta the spring coefficients were derived for
	pos      [metricCount]float64
	vel    [metricCount]float64
	target [metricCount]float64

	report    metrics.Report
	names     []string
	hidden    bool
	breakdown bool
	primed    bool
}

// NewMetricsPanel creates a panel, names label the breakdown columns in layer order
func NewMetricsPanel(names []string) *MetricsPanel {
	return &MetricsPanel{names: names}
}

// ShowMetrics sets new targets, the first report is shown without animation
func (m *MetricsPanel) ShowMetrics(r metrics.Report) {
	m.report = r
	m.target = [metricCount]float64{r.Latency, float64(r.CacheHit), float64(r.IOOps), float64(r.TransferKB)}
	if !m.primed {
		m.pos = m.target
		m.primed = true
	}
}

// SetVerbosity toggles the panel and its per-layer breakdown row
func (m *MetricsPanel) SetVerbosity(v level.Verbosity) {
	m.hidden = !v.ShowMetrics
	m.breakdown = v.ShowBreakdown()
}

// Step advances the springs by dt and snaps values that have settled
// Settling time depends only on elapsed time, not on the frame rate
func (m *MetricsPanel) Step(dt time.Duration) {
	dt = min(dt, parameter.MaxFrameDelta)
	if dt <= 0 {
		return
	}
	if dt != m.springDT {
		m.spring = harmonica.NewSpring(dt.Seconds(), parameter.MetricSpringFrequency, parameter.MetricSpringDamping)
		m.springDT = dt
	}
	for i := range m.pos {
		m.pos[i], m.vel[i] = m.spring.Update(m.pos[i], m.vel[i], m.target[i])
		if math.Abs(m.pos[i]-m.target[i]) < 0.05 && math.Abs(m.vel[i]) < 0.05 {
			m.pos[i], m.vel[i] = m.target[i], 0
		}
	}
}

// Settled reports whether every value reached its target
func (m *MetricsPanel) Settled() bool {
	return m.pos == m.target
}

// Line returns the summary row as displayed this frame
func (m *MetricsPanel) Line() string {
	return fmt.Sprintf("Latency %.1fμs   Cache hit %d%%   I/O ops %d   Transfer %dKB",
		math.Max(m.pos[metricLatency], 0),
		roundNonNeg(m.pos[metricCache]),
		roundNonNeg(m.pos[metricIOOps]),
		roundNonNeg(m.pos[metricTransfer]),
	)
}

// Visible reports whether the active profile shows metrics
func (m *MetricsPanel) Visible() bool {
	return !m.hidden
}

// BreakdownLine returns the per-layer latency row, empty unless the profile asks for it
func (m *MetricsPanel) BreakdownLine() string {
	if m.hidden || !m.breakdown {
		return ""
	}
	parts := make([]string, 0, len(m.report.Breakdown))
	for i, c := range m.report.Breakdown {
		name := fmt.Sprintf("L%d", i)
		if i < len(m.names) {
			name = m.names[i]
		}
		parts = append(parts, fmt.Sprintf("%s %.1f", name, c))
	}
	return strings.Join(parts, " │ ")
}

func roundNonNeg(v float64) int {
	return int(math.Round(math.Max(v, 0)))
}

// Draw paints the summary at row y and the breakdown below it
func (m *MetricsPanel) Draw(buf *Buffer, x, y int) {
	if m.hidden {
		return
	}
	buf.DrawText(x, y, m.Line(), RgbMetricValue, false)
	if line := m.BreakdownLine(); line != "" {
		buf.DrawText(x, y+1, line, RgbMetricLabel, false)
	}
}
