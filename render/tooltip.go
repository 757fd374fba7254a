package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/visualizer"
)

type lineKind uint8

const (
	lineBorder lineKind = iota
	lineTitle
	lineText
	lineCode
)

type tooltipLine struct {
	text string
	kind lineKind
}

// TooltipView lays out a layer tooltip with lipgloss and paints it as plain cells
// lipgloss only wraps and frames, colors come from the cell buffer
type TooltipView struct {
	visible bool
	index   int
	x, y    int
	color   core.RGB
	lines   []tooltipLine

	inner lipgloss.Style
	box   lipgloss.Style
}

// NewTooltipView creates a hidden tooltip
func NewTooltipView() *TooltipView {
	innerWidth := parameter.TooltipWidth - 4 // Border and one column of padding per side
	return &TooltipView{
		index: -1,
		inner: lipgloss.NewStyle().Width(innerWidth),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
}

// ShowTooltip lays out content anchored near cell x,y
func (t *TooltipView) ShowTooltip(index int, content visualizer.TooltipContent, x, y int) {
	t.visible = true
	t.index = index
	t.x, t.y = x, y
	t.color = content.Color
	t.lines = t.layout(content)
}

// HideTooltip hides the tooltip
func (t *TooltipView) HideTooltip() {
	t.visible = false
	t.index = -1
	t.lines = nil
}

// Visible reports whether a tooltip is shown
func (t *TooltipView) Visible() bool {
	return t.visible
}

// Index returns the layer the tooltip belongs to, -1 when hidden
func (t *TooltipView) Index() int {
	return t.index
}

// Lines returns the laid out text, border included
func (t *TooltipView) Lines() []string {
	out := make([]string, len(t.lines))
	for i, l := range t.lines {
		out[i] = l.text
	}
	return out
}

func (t *TooltipView) layout(c visualizer.TooltipContent) []tooltipLine {
	var body []tooltipLine
	section := func(text string, kind lineKind) {
		if text == "" {
			return
		}
		if len(body) > 0 {
			body = append(body, tooltipLine{kind: lineText})
		}
		for _, l := range splitLines(t.inner.Render(text)) {
			body = append(body, tooltipLine{text: l, kind: kind})
		}
	}
	section(c.Title, lineTitle)
	section(c.Description, lineText)
	section(c.SampleCode, lineCode)

	texts := make([]string, len(body))
	for i, l := range body {
		texts[i] = l.text
	}
	framed := splitLines(t.box.Render(strings.Join(texts, "\n")))

	// Framed rows are top border, one row per body line, bottom border
	out := make([]tooltipLine, len(framed))
	for i, l := range framed {
		kind := lineBorder
		if i > 0 && i-1 < len(body) && i < len(framed)-1 {
			kind = body[i-1].kind
		}
		out[i] = tooltipLine{text: l, kind: kind}
	}
	return out
}

func splitLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

// Draw paints the box offset from its anchor, kept inside the buffer
func (t *TooltipView) Draw(buf *Buffer) {
	if !t.visible || len(t.lines) == 0 {
		return
	}
	bw, bh := buf.Bounds()

	w := 0
	for _, l := range t.lines {
		w = max(w, lipgloss.Width(l.text))
	}
	h := len(t.lines)

	x := t.x + parameter.TooltipOffset
	y := t.y + parameter.TooltipOffset
	if x+w > bw {
		x = max(t.x-parameter.TooltipOffset-w, 0)
	}
	if y+h > bh {
		y = max(bh-h, 0)
	}

	for i, l := range t.lines {
		row := y + i
		buf.FillRect(x, row, w, 1, RgbTooltipBg)

		runes := []rune(l.text)
		for j, r := range runes {
			fg, bold := RgbText, false
			switch {
			case l.kind == lineBorder, j == 0, j == len(runes)-1:
				fg = t.color
			case l.kind == lineTitle:
				fg, bold = t.color, true
			case l.kind == lineCode:
				fg = RgbTooltipCode
			}
			buf.SetFgOnly(x+j, row, r, fg, bold)
		}
	}
}
