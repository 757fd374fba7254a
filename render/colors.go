package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kernel-lens/core"
)

// Palette
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38}    // Tokyo Night background
	RgbText       = core.RGB{R: 220, G: 220, B: 230} // Primary text
	RgbDim        = core.RGB{R: 110, G: 112, B: 130} // Guides, hints, inactive bands
	RgbGuide      = core.RGB{R: 40, G: 42, B: 56}    // Layer separator lines
	RgbTitle      = core.RGB{R: 135, G: 206, B: 250} // Light sky blue

	RgbStatusBg     = core.RGB{R: 36, G: 38, B: 52}
	RgbPlayingBg    = core.RGB{R: 144, G: 238, B: 144} // Light grass green
	RgbPausedBg     = core.RGB{R: 255, G: 165, B: 0}   // Orange
	RgbStatusText   = core.RGB{R: 0, G: 0, B: 0}       // Dark text on status badges
	RgbLevelBg      = core.RGB{R: 128, G: 0, B: 128}   // Dark purple
	RgbMetricValue  = core.RGB{R: 255, G: 255, B: 255}
	RgbMetricLabel  = core.RGB{R: 160, G: 160, B: 175}
	RgbTooltipBg    = core.RGB{R: 20, G: 21, B: 30}
	RgbTooltipCode  = core.RGB{R: 180, G: 220, B: 160}
)

// Style converts a cell color pair into a tcell style
func Style(fg, bg core.RGB, bold bool) tcell.Style {
	s := tcell.StyleDefault.
		Foreground(TcellColor(fg)).
		Background(TcellColor(bg))
	if bold {
		s = s.Bold(true)
	}
	return s
}

// TcellColor converts a core color to a truecolor tcell color
func TcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
