package render

import "github.com/lixenwraith/kernel-lens/core"

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
	Bold bool
}
