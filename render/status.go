package render

import (
	"fmt"

	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// Status is the control state shown in the bottom bar
type Status struct {
	Playing      bool
	Level        string
	Descriptor   int
	TransferSize int
	CacheHit     int
	Audio        bool // Audio output available and not muted
}

const keyHints = "space pause  d level  f/F fd  s/S size  c/C cache  m mute  tab info  q quit"

// drawStatusBar paints badges left to right, hints fill the remainder when they fit
func drawStatusBar(buf *Buffer, y int, st Status) {
	w, _ := buf.Bounds()
	buf.FillRect(0, y, w, 1, RgbStatusBg)

	badge, badgeBg := parameter.PausedStr, RgbPausedBg
	if st.Playing {
		badge, badgeBg = parameter.PlayingStr, RgbPlayingBg
	}
	x := drawBadge(buf, 0, y, badge, badgeBg)
	x = drawBadge(buf, x+1, y, " "+st.Level+" ", RgbLevelBg)

	params := fmt.Sprintf(" fd=%d  size=%dB  cache=%d%% ", st.Descriptor, st.TransferSize, st.CacheHit)
	x = buf.DrawText(x+1, y, params, RgbText, false)

	if st.Audio {
		x = buf.DrawText(x, y, parameter.AudioStr, RgbTitle, false)
	}

	if x+len(keyHints)+1 <= w {
		buf.DrawText(w-len(keyHints)-1, y, keyHints, RgbDim, false)
	}
}

func drawBadge(buf *Buffer, x, y int, text string, bg core.RGB) int {
	for _, r := range text {
		buf.SetWithBg(x, y, r, RgbStatusText, bg)
		x++
	}
	return x
}
