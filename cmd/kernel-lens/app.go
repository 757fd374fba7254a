package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/kernel-lens/audio"
	"github.com/lixenwraith/kernel-lens/config"
	"github.com/lixenwraith/kernel-lens/layer"
	"github.com/lixenwraith/kernel-lens/level"
	"github.com/lixenwraith/kernel-lens/parameter"
	"github.com/lixenwraith/kernel-lens/render"
	"github.com/lixenwraith/kernel-lens/visualizer"
)

// app binds one visualizer to a terminal screen, all methods run on the frame loop goroutine
type app struct {
	screen   tcell.Screen
	vis      *visualizer.Visualizer
	renderer *render.Renderer
	player   *audio.Player // nil when audio is not wired
	logger   *slog.Logger
}

// newApp builds the renderer and the visualizer with the renderer's views as collaborators
func newApp(screen tcell.Screen, cfg *config.Config, player *audio.Player, logger *slog.Logger, opts ...visualizer.Option) (*app, error) {
	set, err := layer.Load(cfg.Syscall)
	if err != nil {
		return nil, err
	}

	r, err := render.NewRenderer(screen, set)
	if err != nil {
		return nil, err
	}

	collab := r.Collaborators()
	if player != nil {
		collab.Observer = player
	}

	opts = append([]visualizer.Option{visualizer.WithLayers(set), visualizer.WithLogger(logger)}, opts...)
	vis, err := visualizer.New(cfg.Visualizer(), collab, opts...)
	if err != nil {
		return nil, err
	}

	return &app{
		screen:   screen,
		vis:      vis,
		renderer: r,
		player:   player,
		logger:   logger,
	}, nil
}

// loop drives frames at interval and applies terminal events until quit, ctx cancellation or a closed channel
func (a *app) loop(ctx context.Context, events <-chan tcell.Event, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	a.frame(0)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.logger.Info("quit requested")
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			a.frame(dt)
		}
	}
}

// frame advances the simulation and view animations by dt and paints
func (a *app) frame(dt time.Duration) {
	a.vis.Tick(dt)
	a.renderer.Step(dt)
	a.renderer.Frame(a.status())
}

func (a *app) status() render.Status {
	st := a.vis.State()
	return render.Status{
		Playing:      a.vis.Playing(),
		Level:        a.vis.Profile().Title,
		Descriptor:   st.Descriptor,
		TransferSize: st.TransferSize,
		CacheHit:     st.CacheHit,
		Audio:        a.player != nil && a.player.Available() && !a.player.Muted(),
	}
}

// handleEvent applies one terminal event and reports whether the user asked to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.hoverAt(x, y)

	case *tcell.EventResize:
		w, h := ev.Size()
		a.renderer.Resize(w, h)
		a.setHover(-1, 0, 0)
		a.screen.Sync()
	}
	return false
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		a.cycleHover()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	st := a.vis.State()
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		a.vis.Toggle()
	case 'd':
		a.vis.CycleDifficulty()
	case '1':
		a.vis.SetDifficulty(level.Newcomer)
	case '2':
		a.vis.SetDifficulty(level.Developer)
	case '3':
		a.vis.SetDifficulty(level.Expert)
	case 'f':
		a.vis.SetDescriptor(st.Descriptor + parameter.DescriptorStep)
	case 'F':
		a.vis.SetDescriptor(st.Descriptor - parameter.DescriptorStep)
	case 's':
		a.vis.SetTransferSize(st.TransferSize + parameter.TransferSizeStep)
	case 'S':
		a.vis.SetTransferSize(st.TransferSize - parameter.TransferSizeStep)
	case 'c':
		a.vis.SetCacheHit(st.CacheHit + parameter.CacheHitStep)
	case 'C':
		a.vis.SetCacheHit(st.CacheHit - parameter.CacheHitStep)
	case 'm':
		if a.player != nil {
			muted := a.player.ToggleMute()
			a.logger.Debug("audio mute toggled", "muted", muted)
		}
	}
	return false
}

// hoverAt opens the tooltip of the band under the pointer, or closes it off the bands
func (a *app) hoverAt(x, y int) {
	index := a.renderer.HitTest(x, y)
	if index == a.vis.Hovered() {
		return
	}
	a.setHover(index, x, y)
}

// cycleHover steps the keyboard tooltip through every layer then closes it
func (a *app) cycleHover() {
	next := a.vis.Hovered() + 1
	if next >= a.vis.Layers().Len() {
		a.setHover(-1, 0, 0)
		return
	}
	row := a.renderer.Viewport().Row(a.vis.Layers().Layers[next].Y)
	a.setHover(next, parameter.LayerBandWidth, row)
}

func (a *app) setHover(index, x, y int) {
	a.renderer.Bands.SetHover(index)
	if index < 0 {
		a.vis.Unhover()
		return
	}
	a.vis.Hover(index, x, y)
}

// close tears the visualizer down, the screen is owned by the caller
func (a *app) close() {
	a.vis.Destroy()
}
