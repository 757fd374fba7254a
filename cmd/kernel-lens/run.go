package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/kernel-lens/audio"
	"github.com/lixenwraith/kernel-lens/config"
	"github.com/lixenwraith/kernel-lens/core"
	"github.com/lixenwraith/kernel-lens/parameter"
)

// runInteractive owns the terminal for the lifetime of one session
func runInteractive(ctx context.Context, cfg *config.Config, muted bool, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	// Audio is optional, the visualization runs silently without a device
	player := audio.NewPlayer(cfg.AudioPlayer(), nil, logger)
	player.SetMuted(muted)
	if err := player.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
	} else {
		defer player.Cleanup()
	}

	a, err := newApp(screen, cfg, player, logger)
	if err != nil {
		return err
	}
	defer a.close()

	return serve(ctx, screen, a, time.Second/time.Duration(cfg.FPS))
}

// serve runs the event pump and the frame loop until either stops
func serve(ctx context.Context, screen tcell.Screen, a *app, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, parameter.EventChannelSize)

	// Event pump closes events when ctx is done or the screen is finalized
	g.Go(func() error {
		defer core.Recover()
		screen.ChannelEvents(events, ctx.Done())
		return nil
	})

	g.Go(func() error {
		defer core.Recover()
		defer cancel()
		return a.loop(ctx, events, interval)
	})

	return g.Wait()
}
