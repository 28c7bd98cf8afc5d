package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdpress/internal/build"
	"git.home.luguber.info/inful/mdpress/internal/deps"
	"git.home.luguber.info/inful/mdpress/internal/history"
	"git.home.luguber.info/inful/mdpress/internal/metrics"
	"git.home.luguber.info/inful/mdpress/internal/toolrunner"
	"git.home.luguber.info/inful/mdpress/internal/watch"
)

// WatchCmd implements the default 'watch' command.
type WatchCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Directory containing the Markdown fragments"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	// Tool presence is checked exactly once, before anything else: it
	// cannot change mid-run in any way this process can react to.
	checker := deps.NewChecker(deps.Required(cfg.Tools.Pandoc, cfg.Tools.Context, cfg.Tools.Ghostscript), nil)
	if err := checker.CheckAll(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NopRecorder{}
	if cfg.Metrics.Addr != "" {
		registry := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
		go metrics.Serve(ctx, cfg.Metrics.Addr, registry)
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			slog.Warn("Build history disabled", "path", cfg.History.Path, "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	pipeline := build.NewPipeline(cfg, toolrunner.NewExecRunner(), recorder, w.Dir)
	service := build.NewService(pipeline, store)

	stream, err := watch.NewStream(w.Dir)
	if err != nil {
		return err
	}
	defer stream.Close()

	loop := watch.NewLoop(stream, service.Execute, cfg.Watch.QuietWindow, recorder)

	if cfg.Watch.RebuildEvery > 0 {
		scheduler, err := watch.NewScheduler(cfg.Watch.RebuildEvery, loop.Trigger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", "error", err)
			}
		}()
		slog.Info("Scheduled periodic rebuilds", "every", cfg.Watch.RebuildEvery)
	}

	return loop.Run(ctx)
}
