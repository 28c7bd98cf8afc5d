package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/mdpress/internal/build"
	"git.home.luguber.info/inful/mdpress/internal/deps"
	"git.home.luguber.info/inful/mdpress/internal/history"
	"git.home.luguber.info/inful/mdpress/internal/toolrunner"
)

// BuildCmd implements the one-shot 'build' command.
type BuildCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Directory containing the Markdown fragments"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	checker := deps.NewChecker(deps.Required(cfg.Tools.Pandoc, cfg.Tools.Context, cfg.Tools.Ghostscript), nil)
	if err := checker.CheckAll(); err != nil {
		return err
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

	pipeline := build.NewPipeline(cfg, toolrunner.NewExecRunner(), nil, b.Dir)
	return build.NewService(pipeline, store).Execute(context.Background(), "manual")
}
