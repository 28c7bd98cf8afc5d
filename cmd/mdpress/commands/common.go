// Package commands defines the mdpress CLI surface.
package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdpress/internal/config"
)

// Global carries shared state to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command grammar and global flags.
type CLI struct {
	Config   string `short:"c" default:"config.yaml" help:"Configuration file path"`
	Debug    bool   `short:"d" help:"Enable verbose timestamped logging"`
	Filename string `short:"f" help:"Output PDF base name; '.pdf' is appended (overrides config)"`

	Watch   WatchCmd   `cmd:"" default:"withargs" help:"Watch the current directory and rebuild the PDF on Markdown changes"`
	Build   BuildCmd   `cmd:"" help:"Run the build pipeline exactly once"`
	Doctor  DoctorCmd  `cmd:"" help:"Check that the required external tools are installed"`
	History HistoryCmd `cmd:"" help:"Show recent build records"`
	Init    InitCmd    `cmd:"" help:"Write a commented default configuration file"`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads configuration and applies the CLI filename override,
// which outranks config file and environment.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Filename != "" {
		cfg.Output.Filename = c.Filename
	}
	return cfg, nil
}
