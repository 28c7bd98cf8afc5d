// Package config loads and normalizes the mdpress configuration.
//
// Precedence, lowest to highest: built-in defaults, config.yaml, .env files,
// MDPRESS_* environment variables, CLI flags. The result is a single Config
// value that is never mutated after start-up; the watch loop and the build
// pipeline receive it explicitly.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Config is the process-lifetime configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Watch   WatchConfig   `yaml:"watch"`
	Tools   ToolsConfig   `yaml:"tools"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// OutputConfig controls the published artifact.
type OutputConfig struct {
	// Filename is the output PDF base name. A trailing ".pdf" is accepted
	// and normalized away; PDFName always reappends it.
	Filename string `yaml:"filename"`
}

// BuildConfig controls the pipeline's fixed file layout.
type BuildConfig struct {
	// Dir holds intermediate artifacts. Created on first build, reused and
	// overwritten in place thereafter.
	Dir string `yaml:"dir"`
	// EntryPoint is the fixed ConTeXt main document the typesetter reads.
	EntryPoint string `yaml:"entry_point"`
	// StylesDir is added to the typesetter's search path.
	StylesDir string `yaml:"styles_dir"`
	// Aggregate is the concatenated Markdown file name inside Dir.
	Aggregate string `yaml:"aggregate"`
	// Body is the converted ConTeXt body file name inside Dir.
	Body string `yaml:"body"`
}

// WatchConfig controls the watch loop.
type WatchConfig struct {
	// QuietWindow coalesces bursts of qualifying events into one build.
	// Zero builds once per qualifying event.
	QuietWindow time.Duration `yaml:"quiet_window"`
	// RebuildEvery schedules a periodic full rebuild independent of file
	// events. Zero disables scheduling.
	RebuildEvery time.Duration `yaml:"rebuild_every"`
}

// ToolsConfig names the external executables. Bare names are resolved on
// PATH; absolute paths are used verbatim.
type ToolsConfig struct {
	Pandoc      string `yaml:"pandoc"`
	Context     string `yaml:"context"`
	Ghostscript string `yaml:"ghostscript"`
}

// HistoryConfig controls the build-record store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `yaml:"path"`
}

// MetricsConfig controls the Prometheus endpoint in watch mode.
type MetricsConfig struct {
	// Addr is the listen address (e.g. ":9190"). Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// DefaultConfigFile is the config path probed when none is given.
const DefaultConfigFile = "config.yaml"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Filename: "book"},
		Build: BuildConfig{
			Dir:        "build",
			EntryPoint: "main.tex",
			StylesDir:  "styles",
			Aggregate:  "book.md",
			Body:       "body.tex",
		},
		Tools: ToolsConfig{
			Pandoc:      "pandoc",
			Context:     "context",
			Ghostscript: "gs",
		},
		History: HistoryConfig{Path: "build/history.db"},
	}
}

// Load reads the configuration file at path, overlays environment values
// and returns the normalized result. A missing file at the default path is
// not an error; an explicitly requested file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, perrors.Wrap(err, perrors.CategoryConfig, fmt.Sprintf("parse %s", path))
		}
	case os.IsNotExist(err) && path == DefaultConfigFile:
		// Defaults only.
	default:
		return nil, perrors.Wrap(err, perrors.CategoryConfig, fmt.Sprintf("read %s", path))
	}

	loadEnvFiles()
	applyEnv(cfg)
	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize fills zero values with defaults and canonicalizes names.
func (c *Config) normalize() {
	d := Default()
	if c.Output.Filename == "" {
		c.Output.Filename = d.Output.Filename
	}
	if c.Build.Dir == "" {
		c.Build.Dir = d.Build.Dir
	}
	if c.Build.EntryPoint == "" {
		c.Build.EntryPoint = d.Build.EntryPoint
	}
	if c.Build.StylesDir == "" {
		c.Build.StylesDir = d.Build.StylesDir
	}
	if c.Build.Aggregate == "" {
		c.Build.Aggregate = d.Build.Aggregate
	}
	if c.Build.Body == "" {
		c.Build.Body = d.Build.Body
	}
	if c.Tools.Pandoc == "" {
		c.Tools.Pandoc = d.Tools.Pandoc
	}
	if c.Tools.Context == "" {
		c.Tools.Context = d.Tools.Context
	}
	if c.Tools.Ghostscript == "" {
		c.Tools.Ghostscript = d.Tools.Ghostscript
	}
}

func (c *Config) validate() error {
	if c.Watch.QuietWindow < 0 {
		return perrors.New(perrors.CategoryConfig, "watch.quiet_window must not be negative")
	}
	if c.Watch.RebuildEvery < 0 {
		return perrors.New(perrors.CategoryConfig, "watch.rebuild_every must not be negative")
	}
	if c.Watch.RebuildEvery > 0 && c.Watch.RebuildEvery < time.Second {
		return perrors.New(perrors.CategoryConfig, "watch.rebuild_every below 1s would rebuild continuously")
	}
	if strings.ContainsRune(c.Output.Filename, os.PathSeparator) {
		return perrors.New(perrors.CategoryConfig, "output.filename must be a base name, not a path")
	}
	return nil
}

// PDFName returns the normalized output file name: the configured base name
// with any trailing ".pdf" stripped and a single ".pdf" reappended, so
// "report" and "report.pdf" both yield "report.pdf".
func (c *Config) PDFName() string {
	name := strings.TrimSuffix(c.Output.Filename, ".pdf")
	return name + ".pdf"
}
