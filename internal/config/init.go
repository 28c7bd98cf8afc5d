package config

import (
	"fmt"
	"os"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

const defaultConfigTemplate = `# mdpress configuration
output:
  # Output PDF base name; ".pdf" is appended (and stripped first if present).
  filename: book

build:
  # Directory for intermediate artifacts (aggregate Markdown, ConTeXt body).
  dir: build
  # Fixed ConTeXt entry point read by the typesetter.
  entry_point: main.tex
  # Added to the typesetter's search path.
  styles_dir: styles

watch:
  # Coalesce bursts of saves into one build. 0 builds once per event.
  quiet_window: 0s
  # Periodic full rebuild independent of file events. 0 disables.
  rebuild_every: 0s

tools:
  pandoc: pandoc
  context: context
  ghostscript: gs

history:
  # SQLite build-record database. Empty disables history.
  path: build/history.db

metrics:
  # Prometheus listen address for watch mode, e.g. ":9190". Empty disables.
  addr: ""
`

// Init writes a commented default configuration file. An existing file is
// only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return perrors.New(perrors.CategoryConfig, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return perrors.Wrap(err, perrors.CategoryConfig, fmt.Sprintf("write %s", path))
	}
	return nil
}
