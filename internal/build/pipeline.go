// Package build runs the fixed Markdown-to-PDF pipeline: concatenate the
// fragment files, convert the aggregate to ConTeXt with pandoc, typeset it
// with context in batch mode, and rename the produced PDF to the configured
// output name.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdpress/internal/config"
	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
	"git.home.luguber.info/inful/mdpress/internal/metrics"
	"git.home.luguber.info/inful/mdpress/internal/toolrunner"
)

// Pipeline executes builds. It is stateless between runs: the build
// directory and its artifacts are overwritten in place, never cleaned up,
// so a failed run leaves its partial artifacts for inspection.
type Pipeline struct {
	cfg      *config.Config
	runner   toolrunner.Runner
	recorder metrics.Recorder
	workdir  string
}

// Result describes one completed build.
type Result struct {
	ID         string
	Trigger    string
	Fragments  []Fragment
	OutputPath string
	StartedAt  time.Time
	Duration   time.Duration
}

// NewPipeline constructs a Pipeline rooted at workdir (empty means the
// current directory). A nil recorder disables instrumentation.
func NewPipeline(cfg *config.Config, runner toolrunner.Runner, recorder metrics.Recorder, workdir string) *Pipeline {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	if workdir == "" {
		workdir = "."
	}
	return &Pipeline{cfg: cfg, runner: runner, recorder: recorder, workdir: workdir}
}

// Run executes the pipeline once. The first failing stage aborts the whole
// build; there is no retry and no partial-stage reuse.
func (p *Pipeline) Run(ctx context.Context, trigger string) (*Result, error) {
	result := &Result{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
	}

	slog.Info("Starting build", "build_id", result.ID, "trigger", trigger)

	err := p.runStages(ctx, result)
	result.Duration = time.Since(result.StartedAt)
	p.recorder.ObserveBuildDuration(result.Duration)

	if err != nil {
		p.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return result, err
	}

	p.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	slog.Info("Build finished",
		"build_id", result.ID,
		"output", result.OutputPath,
		"fragments", len(result.Fragments),
		"duration", result.Duration)
	return result, nil
}

func (p *Pipeline) runStages(ctx context.Context, result *Result) error {
	buildDir := filepath.Join(p.workdir, p.cfg.Build.Dir)
	aggregate := filepath.Join(buildDir, p.cfg.Build.Aggregate)
	body := filepath.Join(buildDir, p.cfg.Build.Body)

	if err := p.stage("prepare", func() error {
		return os.MkdirAll(buildDir, 0o755)
	}); err != nil {
		return perrors.Wrap(err, perrors.CategoryBuild, "prepare build directory")
	}

	if err := p.stage("concat", func() error {
		fragments, err := ScanFragments(p.workdir)
		if err != nil {
			return err
		}
		if len(fragments) == 0 {
			return fmt.Errorf("no two-character *.md fragments in %s", p.workdir)
		}
		result.Fragments = fragments
		for _, frag := range fragments {
			slog.Debug("Including fragment", "path", frag.Path, "title", frag.Title)
		}
		return Concatenate(fragments, aggregate)
	}); err != nil {
		return perrors.Wrap(err, perrors.CategoryBuild, "concatenate fragments")
	}

	if err := p.stage("convert", func() error {
		return p.invoke(ctx, toolrunner.Invocation{
			Command: p.cfg.Tools.Pandoc,
			Args:    []string{"--from", "markdown", "--to", "context", "--output", p.relToWorkdir(body), p.relToWorkdir(aggregate)},
			Dir:     p.workdir,
		})
	}); err != nil {
		return perrors.Wrap(err, perrors.CategoryBuild, "convert aggregate to ConTeXt")
	}

	if err := p.stage("typeset", func() error {
		return p.invoke(ctx, toolrunner.Invocation{
			Command: p.cfg.Tools.Context,
			Args:    []string{"--batchmode", "--noconsole", "--path=" + p.cfg.Build.StylesDir, p.cfg.Build.EntryPoint},
			Dir:     p.workdir,
		})
	}); err != nil {
		return perrors.Wrap(err, perrors.CategoryBuild, "typeset PDF")
	}

	if err := p.stage("publish", func() error {
		// The typesetter drops its PDF next to the entry point, in the
		// working directory, not in the build directory.
		produced := filepath.Join(p.workdir, typesetterOutput(p.cfg.Build.EntryPoint))
		target := filepath.Join(p.workdir, p.cfg.PDFName())
		if err := os.Rename(produced, target); err != nil {
			return err
		}
		result.OutputPath = target
		return nil
	}); err != nil {
		return perrors.Wrap(err, perrors.CategoryBuild, "publish PDF")
	}

	return nil
}

// stage times one pipeline stage.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.recorder.ObserveStageDuration(name, time.Since(start))
	return err
}

// invoke runs one external tool, treating any non-zero exit as fatal for
// the build. Captured output is logged on failure.
func (p *Pipeline) invoke(ctx context.Context, inv toolrunner.Invocation) error {
	res, err := p.runner.Run(ctx, inv)
	if err != nil {
		if out := strings.TrimSpace(string(res.Output)); out != "" {
			slog.Error("Tool output", "command", inv.Command, "output", out)
		}
		return err
	}
	slog.Debug("Tool finished", "command", inv.Command, "duration", res.Duration)
	return nil
}

// relToWorkdir converts an absolute-or-joined path back to one relative to
// the pipeline workdir, since invocations already run with Dir=workdir.
func (p *Pipeline) relToWorkdir(path string) string {
	rel, err := filepath.Rel(p.workdir, path)
	if err != nil {
		return path
	}
	return rel
}

// typesetterOutput derives the PDF file name the typesetter produces from
// the entry point ("main.tex" becomes "main.pdf").
func typesetterOutput(entryPoint string) string {
	return strings.TrimSuffix(entryPoint, filepath.Ext(entryPoint)) + ".pdf"
}
