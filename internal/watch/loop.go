package watch

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mdpress/internal/metrics"
)

// Source is the event stream the loop consumes. Stream implements it; tests
// substitute channels directly.
type Source interface {
	Events() <-chan Event
	Errors() <-chan error
}

// BuildFunc runs one build. A non-nil error is fatal for the loop.
type BuildFunc func(ctx context.Context, trigger string) error

// Loop is the steady-state activity of watch mode: a two-state (idle /
// building) loop that reads events one at a time and runs builds
// synchronously. It never overlaps builds; events arriving during a build
// sit in the source's channel buffering and are processed afterward.
type Loop struct {
	source   Source
	build    BuildFunc
	quiet    time.Duration
	recorder metrics.Recorder
	requests chan string
}

// NewLoop wires a Loop. A quiet window of zero builds once per qualifying
// event; a positive window coalesces bursts into one build. A nil recorder
// disables instrumentation.
func NewLoop(source Source, build BuildFunc, quiet time.Duration, recorder metrics.Recorder) *Loop {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &Loop{
		source:   source,
		build:    build,
		quiet:    quiet,
		recorder: recorder,
		requests: make(chan string, 1),
	}
}

// Trigger requests a build from outside the event stream (scheduler, admin).
// At most one external request is held; extras are dropped since a build is
// already coming.
func (l *Loop) Trigger(reason string) {
	select {
	case l.requests <- reason:
	default:
		slog.Debug("Build request dropped, one already pending", "reason", reason)
	}
}

// Run consumes events until ctx is canceled or a build fails. A closed
// event stream ends the loop without an error.
func (l *Loop) Run(ctx context.Context) error {
	events := l.source.Events()
	errs := l.source.Errors()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	var timerC <-chan time.Time
	var pending string

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch loop stopping")
			return nil

		case ev, ok := <-events:
			if !ok {
				slog.Warn("Event stream closed, watch loop exiting")
				return nil
			}
			if !IsMarkdownEvent(ev) {
				l.recorder.IncWatchEvent(metrics.EventIgnored)
				slog.Debug("Ignoring event", "name", ev.Name, "kind", ev.Kind.String())
				continue
			}
			l.recorder.IncWatchEvent(metrics.EventQualified)
			reason := "change:" + ev.Name

			if l.quiet <= 0 {
				if err := l.build(ctx, reason); err != nil {
					return err
				}
				continue
			}

			pending = reason
			if timerC != nil && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(l.quiet)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if err := l.build(ctx, pending); err != nil {
				return err
			}

		case reason := <-l.requests:
			if err := l.build(ctx, reason); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
