package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/mdpress/internal/gitinfo"
	"git.home.luguber.info/inful/mdpress/internal/history"
	"git.home.luguber.info/inful/mdpress/internal/metrics"
)

// Service runs builds and records every attempt, failed ones included, in
// the history store.
type Service struct {
	pipeline *Pipeline
	store    *history.Store
	workdir  string
}

// NewService wires a Service. A nil store disables history recording.
func NewService(pipeline *Pipeline, store *history.Store) *Service {
	return &Service{pipeline: pipeline, store: store, workdir: pipeline.workdir}
}

// Execute runs one build and persists its record. History failures are
// logged, never fatal: the build result is what matters.
func (s *Service) Execute(ctx context.Context, trigger string) error {
	result, buildErr := s.pipeline.Run(ctx, trigger)

	if s.store != nil {
		rec := history.Record{
			ID:        result.ID,
			Trigger:   result.Trigger,
			Commit:    gitinfo.HeadCommit(s.workdir),
			Fragments: len(result.Fragments),
			StartedAt: result.StartedAt,
			Duration:  result.Duration,
			Status:    metrics.OutcomeSuccess,
		}
		if buildErr != nil {
			rec.Status = metrics.OutcomeFailed
			rec.Error = buildErr.Error()
		}
		if err := s.store.Append(ctx, rec); err != nil {
			slog.Warn("Failed to record build history", "build_id", result.ID, "error", err)
		}
	}

	return buildErr
}
