package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Scheduler triggers periodic full rebuilds independent of file events.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler that requests builds through the loop's
// Trigger, so scheduled rebuilds obey the same one-at-a-time discipline as
// event-driven ones.
func NewScheduler(interval time.Duration, trigger func(reason string)) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, perrors.Wrap(err, perrors.CategoryRuntime, "create scheduler")
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Debug("Scheduled rebuild due")
			trigger("scheduled")
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, perrors.Wrap(err, perrors.CategoryRuntime, "schedule periodic rebuild")
	}

	return &Scheduler{scheduler: s}, nil
}

// Start begins the schedule.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
