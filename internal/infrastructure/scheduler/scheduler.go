package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs housekeeping jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a scheduler that evaluates schedules in UTC.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}
}

// Add registers fn under name. schedule accepts standard five-field cron
// expressions and descriptors such as "@every 1h".
func (s *Scheduler) Add(name, schedule string, fn func()) error {
	_, err := s.cron.AddFunc(schedule, func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().Str("job", name).Interface("panic", rec).Msg("scheduled job panicked")
			}
		}()

		start := time.Now()
		fn()
		s.logger.Debug().
			Str("job", name).
			Dur("duration", time.Since(start)).
			Msg("scheduled job finished")
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.logger.Info().Str("job", name).Str("schedule", schedule).Msg("scheduled job registered")
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
