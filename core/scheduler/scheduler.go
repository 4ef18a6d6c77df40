package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named piece of periodic work.
type Job func(ctx context.Context) error

// Scheduler runs sync jobs on cron schedules. Job failures are logged,
// never fatal; the next tick runs regardless.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a scheduler using standard five-field cron specs.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Add schedules a job. The spec is a standard cron expression.
func (s *Scheduler) Add(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("Scheduled job starting", zap.String("job", name))
		if err := job(context.Background()); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("Scheduled job finished", zap.String("job", name))
	})
	return err
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
