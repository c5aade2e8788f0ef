// Package scheduler manages background jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

// New creates a new scheduler
func New(log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With("component", "scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a new job with a cron schedule.
// Schedule examples:
//   - "0 1 * * *"     - Daily at 01:00
//   - "@hourly"       - Every hour
//   - "@every 30m"    - Every 30 minutes
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debugw("Running job", "job", job.Name())

		if err := job.Run(); err != nil {
			s.log.Errorw("Job failed", "job", job.Name(), "error", err.Error())
		} else {
			s.log.Debugw("Job completed", "job", job.Name())
		}
	})
	if err != nil {
		return err
	}

	s.log.Infow("Job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Infow("Running job immediately", "job", job.Name())
	return job.Run()
}
