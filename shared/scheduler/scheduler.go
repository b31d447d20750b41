package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Job is a maintenance task run on a cron schedule.
type Job interface {
	Name() string
	// RunOnce performs one pass and returns a human-readable summary.
	RunOnce(ctx context.Context) (string, error)
}

type entry struct {
	spec string
	job  Job
}

// Scheduler runs maintenance jobs on their schedules.
type Scheduler struct {
	monitor *monitoring.Monitor
	log     *logging.Logger
	cron    *cron.Cron
	jobs    []entry
}

func New(monitor *monitoring.Monitor, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{
		monitor: monitor,
		log:     log,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Add registers job under a six-field cron spec (seconds first).
func (s *Scheduler) Add(spec string, job Job) {
	s.jobs = append(s.jobs, entry{spec: spec, job: job})
}

func (s *Scheduler) Start(ctx context.Context) error {
	for _, e := range s.jobs {
		job := e.job
		_, err := s.cron.AddFunc(e.spec, func() {
			if err := s.RunOnce(ctx, job); err != nil {
				s.log.Error("scheduled job failed", "job", job.Name(), "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to add cron job %s: %w", job.Name(), err)
		}
		s.log.Info("job scheduled", "job", job.Name(), "schedule", e.spec)
	}

	s.cron.Start()

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
	return ctx.Err()
}

// RunOnce runs a single job now and records the outcome.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) error {
	startTime := time.Now()

	summary, err := job.RunOnce(ctx)
	duration := time.Since(startTime)
	if err != nil {
		if s.monitor != nil {
			s.monitor.RecordFailure(job.Name(), err, duration)
		}
		return fmt.Errorf("%s run failed: %w", job.Name(), err)
	}

	if s.monitor != nil {
		s.monitor.RecordSuccess(job.Name(), summary, duration)
	}
	s.log.Info("job completed", "job", job.Name(), "summary", summary, "duration", duration)
	return nil
}
