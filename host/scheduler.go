package host

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DailySchedule fires at midnight (seconds field enabled).
const DailySchedule = "0 0 0 * * *"

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler runs calendar-driven jobs next to the per-second ticker.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// NewScheduler creates a scheduler evaluating schedules in loc.
func NewScheduler(log zerolog.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under a six-field cron schedule, e.g. DailySchedule.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
		}
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Debug().Str("job", job.Name()).Msg("Running job")
	return job.Run()
}

// RecomputeJob re-derives the monitor's rate so a Monthly salary is spread
// over the month that has just started.
type RecomputeJob struct {
	Monitor *Monitor
}

func (j RecomputeJob) Name() string { return "recompute-rate" }

func (j RecomputeJob) Run() error {
	j.Monitor.Recompute()
	return nil
}
