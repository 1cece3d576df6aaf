package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs analysis cycles on a cron spec. It owns no analysis logic;
// the job closure is supplied by the caller.
type Scheduler struct {
	Cron *cron.Cron
	job  func()
}

// NewScheduler creates a Scheduler around the refresh job.
func NewScheduler(job func()) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		job:  job,
	}
}

// Register adds the periodic refresh under the given cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.run); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one refresh immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.run()
}

func (s *Scheduler) run() {
	start := time.Now()
	log.Println("[INFO] running analysis cycle")
	s.job()
	log.Printf("[INFO] analysis cycle finished in %s", time.Since(start).Round(time.Millisecond))
}
