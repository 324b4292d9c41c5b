// Package scheduler wires up the cron job that periodically expires stale
// administrator approval requests.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"gigmate/marketplace-service/internal/application"
)

// Scheduler wraps robfig/cron and manages the approval sweep loop.
type Scheduler struct {
	cron *cron.Cron
	svc  *application.Service
	spec string // cron spec, e.g. "@every 60m"
}

// New creates a Scheduler that sweeps every intervalMinutes minutes.
func New(svc *application.Service, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:  svc,
		spec: fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so requests left over from downtime expire without waiting
// for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runSweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runSweep(ctx context.Context) {
	n, err := s.svc.ExpireStale(ctx)
	if err != nil {
		log.Printf("[scheduler] Approval sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[scheduler] Expired %d stale approval request(s)", n)
	}
}
