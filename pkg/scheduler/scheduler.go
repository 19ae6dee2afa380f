// Package scheduler syncs posts of followed creators into the post store,
// either on demand or periodically in the background.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Scheduler runs syncs of all enabled creators periodically and on demand
type Scheduler struct {
	syncer   *Syncer
	interval time.Duration
	triggers chan bool // full flag of requested sync

	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu      sync.RWMutex
	running bool
	last    *Report
}

// NewScheduler makes a scheduler running syncer every interval
func NewScheduler(syncer *Syncer, interval time.Duration) *Scheduler {
	return &Scheduler{syncer: syncer, interval: interval, triggers: make(chan bool, 1)}
}

// Start begins the sync loop. The first sync runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.syncWorker(ctx)

	lgr.Printf("[INFO] scheduler started with sync interval %v", s.interval)
}

// Stop gracefully stops the scheduler, waiting for the active sync to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Trigger requests an immediate sync. Returns false if a sync request is already pending.
func (s *Scheduler) Trigger(full bool) bool {
	select {
	case s.triggers <- full:
		return true
	default:
		return false
	}
}

// Running reports whether a sync is in progress
func (s *Scheduler) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// LastReport returns report of the last completed sync, nil if nothing completed yet
func (s *Scheduler) LastReport() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Scheduler) syncWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.syncNow(ctx, false)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncNow(ctx, false)
		case full := <-s.triggers:
			s.syncNow(ctx, full)
		}
	}
}

func (s *Scheduler) syncNow(ctx context.Context, full bool) {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	report, err := s.syncer.SyncAll(ctx, full, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	if err != nil {
		lgr.Printf("[ERROR] sync failed: %v", err)
		return
	}
	s.last = report
}
