package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the update pipeline at configured daily wall-clock
// times. Each trigger runs on cron's own goroutine, never blocking
// the caller.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries []cron.EntryID
	task    func()
}

// NewScheduler wraps a task to be run at every trigger time.
func NewScheduler(task func()) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		task: task,
	}
}

// Reschedule replaces all installed triggers with one per valid
// "HH:MM" entry. Previously registered triggers are fully removed
// first, so no orphaned or duplicate firings survive a settings
// change; an in-flight task run is not cancelled. Invalid entries are
// dropped with a warning and duplicate valid times collapse to a
// single trigger. Returns how many triggers were installed.
func (s *Scheduler) Reschedule(times []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	seen := make(map[string]bool, len(times))
	for _, t := range times {
		parsed, err := time.Parse("15:04", t)
		if err != nil {
			log.Printf("[WARN] dropping invalid trigger time %q: %v", t, err)
			continue
		}
		canonical := parsed.Format("15:04")
		if seen[canonical] {
			log.Printf("[WARN] duplicate trigger time %q collapsed", t)
			continue
		}
		seen[canonical] = true

		spec := fmt.Sprintf("0 %d %d * * *", parsed.Minute(), parsed.Hour())
		id, err := s.cron.AddFunc(spec, s.task)
		if err != nil {
			log.Printf("[WARN] register trigger %q: %v", t, err)
			continue
		}
		s.entries = append(s.entries, id)
		log.Printf("[INFO] daily trigger registered at %s", canonical)
	}

	if len(s.entries) == 0 {
		log.Println("[WARN] no valid trigger times, automatic updates disabled")
	}
	return len(s.entries)
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// EntryCount reports how many triggers are currently installed.
func (s *Scheduler) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
