// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// Evicter drops idle entries and reports how many were removed.
type Evicter interface {
	EvictIdle() int
}

// Janitor periodically evicts idle searchers.
type Janitor struct {
	target   Evicter
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	stopWatch context.CancelFunc
}

// NewJanitor creates a stopped janitor for target.
func NewJanitor(target Evicter, schedule string) *Janitor {
	return &Janitor{
		target:   target,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start schedules the eviction job. It stops on its own when ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		return nil
	}

	if err := ValidateSchedule(j.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", j.schedule, err)
	}

	entryID, err := j.cron.AddFunc(j.schedule, j.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule janitor job: %w", err)
	}
	j.entryID = entryID

	var watchCtx context.Context
	watchCtx, j.stopWatch = context.WithCancel(ctx)

	j.cron.Start()
	j.isRunning = true
	log.Printf("Janitor: started with schedule '%s'", j.schedule)

	go func() {
		<-watchCtx.Done()
		j.Stop()
	}()

	return nil
}

// Stop waits for a running job and halts the schedule.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return
	}

	done := j.cron.Stop()
	<-done.Done()
	j.cron.Remove(j.entryID)

	j.isRunning = false
	if j.stopWatch != nil {
		j.stopWatch()
		j.stopWatch = nil
	}
	log.Printf("Janitor: stopped")
}

// RunNow performs one eviction pass synchronously.
func (j *Janitor) RunNow() {
	if n := j.target.EvictIdle(); n > 0 {
		log.Printf("Janitor: evicted %d idle searchers", n)
	}
}

// IsRunning returns whether the schedule is active.
func (j *Janitor) IsRunning() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.isRunning
}

// NextRun returns when the next eviction pass will occur.
func (j *Janitor) NextRun() *time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if !j.isRunning {
		return nil
	}

	for _, entry := range j.cron.Entries() {
		if entry.ID == j.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
