package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/wordgroups/internal/tasks"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// TaskEnqueuer adds a task to the background queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// TagCleanupScheduler periodically removes tags that no word group uses.
// With a task queue the cleanup is enqueued; without one it runs inline.
type TagCleanupScheduler struct {
	schedule string
	queue    TaskEnqueuer
	cleaner  tasks.OrphanTagsCleaner

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewTagCleanupScheduler creates a scheduler. queue may be nil.
func NewTagCleanupScheduler(schedule string, queue TaskEnqueuer, cleaner tasks.OrphanTagsCleaner) *TagCleanupScheduler {
	return &TagCleanupScheduler{
		schedule: schedule,
		queue:    queue,
		cleaner:  cleaner,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// ValidateSchedule reports whether schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// Start registers the cleanup job and starts the cron loop.
// The scheduler stops on its own when ctx is cancelled.
func (s *TagCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule tag cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Tag cleanup started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *TagCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("[SCHEDULER] Tag cleanup stopped")
}

// RunNow triggers a cleanup immediately, outside the schedule.
func (s *TagCleanupScheduler) RunNow(ctx context.Context) {
	s.runCleanup(ctx)
}

func (s *TagCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the cleanup fires next, or nil when stopped.
func (s *TagCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *TagCleanupScheduler) runCleanup(ctx context.Context) {
	if s.queue != nil {
		id, err := s.queue.Enqueue(ctx, tasks.CleanupOrphanTagsTask{Trigger: tasks.TriggerScheduled})
		if err != nil {
			log.Printf("[SCHEDULER] Failed to enqueue tag cleanup: %v", err)
			return
		}
		log.Printf("[SCHEDULER] Enqueued tag cleanup task %s", id)
		return
	}

	if s.cleaner == nil {
		log.Printf("[SCHEDULER] Tag cleanup skipped: no cleaner configured")
		return
	}

	deleted, err := s.cleaner.DeleteOrphanTags(ctx)
	if err != nil {
		log.Printf("[SCHEDULER] Tag cleanup failed: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Removed %d orphan tags", deleted)
}
