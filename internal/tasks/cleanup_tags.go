package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanTagsCleaner removes tags that no word group links to.
type OrphanTagsCleaner interface {
	DeleteOrphanTags(ctx context.Context) (int64, error)
}

// CleanupOrphanTagsTask sweeps the tag catalogue after groups are deleted or
// replaced. Trigger records who asked for the sweep and only shows up in logs.
type CleanupOrphanTagsTask struct {
	Trigger string `json:"trigger,omitempty"`
}

const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

var errCleanerMissing = errors.New("orphan tags cleaner not configured")

// Config runs the sweep once per enqueue: the next scheduled run covers a failure.
func (t CleanupOrphanTagsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_tags",
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention:   keepFailedPayloads(24 * time.Hour),
	}
}

// keepFailedPayloads keeps every task row for d but drops the payload of
// successful ones.
func keepFailedPayloads(d time.Duration) *backlite.Retention {
	return &backlite.Retention{
		Duration: d,
		Data:     &backlite.RetainData{OnlyFailed: true},
	}
}

// CleanupOrphanTagsProcessor deletes orphan tags through cleaner.
func CleanupOrphanTagsProcessor(cleaner OrphanTagsCleaner) backlite.QueueProcessor[CleanupOrphanTagsTask] {
	return func(ctx context.Context, task CleanupOrphanTagsTask) error {
		if cleaner == nil {
			return errCleanerMissing
		}

		n, err := cleaner.DeleteOrphanTags(ctx)
		if err != nil {
			return fmt.Errorf("delete orphan tags: %w", err)
		}
		if n > 0 {
			log.Printf("[TASK] Removed %d orphan tags (trigger=%s)", n, triggerName(task.Trigger))
		}
		return nil
	}
}

func triggerName(trigger string) string {
	if trigger == "" {
		return "unknown"
	}
	return trigger
}

// NewCleanupOrphanTagsQueue builds the queue served by CleanupOrphanTagsProcessor.
func NewCleanupOrphanTagsQueue(cleaner OrphanTagsCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanTagsProcessor(cleaner))
}
