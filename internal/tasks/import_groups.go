package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordgroups/internal/entities"
	"github.com/mrlokans/wordgroups/internal/seed"
)

// WordGroupBulkCreator stores a batch of word groups atomically.
type WordGroupBulkCreator interface {
	BulkCreateWordGroups(ctx context.Context, inputs []entities.WordGroupInput, ownerID *uint) ([]uint, error)
}

// ImportWordGroupsTask creates a batch of word groups in the background.
// Generated vocabulary sets arrive this way instead of blocking a request.
type ImportWordGroupsTask struct {
	OwnerID *uint                     `json:"owner_id,omitempty"`
	Groups  []entities.WordGroupInput `json:"groups"`
}

// Config returns the queue configuration for import tasks.
// A failed batch is rolled back completely, so retrying is safe.
func (t ImportWordGroupsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_word_groups",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention:   keepFailedPayloads(24 * time.Hour),
	}
}

// ImportWordGroupsProcessor creates a processor function for ImportWordGroupsTask.
func ImportWordGroupsProcessor(store WordGroupBulkCreator) backlite.QueueProcessor[ImportWordGroupsTask] {
	return func(ctx context.Context, task ImportWordGroupsTask) error {
		if store == nil {
			return fmt.Errorf("word group store not configured")
		}

		for i, g := range task.Groups {
			if err := seed.Validate(g); err != nil {
				return fmt.Errorf("word group %d: %w", i, err)
			}
		}

		ids, err := store.BulkCreateWordGroups(ctx, task.Groups, task.OwnerID)
		if err != nil {
			return fmt.Errorf("import word groups: %w", err)
		}

		log.Printf("[TASK] Imported %d word groups", len(ids))
		return nil
	}
}

// NewImportWordGroupsQueue creates a backlite queue for word group imports.
func NewImportWordGroupsQueue(store WordGroupBulkCreator) backlite.Queue {
	return backlite.NewQueue(ImportWordGroupsProcessor(store))
}
