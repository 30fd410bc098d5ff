package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordgroups/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// The implementations live in internal/database/{wordgroups,tags,languages}.

// WordGroupStore covers the word group mutations, queries and pagination.
type WordGroupStore interface {
	CreateWordGroup(ctx context.Context, input entities.WordGroupInput, ownerID *uint) (uint, error)
	BulkCreateWordGroups(ctx context.Context, inputs []entities.WordGroupInput, ownerID *uint) ([]uint, error)
	UpdateWordGroup(ctx context.Context, groupID uint, input entities.WordGroupInput, callerID *uint) (uint, error)
	DeleteWordGroup(ctx context.Context, groupID uint, callerID *uint) error

	GetWordGroupByID(ctx context.Context, id uint) (*entities.WordGroupView, error)
	GetMultipleWordGroups(ctx context.Context, opts entities.ListOptions) ([]entities.WordGroupView, error)
	GetWordGroupsByTag(ctx context.Context, tagName string) ([]entities.WordGroupView, error)
	Pagination(ctx context.Context, table string, limit int) (entities.PaginationInfo, error)
}

// TagStore provides read access to the global tag catalogue and orphan cleanup.
type TagStore interface {
	GetAllTags(ctx context.Context) ([]entities.Tag, error)
	SearchTags(ctx context.Context, query string) ([]entities.Tag, error)
	DeleteOrphanTags(ctx context.Context) (int64, error)
}

// LanguageStore lists the reference languages.
type LanguageStore interface {
	GetAllLanguages(ctx context.Context) ([]entities.Language, error)
}

// TaskQueue enqueues background tasks and reports their status.
// Implemented by *tasks.Client.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
