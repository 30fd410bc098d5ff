// Package tags provides database operations for the global tag catalogue.
//
// This package implements the TagStore interface defined in internal/http/stores.go.
//
// # Interface Implementation
//
//	var _ http.TagStore = (*Repository)(nil)
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	tag, err := repo.GetOrCreateTag(ctx, "animals")
package tags

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

var ErrTagNotFound = errors.New("tag not found")

// Repository handles all tag database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new tags repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// GetOrCreateTag returns the tag with the exact name, creating it if needed.
func (r *Repository) GetOrCreateTag(ctx context.Context, name string) (*entities.Tag, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	id, err := database.GetOrInsert(r.db.DB.WithContext(ctx), "tags", []string{"name"}, []any{name}, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to get or create tag %q: %w", name, err)
	}
	return &entities.Tag{ID: id, Name: name}, nil
}

// GetAllTags retrieves every tag ordered by name.
func (r *Repository) GetAllTags(ctx context.Context) ([]entities.Tag, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	tags := []entities.Tag{}
	err := r.db.DB.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

// SearchTags searches tags by name (case-insensitive partial match).
func (r *Repository) SearchTags(ctx context.Context, query string) ([]entities.Tag, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	tags := []entities.Tag{}
	searchPattern := "%" + query + "%"
	err := r.db.DB.WithContext(ctx).Where("LOWER(name) LIKE LOWER(?)", searchPattern).Order("name").Find(&tags).Error
	return tags, err
}

// GetTagByID retrieves a tag by ID.
func (r *Repository) GetTagByID(ctx context.Context, id uint) (*entities.Tag, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var tag entities.Tag
	err := r.db.DB.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// IsTagOrphan checks if a tag is linked to no word group.
func (r *Repository) IsTagOrphan(ctx context.Context, tagID uint) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&entities.WordGroupTag{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// DeleteOrphanTags removes all tags no word group links to.
// Deleting a word group keeps its tags, so they accumulate until this runs.
func (r *Repository) DeleteOrphanTags(ctx context.Context) (int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	result := r.db.DB.WithContext(ctx).Exec(`
		DELETE FROM tags
		WHERE id NOT IN (SELECT tag_id FROM word_group_tags)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
