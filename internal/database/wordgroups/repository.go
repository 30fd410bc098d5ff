// Package wordgroups provides database operations for word groups: the
// multi-row create/update/delete sequences and the aggregation queries that
// rebuild a group's nested translations view.
//
// This package implements the WordGroupStore interface defined in internal/http/stores.go.
//
// # Usage
//
//	repo := wordgroups.NewRepository(db)
//	id, err := repo.CreateWordGroup(ctx, input, &userID)
//	view, err := repo.GetWordGroupByID(ctx, id)
package wordgroups

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

var (
	ErrWordGroupNotFound = errors.New("no word group found with the given ID")
	ErrForbidden         = errors.New("word group belongs to another user")
	ErrNoTranslations    = errors.New("word group has no translations")
	ErrInvalidLimit      = errors.New("limit must be positive")
	ErrInvalidTable      = errors.New("table does not support pagination")
)

// Repository handles all word group database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new word groups repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// CreateWordGroup stores a group, its words, their synonyms and its tag links
// in one transaction and returns the new group id. ownerID nil creates a public group.
func (r *Repository) CreateWordGroup(ctx context.Context, input entities.WordGroupInput, ownerID *uint) (uint, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	var id uint
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = createWordGroup(tx, input, entities.WordGroup{
			OwnerID:   ownerID,
			CreatedAt: &now,
			UpdatedAt: &now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// BulkCreateWordGroups stores every input in a single transaction.
// Either all groups are created or none are.
func (r *Repository) BulkCreateWordGroups(ctx context.Context, inputs []entities.WordGroupInput, ownerID *uint) ([]uint, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	ids := make([]uint, 0, len(inputs))
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, input := range inputs {
			id, err := createWordGroup(tx, input, entities.WordGroup{
				OwnerID:   ownerID,
				CreatedAt: &now,
				UpdatedAt: &now,
			})
			if err != nil {
				return fmt.Errorf("word group %d: %w", i, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateWordGroup replaces a group by deleting it and creating it again from
// input. The returned id differs from groupID; owner and creation time carry over.
func (r *Repository) UpdateWordGroup(ctx context.Context, groupID uint, input entities.WordGroupInput, callerID *uint) (uint, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var newID uint
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findGroup(tx, groupID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrWordGroupNotFound
		}
		if !canModify(existing, callerID) {
			return ErrForbidden
		}

		if err := deleteGroupRows(tx, groupID); err != nil {
			return err
		}

		now := time.Now().UTC()
		createdAt := existing.CreatedAt
		if createdAt == nil {
			createdAt = &now
		}
		newID, err = createWordGroup(tx, input, entities.WordGroup{
			OwnerID:   existing.OwnerID,
			CreatedAt: createdAt,
			UpdatedAt: &now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// DeleteWordGroup removes a group with its words, synonyms and tag links.
// Tags themselves are kept. Deleting a missing group is not an error.
func (r *Repository) DeleteWordGroup(ctx context.Context, groupID uint, callerID *uint) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findGroup(tx, groupID)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		if !canModify(existing, callerID) {
			return ErrForbidden
		}
		return deleteGroupRows(tx, groupID)
	})
}

// canModify reports whether callerID may change group. Public groups
// (no owner) are editable by anyone.
func canModify(group *entities.WordGroup, callerID *uint) bool {
	if group.OwnerID == nil {
		return true
	}
	return callerID != nil && *callerID == *group.OwnerID
}

func findGroup(tx *gorm.DB, groupID uint) (*entities.WordGroup, error) {
	var group entities.WordGroup
	err := tx.First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load word group %d: %w", groupID, err)
	}
	return &group, nil
}

func createWordGroup(tx *gorm.DB, input entities.WordGroupInput, group entities.WordGroup) (uint, error) {
	if len(input.Translations) == 0 {
		return 0, ErrNoTranslations
	}

	languageIDs, err := resolveLanguages(tx, input.Translations)
	if err != nil {
		return 0, err
	}

	group.Name = input.Translations[0].Word
	if err := database.TranslateError(tx.Create(&group).Error); err != nil {
		return 0, fmt.Errorf("failed to create word group: %w", err)
	}

	for _, translation := range input.Translations {
		word := entities.Word{
			LanguageID: languageIDs[translation.LanguageName],
			Text:       translation.Word,
			GroupID:    group.ID,
		}
		if err := database.TranslateError(tx.Create(&word).Error); err != nil {
			return 0, fmt.Errorf("failed to create %s word %q: %w", translation.LanguageName, translation.Word, err)
		}

		if len(translation.Synonyms) == 0 {
			continue
		}
		synonyms := make([]entities.Synonym, 0, len(translation.Synonyms))
		for _, text := range translation.Synonyms {
			synonyms = append(synonyms, entities.Synonym{WordID: word.ID, Text: text})
		}
		if err := database.TranslateError(tx.Create(&synonyms).Error); err != nil {
			return 0, fmt.Errorf("failed to create synonyms for %q: %w", translation.Word, err)
		}
	}

	// A repeated name would link the same tag twice
	tagNames := slices.Clone(input.Tags)
	slices.Sort(tagNames)
	for _, name := range slices.Compact(tagNames) {
		tagID, err := database.GetOrInsert(tx, "tags", []string{"name"}, []any{name}, "id")
		if err != nil {
			return 0, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		link := entities.WordGroupTag{GroupID: group.ID, TagID: tagID}
		if err := database.TranslateError(tx.Create(&link).Error); err != nil {
			return 0, fmt.Errorf("failed to link tag %q: %w", name, err)
		}
	}

	return group.ID, nil
}

// resolveLanguages maps every language name in translations to its id.
// Languages are never created here.
func resolveLanguages(tx *gorm.DB, translations []entities.TranslationInput) (map[string]uint, error) {
	names := make([]string, 0, len(translations))
	for _, t := range translations {
		names = append(names, t.LanguageName)
	}

	var languages []entities.Language
	if err := tx.Where("name IN ?", names).Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}

	ids := make(map[string]uint, len(languages))
	for _, l := range languages {
		ids[l.Name] = l.ID
	}
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			return nil, fmt.Errorf("%w: %q", database.ErrUnknownLanguage, name)
		}
	}
	return ids, nil
}

func deleteGroupRows(tx *gorm.DB, groupID uint) error {
	wordIDs := tx.Model(&entities.Word{}).Select("id").Where("group_id = ?", groupID)
	if err := tx.Where("word_id IN (?)", wordIDs).Delete(&entities.Synonym{}).Error; err != nil {
		return fmt.Errorf("failed to delete synonyms: %w", err)
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&entities.Word{}).Error; err != nil {
		return fmt.Errorf("failed to delete words: %w", err)
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&entities.WordGroupTag{}).Error; err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}
	if err := tx.Delete(&entities.WordGroup{}, groupID).Error; err != nil {
		return fmt.Errorf("failed to delete word group: %w", err)
	}
	return nil
}
