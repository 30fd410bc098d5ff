// Package languages provides read access to the language reference set
// seeded by database.NewDatabase.
package languages

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// GetAllLanguages returns every language ordered by name.
func (r *Repository) GetAllLanguages(ctx context.Context) ([]entities.Language, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	languages := []entities.Language{}
	err := r.db.DB.WithContext(ctx).Order("name").Find(&languages).Error
	return languages, err
}

// GetLanguageByName returns database.ErrUnknownLanguage when name is not seeded.
func (r *Repository) GetLanguageByName(ctx context.Context, name string) (*entities.Language, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var language entities.Language
	err := r.db.DB.WithContext(ctx).Where("name = ?", name).First(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUnknownLanguage
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}
