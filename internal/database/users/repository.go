// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByUsername(ctx, "alice")
package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

var ErrUserNotFound = errors.New("user not found")

// Repository handles all user database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new users repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// CreateUser stores a user with an already hashed password.
// A taken username returns database.ErrConstraintViolation.
func (r *Repository) CreateUser(ctx context.Context, username, passwordHash string) (*entities.User, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := database.TranslateError(r.db.DB.WithContext(ctx).Create(user).Error); err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var user entities.User
	err := r.db.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var user entities.User
	err := r.db.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
