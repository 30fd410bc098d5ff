package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/users"
	"github.com/mrlokans/wordgroups/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAuthRequired       = errors.New("authentication required")
	ErrUsernameInvalid    = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
}

// Service handles registration and credential checks.
type Service struct {
	users  UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserRepository, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (*entities.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, username, passwordHash)
	if errors.Is(err, database.ErrConstraintViolation) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}
