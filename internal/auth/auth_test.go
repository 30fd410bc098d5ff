package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/users"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		Mode:             config.AuthModeLocal,
		SessionLifetime:  time.Hour,
		BcryptCost:       bcrypt.MinCost,
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}
}

// setupAuth wires a service and SQLite-backed session manager on a fresh in-memory database.
func setupAuth(t *testing.T) (*Service, *SessionManager) {
	t.Helper()

	db, err := database.NewDatabase(config.Database{Type: "sqlite", Path: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := testAuthConfig()
	sm, err := NewSessionManager(sqlDB, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	t.Cleanup(func() {
		sm.Stop()
		db.Close()
	})

	return NewService(users.NewRepository(db), cfg), sm
}
