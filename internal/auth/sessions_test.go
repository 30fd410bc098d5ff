package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionManager_TokenLifecycle(t *testing.T) {
	_, sm := setupAuth(t)
	ctx := context.Background()

	token, expiry, err := sm.IssueToken(ctx, 42)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !expiry.After(time.Now()) {
		t.Errorf("expiry %v should be in the future", expiry)
	}

	userID, err := sm.UserIDFromToken(ctx, token)
	if err != nil {
		t.Fatalf("UserIDFromToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("UserIDFromToken() = %d, want 42", userID)
	}

	if err := sm.RevokeToken(ctx, token); err != nil {
		t.Fatalf("RevokeToken() error = %v", err)
	}
	if _, err := sm.UserIDFromToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("revoked token error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestSessionManager_UnknownToken(t *testing.T) {
	_, sm := setupAuth(t)
	ctx := context.Background()

	if _, err := sm.UserIDFromToken(ctx, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token error = %v, want %v", err, ErrInvalidToken)
	}
	if _, err := sm.UserIDFromToken(ctx, "not-a-real-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unknown token error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestMemorySessionManager(t *testing.T) {
	sm := NewMemorySessionManager(testAuthConfig())
	defer sm.Stop()
	ctx := context.Background()

	first, _, err := sm.IssueToken(ctx, 1)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	second, _, err := sm.IssueToken(ctx, 2)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if first == second {
		t.Error("tokens should be unique")
	}

	userID, err := sm.UserIDFromToken(ctx, second)
	if err != nil || userID != 2 {
		t.Errorf("UserIDFromToken() = %d, %v; want 2, nil", userID, err)
	}
}
