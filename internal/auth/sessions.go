package auth

import (
	"context"
	"database/sql"
	"encoding/gob"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/wordgroups/internal/config"
)

// Session data keys
const (
	SessionKeyUserID  = "user_id"
	SessionKeyLoginAt = "login_at"
)

func init() {
	gob.Register(time.Time{})
}

// SessionManager issues opaque bearer tokens backed by scs sessions.
// Tokens travel in the Authorization header, so no cookie is ever written.
type SessionManager struct {
	*scs.SessionManager
	stopCleanup func()
}

// NewSessionManager stores sessions in the sessions table of a SQLite database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	store := sqlite3store.NewWithCleanupInterval(sqlDB, cfg.SessionCleanupInterval)
	return newSessionManager(store, store.StopCleanup, cfg), nil
}

// NewMemorySessionManager keeps sessions in process memory. Used when the
// main database is not SQLite; tokens do not survive a restart.
func NewMemorySessionManager(cfg config.Auth) *SessionManager {
	store := memstore.NewWithCleanupInterval(cfg.SessionCleanupInterval)
	return newSessionManager(store, store.StopCleanup, cfg)
}

func newSessionManager(store scs.Store, stop func(), cfg config.Auth) *SessionManager {
	sm := scs.New()
	sm.Store = store
	sm.Lifetime = cfg.SessionLifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 24 * time.Hour
	}
	return &SessionManager{SessionManager: sm, stopCleanup: stop}
}

// IssueToken creates a session for userID and returns its token.
func (sm *SessionManager) IssueToken(ctx context.Context, userID uint) (string, time.Time, error) {
	ctx, err := sm.Load(ctx, "")
	if err != nil {
		return "", time.Time{}, err
	}

	// Store user ID as int to match GetInt() retrieval
	sm.Put(ctx, SessionKeyUserID, int(userID))
	sm.Put(ctx, SessionKeyLoginAt, time.Now())

	return sm.Commit(ctx)
}

// UserIDFromToken resolves a token to its user id.
// Unknown and expired tokens return ErrInvalidToken.
func (sm *SessionManager) UserIDFromToken(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	ctx, err := sm.Load(ctx, token)
	if err != nil {
		return 0, err
	}
	userID := sm.GetInt(ctx, SessionKeyUserID)
	if userID <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

// RevokeToken deletes the session behind token. Revoking an unknown token is a no-op.
func (sm *SessionManager) RevokeToken(ctx context.Context, token string) error {
	ctx, err := sm.Load(ctx, token)
	if err != nil {
		return err
	}
	return sm.Destroy(ctx)
}

// Stop ends the store's background cleanup goroutine.
func (sm *SessionManager) Stop() {
	if sm.stopCleanup != nil {
		sm.stopCleanup()
	}
}
