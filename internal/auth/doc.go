// Package auth identifies the caller of a request so word groups can be owned.
//
// It supports two authentication modes:
//   - "none": No authentication (default); every caller is anonymous and only
//     public word groups are created
//   - "local": Local user database with opaque bearer tokens for the JSON API
//
// # Configuration
//
// Set AUTH_MODE environment variable to select the mode:
//
//	AUTH_MODE=none   # Default, no auth required
//	AUTH_MODE=local  # Register and log in to obtain a token
//
// For local mode, additional configuration:
//
//	AUTH_SESSION_LIFETIME=720h             # Token lifetime (30 days default)
//	AUTH_SESSION_CLEANUP_INTERVAL=5m       # Expired token sweep interval
//	AUTH_BCRYPT_COST=12                    # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5              # Failed logins before lockout
//
// Tokens are scs sessions. On SQLite they live in the sessions table of the
// main database; other engines keep them in memory.
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(usersRepo, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager, cfg.Auth)
//	router.Use(authMiddleware.Handler())
//
// Extract the caller in handlers:
//
//	ownerID := auth.CallerID(c)  // nil for anonymous callers
package auth
