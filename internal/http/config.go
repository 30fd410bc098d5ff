package http

import (
	"github.com/mrlokans/wordgroups/internal/auth"
	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database       *database.Database
	WordGroupStore WordGroupStore
	TagStore       TagStore
	LanguageStore  LanguageStore

	// Authentication (optional in "none" mode)
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthController *auth.AuthController
	AuthConfig     config.Auth

	// Task queue (optional). Leave nil when tasks are disabled.
	TaskQueue TaskQueue

	// Metrics is the Prometheus instrumentation. A fresh one is created when nil.
	Metrics *Metrics

	// Application info
	Version string
}
