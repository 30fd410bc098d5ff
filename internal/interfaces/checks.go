package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/wordgroups/internal/auth"
	"github.com/mrlokans/wordgroups/internal/database/languages"
	"github.com/mrlokans/wordgroups/internal/database/tags"
	"github.com/mrlokans/wordgroups/internal/database/users"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
	"github.com/mrlokans/wordgroups/internal/http"
	"github.com/mrlokans/wordgroups/internal/scheduler"
	"github.com/mrlokans/wordgroups/internal/seed"
	"github.com/mrlokans/wordgroups/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.WordGroupStore = (*wordgroups.Repository)(nil)
var _ http.TagStore = (*tags.Repository)(nil)
var _ http.LanguageStore = (*languages.Repository)(nil)
var _ auth.UserRepository = (*users.Repository)(nil)
var _ seed.Store = (*wordgroups.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
var _ tasks.WordGroupBulkCreator = (*wordgroups.Repository)(nil)
var _ tasks.OrphanTagsCleaner = (*tags.Repository)(nil)
