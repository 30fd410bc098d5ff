// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - WordGroupStore: word group mutations, queries and pagination (internal/http/stores.go)
//   - TagStore: tag catalogue and orphan cleanup (internal/http/stores.go)
//   - LanguageStore: reference languages (internal/http/stores.go)
//   - UserRepository: user accounts (internal/auth/service.go)
//   - seed.Store: starter content loading (internal/seed/seed.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue: enqueue tasks and read their status (internal/http/stores.go)
//   - TaskEnqueuer: scheduler-side enqueue (internal/scheduler/tag_cleanup.go)
//   - WordGroupBulkCreator, OrphanTagsCleaner: task processor dependencies (internal/tasks/)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., flashcard progress):
//
//  1. Create sub-package: internal/database/progress/
//
//  2. Define repository:
//
//     type Repository struct { db *database.Database }
//
//     func NewRepository(db *database.Database) *Repository
//
//  3. Implement interface methods, deriving every context with db.WithTimeout
//
//  4. Add compile-time check:
//
//     var _ http.ProgressStore = (*progress.Repository)(nil)
//
// # Adding a New Background Task
//
//  1. Define the payload type with a Config() backlite.QueueConfig method in internal/tasks/
//
//  2. Write a processor constructor taking the narrow interface it needs
//
//  3. Register the queue in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
