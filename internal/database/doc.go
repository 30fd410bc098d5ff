// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, language seeding
//	├── getorinsert.go   # Generic get-or-create primitive (tags, languages)
//	├── dialect.go       # Per-engine string aggregation
//	├── errors.go        # Shared sentinel errors and engine error translation
//	├── wordgroups/      # Word group mutations, queries and pagination
//	├── tags/            # Global tag catalogue
//	├── languages/       # Language reference set
//	└── users/           # User accounts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection, schema and reference data
//	db, err := database.NewDatabase(cfg.Database)
//
//	// Create domain-specific repositories
//	groupsRepo := wordgroups.NewRepository(db)
//	tagsRepo := tags.NewRepository(db)
//
//	// Use repositories
//	id, err := groupsRepo.CreateWordGroup(ctx, input, nil)
//	view, err := groupsRepo.GetWordGroupByID(ctx, id)
//
// # Engines
//
// SQLite (in-memory by default) is the primary engine and is pinned to a
// single connection. MySQL/MariaDB and PostgreSQL are selected with DB_TYPE;
// the only dialect-specific SQL is the string aggregate in dialect.go.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct holding *database.Database
//  3. Add NewRepository(db *database.Database) constructor
//  4. Implement the store interface used by internal/http
//  5. Add a compile-time interface check to internal/interfaces/checks.go
package database
