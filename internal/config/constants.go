package config

// Default paths for databases
const (
	// DefaultDatabasePath keeps the main database in memory; all data is lost on restart
	DefaultDatabasePath = ":memory:"

	// DefaultTasksDatabasePath is the SQLite file backing the task queue
	DefaultTasksDatabasePath = "./wordgroups-tasks.db"
)
