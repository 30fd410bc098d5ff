package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // Every caller is anonymous (default)
	AuthModeLocal AuthMode = "local" // Local user database with bearer tokens
)

type (
	Config struct {
		HTTP
		Global
		Database
		Seed
		Tasks
		TagCleanup
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Type             string // sqlite, mysql, mariadb, postgres, postgresql
		Path             string // SQLite file path or ":memory:"
		Host             string
		Port             string
		Name             string
		User             string
		Password         string
		MaxOpenConns     int
		LogLevel         string // silent, error, warn, info
		StatementTimeout time.Duration
	}
	Seed struct {
		StarterContent bool // Load the embedded starter word groups into an empty database
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	TagCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Auth struct {
		Mode                   AuthMode
		SessionLifetime        time.Duration
		SessionCleanupInterval time.Duration
		BcryptCost             int
		MaxLoginAttempts       int           // Failed logins per IP+username before lockout
		RateLimitWindow        time.Duration // Window for counting failed logins
		LockoutDuration        time.Duration
	}
)

// loadDotEnv reads an optional .env file into the process environment.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: failed to load .env file: %v", err)
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults
	v.SetDefault("db_type", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "")
	v.SetDefault("db_name", "wordgroups")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_max_open_conns", 5) // Ignored for SQLite, which always uses one connection
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("database_statement_timeout", "5s")

	v.SetDefault("seed_starter_content", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("tag_cleanup_enabled", true)
	v.SetDefault("tag_cleanup_schedule", "0 * * * *") // Hourly at :00

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_lifetime", "720h") // 30 days
	v.SetDefault("auth_session_cleanup_interval", "5m")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Type:             v.GetString("DB_TYPE"),
			Path:             v.GetString("DATABASE_PATH"),
			Host:             v.GetString("DB_HOST"),
			Port:             v.GetString("DB_PORT"),
			Name:             v.GetString("DB_NAME"),
			User:             v.GetString("DB_USER"),
			Password:         v.GetString("DB_PASSWORD"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
			LogLevel:         v.GetString("DATABASE_LOG_LEVEL"),
			StatementTimeout: v.GetDuration("DATABASE_STATEMENT_TIMEOUT"),
		},
		Seed: Seed{
			StarterContent: v.GetBool("SEED_STARTER_CONTENT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		TagCleanup: TagCleanup{
			Enabled:  v.GetBool("TAG_CLEANUP_ENABLED"),
			Schedule: v.GetString("TAG_CLEANUP_SCHEDULE"),
		},
		Auth: Auth{
			Mode:                   AuthMode(v.GetString("AUTH_MODE")),
			SessionLifetime:        v.GetDuration("AUTH_SESSION_LIFETIME"),
			SessionCleanupInterval: v.GetDuration("AUTH_SESSION_CLEANUP_INTERVAL"),
			BcryptCost:             v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts:       v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:        v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:        v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
	}
}
