package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/entities"
)

// DefaultStatementTimeout bounds every repository call when no timeout is configured.
const DefaultStatementTimeout = 5 * time.Second

type Database struct {
	DB               *gorm.DB
	StatementTimeout time.Duration
}

// NewDatabase connects, migrates the schema and seeds the language reference set.
// Any error leaves the process without a usable schema and should be treated as fatal.
func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if isSQLite(cfg.Type) {
		// Single writer; also keeps one in-memory database alive for the process lifetime
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(max(cfg.MaxOpenConns/2, 1))
	}

	if err := db.AutoMigrate(entities.AllModels()...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	timeout := cfg.StatementTimeout
	if timeout <= 0 {
		timeout = DefaultStatementTimeout
	}
	database := &Database{DB: db, StatementTimeout: timeout}

	if err := database.seedLanguages(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed languages: %w", err)
	}

	log.Printf("Database initialized successfully (%s: %s)", dialectName(cfg.Type), describeTarget(cfg))

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialect returns the gorm dialector name: "sqlite", "mysql" or "postgres".
func (d *Database) Dialect() string {
	return d.DB.Dialector.Name()
}

// WithTimeout derives a context bounded by the configured statement timeout.
func (d *Database) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d.StatementTimeout)
}

// Ping checks that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := d.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (d *Database) seedLanguages() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range entities.DefaultLanguages {
			if _, err := GetOrInsert(tx, "languages", []string{"name"}, []any{name}, "id"); err != nil {
				return fmt.Errorf("failed to seed language %s: %w", name, err)
			}
		}
		return nil
	})
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "sqlite", "sqlite3":
		path := cfg.Path
		if path == "" {
			path = config.DefaultDatabasePath
		}
		return sqlite.Open(sqliteDSN(path)), nil

	case "mysql", "mariadb":
		return mysql.Open(mysqlDSN(cfg)), nil

	case "postgres", "postgresql":
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			port,
		)
		return postgres.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

// mysqlGroupConcatMaxLen replaces MySQL's 1024 byte GROUP_CONCAT default,
// which would silently cut long synonym and tag lists.
const mysqlGroupConcatMaxLen = 1 << 20

// mysqlDSN builds the connection string. Unknown DSN parameters are applied
// by the driver as session variables on every new connection.
func mysqlDSN(cfg config.Database) string {
	port := cfg.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&group_concat_max_len=%d",
		cfg.User,
		cfg.Password,
		cfg.Host,
		port,
		cfg.Name,
		mysqlGroupConcatMaxLen,
	)
}

// sqliteDSN enables foreign key enforcement so ON DELETE CASCADE is honoured.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func isSQLite(dbType string) bool {
	switch strings.ToLower(dbType) {
	case "", "sqlite", "sqlite3":
		return true
	}
	return false
}

func dialectName(dbType string) string {
	if dbType == "" {
		return "sqlite"
	}
	return dbType
}

func describeTarget(cfg config.Database) string {
	if isSQLite(cfg.Type) {
		if cfg.Path == "" {
			return config.DefaultDatabasePath
		}
		return cfg.Path
	}
	return fmt.Sprintf("%s@%s/%s", cfg.User, cfg.Host, cfg.Name)
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
