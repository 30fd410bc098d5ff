package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/entities"
)

// setupTestDB creates a fresh in-memory database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.Database{Type: "sqlite", Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_SeedsLanguages(t *testing.T) {
	db := setupTestDB(t)

	var names []string
	err := db.DB.Model(&entities.Language{}).Order("name").Pluck("name", &names).Error
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Finnish", "French", "German", "Spanish", "Swedish"}, names)
}

func TestNewDatabase_SeedingIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.seedLanguages())
	require.NoError(t, db.seedLanguages())

	var count int64
	require.NoError(t, db.DB.Model(&entities.Language{}).Count(&count).Error)
	assert.Equal(t, int64(len(entities.DefaultLanguages)), count)
}

func TestNewDatabase_CreatesAllTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"languages", "users", "word_groups", "words", "synonyms", "tags", "word_group_tags"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestNewDatabase_UnsupportedType(t *testing.T) {
	_, err := NewDatabase(config.Database{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestNewDatabase_DefaultTimeout(t *testing.T) {
	db := setupTestDB(t)
	assert.Equal(t, DefaultStatementTimeout, db.StatementTimeout)
	assert.Equal(t, "sqlite", db.Dialect())
}

func TestDatabase_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", sqliteDSN(":memory:"))
	assert.Equal(t, "file:test.db?cache=shared&_foreign_keys=on", sqliteDSN("file:test.db?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", sqliteDSN("app.db?_fk=1"))
}

func TestMysqlDSN(t *testing.T) {
	dsn := mysqlDSN(config.Database{Host: "db", User: "app", Password: "secret", Name: "wordgroups"})
	assert.Equal(t, "app:secret@tcp(db:3306)/wordgroups?charset=utf8mb4&parseTime=True&loc=UTC&group_concat_max_len=1048576", dsn)

	dsn = mysqlDSN(config.Database{Host: "db", Port: "3307", Name: "wordgroups"})
	assert.Contains(t, dsn, "@tcp(db:3307)/")
}

func TestStringAggFor(t *testing.T) {
	assert.Equal(t, "GROUP_CONCAT(s.text, '\x1f')", StringAggFor("sqlite", "s.text"))
	assert.Equal(t, "GROUP_CONCAT(s.text SEPARATOR '\x1f')", StringAggFor("mysql", "s.text"))
	assert.Equal(t, "string_agg(s.text, '\x1f')", StringAggFor("postgres", "s.text"))
}
