package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
	"github.com/mrlokans/wordgroups/internal/entities"
)

const groupsJSON = `[
  {
    "translations": [
      {"languageName": "English", "word": "moon"},
      {"languageName": "French", "word": "lune"}
    ],
    "tags": ["sky"]
  },
  {
    "translations": [
      {"languageName": "English", "word": "star", "synonyms": ["sun"]},
      {"languageName": "German", "word": "Stern"}
    ]
  }
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newCommand(t *testing.T) (*ImportGroupsCommand, *bytes.Buffer) {
	t.Helper()
	cmd := NewImportGroupsCommand(config.Database{Type: "sqlite", LogLevel: "silent"})
	cmd.Database.Path = filepath.Join(t.TempDir(), "wordgroups.db")
	out := &bytes.Buffer{}
	cmd.Out = out
	return cmd, out
}

func TestNewImportGroupsCommand_ReplacesMemoryPath(t *testing.T) {
	cmd := NewImportGroupsCommand(config.Database{Type: "sqlite", Path: config.DefaultDatabasePath})
	assert.Equal(t, DefaultImportDatabasePath, cmd.Database.Path)

	cmd = NewImportGroupsCommand(config.Database{Type: "sqlite", Path: "/data/wg.db"})
	assert.Equal(t, "/data/wg.db", cmd.Database.Path)
}

func TestImportGroupsCommand_ParseFlags(t *testing.T) {
	cmd := NewImportGroupsCommand(config.Database{Type: "sqlite"})

	err := cmd.ParseFlags([]string{"-file", "groups.json", "-db", "x.db", "-owner", "3", "-dry-run"})
	require.NoError(t, err)

	assert.Equal(t, "groups.json", cmd.FilePath)
	assert.Equal(t, "x.db", cmd.Database.Path)
	assert.Equal(t, uint(3), cmd.OwnerID)
	assert.True(t, cmd.DryRun)
}

func TestImportGroupsCommand_ParseFlags_RequiresFile(t *testing.T) {
	cmd := NewImportGroupsCommand(config.Database{Type: "sqlite"})
	assert.Error(t, cmd.ParseFlags([]string{}))
}

func TestImportGroupsCommand_Run(t *testing.T) {
	cmd, out := newCommand(t)
	cmd.FilePath = writeFile(t, groupsJSON)
	cmd.OwnerID = 9

	require.NoError(t, cmd.Run(context.Background()))
	assert.Contains(t, out.String(), "Imported 2 word groups")

	db, err := database.NewDatabase(cmd.Database)
	require.NoError(t, err)
	defer db.Close()

	groups, err := wordgroups.NewRepository(db).GetMultipleWordGroups(context.Background(), entities.ListOptions{GetAll: true})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.NotNil(t, groups[0].OwnerID)
	assert.Equal(t, uint(9), *groups[0].OwnerID)
	assert.Equal(t, []string{"sky"}, groups[0].Tags)
}

func TestImportGroupsCommand_DryRun(t *testing.T) {
	cmd, out := newCommand(t)
	cmd.FilePath = writeFile(t, groupsJSON)
	cmd.DryRun = true
	cmd.Verbose = true

	require.NoError(t, cmd.Run(context.Background()))

	assert.Contains(t, out.String(), "moon (English) / lune (French) [sky]")
	_, err := os.Stat(cmd.Database.Path)
	assert.True(t, os.IsNotExist(err), "dry run must not create the database")
}

func TestImportGroupsCommand_InvalidFile(t *testing.T) {
	cmd, _ := newCommand(t)
	cmd.FilePath = writeFile(t, `[{"translations": [{"languageName": "English", "word": "moon"}]}]`)

	assert.Error(t, cmd.Run(context.Background()))

	_, err := os.Stat(cmd.Database.Path)
	assert.True(t, os.IsNotExist(err), "validation happens before the database is opened")
}

func TestImportGroupsCommand_MissingFile(t *testing.T) {
	cmd, _ := newCommand(t)
	cmd.FilePath = filepath.Join(t.TempDir(), "nope.json")

	assert.Error(t, cmd.Run(context.Background()))
}
