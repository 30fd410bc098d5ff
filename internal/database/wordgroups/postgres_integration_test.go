//go:build integration

package wordgroups

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mrlokans/wordgroups/internal/config"
	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/entities"
)

// TestWithPostgres runs the aggregate queries against a real PostgreSQL
// container, which uses string_agg instead of GROUP_CONCAT.
func TestWithPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "wordgroups",
				"POSTGRES_PASSWORD": "wordgroups",
				"POSTGRES_DB":       "wordgroups",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL: %v", err)
		}
	}()

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.NewDatabase(config.Database{
		Type:     "postgres",
		Host:     host,
		Port:     port.Port(),
		Name:     "wordgroups",
		User:     "wordgroups",
		Password: "wordgroups",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	id, err := repo.CreateWordGroup(ctx, catInput(), nil)
	require.NoError(t, err)

	group, err := repo.GetWordGroupByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, []entities.TranslationView{
		{LanguageName: "English", Word: "cat", Synonyms: []string{}},
		{LanguageName: "Finnish", Word: "kissa", Synonyms: []string{"kisu"}},
	}, group.Translations)
	assert.Equal(t, []string{"animals"}, group.Tags)

	newID, err := repo.UpdateWordGroup(ctx, id, catInput(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)

	_, err = repo.CreateWordGroup(ctx, catInput(), nil)
	require.NoError(t, err)

	groups, err := repo.GetMultipleWordGroups(ctx, entities.ListOptions{GetAll: true})
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	info, err := repo.Pagination(ctx, "word_groups", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Pages)

	require.NoError(t, repo.DeleteWordGroup(ctx, newID, nil))
	deleted, err := repo.GetWordGroupByID(ctx, newID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
