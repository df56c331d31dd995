package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cue-cards/internal/repository"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRead_NoDocument(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Read(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoDocument)

	_, err = repo.UpdatedAt(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoDocument)
}

func TestWriteThenRead(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	body := []byte("{\"cards\": [],\n \"categories\": [\"Work\"]}")
	require.NoError(t, repo.Write(ctx, body))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, body, got, "document must be stored verbatim")

	updated, err := repo.UpdatedAt(ctx)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(updated))
}

func TestWrite_Replaces(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, []byte(`{"cards":[{"id":"a"}],"categories":[]}`)))
	require.NoError(t, repo.Write(ctx, []byte(`{"cards":[],"categories":[]}`)))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"cards":[],"categories":[]}`, string(got))

	var rows int
	require.NoError(t, repo.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cards.db")
	ctx := context.Background()

	first, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Write(ctx, []byte(`{"cards":[],"categories":["Home"]}`)))
	require.NoError(t, first.Close())

	second, err := New(dbPath)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"cards":[],"categories":["Home"]}`, string(got))
}
