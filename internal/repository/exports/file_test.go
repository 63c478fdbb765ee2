package exports

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
)

func newTestRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "exports")
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	repo, err := NewFileRepository(dir, logger)
	require.NoError(t, err)
	return repo, dir
}

func bundle(sessionID string, at time.Time) *models.ExportBundle {
	return &models.ExportBundle{
		ExportInfo: models.ExportInfo{
			ExportedAt:    at,
			SessionID:     sessionID,
			Format:        "json",
			GDPRCompliant: true,
		},
		PrivacyNotice: models.DefaultPrivacyNotice(30),
	}
}

func TestFileRepository_WriteDistinctArtifacts(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	first, err := repo.Write(ctx, bundle("sess-1", at))
	require.NoError(t, err)
	second, err := repo.Write(ctx, bundle("sess-1", at))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same session, same second: artifacts must still be distinct")

	for _, path := range []string{first, second} {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestFileRepository_DeleteForSession(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Write(ctx, bundle("sess-1", now))
	require.NoError(t, err)
	_, err = repo.Write(ctx, bundle("sess-1", now))
	require.NoError(t, err)
	keep, err := repo.Write(ctx, bundle("sess-2", now))
	require.NoError(t, err)

	removed, err := repo.DeleteForSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(keep), entries[0].Name())
}

func TestFileRepository_DeleteForSession_PrefixIsExact(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	// "sess-1" must not match "sess-10"
	_, err := repo.Write(ctx, bundle("sess-10", now))
	require.NoError(t, err)

	removed, err := repo.DeleteForSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestFileRepository_SweepOlderThan(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	stale, err := repo.Write(ctx, bundle("old", now.AddDate(0, 0, -45)))
	require.NoError(t, err)
	fresh, err := repo.Write(ctx, bundle("new", now))
	require.NoError(t, err)

	// retention matches on file mtime, not the embedded timestamp
	old := now.AddDate(0, 0, -45)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err := repo.SweepOlderThan(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
