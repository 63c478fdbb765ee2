package records

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

	"github.com/talentscout/candidatevault/internal/common"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
)

func newTestRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "encrypted")
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	repo, err := NewFileRepository(dir, logger)
	require.NoError(t, err)
	return repo, dir
}

func sampleRecord(sessionID string, ts time.Time) *models.StoredRecord {
	return &models.StoredRecord{
		SessionID:        sessionID,
		Timestamp:        ts,
		DataVersion:      models.DataVersion,
		PrivacyCompliant: true,
		CandidateInfo: models.EncryptedCandidateInfo{
			FullNameEncrypted: "envelope-name",
			EmailEncrypted:    "envelope-email",
			YearsExperience:   "3",
			DesiredPositions:  []string{"Backend Engineer"},
			TechStack:         []string{"Python", "Docker"},
		},
		PrivacyHashes: models.PrivacyHashes{EmailHash: "abcd1234abcd1234"},
		Metadata:      models.RecordMetadata{CompletionStatus: models.StatusIncomplete},
	}
}

func TestFileRepository_SaveGet(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, sampleRecord("sess-1", ts)))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.Equal(t, []string{"Python", "Docker"}, got.CandidateInfo.TechStack)

	fi, err := os.Stat(filepath.Join(dir, "candidate_sess-1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ts := time.Now().UTC()
	record := sampleRecord("sess-1", ts)
	require.NoError(t, repo.Save(ctx, record))

	record.CandidateInfo.YearsExperience = "5"
	require.NoError(t, repo.Save(ctx, record))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "5", got.CandidateInfo.YearsExperience)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "re-save must not create a second record")
}

func TestFileRepository_GetMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "never-saved")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleRecord("sess-1", time.Now())))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "sess-1"), common.ErrorNotFound)
}

func TestFileRepository_ListSkipsCorruptRecords(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleRecord("good-1", time.Now())))
	require.NoError(t, repo.Save(ctx, sampleRecord("good-2", time.Now())))

	// corrupt JSON and a record with no timestamp, interleaved
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candidate_corrupt.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "candidate_stampless.json"), []byte(`{"session_id":"stampless"}`), 0o600))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []string{list[0].SessionID, list[1].SessionID}
	assert.ElementsMatch(t, []string{"good-1", "good-2"}, ids)
}

func TestFileRepository_ListIgnoresForeignFiles(t *testing.T) {
	repo, dir := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, repo.Save(ctx, sampleRecord("sess-1", time.Now())))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
