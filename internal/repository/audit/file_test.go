package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/candidatevault/internal/models"
)

func entry(n int) models.AuditEntry {
	return models.AuditEntry{
		Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second),
		Activity:  models.ActivitySave,
		SessionID: fmt.Sprintf("sess-%d", n),
	}
}

func TestFileRepository_AppendRecent(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "activity_log.json"))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, entry(i)))
	}

	recent, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "sess-2", recent[0].SessionID)
	assert.Equal(t, "sess-4", recent[2].SessionID)

	all, err := repo.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestFileRepository_CapEvictsOldest(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "activity_log.json"))
	ctx := context.Background()

	for i := 0; i < MaxEntries+1; i++ {
		require.NoError(t, repo.Append(ctx, entry(i)))
	}

	all, err := repo.Recent(ctx, MaxEntries+10)
	require.NoError(t, err)
	require.Len(t, all, MaxEntries)
	assert.Equal(t, "sess-1", all[0].SessionID, "appending the 1001st entry evicts the oldest")
	assert.Equal(t, fmt.Sprintf("sess-%d", MaxEntries), all[len(all)-1].SessionID)
}

func TestFileRepository_ConcurrentAppendsLoseNothing(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "activity_log.json"))
	ctx := context.Background()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = repo.Append(ctx, entry(w*perWriter+i))
			}
		}(w)
	}
	wg.Wait()

	all, err := repo.Recent(ctx, MaxEntries)
	require.NoError(t, err)
	assert.Len(t, all, writers*perWriter)
}
