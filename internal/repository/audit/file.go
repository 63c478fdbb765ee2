package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentscout/candidatevault/internal/filex"
	"github.com/talentscout/candidatevault/internal/models"
)

// activityLog is the on-disk shape of the audit file.
type activityLog struct {
	Activities []models.AuditEntry `json:"activities"`
}

// FileRepository keeps the whole log in one JSON file. Every append rewrites
// the file; a single-writer mutex serializes the read-append-truncate-rewrite
// cycle so in-process concurrent appends cannot lose entries.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository returns a repository over the given log file path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var log activityLog
	if err := filex.ReadJSON(r.path, &log); err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}

	log.Activities = append(log.Activities, entry)
	if len(log.Activities) > MaxEntries {
		log.Activities = log.Activities[len(log.Activities)-MaxEntries:]
	}

	if err := filex.WriteJSON(r.path, &log, 0o600); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func (r *FileRepository) Recent(ctx context.Context, n int) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var log activityLog
	if err := filex.ReadJSON(r.path, &log); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	if n > len(log.Activities) {
		n = len(log.Activities)
	}
	return log.Activities[len(log.Activities)-n:], nil
}
