// Package records provides StoredRecord persistence: a JSON-file backend for
// the default single-directory deployment and a PostgreSQL backend for
// installations that outgrow it.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/talentscout/candidatevault/internal/common"
	"github.com/talentscout/candidatevault/internal/filex"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
)

const (
	filePrefix = "candidate_"
	fileSuffix = ".json"
)

// FileRepository stores one candidate_<session>.json per record under the
// encrypted/ data subdirectory, owner-only permission, atomic writes.
type FileRepository struct {
	dir    string
	logger logging.Logger
}

// NewFileRepository ensures dir exists and returns a repository over it.
func NewFileRepository(dir string, logger logging.Logger) (*FileRepository, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileRepository{dir: dir, logger: logger.With("module", "records_file")}, nil
}

func (r *FileRepository) path(sessionID string) string {
	return filepath.Join(r.dir, filePrefix+sessionID+fileSuffix)
}

func (r *FileRepository) Save(ctx context.Context, record *models.StoredRecord) error {
	if err := filex.WriteJSON(r.path(record.SessionID), record, 0o600); err != nil {
		return fmt.Errorf("save record %s: %w", record.SessionID, err)
	}
	return nil
}

func (r *FileRepository) Get(ctx context.Context, sessionID string) (*models.StoredRecord, error) {
	b, err := os.ReadFile(r.path(sessionID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", sessionID, err)
	}
	var record models.StoredRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", sessionID, err)
	}
	return &record, nil
}

func (r *FileRepository) Delete(ctx context.Context, sessionID string) error {
	err := os.Remove(r.path(sessionID))
	if errors.Is(err, os.ErrNotExist) {
		return common.ErrorNotFound
	}
	return err
}

// List reads every candidate_*.json in the directory. A file that cannot be
// read or parsed, or that carries no timestamp, is logged and skipped; the
// enumeration continues for all other records.
func (r *FileRepository) List(ctx context.Context) ([]*models.StoredRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var result []*models.StoredRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		b, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			r.logger.Warn(ctx, "skipping unreadable record", "file", name, "error", err.Error())
			continue
		}
		var record models.StoredRecord
		if err := json.Unmarshal(b, &record); err != nil {
			r.logger.Warn(ctx, "skipping corrupt record", "file", name, "error", err.Error())
			continue
		}
		if record.Timestamp.IsZero() {
			r.logger.Warn(ctx, "skipping record without timestamp", "file", name)
			continue
		}
		result = append(result, &record)
	}
	return result, nil
}
