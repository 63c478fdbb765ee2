package exports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentscout/candidatevault/internal/filex"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
)

const exportPrefix = "export_"

// FileRepository writes export bundles into a dedicated exports directory.
type FileRepository struct {
	dir    string
	logger logging.Logger
}

// NewFileRepository ensures dir exists and returns a repository over it.
func NewFileRepository(dir string, logger logging.Logger) (*FileRepository, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileRepository{dir: dir, logger: logger.With("module", "exports_file")}, nil
}

// Write names the artifact export_<session>_<timestamp>_<suffix>.json. The
// random suffix keeps two exports of the same session distinct even within
// one second.
func (r *FileRepository) Write(ctx context.Context, bundle *models.ExportBundle) (string, error) {
	stamp := bundle.ExportInfo.ExportedAt.Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	name := fmt.Sprintf("%s%s_%s_%s.json", exportPrefix, bundle.ExportInfo.SessionID, stamp, suffix)
	path := filepath.Join(r.dir, name)

	if err := filex.WriteJSON(path, bundle, 0o600); err != nil {
		return "", fmt.Errorf("write export bundle: %w", err)
	}
	return path, nil
}

func (r *FileRepository) DeleteForSession(ctx context.Context, sessionID string) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("list exports: %w", err)
	}

	prefix := exportPrefix + sessionID + "_"
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, e.Name())); err != nil {
			r.logger.Warn(ctx, "failed to remove export artifact", "file", e.Name(), "error", err.Error())
			continue
		}
		removed++
	}
	return removed, nil
}

func (r *FileRepository) SweepOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("list exports: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), exportPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			r.logger.Warn(ctx, "failed to stat export artifact", "file", e.Name(), "error", err.Error())
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, e.Name())); err != nil {
			r.logger.Warn(ctx, "failed to remove stale export artifact", "file", e.Name(), "error", err.Error())
			continue
		}
		removed++
	}
	return removed, nil
}
