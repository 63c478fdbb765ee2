package repomanager

import (
	"path/filepath"

	"github.com/talentscout/candidatevault/internal/filex"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/repository/audit"
	"github.com/talentscout/candidatevault/internal/repository/exports"
	"github.com/talentscout/candidatevault/internal/repository/records"
)

// Data directory layout, mirrored by both managers for the file-only parts.
const (
	encryptedSubdir = "encrypted"
	exportsSubdir   = "exports"
	auditLogFile    = "activity_log.json"
)

// FileManager is the default backend: everything under one data directory.
type FileManager struct {
	records *records.FileRepository
	audit   *audit.FileRepository
	exports *exports.FileRepository
}

// NewFileManager bootstraps the data directory layout and returns the
// repositories over it.
func NewFileManager(dataDir string, logger logging.Logger) (*FileManager, error) {
	if _, err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}

	recordRepo, err := records.NewFileRepository(filepath.Join(dataDir, encryptedSubdir), logger)
	if err != nil {
		return nil, err
	}
	exportRepo, err := exports.NewFileRepository(filepath.Join(dataDir, exportsSubdir), logger)
	if err != nil {
		return nil, err
	}

	return &FileManager{
		records: recordRepo,
		audit:   audit.NewFileRepository(filepath.Join(dataDir, auditLogFile)),
		exports: exportRepo,
	}, nil
}

func (m *FileManager) Records() records.Repository { return m.records }
func (m *FileManager) Audit() audit.Repository     { return m.audit }
func (m *FileManager) Exports() exports.Repository { return m.exports }
func (m *FileManager) Close() error                { return nil }
