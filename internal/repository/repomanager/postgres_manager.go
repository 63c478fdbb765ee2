package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/talentscout/candidatevault/internal/filex"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/repository/audit"
	"github.com/talentscout/candidatevault/internal/repository/exports"
	"github.com/talentscout/candidatevault/internal/repository/migrations"
	"github.com/talentscout/candidatevault/internal/repository/records"
)

// PostgresManager keeps records and the audit log in Postgres; export
// bundles stay on the filesystem under the data directory.
type PostgresManager struct {
	db      *sql.DB
	records *records.PostgresRepository
	audit   *audit.PostgresRepository
	exports *exports.FileRepository
}

// NewPostgresManager opens the database, runs migrations and wires the
// repositories.
func NewPostgresManager(ctx context.Context, dsn, dataDir string, logger logging.Logger) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	if _, err := filex.EnsureDir(dataDir); err != nil {
		db.Close()
		return nil, err
	}
	exportRepo, err := exports.NewFileRepository(filepath.Join(dataDir, exportsSubdir), logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresManager{
		db:      db,
		records: records.NewPostgresRepository(db, logger),
		audit:   audit.NewPostgresRepository(db),
		exports: exportRepo,
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (m *PostgresManager) Records() records.Repository { return m.records }
func (m *PostgresManager) Audit() audit.Repository     { return m.audit }
func (m *PostgresManager) Exports() exports.Repository { return m.exports }
func (m *PostgresManager) Close() error                { return m.db.Close() }
