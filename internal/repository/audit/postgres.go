package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/talentscout/candidatevault/internal/dbx"
	"github.com/talentscout/candidatevault/internal/models"
)

// PostgresRepository implements the audit log over Postgres. The cap is
// enforced with a trim statement after each insert; both run in one
// transaction so concurrent appenders stay within the cap.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given database.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO audit_log (ts, activity, session_id, metadata) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, entry.Timestamp, string(entry.Activity), entry.SessionID, metadata); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}

		trim := `
			DELETE FROM audit_log
			WHERE id NOT IN (SELECT id FROM audit_log ORDER BY id DESC LIMIT $1)
		`
		if _, err := tx.ExecContext(ctx, trim, MaxEntries); err != nil {
			return fmt.Errorf("trim audit log: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepository) Recent(ctx context.Context, n int) ([]models.AuditEntry, error) {
	query := `
		SELECT ts, activity, session_id, metadata
		FROM (SELECT id, ts, activity, session_id, metadata FROM audit_log ORDER BY id DESC LIMIT $1) t
		ORDER BY t.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to select audit entries: %w", err)
	}
	defer rows.Close()

	var result []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		var activity string
		var metadata []byte
		if err := rows.Scan(&entry.Timestamp, &activity, &entry.SessionID, &metadata); err != nil {
			return nil, err
		}
		entry.Activity = models.Activity(activity)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("parse audit metadata: %w", err)
			}
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
