package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentscout/candidatevault/internal/common"
	"github.com/talentscout/candidatevault/internal/dbx"
	"github.com/talentscout/candidatevault/internal/logging"
	"github.com/talentscout/candidatevault/internal/models"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db     dbx.DBTX
	logger logging.Logger
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX, logger logging.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger.With("module", "records_postgres")}
}

func (r *PostgresRepository) Save(ctx context.Context, record *models.StoredRecord) error {
	positions, err := json.Marshal(record.CandidateInfo.DesiredPositions)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}
	stack, err := json.Marshal(record.CandidateInfo.TechStack)
	if err != nil {
		return fmt.Errorf("marshal tech stack: %w", err)
	}

	query := `
		INSERT INTO candidate_records (
			session_id, created_at, data_version, privacy_compliant,
			full_name_enc, email_enc, phone_enc, location_enc,
			years_experience, desired_positions, tech_stack,
			email_hash, phone_hash, transcript_enc, completion_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (session_id)
		DO UPDATE SET
			data_version = EXCLUDED.data_version,
			privacy_compliant = EXCLUDED.privacy_compliant,
			full_name_enc = EXCLUDED.full_name_enc,
			email_enc = EXCLUDED.email_enc,
			phone_enc = EXCLUDED.phone_enc,
			location_enc = EXCLUDED.location_enc,
			years_experience = EXCLUDED.years_experience,
			desired_positions = EXCLUDED.desired_positions,
			tech_stack = EXCLUDED.tech_stack,
			email_hash = EXCLUDED.email_hash,
			phone_hash = EXCLUDED.phone_hash,
			transcript_enc = EXCLUDED.transcript_enc,
			completion_status = EXCLUDED.completion_status;
	`
	// created_at intentionally not updated on conflict: the creation
	// timestamp is set once and never mutated.
	_, err = r.db.ExecContext(ctx, query,
		record.SessionID, record.Timestamp, record.DataVersion, record.PrivacyCompliant,
		record.CandidateInfo.FullNameEncrypted, record.CandidateInfo.EmailEncrypted,
		record.CandidateInfo.PhoneEncrypted, record.CandidateInfo.LocationEncrypted,
		record.CandidateInfo.YearsExperience, positions, stack,
		record.PrivacyHashes.EmailHash, record.PrivacyHashes.PhoneHash,
		record.TranscriptEncrypted, record.Metadata.CompletionStatus)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, sessionID string) (*models.StoredRecord, error) {
	query := `
		SELECT session_id, created_at, data_version, privacy_compliant,
			full_name_enc, email_enc, phone_enc, location_enc,
			years_experience, desired_positions, tech_stack,
			email_hash, phone_hash, transcript_enc, completion_status
		FROM candidate_records WHERE session_id = $1
	`
	record, err := scanRecord(r.db.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", sessionID, err)
	}
	return record, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidate_records WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", sessionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.StoredRecord, error) {
	query := `
		SELECT session_id, created_at, data_version, privacy_compliant,
			full_name_enc, email_enc, phone_enc, location_enc,
			years_experience, desired_positions, tech_stack,
			email_hash, phone_hash, transcript_enc, completion_status
		FROM candidate_records
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.StoredRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			r.logger.Warn(ctx, "skipping unscannable record row", "error", err.Error())
			continue
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.StoredRecord, error) {
	var record models.StoredRecord
	var positions, stack []byte
	if err := row.Scan(
		&record.SessionID, &record.Timestamp, &record.DataVersion, &record.PrivacyCompliant,
		&record.CandidateInfo.FullNameEncrypted, &record.CandidateInfo.EmailEncrypted,
		&record.CandidateInfo.PhoneEncrypted, &record.CandidateInfo.LocationEncrypted,
		&record.CandidateInfo.YearsExperience, &positions, &stack,
		&record.PrivacyHashes.EmailHash, &record.PrivacyHashes.PhoneHash,
		&record.TranscriptEncrypted, &record.Metadata.CompletionStatus,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(positions, &record.CandidateInfo.DesiredPositions); err != nil {
		return nil, fmt.Errorf("parse positions: %w", err)
	}
	if err := json.Unmarshal(stack, &record.CandidateInfo.TechStack); err != nil {
		return nil, fmt.Errorf("parse tech stack: %w", err)
	}
	return &record, nil
}
