package records

import (
	"context"

	"github.com/talentscout/candidatevault/internal/models"
)

// Repository persists StoredRecords keyed by session id. Encrypted fields are
// opaque to the repository; decryption happens in the vault service only.
type Repository interface {
	// Save writes the record, overwriting any prior record for the same
	// session (last-write-wins, no versioning).
	Save(ctx context.Context, record *models.StoredRecord) error

	// Get returns the record for the session, or common.ErrorNotFound.
	Get(ctx context.Context, sessionID string) (*models.StoredRecord, error)

	// Delete removes the record, or returns common.ErrorNotFound.
	Delete(ctx context.Context, sessionID string) error

	// List enumerates all parseable records without decrypting anything.
	// Individually corrupt records are skipped and logged, never fatal to
	// the enumeration.
	List(ctx context.Context) ([]*models.StoredRecord, error)
}
