// Package audit persists the append-only data-handling audit log, capped at
// the most recent MaxEntries entries (oldest evicted first).
package audit

import (
	"context"

	"github.com/talentscout/candidatevault/internal/models"
)

// MaxEntries is the audit log cap: appending beyond it evicts the oldest.
const MaxEntries = 1000

// Repository is the audit log. Appends must be serialized by the
// implementation so that concurrent writers cannot lose entries.
type Repository interface {
	// Append adds an entry, evicting the oldest when the cap is exceeded.
	Append(ctx context.Context, entry models.AuditEntry) error

	// Recent returns up to n entries, oldest first, ending at the newest.
	Recent(ctx context.Context, n int) ([]models.AuditEntry, error)
}
