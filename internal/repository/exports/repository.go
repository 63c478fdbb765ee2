// Package exports manages GDPR export bundle artifacts. Bundles are always
// files — they exist to be handed to the candidate — regardless of which
// backend stores the records themselves.
package exports

import (
	"context"
	"time"

	"github.com/talentscout/candidatevault/internal/models"
)

// Repository owns the exports area of the data directory.
type Repository interface {
	// Write persists the bundle under a filename unique per call and
	// returns the artifact path.
	Write(ctx context.Context, bundle *models.ExportBundle) (string, error)

	// DeleteForSession best-effort removes every bundle previously
	// produced for the session, returning how many were removed. Failures
	// on individual artifacts do not abort the rest.
	DeleteForSession(ctx context.Context, sessionID string) (int, error)

	// SweepOlderThan removes bundles whose file modification time predates
	// cutoff. Bundles carry no independent creation timestamp in their own
	// metadata, so mtime is the retention criterion here.
	SweepOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
