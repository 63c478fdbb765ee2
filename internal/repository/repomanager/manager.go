// Package repomanager selects and wires the persistence backend: Postgres
// when a DSN is configured, the single-directory file layout otherwise.
// Export bundles are file artifacts in both modes.
package repomanager

import (
	"github.com/talentscout/candidatevault/internal/repository/audit"
	"github.com/talentscout/candidatevault/internal/repository/exports"
	"github.com/talentscout/candidatevault/internal/repository/records"
)

// Manager hands out the repositories of the active backend.
type Manager interface {
	Records() records.Repository
	Audit() audit.Repository
	Exports() exports.Repository
	Close() error
}
