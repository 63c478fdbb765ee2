package models

import "time"

// Activity is the kind of data-handling action recorded in the audit log.
type Activity string

const (
	ActivitySave       Activity = "SAVE"
	ActivityLoad       Activity = "LOAD"
	ActivityExport     Activity = "EXPORT"
	ActivityDelete     Activity = "DELETE"
	ActivityAutoDelete Activity = "AUTO_DELETE"
)

// AuditEntry is one append-only record of a data-handling action. Metadata
// carries booleans and counts only — never decrypted content.
type AuditEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Activity  Activity       `json:"activity"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
