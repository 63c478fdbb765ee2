package models

import (
	"fmt"
	"time"
)

// DataSummary aggregates record counts and the age range of stored data.
// Timestamps are cleartext record metadata; building a summary never
// requires decryption.
type DataSummary struct {
	TotalRecords     int        `json:"total_records"`
	EncryptedRecords int        `json:"encrypted_records"`
	OldestRecord     *time.Time `json:"oldest_record,omitempty"`
	NewestRecord     *time.Time `json:"newest_record,omitempty"`
}

// ComplianceStatus is the fixed compliance-flags block attached to reports.
type ComplianceStatus struct {
	EncryptionEnabled     bool `json:"encryption_enabled"`
	RetentionPolicyActive bool `json:"retention_policy_active"`
	AuditLoggingEnabled   bool `json:"audit_logging_enabled"`
	GDPRCompliant         bool `json:"gdpr_compliant"`
}

// PrivacyReport is the point-in-time compliance view: counts, age range,
// compliance flags and the most recent audit entries.
type PrivacyReport struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	DataSummary      DataSummary      `json:"data_summary"`
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	RecentActivities []AuditEntry     `json:"recent_activities"`
}

// MaintenanceReport is persisted by the periodic maintenance job: the sweep
// outcome plus the post-sweep privacy report.
type MaintenanceReport struct {
	MaintenanceDate time.Time      `json:"maintenance_date"`
	DeletedRecords  int            `json:"deleted_records"`
	PrivacyReport   *PrivacyReport `json:"privacy_report"`
}

func formatRetention(days int) string {
	return fmt.Sprintf("%d days from collection", days)
}
