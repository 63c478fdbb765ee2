package models

import "time"

// ExportInfo identifies one export artifact.
type ExportInfo struct {
	ExportedAt    time.Time `json:"exported_at"`
	SessionID     string    `json:"session_id"`
	Format        string    `json:"format"`
	GDPRCompliant bool      `json:"gdpr_compliant"`
}

// PersonalInformation is the decrypted candidate view included in an export.
type PersonalInformation struct {
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	CurrentLocation  string   `json:"current_location"`
	YearsExperience  string   `json:"years_experience"`
	DesiredPositions []string `json:"desired_positions"`
	TechStack        []string `json:"tech_stack"`
}

// ConversationSummary summarizes the transcript without reproducing it.
type ConversationSummary struct {
	TotalMessages    int    `json:"total_messages"`
	CompletionStatus string `json:"completion_status"`
}

// PrivacyNotice is the fixed notice attached to every export bundle.
type PrivacyNotice struct {
	DataController  string `json:"data_controller"`
	Purpose         string `json:"purpose"`
	RetentionPeriod string `json:"retention_period"`
	Rights          string `json:"rights"`
}

// DefaultPrivacyNotice returns the notice block for the given retention
// period in days.
func DefaultPrivacyNotice(retentionDays int) PrivacyNotice {
	return PrivacyNotice{
		DataController:  "TalentScout Recruitment Agency",
		Purpose:         "Initial candidate screening and recruitment",
		RetentionPeriod: formatRetention(retentionDays),
		Rights:          "You have the right to access, rectify, erase, and port your data",
	}
}

// ExportBundle is the GDPR data-portability artifact: one per export request,
// independently deletable from its owning record.
type ExportBundle struct {
	ExportInfo          ExportInfo          `json:"export_info"`
	PersonalInformation PersonalInformation `json:"personal_information"`
	ConversationSummary ConversationSummary `json:"conversation_summary"`
	PrivacyNotice       PrivacyNotice       `json:"privacy_notice"`
}

// ExportResult is what the vault returns for a successful export: the local
// artifact path and, when offsite archiving is configured, a presigned
// download URL.
type ExportResult struct {
	Path         string
	ArchiveKey   string
	PresignedURL string
}
