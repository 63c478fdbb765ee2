package vault

import (
	"context"

	"github.com/talentscout/candidatevault/internal/models"
)

const recentActivitiesInReport = 10

// Report builds the point-in-time compliance view. Only cleartext record
// metadata (session id, timestamp, compliance flag) is read; nothing is
// decrypted.
func (s *Service) Report(ctx context.Context) (*models.PrivacyReport, error) {
	report := &models.PrivacyReport{
		GeneratedAt: s.clock.Now(),
		ComplianceStatus: models.ComplianceStatus{
			EncryptionEnabled:     s.encrypted,
			RetentionPolicyActive: true,
			AuditLoggingEnabled:   true,
			GDPRCompliant:         s.encrypted,
		},
	}

	list, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	report.DataSummary.TotalRecords = len(list)
	for _, record := range list {
		if record.PrivacyCompliant {
			report.DataSummary.EncryptedRecords++
		}
		ts := record.Timestamp
		if report.DataSummary.OldestRecord == nil || ts.Before(*report.DataSummary.OldestRecord) {
			report.DataSummary.OldestRecord = &ts
		}
		if report.DataSummary.NewestRecord == nil || ts.After(*report.DataSummary.NewestRecord) {
			report.DataSummary.NewestRecord = &ts
		}
	}

	recent, err := s.audit.Recent(ctx, recentActivitiesInReport)
	if err != nil {
		s.logger.Warn(ctx, "audit log unreadable for report", "error", err.Error())
	} else {
		report.RecentActivities = recent
	}
	return report, nil
}

// Maintenance is the periodic compliance routine: sweep expired data, then
// report on what remains. The caller (the maintenance job) persists the
// result.
func (s *Service) Maintenance(ctx context.Context, retentionDays int) (*models.MaintenanceReport, error) {
	deleted, err := s.Sweep(ctx, retentionDays)
	if err != nil {
		return nil, err
	}
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return &models.MaintenanceReport{
		MaintenanceDate: s.clock.Now(),
		DeletedRecords:  deleted,
		PrivacyReport:   report,
	}, nil
}
