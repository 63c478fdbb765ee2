package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentscout/candidatevault/internal/archive"
	"github.com/talentscout/candidatevault/internal/filex"
)

// maintenanceCmd is the periodic compliance job: sweep expired data, report
// on what remains, persist the combined result. Scheduling (cron or similar)
// is up to the operator.
func maintenanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintenance",
		Short: "Run the retention sweep and persist its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			report, err := svc.Maintenance(ctx, cfg.RetentionDays)
			if err != nil {
				return err
			}

			path := cfg.MaintenanceReportPath()
			if err := filex.WriteJSON(path, report, 0o600); err != nil {
				return fmt.Errorf("write maintenance report: %w", err)
			}

			if a := archive.NewS3Archiver(cfg); a != nil {
				body, err := json.MarshalIndent(report, "", "  ")
				if err == nil {
					key := "reports/maintenance_" + report.MaintenanceDate.Format("20060102_150405") + ".json"
					if err := a.Upload(ctx, key, body); err != nil {
						logger.Warn(ctx, "maintenance report archive failed", "error", err.Error())
					}
				}
			}

			fmt.Printf("Deleted %d expired records\n", report.DeletedRecords)
			fmt.Printf("Total records remaining: %d\n", report.PrivacyReport.DataSummary.TotalRecords)
			fmt.Printf("Report saved to %s\n", path)
			return nil
		},
	}
}
