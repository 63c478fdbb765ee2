// Package config handles runtime configuration for the vault: defaults,
// environment overlay (including a local .env file), and an optional JSON
// config file. Command-line flags are bound on top by the CLI.
package config

import "path/filepath"

// Config holds runtime settings for the candidate vault.
//
// Fields:
//   - DataDir: root of the on-disk layout (key file, encrypted records,
//     exports, audit log, maintenance reports).
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the file backend.
//   - RetentionDays: retention window used by the sweep and the privacy
//     notice attached to exports.
//   - EncryptData: when false, identifying fields are stored as-is and
//     records are flagged non-compliant in reports. Intended for local
//     debugging only.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     optional offsite archive for export bundles and maintenance reports;
//     an empty bucket disables archiving.
//   - LogLevel: slog level ("debug", "info", "warn", "error").
type Config struct {
	DataDir        string
	DatabaseDSN    string
	RetentionDays  int
	EncryptData    bool
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	LogLevel       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.DatabaseDSN = ""
	c.RetentionDays = 30
	c.EncryptData = true
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// Load builds a Config by applying defaults, then the environment (including
// a best-effort .env file), then an optional JSON file.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	if err := cfg.applyJSON(jsonPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ArchiveEnabled reports whether the S3 export archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// KeyPath is the encryption key file location inside the data directory.
func (c *Config) KeyPath() string {
	return filepath.Join(c.DataDir, ".encryption_key")
}

// MaintenanceReportPath is where the periodic job persists its report.
func (c *Config) MaintenanceReportPath() string {
	return filepath.Join(c.DataDir, "maintenance_report.json")
}
