package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonConfig is an intermediate DTO for reading JSON configuration files.
// Pointer fields distinguish "absent" from zero values so the file only
// overrides what it names.
type jsonConfig struct {
	DataDir        *string `json:"data_dir"`
	DatabaseDSN    *string `json:"database_dsn"`
	RetentionDays  *int    `json:"data_retention_days"`
	EncryptData    *bool   `json:"encrypt_data"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
	LogLevel       *string `json:"log_level"`
}

func (c *Config) applyJSON(path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var j jsonConfig
	if err := json.Unmarshal(file, &j); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if j.DataDir != nil {
		c.DataDir = *j.DataDir
	}
	if j.DatabaseDSN != nil {
		c.DatabaseDSN = *j.DatabaseDSN
	}
	if j.RetentionDays != nil {
		c.RetentionDays = *j.RetentionDays
	}
	if j.EncryptData != nil {
		c.EncryptData = *j.EncryptData
	}
	if j.S3Bucket != nil {
		c.S3Bucket = *j.S3Bucket
	}
	if j.S3Region != nil {
		c.S3Region = *j.S3Region
	}
	if j.S3BaseEndpoint != nil {
		c.S3BaseEndpoint = *j.S3BaseEndpoint
	}
	if j.S3AccessKey != nil {
		c.S3AccessKey = *j.S3AccessKey
	}
	if j.S3SecretKey != nil {
		c.S3SecretKey = *j.S3SecretKey
	}
	if j.LogLevel != nil {
		c.LogLevel = *j.LogLevel
	}
	return nil
}
