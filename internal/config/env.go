package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is loaded
// first, never overriding variables already present in the environment.
const (
	envDataDir       = "TS_DATA_DIR"
	envDatabaseDSN   = "TS_DATABASE_DSN"
	envRetentionDays = "TS_DATA_RETENTION_DAYS"
	envEncryptData   = "TS_ENCRYPT_DATA"
	envS3Bucket      = "TS_S3_BUCKET"
	envS3Region      = "TS_S3_REGION"
	envS3Endpoint    = "TS_S3_BASE_ENDPOINT"
	envS3AccessKey   = "TS_S3_ACCESS_KEY"
	envS3SecretKey   = "TS_S3_SECRET_KEY"
	envLogLevel      = "TS_LOG_LEVEL"
)

func (c *Config) applyEnv() {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	setString(&c.DataDir, envDataDir)
	setString(&c.DatabaseDSN, envDatabaseDSN)
	setInt(&c.RetentionDays, envRetentionDays)
	setBool(&c.EncryptData, envEncryptData)
	setString(&c.S3Bucket, envS3Bucket)
	setString(&c.S3Region, envS3Region)
	setString(&c.S3BaseEndpoint, envS3Endpoint)
	setString(&c.S3AccessKey, envS3AccessKey)
	setString(&c.S3SecretKey, envS3SecretKey)
	setString(&c.LogLevel, envLogLevel)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
