package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the PixelForge CLI.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: where state lives ("sqlite" by default).
//   - ProviderBaseURL / ProviderModel / ProviderAPIKey: the image endpoint.
//   - ProviderTimeout: upper bound for a single generation call.
//   - AdminEmail / AdminName / AdminPassword / AdminCredits: the account
//     seeded on first start so the instance is administrable.
//   - ArtifactDir: local directory for generated images.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     object storage; a non-empty bucket switches artifacts from the local
//     directory to S3.
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	ProviderBaseURL string
	ProviderModel   string
	ProviderAPIKey  string
	ProviderTimeout time.Duration
	AdminEmail      string
	AdminName       string
	AdminPassword   string
	AdminCredits    int64
	ArtifactDir     string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: The admin password is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "pixelforge.db"
	c.ProviderBaseURL = "https://generativelanguage.googleapis.com"
	c.ProviderModel = "gemini-2.5-flash-image"
	c.ProviderTimeout = 90 * time.Second
	c.AdminEmail = "admin@bishnutech.com"
	c.AdminName = "Super Admin"
	c.AdminPassword = "admin"
	c.AdminCredits = 9999
	c.ArtifactDir = "artifacts"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays the secrets that are conventionally passed through the
// environment rather than files or flags.
func parseEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.ProviderAPIKey = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3SecretKey = v
	}
}
