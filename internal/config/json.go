package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bishnutech/pixelforge/internal/flagx"
	"github.com/bishnutech/pixelforge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as a string like "90s"
// or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDriver  string          `json:"database_driver"`
	DatabaseDSN     string          `json:"database_dsn"`
	ProviderBaseURL string          `json:"provider_base_url"`
	ProviderModel   string          `json:"provider_model"`
	ProviderAPIKey  string          `json:"provider_api_key"`
	ProviderTimeout *timex.Duration `json:"provider_timeout"`
	AdminEmail      string          `json:"admin_email"`
	AdminName       string          `json:"admin_name"`
	AdminPassword   string          `json:"admin_password"`
	AdminCredits    *int64          `json:"admin_credits"`
	ArtifactDir     string          `json:"artifact_dir"`
	S3Bucket        string          `json:"s3_bucket"`
	S3Region        string          `json:"s3_region"`
	S3BaseEndpoint  string          `json:"s3_base_endpoint"`
	S3AccessKey     string          `json:"s3_access_key"`
	S3SecretKey     string          `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Absent keys leave the current value in place;
// read or unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDriver != "" {
		cfg.DatabaseDriver = jc.DatabaseDriver
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.ProviderBaseURL != "" {
		cfg.ProviderBaseURL = jc.ProviderBaseURL
	}
	if jc.ProviderModel != "" {
		cfg.ProviderModel = jc.ProviderModel
	}
	if jc.ProviderAPIKey != "" {
		cfg.ProviderAPIKey = jc.ProviderAPIKey
	}
	if jc.ProviderTimeout != nil {
		cfg.ProviderTimeout = time.Duration(jc.ProviderTimeout.Duration)
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.AdminName != "" {
		cfg.AdminName = jc.AdminName
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
	if jc.AdminCredits != nil {
		cfg.AdminCredits = *jc.AdminCredits
	}
	if jc.ArtifactDir != "" {
		cfg.ArtifactDir = jc.ArtifactDir
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
}
