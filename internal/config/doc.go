// Package config loads runtime configuration for the PixelForge CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables for secrets: GEMINI_API_KEY, S3_ACCESS_KEY,
//     S3_SECRET_KEY.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string    database driver, "sqlite" or "postgres"
//	-dsn string  database DSN
//	-m string    provider model name
//	-t int       provider timeout (seconds)
//	-o string    directory for generated images
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "90s" or integer nanoseconds:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "pixelforge.db",
//	  "provider_model": "gemini-2.5-flash-image",
//	  "provider_timeout": "90s"
//	}
package config
