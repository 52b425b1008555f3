package config

import (
	"flag"
	"os"
	"time"

	"github.com/bishnutech/pixelforge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string    database driver, "sqlite" or "postgres"
//	-dsn string  database DSN
//	-m string    provider model name
//	-t int       provider timeout in seconds
//	-o string    directory for generated images
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dsn", "-m", "-t", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "d", cfg.DatabaseDriver, "database driver (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.ProviderModel, "m", cfg.ProviderModel, "image model name")
	timeout := fs.Int("t", int(cfg.ProviderTimeout.Seconds()), "provider timeout (in seconds)")
	fs.StringVar(&cfg.ArtifactDir, "o", cfg.ArtifactDir, "directory for generated images")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProviderTimeout = time.Duration(*timeout) * time.Second
}
