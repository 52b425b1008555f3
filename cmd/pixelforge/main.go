package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/bishnutech/pixelforge/internal/app"
	"github.com/bishnutech/pixelforge/internal/app/cli"
	"github.com/bishnutech/pixelforge/internal/buildinfo"
	"github.com/bishnutech/pixelforge/internal/config"
	"github.com/bishnutech/pixelforge/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer a.Close()

	cli.New(a).Run(ctx)
}
