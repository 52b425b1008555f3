// Package app wires the services together: it opens the store, seeds the
// admin account and hands a ready object graph to the shell.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/accounts"
	"github.com/bishnutech/pixelforge/internal/artifacts"
	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/config"
	"github.com/bishnutech/pixelforge/internal/generation"
	"github.com/bishnutech/pixelforge/internal/generation/gemini"
	"github.com/bishnutech/pixelforge/internal/genlog"
	"github.com/bishnutech/pixelforge/internal/logging"
	"github.com/bishnutech/pixelforge/internal/session"
	"github.com/bishnutech/pixelforge/internal/settings"
	"github.com/bishnutech/pixelforge/internal/store"
)

type App struct {
	Config    *config.Config
	DB        *sql.DB
	Accounts  *accounts.Service
	Sessions  *session.Service
	Settings  *settings.Service
	GenLog    *genlog.Service
	Generator *generation.Service
	Logger    logging.Logger
}

// New opens the database, runs migrations and builds the service graph.
// The provider can be nil, in which case the Gemini client from the config
// is used; tests pass their own.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, provider generation.Provider) (*App, error) {
	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var (
		accountRepo  accounts.Repository
		sessionRepo  session.Repository
		settingsRepo settings.Repository
		logRepo      genlog.Repository
	)
	switch cfg.DatabaseDriver {
	case store.DriverPostgres:
		accountRepo = accounts.NewPostgresRepository(db)
		sessionRepo = session.NewPostgresRepository(db)
		settingsRepo = settings.NewPostgresRepository(db)
		logRepo = genlog.NewPostgresRepository(db)
	default:
		accountRepo = accounts.NewSQLiteRepository(db)
		sessionRepo = session.NewSQLiteRepository(db)
		settingsRepo = settings.NewSQLiteRepository(db)
		logRepo = genlog.NewSQLiteRepository(db)
	}

	a := &App{
		Config:   cfg,
		DB:       db,
		Accounts: accounts.NewService(accountRepo),
		Settings: settings.NewService(settingsRepo),
		GenLog:   genlog.NewService(logRepo),
		Logger:   logger,
	}
	a.Sessions = session.NewService(sessionRepo, a.Accounts, a.Settings)

	if provider == nil {
		provider = gemini.NewClient(cfg.ProviderBaseURL, cfg.ProviderModel, cfg.ProviderAPIKey)
	}
	a.Generator = generation.NewService(
		a.Sessions, a.Accounts, a.Settings, a.GenLog,
		provider, artifactStore(cfg), cfg.ProviderTimeout, logger)

	if err := a.seedAdmin(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

func artifactStore(cfg *config.Config) artifacts.Store {
	if cfg.S3Bucket != "" {
		return artifacts.NewS3Store(artifacts.S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.S3Bucket,
		})
	}
	if cfg.ArtifactDir != "" {
		return artifacts.NewFSStore(cfg.ArtifactDir)
	}
	return nil
}

// seedAdmin creates the configured admin account on first start so a fresh
// instance is administrable. An existing account with the same email is
// left untouched.
func (a *App) seedAdmin(ctx context.Context) error {
	_, err := a.Accounts.FindByEmail(ctx, a.Config.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrAccountNotFound) {
		return err
	}

	_, err = a.Accounts.Create(ctx,
		a.Config.AdminName, a.Config.AdminEmail, a.Config.AdminPassword,
		a.Config.AdminCredits, accounts.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	a.Logger.Info(ctx, "seeded admin account", "email", a.Config.AdminEmail)
	return nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
