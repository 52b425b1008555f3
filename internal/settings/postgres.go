package settings

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	err := r.db.QueryRowContext(ctx,
		`SELECT signup_credits, maintenance_mode FROM app_settings WHERE id = 1`).
		Scan(&s.SignupCredits, &s.MaintenanceMode)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE app_settings SET signup_credits = $1, maintenance_mode = $2 WHERE id = 1`,
		s.SignupCredits, s.MaintenanceMode)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
