package settings

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	err := r.db.QueryRowContext(ctx,
		`SELECT signup_credits, maintenance_mode FROM app_settings WHERE id = 1`).
		Scan(&s.SignupCredits, &s.MaintenanceMode)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE app_settings SET signup_credits = ?, maintenance_mode = ? WHERE id = 1`,
		s.SignupCredits, s.MaintenanceMode)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
