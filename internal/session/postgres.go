package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (string, error) {
	var accountID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id FROM session WHERE id = 1`).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if !accountID.Valid || accountID.String == "" {
		return "", common.ErrNotFound
	}
	return accountID.String, nil
}

func (r *PostgresRepository) Set(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE session SET account_id = $1 WHERE id = 1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE session SET account_id = NULL WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
