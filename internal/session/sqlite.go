package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/common"
)

// SQLiteRepository keeps the session pointer in a single fixed row so a
// restart of the process resumes the same signed-in account.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (string, error) {
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

func (r *SQLiteRepository) Set(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE session SET account_id = ? WHERE id = 1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE session SET account_id = NULL WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
