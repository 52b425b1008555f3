package genlog

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

func (r *PostgresRepository) Append(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_log (id, account_id, prompt, size, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.AccountID, e.Prompt, e.Size, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListForAccount(ctx context.Context, accountID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, prompt, size, status, created_at
		 FROM generation_log WHERE account_id = $1
		 ORDER BY seq DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select log entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Prompt, &e.Size, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
