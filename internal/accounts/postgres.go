package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/dbx"
)

// PostgresRepository implements Repository against PostgreSQL (pgx stdlib
// driver). Used by server-backed deployments instead of the local store.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgAccountColumns = `id, name, email, password_hash, credits, role, created_at`

func (r *PostgresRepository) Create(ctx context.Context, acct *Account) (*Account, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE email = $1`, acct.Email).Scan(&exists)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, email, password_hash, credits, role, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			acct.ID, acct.Name, acct.Email, acct.PasswordHash, acct.Credits, acct.Role, acct.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pgAccountColumns+` FROM accounts WHERE id = $1`, id)

	a := &Account{}
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pgAccountColumns+` FROM accounts WHERE email = $1`, email)

	a := &Account{}
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pgAccountColumns+` FROM accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to select accounts: %w", err)
	}
	defer rows.Close()

	var result []Account
	for rows.Next() {
		var a Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Deduct(ctx context.Context, id string, amount int64) (*Account, error) {
	a := &Account{}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`UPDATE accounts SET credits = credits - $1
			 WHERE id = $2 AND credits >= $1
			 RETURNING `+pgAccountColumns,
			amount, id)
		err := scanAccount(row, a)
		if errors.Is(err, sql.ErrNoRows) {
			var cur int64
			err := tx.QueryRowContext(ctx, `SELECT credits FROM accounts WHERE id = $1`, id).Scan(&cur)
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrAccountNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to read balance: %w", err)
			}
			return common.ErrInsufficientCredits
		}
		if err != nil {
			return fmt.Errorf("failed to deduct credits: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) SetCredits(ctx context.Context, id string, value int64) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE accounts SET credits = $1 WHERE id = $2 RETURNING `+pgAccountColumns,
		value, id)

	a := &Account{}
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to set credits: %w", err)
	}
	return a, nil
}
