package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/dbx"
)

// SQLiteRepository implements Repository on top of the local SQLite store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteAccountColumns = `id, name, email, password_hash, credits, role, created_at`

func scanAccount(row interface{ Scan(dest ...any) error }, a *Account) error {
	return row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Credits, &a.Role, &a.CreatedAt)
}

// Create inserts the account after verifying email uniqueness inside a single
// transaction. The email column also carries a UNIQUE constraint, so a race
// between two concurrent signups still cannot produce duplicates.
func (r *SQLiteRepository) Create(ctx context.Context, acct *Account) (*Account, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE email = ?`, acct.Email).Scan(&exists)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, email, password_hash, credits, role, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
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

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteAccountColumns+` FROM accounts WHERE id = ?`, id)

	a := &Account{}
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqliteAccountColumns+` FROM accounts WHERE email = ?`, email)

	a := &Account{}
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteAccountColumns+` FROM accounts ORDER BY rowid`)
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

// Deduct performs the guarded decrement and reads the updated record back in
// one transaction. The WHERE clause carries the non-negative invariant: a
// balance smaller than amount matches no row and nothing is written.
func (r *SQLiteRepository) Deduct(ctx context.Context, id string, amount int64) (*Account, error) {
	a := &Account{}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE accounts SET credits = credits - ? WHERE id = ? AND credits >= ?`,
			amount, id, amount)
		if err != nil {
			return fmt.Errorf("failed to deduct credits: %w", err)
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if ra == 0 {
			var cur int64
			err := tx.QueryRowContext(ctx, `SELECT credits FROM accounts WHERE id = ?`, id).Scan(&cur)
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrAccountNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to read balance: %w", err)
			}
			return common.ErrInsufficientCredits
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+sqliteAccountColumns+` FROM accounts WHERE id = ?`, id)
		return scanAccount(row, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteRepository) SetCredits(ctx context.Context, id string, value int64) (*Account, error) {
	a := &Account{}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE accounts SET credits = ? WHERE id = ?`, value, id)
		if err != nil {
			return fmt.Errorf("failed to set credits: %w", err)
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if ra == 0 {
			return common.ErrAccountNotFound
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+sqliteAccountColumns+` FROM accounts WHERE id = ?`, id)
		return scanAccount(row, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
