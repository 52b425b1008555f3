package accounts

import "context"

// Repository persists Account records. Implementations are backed either by
// the local SQLite store or by PostgreSQL.
type Repository interface {
	// Create inserts a new account. Returns common.ErrDuplicateEmail when an
	// account with the same email (exact, case-sensitive match) exists.
	Create(ctx context.Context, acct *Account) (*Account, error)

	// GetByID returns an account by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByEmail returns an account by its exact email, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]Account, error)

	// Deduct atomically subtracts amount from the account's balance and
	// returns the updated record. The subtraction is guarded so the balance
	// can never go below zero: when the current balance is smaller than
	// amount the call fails with common.ErrInsufficientCredits and leaves
	// the record untouched. Unknown ids yield common.ErrAccountNotFound.
	Deduct(ctx context.Context, id string, amount int64) (*Account, error)

	// SetCredits overwrites the account's balance with value, bypassing the
	// sufficiency check that Deduct enforces. Unknown ids yield
	// common.ErrAccountNotFound.
	SetCredits(ctx context.Context, id string, value int64) (*Account, error)
}
