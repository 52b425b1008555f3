// Package session tracks the single active session as a persisted pointer
// to an account id. The pointer survives restarts; account state is always
// re-resolved through the ledger rather than cached here.
package session

import "context"

type Repository interface {
	// Get returns the account id the session points at, or
	// common.ErrNotFound when no session is active.
	Get(ctx context.Context) (string, error)
	// Set points the session at the given account id.
	Set(ctx context.Context, accountID string) error
	// Clear removes the pointer. Clearing an empty session is a no-op.
	Clear(ctx context.Context) error
}
