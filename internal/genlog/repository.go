package genlog

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListForAccount returns the account's entries, most recent first.
	ListForAccount(ctx context.Context, accountID string) ([]Entry, error)
}
