// Package genlog is the append-only record of generation attempts. Entries
// are immutable once written; only attempts that reached the provider are
// recorded.
package genlog

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

type Entry struct {
	ID        string
	AccountID string
	Prompt    string
	Size      string
	Status    Status
	CreatedAt time.Time
}
