package settings

import "context"

type Repository interface {
	// Get returns the current settings. The row is seeded by the schema
	// migration, so a missing row is a storage fault, not a soft miss.
	Get(ctx context.Context) (*Settings, error)
	// Update overwrites the settings row.
	Update(ctx context.Context, s *Settings) error
}
