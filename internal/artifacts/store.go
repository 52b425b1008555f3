// Package artifacts persists generated images outside the database and
// hands back a location the shell can show to the user.
package artifacts

import "context"

// Store writes one produced image and returns where it ended up: a local
// path for the filesystem store, a presigned URL for the S3 store.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
