// Package metadata is a small key/value store in the client cache database,
// used for the session tokens and the signed-in email.
package metadata

import "context"

type Repository interface {
	// Get returns nil (not an error) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
