// Package contacts caches the user's contact records locally. Records rest
// here exactly as the server returned them: phone in ciphertext form.
package contacts

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/contact"
)

type Repository interface {
	Upsert(ctx context.Context, rec *contact.Record) error
	Get(ctx context.Context, id int64) (*contact.Record, error)
	GetAll(ctx context.Context) ([]contact.Record, error)
	DeleteByID(ctx context.Context, id int64) error

	// ReplaceAll swaps the whole cache for the given records, used after a
	// fresh list from the server.
	ReplaceAll(ctx context.Context, recs []contact.Record) error
}
