// Package backups tracks snapshot objects written to S3. The rows only
// hold the storage key; the ciphertext payload lives in the bucket.
package backups

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, storageKey string) (int64, error)

	// Latest returns the newest snapshot row for the user, or
	// common.ErrorNotFound when none were ever taken.
	Latest(ctx context.Context, userID int64) (*models.BackupSnapshot, error)
}
