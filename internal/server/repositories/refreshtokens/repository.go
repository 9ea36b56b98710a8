// Package refreshtokens persists server-side refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	Delete(ctx context.Context, token string) error
}
