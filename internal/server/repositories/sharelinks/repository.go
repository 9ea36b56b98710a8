// Package sharelinks stores time-limited read-only tokens for single
// contact records.
package sharelinks

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) (int64, error)

	// GetByToken resolves an unexpired token. Expired or unknown tokens
	// return common.ErrorNotFound.
	GetByToken(ctx context.Context, token string) (*models.ShareLink, error)

	// DeleteExpired removes dead rows and reports how many were dropped.
	DeleteExpired(ctx context.Context) (int64, error)
}
