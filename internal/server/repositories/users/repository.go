// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. A duplicate email returns
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
