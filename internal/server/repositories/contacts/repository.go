// Package contacts provides PostgreSQL-backed persistence for contact rows.
// Every operation is owner-scoped: the user id is part of each WHERE clause,
// so one user can never read or touch another user's records.
package contacts

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

// SortKey values accepted by Filter. Anything else is ignored.
const (
	SortByName            = "name"
	SortByLastInteraction = "last_interaction"
	SortByBirthday        = "birthday"
)

// Filter narrows and orders a List call. Zero values mean "no constraint".
type Filter struct {
	Query  string // substring match on name
	Tag    string // exact match on one tag
	SortBy string // one of the SortBy* constants
	Desc   bool
}

type Repository interface {
	// Create inserts the row and returns the assigned id.
	Create(ctx context.Context, c *models.Contact) (int64, error)

	// Get returns the row or common.ErrorNotFound when no record with that
	// id belongs to userID.
	Get(ctx context.Context, id, userID int64) (*models.Contact, error)

	List(ctx context.Context, userID int64, f Filter) ([]*models.Contact, error)

	// Patch applies only the non-nil fields. common.ErrorNotFound when the
	// record does not exist or is not owned by userID.
	Patch(ctx context.Context, id, userID int64, p models.ContactPatch) error

	// Delete removes the row; reminders and share links go with it via the
	// schema's cascading foreign keys.
	Delete(ctx context.Context, id, userID int64) error

	// DeleteAllForUser clears the user's contacts, used by restore.
	DeleteAllForUser(ctx context.Context, userID int64) error

	// CountForUser returns the number of records owned by userID.
	CountForUser(ctx context.Context, userID int64) (int64, error)
}
