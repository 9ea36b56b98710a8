// Package reminders persists the reminders attached to a contact record.
// Owner scoping happens one level up: services resolve the contact through
// the contacts repository first, so every call here is already authorized
// for the given contact id.
package reminders

import (
	"context"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type Repository interface {
	// Create inserts a reminder. A duplicate id returns
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, rem *models.Reminder) error

	ListByContact(ctx context.Context, contactID int64) ([]*models.Reminder, error)

	// SetCompleted flips the user-controlled completion flag.
	// common.ErrorNotFound when the reminder does not belong to contactID.
	SetCompleted(ctx context.Context, id string, contactID int64, completed bool) error

	// Delete removes one reminder. common.ErrorNotFound under the same
	// condition as SetCompleted.
	Delete(ctx context.Context, id string, contactID int64) error
}
