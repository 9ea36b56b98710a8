// Package services holds the client-side business logic: session handling,
// phone encryption and decryption around the server API, and the local cache.
package services

import (
	"context"
	"time"

	"github.com/phonesaver/phonesaver/internal/client/api"
	"github.com/phonesaver/phonesaver/internal/contact"
)

// apiClient is the server surface the client services depend on. *api.Client
// satisfies it; tests substitute fakes.
type apiClient interface {
	Register(ctx context.Context, email, password string) (*api.RegisteredUser, error)
	Login(ctx context.Context, email, password string) (*api.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
	SetAccessToken(token string)

	CreateContact(ctx context.Context, rec *contact.Record) (*contact.Record, error)
	ListContacts(ctx context.Context, opts api.ListOptions) ([]contact.Record, error)
	GetContact(ctx context.Context, id int64) (*contact.Record, error)
	UpdateContact(ctx context.Context, id int64, patch api.ContactPatch) error
	DeleteContact(ctx context.Context, id int64) error
	UpdateTags(ctx context.Context, id int64, tags []string) error
	UpdateLastInteraction(ctx context.Context, id int64, at time.Time) error
	UpdateBirthday(ctx context.Context, id int64, birthday string) error
	UpdateNotes(ctx context.Context, id int64, notes string) error

	AddReminder(ctx context.Context, contactID int64, date time.Time, message string) (*api.Reminder, error)
	ListReminders(ctx context.Context, contactID int64) ([]api.Reminder, error)
	CompleteReminder(ctx context.Context, contactID int64, reminderID string) error
	DeleteReminder(ctx context.Context, contactID int64, reminderID string) error

	ShareContact(ctx context.Context, contactID int64) (*api.ShareLink, error)
	ResolveShare(ctx context.Context, token string) (*api.SharedContact, error)

	Backup(ctx context.Context) (string, error)
	Restore(ctx context.Context) (int, error)
	GetInsights(ctx context.Context) (*api.Insights, error)
}

// keyProvider vends the symmetric phone-encryption key. keystore.FileStore
// satisfies it.
type keyProvider interface {
	GetOrCreate(ctx context.Context) ([]byte, error)
}
