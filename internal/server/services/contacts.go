package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/contact"
	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/config"
	"github.com/phonesaver/phonesaver/internal/server/models"
	"github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/server/repositories/repomanager"
)

// Insights summarizes a user's records: totals plus per-tag counts.
type Insights struct {
	TotalContacts int64            `json:"total_contacts"`
	TagCounts     map[string]int64 `json:"tag_counts"`
}

type ContactService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	shareLinkValidity time.Duration
	listRetryBackoff  time.Duration
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ContactService {
	return &ContactService{
		db:                db,
		repomanager:       m,
		shareLinkValidity: cfg.ShareLinkValidityDuration,
		listRetryBackoff:  50 * time.Millisecond,
	}
}

// validateNew checks the fields the server can see. The phone arrives as an
// opaque ciphertext blob, so plaintext validation happened on the client;
// here we only require the blob to be present.
func validateNew(c *models.Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if c.PhoneCipher == "" {
		return fmt.Errorf("%w: phone_cipher must not be empty", common.ErrValidation)
	}
	if c.Birthday != "" && !contact.ValidBirthday(c.Birthday) {
		return fmt.Errorf("%w: birthday: must be a valid YYYY-MM-DD date", common.ErrValidation)
	}
	f, err := contact.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	c.Frequency = string(f)
	p, err := contact.ParsePreferredTime(c.PreferredTime)
	if err != nil {
		return err
	}
	c.PreferredTime = string(p)
	c.Tags = contact.NormalizeTags(c.Tags)
	return nil
}

func (s *ContactService) Create(ctx context.Context, c *models.Contact) (int64, error) {
	if err := validateNew(c); err != nil {
		return 0, err
	}

	repo := s.repomanager.Contacts(s.db)
	id, err := repo.Create(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("error creating contact: %w", err)
	}
	return id, nil
}

// BulkCreate inserts all records in one transaction: either every row lands
// or none do.
func (s *ContactService) BulkCreate(ctx context.Context, userID int64, items []*models.Contact) ([]int64, error) {
	for _, c := range items {
		c.UserID = userID
		if err := validateNew(c); err != nil {
			return nil, err
		}
	}

	ids := make([]int64, 0, len(items))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Contacts(tx)
		for _, c := range items {
			id, err := repo.Create(ctx, c)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating contacts: %w", err)
	}
	return ids, nil
}

func (s *ContactService) Get(ctx context.Context, id, userID int64) (*models.Contact, error) {
	return s.repomanager.Contacts(s.db).Get(ctx, id, userID)
}

// List retries a failed read once before giving up; transient connection
// drops should not surface as user-visible errors.
func (s *ContactService) List(ctx context.Context, userID int64, f contacts.Filter) ([]*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)

	var result []*models.Contact
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(s.listRetryBackoff)), func(ctx context.Context) error {
		var err error
		result, err = repo.List(ctx, userID, f)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return result, nil
}

func (s *ContactService) Patch(ctx context.Context, id, userID int64, p models.ContactPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if p.PhoneCipher != nil && *p.PhoneCipher == "" {
		return fmt.Errorf("%w: phone_cipher must not be empty", common.ErrValidation)
	}
	if p.Birthday != nil && *p.Birthday != "" && !contact.ValidBirthday(*p.Birthday) {
		return fmt.Errorf("%w: birthday: must be a valid YYYY-MM-DD date", common.ErrValidation)
	}
	if p.Frequency != nil {
		f, err := contact.ParseFrequency(*p.Frequency)
		if err != nil {
			return err
		}
		v := string(f)
		p.Frequency = &v
	}
	if p.PreferredTime != nil {
		pt, err := contact.ParsePreferredTime(*p.PreferredTime)
		if err != nil {
			return err
		}
		v := string(pt)
		p.PreferredTime = &v
	}
	if p.Tags != nil {
		norm := contact.NormalizeTags(*p.Tags)
		p.Tags = &norm
	}

	return s.repomanager.Contacts(s.db).Patch(ctx, id, userID, p)
}

func (s *ContactService) Delete(ctx context.Context, id, userID int64) error {
	// Reminders and share links cascade at the schema level.
	return s.repomanager.Contacts(s.db).Delete(ctx, id, userID)
}

func (s *ContactService) AddReminder(ctx context.Context, contactID, userID int64, at time.Time, message string) (*models.Reminder, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: reminder message must not be empty", common.ErrValidation)
	}

	// Ownership check; a foreign contact id reads as not found.
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, contactID, userID); err != nil {
		return nil, err
	}

	rem := &models.Reminder{
		ID:        uuid.NewString(),
		ContactID: contactID,
		RemindAt:  at,
		Message:   message,
	}
	if err := s.repomanager.Reminders(s.db).Create(ctx, rem); err != nil {
		return nil, fmt.Errorf("error creating reminder: %w", err)
	}
	return rem, nil
}

func (s *ContactService) ListReminders(ctx context.Context, contactID, userID int64) ([]*models.Reminder, error) {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, contactID, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Reminders(s.db).ListByContact(ctx, contactID)
}

func (s *ContactService) SetReminderCompleted(ctx context.Context, reminderID string, contactID, userID int64, completed bool) error {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, contactID, userID); err != nil {
		return err
	}
	return s.repomanager.Reminders(s.db).SetCompleted(ctx, reminderID, contactID, completed)
}

func (s *ContactService) DeleteReminder(ctx context.Context, reminderID string, contactID, userID int64) error {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, contactID, userID); err != nil {
		return err
	}
	return s.repomanager.Reminders(s.db).Delete(ctx, reminderID, contactID)
}

// CreateShareLink mints a read-only token for one record. The resolved view
// still carries the phone in ciphertext form only.
func (s *ContactService) CreateShareLink(ctx context.Context, contactID, userID int64) (*models.ShareLink, error) {
	if _, err := s.repomanager.Contacts(s.db).Get(ctx, contactID, userID); err != nil {
		return nil, err
	}

	link := &models.ShareLink{
		Token:     uuid.NewString(),
		ContactID: contactID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.shareLinkValidity),
	}
	id, err := s.repomanager.ShareLinks(s.db).Create(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("error creating share link: %w", err)
	}
	link.ID = id
	return link, nil
}

// ResolveShareLink returns the shared record for an unexpired token.
func (s *ContactService) ResolveShareLink(ctx context.Context, token string) (*models.Contact, error) {
	link, err := s.repomanager.ShareLinks(s.db).GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Contacts(s.db).Get(ctx, link.ContactID, link.UserID)
}

func (s *ContactService) GetInsights(ctx context.Context, userID int64) (*Insights, error) {
	repo := s.repomanager.Contacts(s.db)

	total, err := repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting contacts: %w", err)
	}

	list, err := repo.List(ctx, userID, contacts.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}

	counts := make(map[string]int64)
	for _, c := range list {
		for _, tag := range c.Tags {
			counts[tag]++
		}
	}

	return &Insights{TotalContacts: total, TagCounts: counts}, nil
}
