package services

import (
	"context"
	"fmt"
	"time"

	"github.com/phonesaver/phonesaver/internal/client/api"
	"github.com/phonesaver/phonesaver/internal/client/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/contact"
	"github.com/phonesaver/phonesaver/internal/cryptox"
)

// DecryptedContact is a server record together with its decrypted phone.
// Phone is plaintext and must never be written back to the cache or the
// server; the cipher travels in the embedded record.
type DecryptedContact struct {
	contact.Record
	Phone string
}

// DisplayPhone renders the phone grouped for humans, e.g. "555-123-4567".
func (d *DecryptedContact) DisplayPhone() string {
	return contact.FormatPhone(d.Phone)
}

// ContactService encrypts phones before they leave the machine and decrypts
// on the way back. The local cache mirrors the server's ciphertext records.
type ContactService struct {
	api   apiClient
	keys  keyProvider
	cache contacts.Repository
}

func NewContactService(api apiClient, keys keyProvider, cache contacts.Repository) *ContactService {
	return &ContactService{api: api, keys: keys, cache: cache}
}

// NewContact carries the user-entered fields for a contact; the phone is
// plaintext here and is encrypted before the record is sent anywhere.
type NewContact struct {
	Name          string
	Phone         string
	Tags          []string
	Birthday      string
	Frequency     string
	PreferredTime string
	Notes         string
}

// Add validates the plaintext fields, encrypts the phone, and creates the
// contact on the server. Validation happens before encryption so a bad phone
// never costs a key fetch.
func (s *ContactService) Add(ctx context.Context, nc NewContact) (*DecryptedContact, error) {
	rec := &contact.Record{
		Name:          nc.Name,
		Tags:          contact.NormalizeTags(nc.Tags),
		Birthday:      nc.Birthday,
		Frequency:     contact.Frequency(nc.Frequency),
		PreferredTime: contact.PreferredTime(nc.PreferredTime),
		Notes:         nc.Notes,
	}
	if rec.Frequency == "" {
		rec.Frequency = contact.FrequencyWeekly
	}
	if err := rec.Validate(nc.Phone); err != nil {
		return nil, err
	}

	key, err := s.keys.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	cipher, err := cryptox.EncryptString(nc.Phone, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}
	rec.PhoneCipher = cipher

	created, err := s.api.CreateContact(ctx, rec)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Upsert(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to cache contact: %w", err)
	}

	return &DecryptedContact{Record: *created, Phone: nc.Phone}, nil
}

// List fetches contacts from the server, refreshes the local cache, and
// returns them with decrypted phones. A record that fails to decrypt fails
// the whole call; partial silent results would mask key problems.
func (s *ContactService) List(ctx context.Context, opts api.ListOptions) ([]DecryptedContact, error) {
	recs, err := s.api.ListContacts(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := s.cache.ReplaceAll(ctx, recs); err != nil {
		return nil, fmt.Errorf("failed to refresh cache: %w", err)
	}
	return s.decryptAll(ctx, recs)
}

// Get returns one contact with its phone decrypted.
func (s *ContactService) Get(ctx context.Context, id int64) (*DecryptedContact, error) {
	rec, err := s.api.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to cache contact: %w", err)
	}
	return s.decrypt(ctx, rec)
}

// Cached returns the locally cached contacts with decrypted phones, for use
// when the server is unreachable.
func (s *ContactService) Cached(ctx context.Context) ([]DecryptedContact, error) {
	recs, err := s.cache.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decryptAll(ctx, recs)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteContact(ctx, id); err != nil {
		return err
	}
	// Best effort; the next list rebuilds the cache anyway.
	_ = s.cache.DeleteByID(ctx, id)
	return nil
}

func (s *ContactService) SetTags(ctx context.Context, id int64, tags []string) error {
	return s.api.UpdateTags(ctx, id, contact.NormalizeTags(tags))
}

// Touch records an interaction with the contact at the current time.
func (s *ContactService) Touch(ctx context.Context, id int64) error {
	return s.api.UpdateLastInteraction(ctx, id, time.Now().UTC())
}

func (s *ContactService) SetBirthday(ctx context.Context, id int64, birthday string) error {
	return s.api.UpdateBirthday(ctx, id, birthday)
}

func (s *ContactService) SetNotes(ctx context.Context, id int64, notes string) error {
	return s.api.UpdateNotes(ctx, id, notes)
}

// Rename changes only the contact's name.
func (s *ContactService) Rename(ctx context.Context, id int64, name string) error {
	return s.api.UpdateContact(ctx, id, api.ContactPatch{Name: &name})
}

func (s *ContactService) AddReminder(ctx context.Context, contactID int64, date time.Time, message string) (*api.Reminder, error) {
	return s.api.AddReminder(ctx, contactID, date, message)
}

func (s *ContactService) ListReminders(ctx context.Context, contactID int64) ([]api.Reminder, error) {
	return s.api.ListReminders(ctx, contactID)
}

func (s *ContactService) CompleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return s.api.CompleteReminder(ctx, contactID, reminderID)
}

func (s *ContactService) DeleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return s.api.DeleteReminder(ctx, contactID, reminderID)
}

func (s *ContactService) Share(ctx context.Context, contactID int64) (*api.ShareLink, error) {
	return s.api.ShareContact(ctx, contactID)
}

func (s *ContactService) Backup(ctx context.Context) (string, error) {
	return s.api.Backup(ctx)
}

// Restore replaces the server-side contacts from the latest backup, then
// re-lists to bring the local cache in line.
func (s *ContactService) Restore(ctx context.Context) (int, error) {
	n, err := s.api.Restore(ctx)
	if err != nil {
		return 0, err
	}
	recs, err := s.api.ListContacts(ctx, api.ListOptions{})
	if err != nil {
		return n, err
	}
	if err := s.cache.ReplaceAll(ctx, recs); err != nil {
		return n, fmt.Errorf("failed to refresh cache: %w", err)
	}
	return n, nil
}

func (s *ContactService) Insights(ctx context.Context) (*api.Insights, error) {
	return s.api.GetInsights(ctx)
}

func (s *ContactService) decrypt(ctx context.Context, rec *contact.Record) (*DecryptedContact, error) {
	key, err := s.keys.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	phone, err := cryptox.DecryptString(rec.PhoneCipher, key)
	if err != nil {
		return nil, fmt.Errorf("contact %d: %w", rec.ID, err)
	}
	return &DecryptedContact{Record: *rec, Phone: phone}, nil
}

func (s *ContactService) decryptAll(ctx context.Context, recs []contact.Record) ([]DecryptedContact, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	key, err := s.keys.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DecryptedContact, 0, len(recs))
	for i := range recs {
		phone, err := cryptox.DecryptString(recs[i].PhoneCipher, key)
		if err != nil {
			return nil, fmt.Errorf("contact %d: %w", recs[i].ID, err)
		}
		out = append(out, DecryptedContact{Record: recs[i], Phone: phone})
	}
	return out, nil
}
