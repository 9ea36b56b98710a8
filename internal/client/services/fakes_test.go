package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/phonesaver/phonesaver/internal/client/api"
	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/contact"
	"github.com/phonesaver/phonesaver/internal/cryptox"
)

// fakeAPI implements apiClient with an in-memory contact table.
type fakeAPI struct {
	nextID      int64
	records     map[int64]*contact.Record
	accessToken string

	loginErr    error
	registerErr error
	restoreN    int

	lastTags      []string
	lastPatch     api.ContactPatch
	lastListOpts  api.ListOptions
	deletedIDs    []int64
	reminderCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{records: make(map[int64]*contact.Record)}
}

func (f *fakeAPI) SetAccessToken(token string) { f.accessToken = token }

func (f *fakeAPI) Register(ctx context.Context, email, password string) (*api.RegisteredUser, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &api.RegisteredUser{ID: 1, Email: email}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}, nil
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	return &api.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"}, nil
}

func (f *fakeAPI) CreateContact(ctx context.Context, rec *contact.Record) (*contact.Record, error) {
	f.nextID++
	created := *rec
	created.ID = f.nextID
	f.records[created.ID] = &created
	out := created
	return &out, nil
}

func (f *fakeAPI) ListContacts(ctx context.Context, opts api.ListOptions) ([]contact.Record, error) {
	f.lastListOpts = opts
	var out []contact.Record
	for id := int64(1); id <= f.nextID; id++ {
		if rec, ok := f.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetContact(ctx context.Context, id int64) (*contact.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *rec
	return &out, nil
}

func (f *fakeAPI) UpdateContact(ctx context.Context, id int64, patch api.ContactPatch) error {
	f.lastPatch = patch
	return nil
}

func (f *fakeAPI) DeleteContact(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.records, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeAPI) UpdateTags(ctx context.Context, id int64, tags []string) error {
	f.lastTags = tags
	return nil
}

func (f *fakeAPI) UpdateLastInteraction(ctx context.Context, id int64, at time.Time) error {
	return nil
}

func (f *fakeAPI) UpdateBirthday(ctx context.Context, id int64, birthday string) error { return nil }
func (f *fakeAPI) UpdateNotes(ctx context.Context, id int64, notes string) error       { return nil }

func (f *fakeAPI) AddReminder(ctx context.Context, contactID int64, date time.Time, message string) (*api.Reminder, error) {
	f.reminderCalls++
	return &api.Reminder{ID: "r-1", Date: date, Message: message}, nil
}

func (f *fakeAPI) ListReminders(ctx context.Context, contactID int64) ([]api.Reminder, error) {
	return nil, nil
}

func (f *fakeAPI) CompleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return nil
}

func (f *fakeAPI) DeleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return nil
}

func (f *fakeAPI) ShareContact(ctx context.Context, contactID int64) (*api.ShareLink, error) {
	return &api.ShareLink{Token: "tok-abc", ExpiresAt: time.Now().Add(24 * time.Hour)}, nil
}

func (f *fakeAPI) ResolveShare(ctx context.Context, token string) (*api.SharedContact, error) {
	return &api.SharedContact{Name: "Jane", PhoneCipher: "blob"}, nil
}

func (f *fakeAPI) Backup(ctx context.Context) (string, error) { return "users/1/key.json", nil }

func (f *fakeAPI) Restore(ctx context.Context) (int, error) { return f.restoreN, nil }

func (f *fakeAPI) GetInsights(ctx context.Context) (*api.Insights, error) {
	return &api.Insights{TotalContacts: int64(len(f.records))}, nil
}

// fakeKeys vends a fixed key and counts calls, so tests can assert that
// validation failures never reach the key custodian.
type fakeKeys struct {
	key   []byte
	calls atomic.Int32
	err   error
}

func newFakeKeys() *fakeKeys {
	key := make([]byte, cryptox.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return &fakeKeys{key: key}
}

func (f *fakeKeys) GetOrCreate(ctx context.Context) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.key, nil
}

// fakeCache is an in-memory contacts.Repository.
type fakeCache struct {
	records map[int64]contact.Record
}

func newFakeCache() *fakeCache {
	return &fakeCache{records: make(map[int64]contact.Record)}
}

func (f *fakeCache) Upsert(ctx context.Context, rec *contact.Record) error {
	f.records[rec.ID] = *rec
	return nil
}

func (f *fakeCache) Get(ctx context.Context, id int64) (*contact.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (f *fakeCache) GetAll(ctx context.Context) ([]contact.Record, error) {
	var out []contact.Record
	for id := int64(0); id < 1000; id++ {
		if rec, ok := f.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeCache) DeleteByID(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeCache) ReplaceAll(ctx context.Context, recs []contact.Record) error {
	f.records = make(map[int64]contact.Record, len(recs))
	for _, rec := range recs {
		f.records[rec.ID] = rec
	}
	return nil
}

// fakeMetadata is an in-memory metadata.Repository.
type fakeMetadata struct {
	values map[string][]byte
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{values: make(map[string][]byte)}
}

func (f *fakeMetadata) Get(ctx context.Context, key string) ([]byte, error) {
	return f.values[key], nil
}

func (f *fakeMetadata) Set(ctx context.Context, key string, value []byte) error {
	f.values[key] = value
	return nil
}

func (f *fakeMetadata) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeMetadata) Clear(ctx context.Context) error {
	f.values = make(map[string][]byte)
	return nil
}
