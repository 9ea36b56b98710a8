package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/models"
	backupsrepo "github.com/phonesaver/phonesaver/internal/server/repositories/backups"
	contactsrepo "github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
	refreshtokensrepo "github.com/phonesaver/phonesaver/internal/server/repositories/refreshtokens"
	remindersrepo "github.com/phonesaver/phonesaver/internal/server/repositories/reminders"
	sharelinksrepo "github.com/phonesaver/phonesaver/internal/server/repositories/sharelinks"
	usersrepo "github.com/phonesaver/phonesaver/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeContactsRepo struct {
	createID  int64
	createErr error
	created   []*models.Contact
	getOut    *models.Contact
	getErr    error
	listOut   []*models.Contact
	listErrs  []error // consumed one per List call
	listCalls int
	patchErr  error
	lastPatch models.ContactPatch
	deleteErr error
	delAllErr error
	countOut  int64
	countErr  error
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, c)
	f.createID++
	return f.createID, nil
}
func (f *fakeContactsRepo) Get(ctx context.Context, id, userID int64) (*models.Contact, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeContactsRepo) List(ctx context.Context, userID int64, flt contactsrepo.Filter) ([]*models.Contact, error) {
	call := f.listCalls
	f.listCalls++
	if call < len(f.listErrs) && f.listErrs[call] != nil {
		return nil, f.listErrs[call]
	}
	return f.listOut, nil
}
func (f *fakeContactsRepo) Patch(ctx context.Context, id, userID int64, p models.ContactPatch) error {
	f.lastPatch = p
	return f.patchErr
}
func (f *fakeContactsRepo) Delete(ctx context.Context, id, userID int64) error {
	return f.deleteErr
}
func (f *fakeContactsRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	return f.delAllErr
}
func (f *fakeContactsRepo) CountForUser(ctx context.Context, userID int64) (int64, error) {
	return f.countOut, f.countErr
}

type fakeRemindersRepo struct {
	createErr    error
	created      []*models.Reminder
	listOut      []*models.Reminder
	listErr      error
	completedErr error
	deleteErr    error
}

func (f *fakeRemindersRepo) Create(ctx context.Context, rem *models.Reminder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, rem)
	return nil
}
func (f *fakeRemindersRepo) ListByContact(ctx context.Context, contactID int64) ([]*models.Reminder, error) {
	return f.listOut, f.listErr
}
func (f *fakeRemindersRepo) SetCompleted(ctx context.Context, id string, contactID int64, completed bool) error {
	return f.completedErr
}
func (f *fakeRemindersRepo) Delete(ctx context.Context, id string, contactID int64) error {
	return f.deleteErr
}

type fakeShareLinksRepo struct {
	createID  int64
	createErr error
	created   *models.ShareLink
	getOut    *models.ShareLink
	getErr    error
}

func (f *fakeShareLinksRepo) Create(ctx context.Context, link *models.ShareLink) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = link
	return f.createID, nil
}
func (f *fakeShareLinksRepo) GetByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeShareLinksRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeBackupsRepo struct {
	createErr error
	keys      []string
	latestOut *models.BackupSnapshot
	latestErr error
}

func (f *fakeBackupsRepo) Create(ctx context.Context, userID int64, storageKey string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.keys = append(f.keys, storageKey)
	return int64(len(f.keys)), nil
}
func (f *fakeBackupsRepo) Latest(ctx context.Context, userID int64) (*models.BackupSnapshot, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latestOut, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	c  *fakeContactsRepo
	rm *fakeRemindersRepo
	sl *fakeShareLinksRepo
	b  *fakeBackupsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository     { return m.c }
func (m *fakeRepoManager) Reminders(db dbx.DBTX) remindersrepo.Repository   { return m.rm }
func (m *fakeRepoManager) ShareLinks(db dbx.DBTX) sharelinksrepo.Repository { return m.sl }
func (m *fakeRepoManager) Backups(db dbx.DBTX) backupsrepo.Repository       { return m.b }
