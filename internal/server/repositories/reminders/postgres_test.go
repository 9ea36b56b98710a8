package reminders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now().Add(24 * time.Hour)
	mock.ExpectExec(`INSERT\s+INTO\s+reminders`).
		WithArgs("rem-1", int64(7), at, "call Jane", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Reminder{
		ID: "rem-1", ContactID: 7, RemindAt: at, Message: "call Jane",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestListByContact(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "contact_id", "remind_at", "message", "is_completed", "created_at"}).
		AddRow("rem-1", int64(7), now, "call Jane", false, now).
		AddRow("rem-2", int64(7), now.Add(time.Hour), "send card", true, now)
	mock.ExpectQuery(`SELECT .* FROM reminders\s+WHERE contact_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.ListByContact(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByContact error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "rem-1" || !got[1].IsCompleted {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSetCompleted_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE reminders SET is_completed`).
		WithArgs(true, "ghost", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetCompleted(context.Background(), "ghost", 7, true)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reminders WHERE id = \$1 AND contact_id = \$2`).
		WithArgs("rem-1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "rem-1", 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
