package contacts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/contact"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE contacts (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  phone_cipher TEXT NOT NULL,
  tags TEXT NOT NULL DEFAULT '',
  last_interaction TIMESTAMP,
  birthday TEXT NOT NULL DEFAULT '',
  frequency TEXT NOT NULL DEFAULT 'weekly',
  preferred_time TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)

	return db
}

func sample(id int64) *contact.Record {
	last := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return &contact.Record{
		ID:              id,
		Name:            "Jane",
		PhoneCipher:     "blob-1",
		Tags:            []string{"family", "work"},
		LastInteraction: &last,
		Birthday:        "1990-01-01",
		Frequency:       contact.FrequencyWeekly,
		PreferredTime:   contact.PreferredMorning,
		Notes:           "notes",
	}
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sample(1)))

	got, err := r.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "blob-1", got.PhoneCipher)
	assert.Equal(t, []string{"family", "work"}, got.Tags)
	assert.Equal(t, contact.FrequencyWeekly, got.Frequency)
	require.NotNil(t, got.LastInteraction)

	// same id, new cipher
	updated := sample(1)
	updated.PhoneCipher = "blob-2"
	updated.Tags = []string{"friends"}
	require.NoError(t, r.Upsert(ctx, updated))

	got, err = r.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "blob-2", got.PhoneCipher)
	assert.Equal(t, []string{"friends"}, got.Tags)
}

func TestGet_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestGetAll_OrderedByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	b := sample(2)
	b.Name = "Joe"
	require.NoError(t, r.Upsert(ctx, b))
	require.NoError(t, r.Upsert(ctx, sample(1)))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sample(1)))
	require.NoError(t, r.DeleteByID(ctx, 1))

	err := r.DeleteByID(ctx, 1)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestReplaceAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sample(1)))
	require.NoError(t, r.Upsert(ctx, sample(2)))

	fresh := sample(7)
	require.NoError(t, r.ReplaceAll(ctx, []contact.Record{*fresh}))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(7), all[0].ID)
}
