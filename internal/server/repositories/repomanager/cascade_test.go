package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/server/models"
)

// TestDeleteContact_CascadesRemindersAndShareLinks needs a real database:
// the cascade lives in the schema's foreign keys, which sqlmock cannot
// observe. Set PHONESAVER_TEST_DATABASE_DSN to run it.
func TestDeleteContact_CascadesRemindersAndShareLinks(t *testing.T) {
	dsn := os.Getenv("PHONESAVER_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("PHONESAVER_TEST_DATABASE_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	rm, err := NewPostgresRepositoryManager(db)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(ctx, db))

	user, err := rm.Users(db).Create(ctx, &models.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)

	contactsRepo := rm.Contacts(db)
	contactID, err := contactsRepo.Create(ctx, &models.Contact{
		UserID:      user.ID,
		Name:        "Jane",
		PhoneCipher: "blob",
		Frequency:   "weekly",
	})
	require.NoError(t, err)

	remindersRepo := rm.Reminders(db)
	for i := 0; i < 2; i++ {
		require.NoError(t, remindersRepo.Create(ctx, &models.Reminder{
			ID:        uuid.NewString(),
			ContactID: contactID,
			RemindAt:  time.Now().Add(24 * time.Hour),
			Message:   "call about trip",
		}))
	}

	token := uuid.NewString()
	_, err = rm.ShareLinks(db).Create(ctx, &models.ShareLink{
		Token:     token,
		ContactID: contactID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, contactsRepo.Delete(ctx, contactID, user.ID))

	rems, err := remindersRepo.ListByContact(ctx, contactID)
	require.NoError(t, err)
	require.Empty(t, rems, "reminders must not survive their contact")

	_, err = rm.ShareLinks(db).GetByToken(ctx, token)
	require.True(t, errors.Is(err, common.ErrorNotFound), "share link must not survive its contact")
}
