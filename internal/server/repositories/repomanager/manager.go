package repomanager

import (
	"context"
	"database/sql"

	"github.com/phonesaver/phonesaver/internal/dbx"
	"github.com/phonesaver/phonesaver/internal/server/repositories/backups"
	"github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/server/repositories/refreshtokens"
	"github.com/phonesaver/phonesaver/internal/server/repositories/reminders"
	"github.com/phonesaver/phonesaver/internal/server/repositories/sharelinks"
	"github.com/phonesaver/phonesaver/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Reminders(db dbx.DBTX) reminders.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
	Backups(db dbx.DBTX) backups.Repository
}
