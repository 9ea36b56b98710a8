// Package storage opens and migrates the client cache database. The cache
// keeps contact records with the phone still in ciphertext form; nothing in
// this file ever sees a plaintext phone.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/phonesaver/phonesaver/internal/client/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/client/repositories/metadata"
	"github.com/phonesaver/phonesaver/internal/client/storage/migrations"
)

type Repositories struct {
	Contacts contacts.Repository
	Metadata metadata.Repository
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the cache database under dataDir
// and brings the schema up to date.
func InitDatabase(ctx context.Context, dataDir string) (*Repositories, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "cache.db"))
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Contacts: contacts.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
