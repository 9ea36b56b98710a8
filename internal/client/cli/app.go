// Package cli is the interactive PhoneSaver client: a small REPL over the
// server API with a local encrypted-phone cache.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/phonesaver/phonesaver/internal/client/api"
	"github.com/phonesaver/phonesaver/internal/client/config"
	"github.com/phonesaver/phonesaver/internal/client/services"
	"github.com/phonesaver/phonesaver/internal/client/storage"
	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/keystore"
)

type App struct {
	config   *config.Config
	auth     *services.AuthService
	contacts *services.ContactService
	email    string
	reader   *bufio.Reader
	out      io.Writer

	closeDB func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	repos, err := storage.InitDatabase(ctx, c.DataDir)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewClient(c.ServerURL)

	app := &App{
		config:  c,
		auth:    services.NewAuthService(apiClient, repos.Metadata),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closeDB: repos.DB.Close,
	}

	store, err := app.openKeyStore(ctx)
	if err != nil {
		return nil, err
	}
	app.contacts = services.NewContactService(apiClient, store, repos.Contacts)

	return app, nil
}

// openKeyStore builds the key custodian for the configured key file. A fresh
// key file offers passphrase protection; an existing sealed file prompts for
// the passphrase it was sealed with.
func (a *App) openKeyStore(ctx context.Context) (*keystore.FileStore, error) {
	_, statErr := os.Stat(a.config.KeyFilePath)
	if errors.Is(statErr, fs.ErrNotExist) {
		pass, err := GetPassword(a.out, "Key passphrase (leave empty for none): ")
		if err != nil {
			return nil, err
		}
		if len(pass) == 0 {
			pass = nil
		}
		return keystore.NewFileStore(a.config.KeyFilePath, pass), nil
	}

	store := keystore.NewFileStore(a.config.KeyFilePath, nil)
	if _, err := store.GetOrCreate(ctx); err == nil {
		return store, nil
	} else if !errors.Is(err, common.ErrKeyUnavailable) {
		return nil, err
	}

	pass, err := GetPassword(a.out, "Key passphrase: ")
	if err != nil {
		return nil, err
	}
	store = keystore.NewFileStore(a.config.KeyFilePath, pass)
	if _, err := store.GetOrCreate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.closeDB() }()
	a.Root(ctx)
}
