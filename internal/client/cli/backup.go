package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Backup(ctx context.Context) error {
	key, err := a.contacts.Backup(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Backup stored:", key)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	n, err := a.contacts.Restore(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("Restored %d contacts", n))
	return nil
}
