package cli

import (
	"context"
	"log"
)

func (a *App) Share(ctx context.Context, args []string) error {
	id, ok := parseID(args, "share <id>")
	if !ok {
		return nil
	}

	link, err := a.contacts.Share(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Share token:", link.Token)
	printlnFn("Valid until:", link.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}
