package cli

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/phonesaver/phonesaver/internal/contact"
)

func (a *App) Remind(ctx context.Context, args []string) error {
	id, ok := parseID(args, "remind <id> <YYYY-MM-DD> <message>")
	if !ok {
		return nil
	}
	if len(args) < 3 {
		printlnFn("Usage: remind <id> <YYYY-MM-DD> <message>")
		return nil
	}

	date, err := time.Parse(contact.BirthdayLayout, args[1])
	if err != nil {
		printlnFn("Bad date, expected YYYY-MM-DD:", args[1])
		return nil
	}

	rem, err := a.contacts.AddReminder(ctx, id, date, strings.Join(args[2:], " "))
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Reminder created:", rem.ID)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	id, ok := parseID(args, "done <id> <reminder-id>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: done <id> <reminder-id>")
		return nil
	}

	if err := a.contacts.CompleteReminder(ctx, id, args[1]); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Reminder completed")
	return nil
}
