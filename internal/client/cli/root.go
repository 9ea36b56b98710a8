package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to PhoneSaver CLI (type 'help' for commands)")

	// Pick up a persisted session so a restart does not force a re-login.
	email, err := a.auth.RestoreSession(ctx)
	if err != nil {
		log.Printf("error restoring session: %v", err)
	}
	a.email = email

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
