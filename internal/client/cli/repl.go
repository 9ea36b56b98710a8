package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Note(ctx context.Context, args []string) error
	Birthday(ctx context.Context, args []string) error
	Touch(ctx context.Context, args []string) error
	Remind(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	Insights(ctx context.Context) error
}

// runREPL reads lines from scanner, parses the first token as the command,
// and dispatches to a. It exits on EOF or "exit"/"quit". Handler errors are
// ignored here; handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ps> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, show, rename, tag, note, birthday, touch, remind, done, delete, share, backup, restore, insights, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "rename":
			_ = a.Rename(ctx, args)

		case "tag":
			_ = a.Tag(ctx, args)

		case "note":
			_ = a.Note(ctx, args)

		case "birthday":
			_ = a.Birthday(ctx, args)

		case "touch":
			_ = a.Touch(ctx, args)

		case "remind":
			_ = a.Remind(ctx, args)

		case "done":
			_ = a.Done(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "share":
			_ = a.Share(ctx, args)

		case "backup":
			_ = a.Backup(ctx)

		case "restore":
			_ = a.Restore(ctx)

		case "insights":
			_ = a.Insights(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
