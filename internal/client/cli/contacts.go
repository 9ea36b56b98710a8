package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/phonesaver/phonesaver/internal/client/api"
	"github.com/phonesaver/phonesaver/internal/client/services"
)

// parseID reads a contact id from the first argument. A false return means
// the usage line was already printed.
func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Bad contact id:", args[0])
		return 0, false
	}
	return id, true
}

// parseListArgs understands "list [query] [tag:x] [sort:name|last_interaction|birthday] [desc]".
func parseListArgs(args []string) api.ListOptions {
	var opts api.ListOptions
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "tag:"):
			opts.Tag = strings.TrimPrefix(arg, "tag:")
		case strings.HasPrefix(arg, "sort:"):
			opts.Sort = strings.TrimPrefix(arg, "sort:")
		case arg == "desc":
			opts.Desc = true
		default:
			opts.Query = arg
		}
	}
	return opts
}

func formatContactLine(c *services.DecryptedContact) string {
	line := fmt.Sprintf("#%d %s %s", c.ID, c.Name, c.DisplayPhone())
	if len(c.Tags) > 0 {
		line += " [" + strings.Join(c.Tags, ", ") + "]"
	}
	return line
}

func (a *App) Add(ctx context.Context) error {
	var nc services.NewContact
	var err error

	if nc.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if nc.Phone, err = GetSimpleText(a.reader, "Phone (10-15 digits, optional +)", a.out); err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags (comma separated, optional)", a.out)
	if err != nil {
		return err
	}
	if tags != "" {
		nc.Tags = strings.Split(tags, ",")
	}
	if nc.Birthday, err = GetSimpleText(a.reader, "Birthday (YYYY-MM-DD, optional)", a.out); err != nil {
		return err
	}
	if nc.Frequency, err = GetSimpleText(a.reader, "Contact frequency (daily/weekly/monthly/quarterly/yearly, default weekly)", a.out); err != nil {
		return err
	}
	if nc.PreferredTime, err = GetSimpleText(a.reader, "Preferred time (morning/afternoon/evening/night, optional)", a.out); err != nil {
		return err
	}
	if nc.Notes, err = GetSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	created, err := a.contacts.Add(ctx, nc)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Created " + formatContactLine(created))
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	opts := parseListArgs(args)

	items, err := a.contacts.List(ctx, opts)
	if err != nil {
		log.Printf("error: %v (showing cached contacts)", err)
		items, err = a.contacts.Cached(ctx)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	for i := range items {
		printlnFn(formatContactLine(&items[i]))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := parseID(args, "show <id>")
	if !ok {
		return nil
	}

	c, err := a.contacts.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(formatContactLine(c))
	if c.Birthday != "" {
		printlnFn("  birthday:", c.Birthday)
	}
	printlnFn("  frequency:", string(c.Frequency))
	if c.PreferredTime != "" {
		printlnFn("  preferred time:", string(c.PreferredTime))
	}
	if c.LastInteraction != nil {
		printlnFn("  last interaction:", c.LastInteraction.Format("2006-01-02 15:04"))
	}
	if c.Notes != "" {
		printlnFn("  notes:", c.Notes)
	}

	reminders, err := a.contacts.ListReminders(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, r := range reminders {
		state := " "
		if r.IsCompleted {
			state = "x"
		}
		printlnFn(fmt.Sprintf("  [%s] %s %s (%s)", state, r.Date.Format("2006-01-02"), r.Message, r.ID))
	}
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	id, ok := parseID(args, "rename <id> <name>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: rename <id> <name>")
		return nil
	}

	if err := a.contacts.Rename(ctx, id, strings.Join(args[1:], " ")); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Renamed")
	return nil
}

func (a *App) Tag(ctx context.Context, args []string) error {
	id, ok := parseID(args, "tag <id> <tag,tag,...>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: tag <id> <tag,tag,...>")
		return nil
	}

	tags := strings.Split(strings.Join(args[1:], ","), ",")
	if err := a.contacts.SetTags(ctx, id, tags); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Tags updated")
	return nil
}

func (a *App) Note(ctx context.Context, args []string) error {
	id, ok := parseID(args, "note <id> <text>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: note <id> <text>")
		return nil
	}

	if err := a.contacts.SetNotes(ctx, id, strings.Join(args[1:], " ")); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Notes updated")
	return nil
}

func (a *App) Birthday(ctx context.Context, args []string) error {
	id, ok := parseID(args, "birthday <id> <YYYY-MM-DD>")
	if !ok {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: birthday <id> <YYYY-MM-DD>")
		return nil
	}

	if err := a.contacts.SetBirthday(ctx, id, args[1]); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Birthday updated")
	return nil
}

func (a *App) Touch(ctx context.Context, args []string) error {
	id, ok := parseID(args, "touch <id>")
	if !ok {
		return nil
	}

	if err := a.contacts.Touch(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Interaction recorded")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := parseID(args, "delete <id>")
	if !ok {
		return nil
	}

	if err := a.contacts.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Deleted")
	return nil
}

func (a *App) Insights(ctx context.Context) error {
	ins, err := a.contacts.Insights(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("Contacts: %d", ins.TotalContacts))
	for tag, n := range ins.TagCounts {
		printlnFn(fmt.Sprintf("  %s: %d", tag, n))
	}
	return nil
}
