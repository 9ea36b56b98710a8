package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	lastArgs []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Add(ctx context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "list")
	f.lastArgs = args
	return nil
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "show")
	f.lastArgs = args
	return nil
}
func (f *fakeExec) Rename(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "rename")
	f.lastArgs = args
	return nil
}
func (f *fakeExec) Tag(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "tag")
	f.lastArgs = args
	return nil
}
func (f *fakeExec) Note(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "note")
	return nil
}
func (f *fakeExec) Birthday(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "birthday")
	return nil
}
func (f *fakeExec) Touch(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "touch")
	return nil
}
func (f *fakeExec) Remind(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "remind")
	return nil
}
func (f *fakeExec) Done(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "done")
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "delete")
	return nil
}
func (f *fakeExec) Share(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "share")
	return nil
}
func (f *fakeExec) Backup(ctx context.Context) error {
	f.calls = append(f.calls, "backup")
	return nil
}
func (f *fakeExec) Restore(ctx context.Context) error {
	f.calls = append(f.calls, "restore")
	return nil
}
func (f *fakeExec) Insights(ctx context.Context) error {
	f.calls = append(f.calls, "insights")
	return nil
}

func runWithInput(t *testing.T, exec *fakeExec, lines ...string) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, sc)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	runWithInput(t, exec,
		"help",
		"login",
		"add",
		"list tag:family",
		"show 1",
		"rename 1 Janet",
		"remind 1 2026-09-01 call",
		"done 1 r-1",
		"share 1",
		"backup",
		"insights",
		"exit",
	)

	want := []string{"login", "add", "list", "show", "rename", "remind", "done", "share", "backup", "insights"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("calls[%d] = %q, want %q (all: %v)", i, exec.calls[i], c, exec.calls)
		}
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runWithInput(t, exec, "tag 7 family,work", "quit")

	if len(exec.lastArgs) != 2 || exec.lastArgs[0] != "7" || exec.lastArgs[1] != "family,work" {
		t.Fatalf("lastArgs = %v", exec.lastArgs)
	}
}

func TestRunREPL_UnknownAndEmptyLines(t *testing.T) {
	exec := &fakeExec{}
	runWithInput(t, exec, "", "   ", "frobnicate", "quit")

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
