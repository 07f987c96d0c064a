package portal

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) ChangePassword(ctx context.Context) error { return f.record("passwd") }
func (f *fakeExec) ListPhotos(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) ShowPhoto(ctx context.Context) error { return f.record("show") }
func (f *fakeExec) Upload(ctx context.Context) error { return f.record("upload") }
func (f *fakeExec) DeletePhoto(ctx context.Context) error { return f.record("delete") }
func (f *fakeExec) ShowStorage(ctx context.Context) error { return f.record("storage") }
func (f *fakeExec) ShowAccount(ctx context.Context) error { return f.record("account") }
func (f *fakeExec) ShowUsage(ctx context.Context) error { return f.record("usage") }

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) {}
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"l",
		"upload",
		"storage",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"login", "list", "upload", "storage", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
		}
	}
}

func TestRunREPL_GuardsCommandsWhenLoggedOut(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("list\nupload\ndelete\nquit\n")
	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls while logged out: %v", exec.calls)
	}
}
