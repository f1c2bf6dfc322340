package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uni-jay/ican-portal/internal/common"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error { return f.record("forgot") }
func (f *fakeExec) ResetPassword(ctx context.Context) error  { return f.record("reset") }
func (f *fakeExec) ClearError()                              { _ = f.record("clear") }
func (f *fakeExec) WhoAmI(ctx context.Context) error         { return f.record("whoami") }
func (f *fakeExec) Profile(ctx context.Context) error        { return f.record("profile") }
func (f *fakeExec) Transactions(ctx context.Context) error   { return f.record("transactions") }
func (f *fakeExec) Events(ctx context.Context) error         { return f.record("events") }
func (f *fakeExec) JoinEvent(ctx context.Context, id string) error {
	return f.record("join " + id)
}
func (f *fakeExec) CPD(ctx context.Context) error       { return f.record("cpd") }
func (f *fakeExec) Elections(ctx context.Context) error { return f.record("elections") }
func (f *fakeExec) Vote(ctx context.Context, e, c string) error {
	return f.record("vote " + e + " " + c)
}
func (f *fakeExec) Chat(ctx context.Context) error { return f.record("chat") }
func (f *fakeExec) Send(ctx context.Context, text string) error {
	return f.record("send " + text)
}

// captureOutput swaps printlnFn for a recorder.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func lines(s ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(s, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, lines(
		"help",
		"events",
		"login",
		"help",
		"whoami",
		"profile",
		"transactions",
		"events",
		"join ev1",
		"cpd",
		"elections",
		"vote el1 c2",
		"chat",
		"send hello  there",
		"clear",
		"foobar",
		"logout",
		"exit",
		"login",
	))

	assert.Equal(t, []string{
		"login", "whoami", "profile", "transactions", "events", "join ev1", "cpd",
		"elections", "vote el1 c2", "chat", "send hello there", "clear", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, helpMember)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "ican status> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, lines("join", "vote el1", "", "quit"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: join <event id>")
	assert.Contains(t, *out, "Usage: vote <election id> <candidate id>")
}

func TestRunREPL_StaysAfterLogoutAndEndsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, lines("logout", "login", "whoami"))

	assert.Equal(t, []string{"logout", "login", "whoami"}, exec.calls)
}

func TestRunREPL_HandlerErrorsAreReported(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, lines("forgot", "reset", "register", "exit"))

	assert.Equal(t, []string{"forgot", "reset", "register"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_ExpiredSessionPromptsLogin(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true, err: fmt.Errorf("get events: %w", common.ErrUnauthorized)}
	runREPL(context.Background(), exec, func() string { return "" }, lines("events", "exit"))

	assert.Equal(t, []string{"events"}, exec.calls)
	assert.Contains(t, *out, "Your session has ended. Please log in again.")
}
