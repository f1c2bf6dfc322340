package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/client/session"
)

// stubInputs feeds answers to getSimpleText in order and returns password
// for every getPassword call.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ string, _ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

// fakeSession implements sessionManager with canned outcomes.
type fakeSession struct {
	state session.State

	loginOK, registerOK, forgotOK, resetOK bool
	failMsg                                string

	lastCreds    models.Credentials
	lastRegister models.RegisterData
	lastForgot   models.ForgotPasswordData
	lastReset    models.ResetPasswordData
	calls        []string
}

func (f *fakeSession) outcome(op string, ok bool) bool {
	f.calls = append(f.calls, op)
	if !ok {
		f.state.Error = f.failMsg
	}
	return ok
}

func (f *fakeSession) Bootstrap(context.Context) { f.calls = append(f.calls, "bootstrap") }

func (f *fakeSession) Login(_ context.Context, c models.Credentials) bool {
	f.lastCreds = c
	if f.loginOK {
		f.state = session.State{User: &models.User{ID: "1", Name: "Ada", Email: c.Email}, IsAuthenticated: true}
	}
	return f.outcome("login", f.loginOK)
}

func (f *fakeSession) Register(_ context.Context, d models.RegisterData) bool {
	f.lastRegister = d
	if f.registerOK {
		f.state = session.State{User: &models.User{ID: "2", Name: d.Name, Email: d.Email}, IsAuthenticated: true}
	}
	return f.outcome("register", f.registerOK)
}

func (f *fakeSession) Logout(context.Context) {
	f.calls = append(f.calls, "logout")
	f.state = session.State{}
}

func (f *fakeSession) ForgotPassword(_ context.Context, d models.ForgotPasswordData) bool {
	f.lastForgot = d
	return f.outcome("forgot", f.forgotOK)
}

func (f *fakeSession) ResetPassword(_ context.Context, d models.ResetPasswordData) bool {
	f.lastReset = d
	return f.outcome("reset", f.resetOK)
}

func (f *fakeSession) ClearError() {
	f.calls = append(f.calls, "clear")
	f.state.Error = ""
}

func (f *fakeSession) State() session.State { return f.state }

func (f *fakeSession) Subscribe(session.Listener) func() { return func() {} }

// fakePortal implements services.PortalService.
type fakePortal struct {
	user         models.User
	transactions []models.Transaction
	events       []models.Event
	modules      []models.CPDModule
	elections    []models.Election
	messages     []models.ChatMessage
	err          error

	lastUpdate  models.ProfileUpdate
	lastJoin    string
	lastVote    [2]string
	lastMessage string
}

func (f *fakePortal) UpdateProfile(_ context.Context, u models.ProfileUpdate) (models.User, error) {
	f.lastUpdate = u
	return f.user, f.err
}
func (f *fakePortal) Transactions(context.Context) ([]models.Transaction, error) {
	return f.transactions, f.err
}
func (f *fakePortal) Events(context.Context) ([]models.Event, error) { return f.events, f.err }
func (f *fakePortal) JoinEvent(_ context.Context, id string) (models.Event, error) {
	f.lastJoin = id
	for _, ev := range f.events {
		if ev.ID == id {
			return ev, f.err
		}
	}
	return models.Event{ID: id}, f.err
}
func (f *fakePortal) CPDModules(context.Context) ([]models.CPDModule, error) { return f.modules, f.err }
func (f *fakePortal) Elections(context.Context) ([]models.Election, error)   { return f.elections, f.err }
func (f *fakePortal) Vote(_ context.Context, e, c string) error {
	f.lastVote = [2]string{e, c}
	return f.err
}
func (f *fakePortal) ChatMessages(context.Context) ([]models.ChatMessage, error) {
	return f.messages, f.err
}
func (f *fakePortal) SendChatMessage(_ context.Context, text string) (models.ChatMessage, error) {
	f.lastMessage = text
	return models.ChatMessage{ID: "m1", Content: text}, f.err
}
