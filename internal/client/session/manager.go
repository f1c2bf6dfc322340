// Package session owns the client-side authentication state. A Manager
// drives every session transition through the API client, keeps the token
// lifecycle consistent with the state it exposes and notifies subscribers
// after each change.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/uni-jay/ican-portal/internal/client/client"
	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/logging"
)

// ExpiredMessage is the session error after a mid-session refresh is refused.
const ExpiredMessage = "Session expired, please log in again"

// Listener receives a snapshot after every state replacement. Listeners run
// synchronously on the goroutine that changed the state.
type Listener func(State)

type Manager struct {
	api    client.AuthClient
	logger logging.Logger

	// slot serializes state-mutating operations.
	slot    chan struct{}
	started bool // guarded by slot

	mu    sync.RWMutex
	state State

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager in the bootstrapping state. The owner is
// expected to call Bootstrap once right after construction.
func NewManager(api client.AuthClient, opts ...Option) *Manager {
	m := &Manager{
		api:       api,
		logger:    logging.Discard(),
		slot:      make(chan struct{}, 1),
		state:     initialState(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a deep copy of the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Subscribe registers fn and returns a function that removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.lmu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.lmu.Lock()
			delete(m.listeners, id)
			m.lmu.Unlock()
		})
	}
}

// acquire waits for the operation slot. It returns false if ctx has already
// ended or ends first.
func (m *Manager) acquire(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case m.slot <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *Manager) release() {
	<-m.slot
}

// begin claims the slot for a user-initiated operation and enters Busy.
func (m *Manager) begin(ctx context.Context) bool {
	if !m.acquire(ctx) {
		return false
	}
	m.enter()
	return true
}

// enter marks the session busy. The caller holds the slot.
func (m *Manager) enter() {
	m.started = true
	m.update(func(s State) State {
		s.IsLoading = true
		s.Error = ""
		s.booting = false
		return s
	})
}

func (m *Manager) replace(next State) {
	m.update(func(State) State { return next })
}

// update applies fn to the current state under the write lock and notifies
// listeners with the result.
func (m *Manager) update(fn func(State) State) {
	m.mu.Lock()
	m.state = fn(m.state.clone())
	snap := m.state.clone()
	m.mu.Unlock()
	m.notify(snap)
}

func (m *Manager) notify(s State) {
	m.lmu.Lock()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.lmu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}

// Bootstrap restores a persisted session. It runs at most once and does
// nothing if another operation already completed. A stored token the
// backend no longer accepts is removed without surfacing an error.
func (m *Manager) Bootstrap(ctx context.Context) {
	if !m.acquire(ctx) {
		return
	}
	defer m.release()
	if m.started {
		return
	}
	m.started = true

	ok, err := m.api.RestoreToken(ctx)
	if err != nil {
		m.logger.Warn(ctx, "reading stored token failed", "error", err)
	}
	if !ok {
		m.replace(unauthenticated(""))
		m.logger.Info(ctx, "session restored", "phase", PhaseUnauthenticated)
		return
	}

	res := m.api.GetCurrentUser(ctx)
	if !res.Success && res.StatusCode == http.StatusUnauthorized {
		if r := m.api.RefreshToken(ctx); r.Success {
			res = m.api.GetCurrentUser(ctx)
		} else {
			m.logger.Debug(ctx, "token refresh failed", "error", r.Error)
		}
	}
	if !res.Success {
		m.logger.Info(ctx, "stored session rejected", "status", res.StatusCode, "error", res.Error)
		m.api.ClearToken(ctx)
		m.replace(unauthenticated(""))
		return
	}

	m.replace(authenticated(res.Data))
	m.logger.Info(ctx, "session restored", "phase", PhaseAuthenticated, "user", res.Data.ID)
}

// Login authenticates with creds. A failure leaves the session
// unauthenticated with the backend's message in Error.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) bool {
	if !m.begin(ctx) {
		return false
	}
	defer m.release()
	return m.finishAuth(ctx, "login", m.api.Login(ctx, creds))
}

// Register creates an account and signs in with it.
func (m *Manager) Register(ctx context.Context, data models.RegisterData) bool {
	if !m.begin(ctx) {
		return false
	}
	defer m.release()
	return m.finishAuth(ctx, "register", m.api.Register(ctx, data))
}

func (m *Manager) finishAuth(ctx context.Context, op string, res models.Result[models.AuthPayload]) bool {
	if !res.Success {
		m.replace(unauthenticated(res.Error))
		m.logger.Info(ctx, op+" failed", "status", res.StatusCode, "error", res.Error)
		return false
	}
	m.replace(authenticated(res.Data.User))
	m.logger.Info(ctx, op+" succeeded", "user", res.Data.User.ID)
	return true
}

// Logout ends the session. It always runs: it waits for a running operation
// even when ctx has ended, and the session is unauthenticated afterwards
// whether or not the backend could be reached.
func (m *Manager) Logout(ctx context.Context) {
	m.slot <- struct{}{}
	defer m.release()
	m.enter()
	m.api.Logout(ctx)
	m.replace(unauthenticated(""))
	m.logger.Info(ctx, "logged out")
}

// Refresh renews the access token of an authenticated session, typically
// after a request was answered with 401. It reports whether a new token is in
// place. A refresh the backend refuses ends the session with ExpiredMessage;
// a transport or server failure leaves the session as it is.
func (m *Manager) Refresh(ctx context.Context) bool {
	if !m.acquire(ctx) {
		return false
	}
	defer m.release()

	m.mu.RLock()
	authed := m.state.IsAuthenticated
	m.mu.RUnlock()
	if !authed {
		return false
	}

	res := m.api.RefreshToken(ctx)
	if res.Success {
		m.logger.Info(ctx, "access token refreshed")
		return true
	}
	if !refreshRejected(res) {
		m.logger.Warn(ctx, "token refresh failed", "status", res.StatusCode, "error", res.Error)
		return false
	}

	m.logger.Info(ctx, "session expired", "status", res.StatusCode, "error", res.Error)
	m.api.ClearToken(ctx)
	m.replace(unauthenticated(ExpiredMessage))
	return false
}

// refreshRejected tells a refused refresh apart from one that never got an
// answer.
func refreshRejected(res models.Result[models.TokenPair]) bool {
	if res.StatusCode == 0 {
		return res.Error == client.ErrNoRefreshToken.Error()
	}
	return res.StatusCode >= 400 && res.StatusCode < 500
}

func (m *Manager) ForgotPassword(ctx context.Context, data models.ForgotPasswordData) bool {
	if !m.begin(ctx) {
		return false
	}
	defer m.release()
	return m.finishPlain(ctx, "forgot password", m.api.ForgotPassword(ctx, data))
}

func (m *Manager) ResetPassword(ctx context.Context, data models.ResetPasswordData) bool {
	if !m.begin(ctx) {
		return false
	}
	defer m.release()
	return m.finishPlain(ctx, "reset password", m.api.ResetPassword(ctx, data))
}

// finishPlain ends an operation that never changes who is signed in.
func (m *Manager) finishPlain(ctx context.Context, op string, res models.Result[models.Empty]) bool {
	m.update(func(s State) State {
		s.IsLoading = false
		s.Error = ""
		if !res.Success {
			s.Error = res.Error
		}
		return s
	})
	if !res.Success {
		m.logger.Info(ctx, op+" failed", "status", res.StatusCode, "error", res.Error)
	}
	return res.Success
}

// ClearError drops a pending error. Listeners are not notified when there
// is nothing to clear.
func (m *Manager) ClearError() {
	m.mu.Lock()
	if m.state.Error == "" {
		m.mu.Unlock()
		return
	}
	m.state.Error = ""
	snap := m.state.clone()
	m.mu.Unlock()
	m.notify(snap)
}

// UpdateUser replaces the signed-in user, e.g. after a profile edit. It is
// ignored unless the session is authenticated.
func (m *Manager) UpdateUser(u models.User) {
	m.mu.Lock()
	if !m.state.IsAuthenticated {
		m.mu.Unlock()
		return
	}
	m.state.User = &u
	snap := m.state.clone()
	m.mu.Unlock()
	m.notify(snap)
}
