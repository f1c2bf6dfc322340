package session

import (
	"context"
	"sync"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

// fakeAuth implements client.AuthClient with canned results.
type fakeAuth struct {
	mu sync.Mutex

	LoginRes    models.Result[models.AuthPayload]
	RegisterRes models.Result[models.AuthPayload]
	ForgotRes   models.Result[models.Empty]
	ResetRes    models.Result[models.Empty]
	RefreshRes  models.Result[models.TokenPair]
	// UserRes is consumed in order by GetCurrentUser; the last entry repeats.
	UserRes []models.Result[models.User]

	StoredToken bool
	RestoreErr  error

	// LoginGate, when set, blocks Login until it receives a value or is closed.
	LoginGate chan struct{}
	// LoginStarted, when set, is signalled as each Login call starts.
	LoginStarted chan struct{}

	LoginCalls    []models.Credentials
	RegisterCalls []models.RegisterData
	ForgotCalls   []models.ForgotPasswordData
	ResetCalls    []models.ResetPasswordData
	UserCalls     int
	RefreshCalls  int
	LogoutCalls   int
	ClearCalls    int
	RestoreCalls  int
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) models.Result[models.AuthPayload] {
	f.mu.Lock()
	f.LoginCalls = append(f.LoginCalls, creds)
	gate, started := f.LoginGate, f.LoginStarted
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginRes.Success {
		f.StoredToken = true
	}
	return f.LoginRes
}

func (f *fakeAuth) Register(_ context.Context, data models.RegisterData) models.Result[models.AuthPayload] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls = append(f.RegisterCalls, data)
	if f.RegisterRes.Success {
		f.StoredToken = true
	}
	return f.RegisterRes
}

func (f *fakeAuth) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	f.StoredToken = false
}

func (f *fakeAuth) GetCurrentUser(context.Context) models.Result[models.User] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UserCalls++
	if len(f.UserRes) == 0 {
		return models.Fail[models.User](500, "no canned user")
	}
	res := f.UserRes[0]
	if len(f.UserRes) > 1 {
		f.UserRes = f.UserRes[1:]
	}
	return res
}

func (f *fakeAuth) ForgotPassword(_ context.Context, data models.ForgotPasswordData) models.Result[models.Empty] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForgotCalls = append(f.ForgotCalls, data)
	return f.ForgotRes
}

func (f *fakeAuth) ResetPassword(_ context.Context, data models.ResetPasswordData) models.Result[models.Empty] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ResetCalls = append(f.ResetCalls, data)
	return f.ResetRes
}

func (f *fakeAuth) RefreshToken(context.Context) models.Result[models.TokenPair] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshCalls++
	return f.RefreshRes
}

func (f *fakeAuth) RestoreToken(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RestoreCalls++
	return f.StoredToken, f.RestoreErr
}

func (f *fakeAuth) ClearToken(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.StoredToken = false
}

func (f *fakeAuth) HasToken() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StoredToken
}

func okAuth(u models.User, token string) models.Result[models.AuthPayload] {
	return models.Result[models.AuthPayload]{Success: true, StatusCode: 200, Data: models.AuthPayload{User: u, Token: token}}
}

func okUser(u models.User) models.Result[models.User] {
	return models.Result[models.User]{Success: true, StatusCode: 200, Data: u}
}
