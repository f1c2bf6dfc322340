package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) models.Result[models.AuthPayload] {
	res := request[models.AuthPayload](ctx, c, http.MethodPost, "/auth/login", creds)
	return c.acceptAuth(ctx, res)
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) models.Result[models.AuthPayload] {
	res := request[models.AuthPayload](ctx, c, http.MethodPost, "/auth/register", data)
	return c.acceptAuth(ctx, res)
}

// acceptAuth persists the tokens of a successful login/registration before
// the success is handed to the caller.
func (c *HTTPClient) acceptAuth(ctx context.Context, res models.Result[models.AuthPayload]) models.Result[models.AuthPayload] {
	if !res.Success {
		return res
	}
	if err := c.persist(ctx, res.Data.Token, res.Data.RefreshToken); err != nil {
		return models.Fail[models.AuthPayload](res.StatusCode, err.Error())
	}
	return res
}

func (c *HTTPClient) persist(ctx context.Context, access, refresh string) error {
	if err := c.tokens.Save(ctx, access, refresh); err != nil {
		c.logger.Error(ctx, "persisting token failed", "error", err)
		return fmt.Errorf("failed to persist token: %w", err)
	}
	c.setToken(access)
	return nil
}

// Logout notifies the backend when a token is held and then always removes
// the token, whatever the outcome of the notification.
func (c *HTTPClient) Logout(ctx context.Context) {
	if c.HasToken() {
		res := request[models.Empty](ctx, c, http.MethodPost, "/auth/logout", nil)
		if !res.Success {
			c.logger.Warn(ctx, "logout notification failed", "status", res.StatusCode, "error", res.Error)
		}
	}
	c.ClearToken(ctx)
}

// clearTimeout bounds the local token removal, which must not depend on the
// caller's deadline.
const clearTimeout = 5 * time.Second

// ClearToken forgets the token in memory and in storage. The storage write
// runs detached from ctx cancellation so an expired caller context cannot
// leave a token on disk.
func (c *HTTPClient) ClearToken(ctx context.Context) {
	c.setToken("")
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearTimeout)
	defer cancel()
	if err := c.tokens.Clear(ctx); err != nil {
		c.logger.Error(ctx, "removing stored token failed", "error", err)
	}
}

func (c *HTTPClient) RestoreToken(ctx context.Context) (bool, error) {
	tok, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return false, fmt.Errorf("read stored token: %w", err)
	}
	c.setToken(tok)
	return tok != "", nil
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context) models.Result[models.User] {
	return request[models.User](ctx, c, http.MethodGet, "/user/profile", nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, data models.ForgotPasswordData) models.Result[models.Empty] {
	return request[models.Empty](ctx, c, http.MethodPost, "/auth/forgot-password", data)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, data models.ResetPasswordData) models.Result[models.Empty] {
	return request[models.Empty](ctx, c, http.MethodPost, "/auth/reset-password", data)
}

// RefreshToken exchanges the stored refresh token for a new pair. The
// backend may omit a new refresh token, in which case the old one is kept.
func (c *HTTPClient) RefreshToken(ctx context.Context) models.Result[models.TokenPair] {
	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return models.Fail[models.TokenPair](0, fmt.Sprintf("read stored refresh token: %v", err))
	}
	if refresh == "" {
		return models.Fail[models.TokenPair](0, ErrNoRefreshToken.Error())
	}

	res := request[models.TokenPair](ctx, c, http.MethodPost, "/auth/refresh-token", models.RefreshRequest{RefreshToken: refresh})
	if !res.Success {
		return res
	}
	if res.Data.RefreshToken == "" {
		res.Data.RefreshToken = refresh
	}
	if err := c.persist(ctx, res.Data.Token, res.Data.RefreshToken); err != nil {
		return models.Fail[models.TokenPair](res.StatusCode, err.Error())
	}
	return res
}
