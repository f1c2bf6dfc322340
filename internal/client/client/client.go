package client

import (
	"context"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

// AuthClient is the authentication half of the backend contract. Every
// method performs at most one normalized round trip and never returns a Go
// error for a failed call: the outcome is carried by the Result.
type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) models.Result[models.AuthPayload]
	Register(ctx context.Context, data models.RegisterData) models.Result[models.AuthPayload]
	Logout(ctx context.Context)
	GetCurrentUser(ctx context.Context) models.Result[models.User]
	ForgotPassword(ctx context.Context, data models.ForgotPasswordData) models.Result[models.Empty]
	ResetPassword(ctx context.Context, data models.ResetPasswordData) models.Result[models.Empty]
	RefreshToken(ctx context.Context) models.Result[models.TokenPair]

	// RestoreToken loads the persisted token into memory and reports whether one exists.
	RestoreToken(ctx context.Context) (bool, error)
	// ClearToken forgets the token locally without contacting the backend.
	ClearToken(ctx context.Context)
	HasToken() bool
}

// PortalClient covers the member-facing domain endpoints.
type PortalClient interface {
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) models.Result[models.User]
	GetTransactions(ctx context.Context) models.Result[[]models.Transaction]
	GetEvents(ctx context.Context) models.Result[[]models.Event]
	RegisterForEvent(ctx context.Context, eventID string) models.Result[models.Event]
	GetCPDModules(ctx context.Context) models.Result[[]models.CPDModule]
	GetElections(ctx context.Context) models.Result[[]models.Election]
	CastVote(ctx context.Context, electionID string, vote models.Vote) models.Result[models.Empty]
	GetChatMessages(ctx context.Context) models.Result[[]models.ChatMessage]
	SendChatMessage(ctx context.Context, msg models.NewChatMessage) models.Result[models.ChatMessage]
}

// Client is the full backend contract implemented by HTTPClient.
type Client interface {
	AuthClient
	PortalClient
}
