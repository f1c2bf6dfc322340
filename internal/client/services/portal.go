// Package services contains application services for the portal client.
// This file defines the member portal service: profile, wallet
// transactions, events, CPD, elections and chat.
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/uni-jay/ican-portal/internal/client/client"
	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/common"
)

// PortalService defines the member-facing domain operations for the CLI.
//
// A call answered with 401 is retried once after the session renews its
// token. Every failed backend call is reported as an error wrapping
// common.ErrRequestFailed (and common.ErrUnauthorized for a 401), carrying
// the backend's message. All methods honor context cancellation/timeouts.
type PortalService interface {
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	Events(ctx context.Context) ([]models.Event, error)
	JoinEvent(ctx context.Context, eventID string) (models.Event, error)
	CPDModules(ctx context.Context) ([]models.CPDModule, error)
	Elections(ctx context.Context) ([]models.Election, error)
	Vote(ctx context.Context, electionID, candidateID string) error
	ChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, content string) (models.ChatMessage, error)
}

// Session is the part of the session manager the portal depends on.
type Session interface {
	// UpdateUser receives the refreshed user after a profile edit.
	UpdateUser(u models.User)
	// Refresh renews an expired access token and reports whether the
	// request may be retried.
	Refresh(ctx context.Context) bool
}

// portalService is the concrete PortalService backed by a remote client.
type portalService struct {
	client  client.PortalClient
	session Session
}

// NewPortalService constructs a PortalService. session may be nil when no
// session needs to follow profile edits or token expiry.
func NewPortalService(c client.PortalClient, session Session) PortalService {
	return &portalService{client: c, session: session}
}

// call runs fn and, when it is rejected with 401 and the session could
// renew its token, runs it once more.
func call[T any](ctx context.Context, s *portalService, op string, fn func() models.Result[T]) (T, error) {
	res := fn()
	if !res.Success && res.StatusCode == http.StatusUnauthorized && s.session != nil && s.session.Refresh(ctx) {
		res = fn()
	}
	return unwrap(op, res)
}

// unwrap turns a normalized result into a value or an error.
func unwrap[T any](op string, res models.Result[T]) (T, error) {
	if res.Success {
		return res.Data, nil
	}
	var zero T
	if res.StatusCode == http.StatusUnauthorized {
		return zero, fmt.Errorf("%s: %w: %w: %s", op, common.ErrRequestFailed, common.ErrUnauthorized, res.Error)
	}
	return zero, fmt.Errorf("%s: %w: %s", op, common.ErrRequestFailed, res.Error)
}

// UpdateProfile saves the edited fields and pushes the returned user into
// the session.
func (s *portalService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	u, err := call(ctx, s, "update profile", func() models.Result[models.User] {
		return s.client.UpdateProfile(ctx, update)
	})
	if err != nil {
		return models.User{}, err
	}
	if s.session != nil {
		s.session.UpdateUser(u)
	}
	return u, nil
}

func (s *portalService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return call(ctx, s, "get transactions", func() models.Result[[]models.Transaction] {
		return s.client.GetTransactions(ctx)
	})
}

func (s *portalService) Events(ctx context.Context) ([]models.Event, error) {
	return call(ctx, s, "get events", func() models.Result[[]models.Event] {
		return s.client.GetEvents(ctx)
	})
}

func (s *portalService) JoinEvent(ctx context.Context, eventID string) (models.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return models.Event{}, fmt.Errorf("join event: %w: event id is required", common.ErrValidation)
	}
	return call(ctx, s, "join event", func() models.Result[models.Event] {
		return s.client.RegisterForEvent(ctx, eventID)
	})
}

func (s *portalService) CPDModules(ctx context.Context) ([]models.CPDModule, error) {
	return call(ctx, s, "get cpd modules", func() models.Result[[]models.CPDModule] {
		return s.client.GetCPDModules(ctx)
	})
}

func (s *portalService) Elections(ctx context.Context) ([]models.Election, error) {
	return call(ctx, s, "get elections", func() models.Result[[]models.Election] {
		return s.client.GetElections(ctx)
	})
}

// Vote casts a ballot for candidateID in electionID.
func (s *portalService) Vote(ctx context.Context, electionID, candidateID string) error {
	if electionID == "" || candidateID == "" {
		return fmt.Errorf("vote: %w: election and candidate are required", common.ErrValidation)
	}
	_, err := call(ctx, s, "vote", func() models.Result[models.Empty] {
		return s.client.CastVote(ctx, electionID, models.Vote{CandidateID: candidateID})
	})
	return err
}

func (s *portalService) ChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	return call(ctx, s, "get chat messages", func() models.Result[[]models.ChatMessage] {
		return s.client.GetChatMessages(ctx)
	})
}

func (s *portalService) SendChatMessage(ctx context.Context, content string) (models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ChatMessage{}, fmt.Errorf("send message: %w: message is empty", common.ErrValidation)
	}
	return call(ctx, s, "send message", func() models.Result[models.ChatMessage] {
		return s.client.SendChatMessage(ctx, models.NewChatMessage{Content: content})
	})
}
