package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) models.Result[models.User] {
	return request[models.User](ctx, c, http.MethodPut, "/user/profile", update)
}

func (c *HTTPClient) GetTransactions(ctx context.Context) models.Result[[]models.Transaction] {
	return request[[]models.Transaction](ctx, c, http.MethodGet, "/transactions", nil)
}

func (c *HTTPClient) GetEvents(ctx context.Context) models.Result[[]models.Event] {
	return request[[]models.Event](ctx, c, http.MethodGet, "/events", nil)
}

func (c *HTTPClient) RegisterForEvent(ctx context.Context, eventID string) models.Result[models.Event] {
	return request[models.Event](ctx, c, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/register", nil)
}

func (c *HTTPClient) GetCPDModules(ctx context.Context) models.Result[[]models.CPDModule] {
	return request[[]models.CPDModule](ctx, c, http.MethodGet, "/cpd/modules", nil)
}

func (c *HTTPClient) GetElections(ctx context.Context) models.Result[[]models.Election] {
	return request[[]models.Election](ctx, c, http.MethodGet, "/voting/elections", nil)
}

func (c *HTTPClient) CastVote(ctx context.Context, electionID string, vote models.Vote) models.Result[models.Empty] {
	return request[models.Empty](ctx, c, http.MethodPost, "/voting/elections/"+url.PathEscape(electionID)+"/vote", vote)
}

func (c *HTTPClient) GetChatMessages(ctx context.Context) models.Result[[]models.ChatMessage] {
	return request[[]models.ChatMessage](ctx, c, http.MethodGet, "/chat/messages", nil)
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, msg models.NewChatMessage) models.Result[models.ChatMessage] {
	return request[models.ChatMessage](ctx, c, http.MethodPost, "/chat/messages", msg)
}
