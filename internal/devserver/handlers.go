package devserver

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/uni-jay/ican-portal/internal/client/models"
)

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) > 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	return fiber.NewError(fiber.StatusBadRequest, missing[0]+" is required")
}

// issue mints an access token and a refresh token for u.
func (s *Server) issue(u models.User) (models.AuthPayload, error) {
	access, err := GenerateToken(u.ID, s.cfg.JWTKey, s.cfg.AccessTTL, s.store.now())
	if err != nil {
		return models.AuthPayload{}, err
	}
	return models.AuthPayload{User: u, Token: access, RefreshToken: s.store.IssueRefreshToken(u.ID)}, nil
}

func (s *Server) login(c *fiber.Ctx) error {
	var req models.Credentials
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := required(map[string]string{"email": req.Email, "password": req.Password}); err != nil {
		return err
	}
	u, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return storeError(err)
	}
	payload, err := s.issue(u)
	if err != nil {
		return err
	}
	s.logger.Info(c.UserContext(), "member logged in", "user", u.ID)
	return ok(c, fiber.StatusOK, payload)
}

func (s *Server) register(c *fiber.Ctx) error {
	var req models.RegisterData
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := required(map[string]string{
		"name": req.Name, "email": req.Email, "password": req.Password, "phone": req.Phone,
	}); err != nil {
		return err
	}
	u, err := s.store.CreateUser(req)
	if err != nil {
		return storeError(err)
	}
	payload, err := s.issue(u)
	if err != nil {
		return err
	}
	s.logger.Info(c.UserContext(), "member registered", "user", u.ID)
	return ok(c, fiber.StatusCreated, payload)
}

func (s *Server) refreshToken(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	userID, next, err := s.store.RotateRefreshToken(req.RefreshToken)
	if err != nil {
		return storeError(err)
	}
	access, err := GenerateToken(userID, s.cfg.JWTKey, s.cfg.AccessTTL, s.store.now())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, models.TokenPair{Token: access, RefreshToken: next})
}

func (s *Server) logout(c *fiber.Ctx) error {
	s.store.RevokeRefreshTokens(currentUserID(c))
	return okMessage(c, "Logged out")
}

// forgotPassword answers the same way whether or not the account exists.
func (s *Server) forgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordData
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := required(map[string]string{"email": req.Email}); err != nil {
		return err
	}
	msg := "If the account exists, a reset code has been sent"
	tok, err := s.store.CreateResetToken(req.Email)
	switch {
	case errors.Is(err, ErrUnknownUser):
	case err != nil:
		return err
	default:
		s.logger.Info(c.UserContext(), "password reset requested", "email", req.Email)
		if s.cfg.Dev {
			s.logger.Info(c.UserContext(), "reset code issued", "code", tok)
			msg = "Reset code: " + tok
		}
	}
	return okMessage(c, msg)
}

func (s *Server) resetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordData
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := required(map[string]string{"token": req.Token, "newPassword": req.NewPassword}); err != nil {
		return err
	}
	if err := s.store.ResetPassword(req.Token, req.NewPassword); err != nil {
		return storeError(err)
	}
	return okMessage(c, "Password updated")
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	u, err := s.store.User(currentUserID(c))
	if err != nil {
		return storeError(err)
	}
	return ok(c, fiber.StatusOK, u)
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}
	u, err := s.store.UpdateProfile(currentUserID(c), req)
	if err != nil {
		return storeError(err)
	}
	return ok(c, fiber.StatusOK, u)
}

func (s *Server) listTransactions(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nonNil(s.store.Transactions(currentUserID(c))))
}

func (s *Server) listEvents(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nonNil(s.store.Events(currentUserID(c))))
}

func (s *Server) joinEvent(c *fiber.Ctx) error {
	ev, err := s.store.RegisterForEvent(currentUserID(c), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return ok(c, fiber.StatusOK, ev)
}

func (s *Server) listModules(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nonNil(s.store.CPDModules(currentUserID(c))))
}

func (s *Server) listElections(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nonNil(s.store.Elections(currentUserID(c))))
}

func (s *Server) castVote(c *fiber.Ctx) error {
	var req models.Vote
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.store.CastVote(currentUserID(c), c.Params("id"), req.CandidateID); err != nil {
		return storeError(err)
	}
	return okMessage(c, "Vote recorded")
}

func (s *Server) listMessages(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nonNil(s.store.ChatMessages()))
}

func (s *Server) postMessage(c *fiber.Ctx) error {
	var req models.NewChatMessage
	if err := parseBody(c, &req); err != nil {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is required")
	}
	m, err := s.store.PostChatMessage(currentUserID(c), content)
	if err != nil {
		return storeError(err)
	}
	return ok(c, fiber.StatusCreated, m)
}

// nonNil keeps empty lists encoded as [] rather than omitted.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
