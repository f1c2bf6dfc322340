package devserver

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/uni-jay/ican-portal/internal/common"
)

const userIDKey = "user_id"

// envelope is the body of every response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

func okMessage(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: msg})
}

// handleError renders every error as a failed envelope.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	} else {
		s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(envelope{Success: false, Message: msg})
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.logger.Debug(c.UserContext(), "request", "method", c.Method(), "path", c.Path(),
		"status", status, "duration", time.Since(start))
	return err
}

// requireAuth validates the bearer access token and stores its user id.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), strings.ToLower(common.BearerPrefix)) {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token")
	}
	tok := strings.TrimSpace(authz[len(common.BearerPrefix):])
	id, err := GetUserIDFromToken(tok, s.cfg.JWTKey)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	if _, err := s.store.User(id); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	c.Locals(userIDKey, id)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

// storeError maps store errors to HTTP errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrAlreadyVoted):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnknownRefreshToken):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUnknownUser), errors.Is(err, ErrUnknownEvent), errors.Is(err, ErrUnknownElection):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnknownResetToken), errors.Is(err, ErrElectionClosed),
		errors.Is(err, ErrUnknownCandidate), errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
