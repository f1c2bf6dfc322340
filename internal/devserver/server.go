// Package devserver is an in-memory development backend for the member
// portal. It serves the JSON contract the portal client speaks, with every
// response wrapped in {success, data, message}. It is meant for local runs
// and end-to-end tests, not production.
package devserver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/uni-jay/ican-portal/internal/logging"
)

// Config holds the backend settings.
type Config struct {
	Addr      string
	JWTKey    []byte
	AccessTTL time.Duration

	// Dev seeds a demo member and echoes reset codes in responses.
	Dev        bool
	BcryptCost int
}

func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.AccessTTL = 15 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
}

// Server wraps the Fiber application and the in-memory store.
type Server struct {
	app    *fiber.App
	cfg    Config
	store  *Store
	logger logging.Logger
}

// New builds the application and seeds its store.
func New(cfg Config, logger logging.Logger) (*Server, error) {
	if len(cfg.JWTKey) == 0 {
		return nil, errors.New("jwt key is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = logging.Discard()
	}

	store := NewStore(cfg.BcryptCost)
	if err := Seed(store, cfg.Dev); err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, store: store, logger: logger}
	// Immutable: route params outlive the handler as store keys.
	s.app = fiber.New(fiber.Config{
		AppName:               "ican-devserver",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Use(s.requestLogger)

	auth := s.app.Group("/auth")
	auth.Post("/login", s.login)
	auth.Post("/register", s.register)
	auth.Post("/refresh-token", s.refreshToken)
	auth.Post("/forgot-password", s.forgotPassword)
	auth.Post("/reset-password", s.resetPassword)
	auth.Post("/logout", s.requireAuth, s.logout)

	s.app.Get("/user/profile", s.requireAuth, s.getProfile)
	s.app.Put("/user/profile", s.requireAuth, s.updateProfile)
	s.app.Get("/transactions", s.requireAuth, s.listTransactions)
	s.app.Get("/events", s.requireAuth, s.listEvents)
	s.app.Post("/events/:id/register", s.requireAuth, s.joinEvent)
	s.app.Get("/cpd/modules", s.requireAuth, s.listModules)
	s.app.Get("/voting/elections", s.requireAuth, s.listElections)
	s.app.Post("/voting/elections/:id/vote", s.requireAuth, s.castVote)
	s.app.Get("/chat/messages", s.requireAuth, s.listMessages)
	s.app.Post("/chat/messages", s.requireAuth, s.postMessage)
}

// App exposes the Fiber application, e.g. for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
