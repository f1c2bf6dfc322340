package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/uni-jay/ican-portal/internal/client/client"
	"github.com/uni-jay/ican-portal/internal/client/config"
	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/client/repositories/metadata"
	"github.com/uni-jay/ican-portal/internal/client/services"
	"github.com/uni-jay/ican-portal/internal/client/session"
	"github.com/uni-jay/ican-portal/internal/logging"
)

// sessionManager is the part of session.Manager the CLI drives.
type sessionManager interface {
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, creds models.Credentials) bool
	Register(ctx context.Context, data models.RegisterData) bool
	Logout(ctx context.Context)
	ForgotPassword(ctx context.Context, data models.ForgotPasswordData) bool
	ResetPassword(ctx context.Context, data models.ResetPasswordData) bool
	ClearError()
	State() session.State
	Subscribe(fn session.Listener) func()
}

type App struct {
	config  *config.Config
	session sessionManager
	portal  services.PortalService
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closer  io.Closer
}

// NewApp opens the token storage named by c and wires the API client,
// session manager and portal service on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, closer, err := metadata.Open(ctx, c.StorageDriver, c.StorageDSN)
	if err != nil {
		logger.Error(ctx, "error opening token storage", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.BaseURL, client.NewTokenStore(repo),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("component", "api")),
	)
	mgr := session.NewManager(api, session.WithLogger(logger.With("component", "session")))

	return &App{
		config:  c,
		session: mgr,
		portal:  services.NewPortalService(api, mgr),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closer:  closer,
	}, nil
}

// Run restores the previous session and serves commands until the user
// exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closer != nil {
			if err := a.closer.Close(); err != nil {
				a.logger.Warn(ctx, "closing token storage failed", "error", err)
			}
		}
	}()

	unsubscribe := a.session.Subscribe(func(s session.State) {
		a.logger.Debug(ctx, "session state changed", "phase", s.Phase())
	})
	defer unsubscribe()

	a.session.Bootstrap(ctx)

	printlnFn("Welcome to the ICAN member portal (type 'help' for commands)")
	if s := a.session.State(); s.IsAuthenticated {
		printlnFn(fmt.Sprintf("Signed in as %s", s.User.Email))
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

// status renders the prompt tag: "(email)", "(error: ...)" or both.
func (a *App) status() string {
	s := a.session.State()
	tag := ""
	if s.User != nil {
		tag = s.User.Email
	}
	if s.Error != "" {
		if tag != "" {
			tag += " | "
		}
		tag += "error: " + s.Error
	}
	if tag == "" {
		return ""
	}
	return "(" + tag + ")"
}
