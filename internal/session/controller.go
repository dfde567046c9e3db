package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/storage"
)

// Routes the controller navigates to
const (
	RouteLogin     = "/login"
	RoutePunch     = "/baterPontoScreen"
	RouteEmployees = "/funcionarios"
)

// ErrTokenMissing is returned when a login succeeds without a token
var ErrTokenMissing = errors.New("authentication token not received")

// Navigator replaces the current screen with route
type Navigator interface {
	Replace(ctx context.Context, route string)
}

// Notice is a blocking message shown to the user
type Notice struct {
	Title   string
	Message string
}

// Notifier shows notices to the user
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// SessionExpiredNotice is shown once when the backend rejects the session
var SessionExpiredNotice = Notice{
	Title:   "Session expired",
	Message: "Your session has expired. Please log in again.",
}

// Controller owns the session lifecycle: establishing it after login, ending
// it on logout, and reacting when the backend invalidates it.
type Controller struct {
	creds     *storage.Credentials
	navigator Navigator
	notifier  Notifier
	logger    *slog.Logger

	invalidations singleflight.Group

	mu        sync.Mutex
	announced bool // the end of the current session was already shown
}

// NewController creates a session controller
func NewController(creds *storage.Credentials, navigator Navigator, notifier Notifier, logger *slog.Logger) *Controller {
	return &Controller{
		creds:     creds,
		navigator: navigator,
		notifier:  notifier,
		logger:    logger,
	}
}

// OnSessionInvalidated clears the session (keeping the remembered email),
// tells the user once, and sends them to the login screen. Concurrent calls
// share a single run; later calls only repeat the navigation.
func (c *Controller) OnSessionInvalidated(ctx context.Context) {
	_, _, _ = c.invalidations.Do("invalidate", func() (any, error) {
		if err := c.creds.ClearSession(ctx); err != nil {
			c.logger.Error("failed to clear session", slog.String("error", err.Error()))
		}

		c.mu.Lock()
		announce := !c.announced
		c.announced = true
		c.mu.Unlock()

		if announce {
			c.logger.Warn("session invalidated by server")
			c.notifier.Notify(ctx, SessionExpiredNotice)
		}

		c.navigator.Replace(ctx, RouteLogin)
		return nil, nil
	})
}

// Establish stores a new session after a successful login and moves to the
// punch screen. The remembered email is saved or forgotten per remember.
func (c *Controller) Establish(ctx context.Context, resp model.LoginResponse, email string, remember bool) error {
	if resp.Token == "" {
		return ErrTokenMissing
	}

	if err := c.creds.SetToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	if err := c.creds.SetProfile(ctx, resp.Profile()); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	var err error
	if remember {
		err = c.creds.SetRememberedEmail(ctx, email)
	} else {
		err = c.creds.ClearRememberedEmail(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to update remembered email: %w", err)
	}

	c.mu.Lock()
	c.announced = false
	c.mu.Unlock()

	c.logger.Info("session established", slog.Int64("employee_id", resp.ID))
	c.navigator.Replace(ctx, RoutePunch)
	return nil
}

// Logout deliberately ends the session: token, remembered email and profile
// are all cleared before navigating to login.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	c.mu.Lock()
	c.announced = true
	c.mu.Unlock()

	c.logger.Info("logged out")
	c.navigator.Replace(ctx, RouteLogin)
	return nil
}

// HasSession reports whether a session token is stored
func (c *Controller) HasSession(ctx context.Context) (bool, error) {
	_, ok, err := c.creds.Token(ctx)
	return ok, err
}

// RememberedEmail returns the email to prefill on the login form
func (c *Controller) RememberedEmail(ctx context.Context) (string, bool, error) {
	return c.creds.RememberedEmail(ctx)
}

// CurrentProfile returns the logged-in user's cached profile
func (c *Controller) CurrentProfile(ctx context.Context) (model.Profile, error) {
	profile, ok, err := c.creds.Profile(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if !ok {
		return model.Profile{}, model.ErrNoSession
	}
	if !profile.Complete() {
		return model.Profile{}, model.ErrProfileIncomplete
	}
	return profile, nil
}
