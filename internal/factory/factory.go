package factory

import (
	"context"
	"io"
	"log/slog"

	"github.com/mcoot/ponto/internal/dependencies/clock"
	"github.com/mcoot/ponto/internal/dependencies/random"
	"github.com/mcoot/ponto/internal/services/employee"
	"github.com/mcoot/ponto/internal/services/token"
)

// App contains the wired components of the reference backend
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Employees *employee.Service
	Tokens    *token.Service
}

// AdminSeed is an administrator created when the app starts
type AdminSeed struct {
	Nome     string
	Email    string
	Password string
}

// Config holds configuration for the application factory
type Config struct {
	// TokenConfig configures token issuing (optional)
	// If zero value, defaults to token.DefaultConfig() with a random secret
	TokenConfig token.Config
	// Admin is seeded at startup when Email is set (optional)
	Admin AdminSeed
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app := newWithDependencies(clock.New(), random.New(), cfg.TokenConfig, logger)

	if cfg.Admin.Email != "" {
		admin, err := app.Employees.EnsureAdmin(ctx, cfg.Admin.Nome, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
		logger.Info("administrator ready", slog.Int64("employee_id", admin.ID), slog.String("email", admin.Email))
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(clk clock.Clock, rnd random.Random, tokenCfg token.Config, logger *slog.Logger) *App {
	return &App{
		Clock:     clk,
		Random:    rnd,
		Employees: employee.New(clk, logger),
		Tokens:    token.New(tokenCfg, clk, rnd),
	}
}
