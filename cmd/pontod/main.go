package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/ponto/internal/api"
	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/factory"
	"github.com/mcoot/ponto/internal/logging"
	"github.com/mcoot/ponto/internal/services/token"
)

func main() {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "pontod",
		Short:         "Reference backend for the ponto time clock",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgFile)
		},
	}
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default: ./pontod.yaml or ~/.config/ponto/pontod.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pontod:", err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.LoadServer(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.Auth.Secret == "" {
		logger.Warn("no auth.secret configured; tokens will not survive a restart")
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := factory.New(ctx, factory.Config{
		TokenConfig: token.Config{Secret: cfg.Auth.Secret, TTL: cfg.Auth.TokenTTL},
		Admin: factory.AdminSeed{
			Nome:     cfg.Admin.Nome,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:    logger,
		Employees: app.Employees,
		Tokens:    app.Tokens,
	})

	return api.NewServer(router, cfg.Addr, cfg.HTTP, logger).Run(ctx)
}
