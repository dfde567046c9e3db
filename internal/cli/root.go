package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/factory"
	"github.com/mcoot/ponto/internal/logging"
)

// Streams are the standard streams commands read from and write to
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Options customize the root command (used by tests)
type Options struct {
	Streams    Streams
	HTTPClient *http.Client
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configFile string
	server     string
	store      string
	output     string
	verbose    bool
}

var (
	cfg     *config.Config
	client  *factory.Client
	out     *Output
	streams Streams
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{
		Streams: Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	})
}

// NewRootCmdWithOptions creates the root command with custom streams and transport
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	var flags globalFlags
	streams = opts.Streams
	out = NewOutput(config.OutputText, streams.Out, streams.Err)
	cfg, client = nil, nil
	stdinReader = nil

	rootCmd := &cobra.Command{
		Use:   "ponto",
		Short: "CLI for the ponto employee time clock",
		Long: `ponto is a CLI for the ponto employee time clock API.

Log in once and the session is remembered between commands. Employees can
punch the clock and check their last punch; administrators can manage
employee records.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default: ./ponto.yaml or ~/.config/ponto/ponto.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.server, "server", "", "Server URL (env: PONTO_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&flags.store, "store", "", "Credential store: memory, file, sqlite, redis (env: PONTO_STORE_TYPE)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Output format: text, json (env: PONTO_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPunchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newEmployeesCmd())

	return rootCmd
}

// setup loads configuration and builds the client stack
func setup(cmd *cobra.Command, flags globalFlags, opts Options) error {
	loaded, err := config.Load(flags.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flags.server != "" {
		loaded.Server.URL = flags.server
	}
	if flags.store != "" {
		loaded.Store.Type = flags.store
	}
	if flags.output != "" {
		loaded.Output = flags.output
	}
	if flags.verbose {
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	out = NewOutput(cfg.Output, streams.Out, streams.Err)

	logger, err := logging.New(streams.Err, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		slog.String("server", cfg.Server.URL),
		slog.String("store", cfg.Store.Type),
	)

	client, err = factory.NewClient(factory.ClientConfig{
		Config:     cfg,
		Navigator:  &terminalNavigator{out: out},
		Notifier:   &terminalNotifier{out: out},
		Logger:     logger,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	return nil
}

// commandContext returns the command's context, or Background if unset
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Run executes the root command with args and prints any error. It returns
// the process exit code.
func Run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()

	if client != nil {
		if cerr := client.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	if err != nil {
		out.PrintError(err)
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(NewRootCmd(), os.Args[1:]))
}

