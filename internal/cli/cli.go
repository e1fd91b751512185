// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/concierge/internal/cloud"
	"github.com/jeranaias/concierge/internal/config"
	"github.com/jeranaias/concierge/internal/logging"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(styles.Gold)
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// globalFlags override the loaded configuration for one run.
type globalFlags struct {
	endpoint string
	theme    string
	noProbe  bool
}

// app is the state shared by every command: the log sink and the endpoint
// client. The effective configuration lives in config.Global so a hot
// reload reaches every later reader.
type app struct {
	flags  globalFlags
	logger *slog.Logger
	closer io.Closer
	client *cloud.Client
}

// setup loads .env files and configuration, applies flag overrides, opens
// the log file and builds the client.
func (a *app) setup(stderr io.Writer) error {
	applyColorProfile()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, warningStyle.Render("Warning: ")+err.Error())
	}

	cfg, loadErr := config.Load()
	if cfg == nil {
		return configError("load", loadErr)
	}
	if loadErr != nil {
		fmt.Fprintln(stderr, warningStyle.Render("Warning: using defaults: ")+loadErr.Error())
	}
	if err := a.applyFlags(cfg); err != nil {
		return err
	}
	config.SetGlobal(cfg)

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, warningStyle.Render("Warning: logging disabled: ")+err.Error())
		logger = logging.Discard()
	}
	a.logger = logger
	a.closer = closer
	a.client = newClient(cfg, logger)

	logger.Info("starting", "version", Version, "endpoint_configured", cfg.Endpoint.URL != "")
	return nil
}

// applyFlags copies command-line overrides into cfg and revalidates it.
func (a *app) applyFlags(cfg *config.Config) error {
	if a.flags.endpoint != "" {
		cfg.Endpoint.URL = a.flags.endpoint
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.noProbe {
		cfg.Endpoint.ProbeOnStartup = false
	}
	if err := cfg.Validate(); err != nil {
		return &UsageError{Message: err.Error()}
	}
	return nil
}

// close releases the log file.
func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// newClient builds the endpoint client from cfg.
func newClient(cfg *config.Config, logger *slog.Logger) *cloud.Client {
	return cloud.NewClient(cfg.Endpoint.URL).
		WithUserAgent(cfg.Endpoint.UserAgent).
		WithHeaders(cfg.Endpoint.Headers).
		WithMaxResponseSize(cfg.Endpoint.MaxResponseBytes).
		WithRateLimit(cfg.Endpoint.RequestsPerMinute).
		WithLogger(logger.With("component", "cloud"))
}

// sessionOptions builds controller options from the current configuration.
func (a *app) sessionOptions() session.Options {
	cfg := config.Global()
	return session.Options{
		Directive:    cfg.Assistant.Directive,
		Greeting:     cfg.Assistant.Greeting,
		Logger:       a.logger.With("component", "session"),
		ProbeOnStart: cfg.Endpoint.ProbeOnStartup,
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// newRootCmd builds the command tree around a fresh app.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "concierge",
		Short: "Chat with a L'Oréal beauty advisor",
		Long: `concierge is a terminal chat client for a brand-restricted beauty
advisor. It sends the conversation to a completion endpoint and shows the
answer; it remembers the name you give it for the rest of the session.

Run without a subcommand to open the full-screen chat.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "completion endpoint URL (overrides config)")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: dark, light or auto")
	pf.BoolVar(&a.flags.noProbe, "no-probe", false, "skip the startup health-check")

	root.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newProbeCmd(a),
		newConfigCmd(),
	)
	return root, a
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, a := newRootCmd()
	defer a.close()

	err := root.ExecuteContext(ctx)
	if err != nil && !isReported(err) {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	}
	return ExitCode(err)
}
