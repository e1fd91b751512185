// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge/internal/config"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/ui/chat"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

// runTUI runs the full-screen chat until the user quits.
func (a *app) runTUI(ctx context.Context) error {
	if !IsTTY() {
		return &UsageError{Message: "the chat screen needs a terminal; use \"concierge chat\" or \"concierge ask\" instead"}
	}

	ui := config.Global().UI
	theme := styles.NewTheme(ui.Theme)
	surface := chat.NewSurface()
	ctrl := session.NewController(a.client, surface, surface, a.sessionOptions())
	m := chat.New(ctx, ctrl, theme, chat.Options{
		Markdown: ui.Markdown,
		Endpoint: a.client.Endpoint(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.Attach(p)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if path, err := config.ActivePath(); err == nil {
		if err := config.Watch(watchCtx, path, a.reloader(surface), a.logger); err != nil {
			a.logger.Warn("config hot reload unavailable", "error", err)
		}
	}

	a.logger.Info("chat screen started", "session", ctrl.ID())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("chat screen failed: %w", err)
	}
	return nil
}

// notifier shows short status text to the user.
type notifier interface {
	Notify(text string, isError bool)
}

// reloader returns the callback for config.Watch. Command-line overrides
// still apply to the reloaded file. The directive and greeting of a running
// session are fixed, so only endpoint settings take effect.
func (a *app) reloader(n notifier) func(*config.Config) {
	return func(cfg *config.Config) {
		if err := a.applyFlags(cfg); err != nil {
			a.logger.Warn("reloaded config rejected", "error", err)
			n.Notify("Config reload rejected: "+err.Error(), true)
			return
		}
		if err := a.client.SetEndpoint(cfg.Endpoint.URL); err != nil {
			a.logger.Warn("reloaded endpoint rejected", "error", err)
			n.Notify("Config reload rejected: "+err.Error(), true)
			return
		}
		a.client.WithHeaders(cfg.Endpoint.Headers).
			WithRateLimit(cfg.Endpoint.RequestsPerMinute)
		config.SetGlobal(cfg)
		a.logger.Info("configuration reloaded", "endpoint_configured", cfg.Endpoint.URL != "")
		n.Notify("Configuration reloaded", false)
	}
}
