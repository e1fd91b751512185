// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/concierge/internal/config"
	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

var (
	advisorLabelStyle = lipgloss.NewStyle().Foreground(styles.Gold).Bold(true)
	pendingStyle      = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
)

// lineSurface renders turns as plain lines on a writer. User turns are not
// echoed; the terminal already shows what was typed.
type lineSurface struct {
	mu  sync.Mutex
	out io.Writer

	// interactive adds labels and the transient pending line.
	interactive bool
	md          *glamour.TermRenderer
}

// newLineSurface creates a surface for out. md may be nil for plain text.
func newLineSurface(out io.Writer, interactive bool, md *glamour.TermRenderer) *lineSurface {
	return &lineSurface{out: out, interactive: interactive, md: md}
}

// Render implements session.Renderer.
func (s *lineSurface) Render(role model.Role, text string) {
	if role == model.RoleUser {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.interactive {
		fmt.Fprintln(s.out, text)
		return
	}
	fmt.Fprintln(s.out, advisorLabelStyle.Render(role.DisplayName()+":"))
	fmt.Fprintln(s.out, s.markdown(text))
	fmt.Fprintln(s.out)
}

// ShowPending implements session.Renderer.
func (s *lineSurface) ShowPending() {
	if !s.interactive {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, pendingStyle.Render(session.PendingText))
}

// ClearPending implements session.Renderer.
func (s *lineSurface) ClearPending() {
	if !s.interactive {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, "\r"+ansi.EraseEntireLine)
}

func (s *lineSurface) markdown(text string) string {
	if s.md == nil {
		return text
	}
	out, err := s.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// markdownRenderer returns a glamour renderer for out, or nil when out is
// not a terminal or markdown is turned off.
func (a *app) markdownRenderer(out io.Writer) *glamour.TermRenderer {
	ui := config.Global().UI
	if !ui.Markdown || !isTerminalWriter(out) {
		return nil
	}
	theme := styles.NewTheme(ui.Theme)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(terminalWidth(out)-4),
	)
	if err != nil {
		a.logger.Warn("markdown rendering disabled", "error", err)
		return nil
	}
	return r
}
