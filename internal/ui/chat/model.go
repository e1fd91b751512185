// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

// Controller is the part of the session controller the view drives.
// *session.Controller implements it.
type Controller interface {
	Start(ctx context.Context)
	Submit(ctx context.Context, raw string) error
	Meta() model.Meta
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// entry is one displayed turn.
type entry struct {
	role   model.Role
	text   string
	failed bool
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	theme *styles.Theme
	keys  KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model

	// Conversation display
	entries []entry
	meta    model.Meta
	pending bool
	enabled bool

	// Markdown rendering for assistant turns
	markdown bool
	glamour  *glamour.TermRenderer

	// Status
	endpoint    string
	status      string
	statusError bool
}

// Options configures a chat Model.
type Options struct {
	// Markdown renders assistant turns through glamour.
	Markdown bool
	// Endpoint is shown in the status line.
	Endpoint string
}

// New creates a chat model that drives ctrl. ctx bounds every cycle the
// view starts.
func New(ctx context.Context, ctrl Controller, theme *styles.Theme, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Ask about products, routines, or recommendations…"
	input.Prompt = "› "
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Pending

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		theme:    theme,
		keys:     DefaultKeyMap(),
		input:    input,
		spinner:  sp,
		help:     help.New(),
		enabled:  true,
		markdown: opts.Markdown,
		endpoint: opts.Endpoint,
	}
}

// Init starts the session and the cursor blink.
func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg {
			ctrl.Start(ctx)
			return nil
		},
	)
}

// Question returns the latest question the session recorded.
func (m Model) Question() string {
	return m.meta.Question
}

// Pending reports whether the thinking indicator is showing.
func (m Model) Pending() bool {
	return m.pending
}

// InputEnabled reports whether the input accepts submissions.
func (m Model) InputEnabled() bool {
	return m.enabled
}
