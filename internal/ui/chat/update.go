// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/session"
)

// Layout rows outside the viewport: header (title, question, border),
// pending line, input box (text plus border), status line.
const (
	headerRows  = 3
	pendingRows = 1
	inputRows   = 3
	statusRows  = 1
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case renderMsg:
		m.entries = append(m.entries, entry{role: msg.Role, text: msg.Text})
		m.meta = m.ctrl.Meta()
		m.refreshViewport()
		return m, nil

	case pendingMsg:
		m.pending = msg.Visible
		if m.pending {
			return m, m.spinner.Tick
		}
		return m, nil

	case inputEnabledMsg:
		m.setEnabled(msg.Enabled)
		if m.enabled {
			return m, textinput.Blink
		}
		return m, nil

	case submitDoneMsg:
		m.meta = m.ctrl.Meta()
		m.finishCycle(msg.Err)
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.statusError = msg.Error
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	if !m.enabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a cycle for the current input. The field stays disabled
// until the controller re-enables it.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.enabled {
		return m, nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.input.Reset()
	m.setEnabled(false)
	m.status = ""
	m.statusError = false

	ctx, ctrl := m.ctx, m.ctrl
	return m, func() tea.Msg {
		return submitDoneMsg{Err: ctrl.Submit(ctx, text)}
	}
}

// finishCycle marks the error turn the controller rendered for a failed
// send. Rejections that rendered nothing are left alone.
func (m *Model) finishCycle(err error) {
	if err == nil || errors.Is(err, session.ErrEmptyInput) || errors.Is(err, session.ErrBusy) {
		if errors.Is(err, session.ErrBusy) {
			m.status = "Still waiting for the previous answer."
		}
		return
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].role == model.RoleAssistant {
			m.entries[i].failed = true
			break
		}
	}
	m.status = "Request failed"
	m.statusError = true
	m.refreshViewport()
}

func (m *Model) setEnabled(enabled bool) {
	m.enabled = enabled
	if enabled {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	vpHeight := height - headerRows - pendingRows - inputRows - statusRows
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 6
	m.help.Width = width

	m.glamour = nil
	if m.markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.theme.GlamourStyle()),
			glamour.WithWordWrap(m.theme.BubbleWidth()-4),
		)
		if err == nil {
			m.glamour = r
		}
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}
