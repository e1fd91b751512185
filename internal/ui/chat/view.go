// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/util"
)

const (
	appTitle    = "Concierge"
	appSubtitle = "L'Oréal beauty advisor"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat view.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderPending(),
		m.renderInput(),
		m.renderStatus(),
	)
}

// renderHeader shows the title and the latest question.
func (m Model) renderHeader() string {
	t := m.theme
	title := t.HeaderTitle.Render(appTitle) + "  " + t.HeaderSubtitle.Render(appSubtitle)

	label := "Your question: "
	room := m.width - util.StringWidth(label) - 2
	var question string
	if m.meta.Question == "" {
		question = t.HeaderSubtitle.Render("nothing asked yet")
	} else {
		question = t.QuestionText.Render(util.TruncateWidth(util.SingleLine(util.Escape(m.meta.Question)), room))
	}
	line := t.QuestionLabel.Render(label) + question

	return t.Header.Width(m.width).Render(title + "\n" + line)
}

func (m Model) renderPending() string {
	if !m.pending {
		return ""
	}
	return " " + m.spinner.View() + " " + m.theme.Pending.Render(session.PendingText)
}

func (m Model) renderInput() string {
	style := m.theme.InputContainer
	if !m.enabled {
		style = m.theme.InputDisabled
	}
	return style.Width(m.width - 2).Render(m.input.View())
}

func (m Model) renderStatus() string {
	t := m.theme
	var left string
	switch {
	case m.status != "" && m.statusError:
		left = t.StatusError.Render(m.status)
	case m.status != "":
		left = t.StatusOK.Render(m.status)
	case m.endpoint == "":
		left = t.StatusError.Render("no endpoint configured")
	default:
		left = util.TruncateWidth(m.endpoint, m.width/2)
	}
	if m.meta.Turns > 0 {
		left += t.Help.Render(fmt.Sprintf(" · turns %d, last %s", m.meta.Turns, m.meta.UpdatedAt.Format("15:04")))
	}
	if m.help.ShowAll {
		return t.StatusBar.Width(m.width).Render(left) + "\n" + m.help.View(m.keys)
	}
	h := m.help
	h.Width = m.width - lipgloss.Width(left) - 4
	return t.StatusBar.Width(m.width).MaxHeight(statusRows).Render(left + "  " + h.View(m.keys))
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

func (m Model) renderEntries() string {
	parts := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		parts = append(parts, m.renderEntry(e))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderEntry(e entry) string {
	t := m.theme
	width := t.BubbleWidth()

	label := t.RoleLabel.Render(e.role.DisplayName())
	var body string
	switch {
	case e.failed:
		body = t.ErrorBubble.Width(width).Render(e.text)
	case e.role == model.RoleUser:
		body = t.UserBubble.Width(width).Render(e.text)
		label = strings.Repeat(" ", t.UserBubble.GetMarginLeft()) + label
	default:
		body = t.AssistantBubble.Width(width).Render(m.markdownText(e.text))
	}
	return label + "\n" + body
}

// markdownText renders assistant text through glamour when enabled. Plain
// text is returned on any renderer failure.
func (m Model) markdownText(text string) string {
	if m.glamour == nil {
		return text
	}
	out, err := m.glamour.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
