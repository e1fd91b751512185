// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the concierge TUI.
//
// Colors are lipgloss.AdaptiveColor values; NewTheme decides which half of
// each pair applies, either from the configured mode or by querying the
// terminal background through termenv.
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	theme.SetSize(width, height)
//	bubble := theme.AssistantBubble.Width(theme.BubbleWidth()).Render(text)
package styles
