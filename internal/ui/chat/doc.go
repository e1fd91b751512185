// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view for concierge.
//
// The view never talks to the network itself. It owns the display state
// (turn bubbles, the "Your question:" header, the thinking spinner, the
// input field) and hands submitted text to a session controller. The
// controller reports back through a Surface, which turns each Renderer or
// Input call into a Bubble Tea message for the program's event loop.
//
// # Wiring
//
//	surface := chat.NewSurface()
//	ctrl := session.NewController(client, surface, surface, opts)
//	p := tea.NewProgram(chat.New(ctx, ctrl, theme, chat.Options{}), tea.WithAltScreen())
//	surface.Attach(p)
//	_, err := p.Run()
//
// # Key Bindings
//
//   - Enter: send
//   - Up/Down, PgUp/PgDn: scroll the conversation
//   - F1: toggle help
//   - Esc, Ctrl+C: quit
package chat
