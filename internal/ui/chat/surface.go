// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/concierge/internal/model"
)

// Sink receives messages for the running program. *tea.Program is one.
type Sink interface {
	Send(msg tea.Msg)
}

// Surface adapts a Bubble Tea program to the session's Renderer and Input.
// The controller calls it from its own goroutine; every call becomes a
// message handled on the program's event loop.
//
// A Surface must be attached before the program starts delivering
// controller output. Calls made while detached are dropped.
type Surface struct {
	mu   sync.Mutex
	sink Sink
}

// NewSurface creates a detached surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Attach routes subsequent calls to sink.
func (s *Surface) Attach(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Render implements session.Renderer.
func (s *Surface) Render(role model.Role, text string) {
	s.send(renderMsg{Role: role, Text: text})
}

// ShowPending implements session.Renderer.
func (s *Surface) ShowPending() {
	s.send(pendingMsg{Visible: true})
}

// ClearPending implements session.Renderer.
func (s *Surface) ClearPending() {
	s.send(pendingMsg{Visible: false})
}

// SetEnabled implements session.Input.
func (s *Surface) SetEnabled(enabled bool) {
	s.send(inputEnabledMsg{Enabled: enabled})
}

// Notify shows text in the status line.
func (s *Surface) Notify(text string, isError bool) {
	s.send(StatusMsg{Text: text, Error: isError})
}

func (s *Surface) send(msg tea.Msg) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return
	}
	sink.Send(msg)
}
