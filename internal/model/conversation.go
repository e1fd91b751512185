// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrSystemRole is returned when a caller tries to append a system message.
// The directive is the only system message a transcript ever holds.
var ErrSystemRole = errors.New("transcript: system messages cannot be appended")

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only history of a session. Index 0 is
// always the directive; every later entry is a user or assistant turn.
//
// A Transcript has one writer (the session controller) but may be read from
// other goroutines, so all access goes through mu.
type Transcript struct {
	mu        sync.RWMutex
	messages  []Message
	updatedAt time.Time
}

// NewTranscript creates a transcript whose first message is the directive.
func NewTranscript(directive string) *Transcript {
	return &Transcript{
		messages:  []Message{NewSystemMessage(directive)},
		updatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a user or assistant turn to the end of the transcript.
func (t *Transcript) Append(role Role, content string) (Message, error) {
	if !role.Valid() {
		return Message{}, fmt.Errorf("transcript: unknown role %q", role)
	}
	if role == RoleSystem {
		return Message{}, ErrSystemRole
	}

	msg := NewMessage(role, content)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	t.updatedAt = msg.CreatedAt
	return msg, nil
}

// Directive returns the fixed leading system message.
func (t *Transcript) Directive() Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.messages[0]
}

// Snapshot returns a copy of every message, directive first.
func (t *Transcript) Snapshot() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Tail returns a copy of the turns that follow the directive.
func (t *Transcript) Tail() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages)-1)
	copy(out, t.messages[1:])
	return out
}

// Len returns the number of messages including the directive.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// TurnCount returns the number of user and assistant turns.
func (t *Transcript) TurnCount() int {
	return t.Len() - 1
}

// LastUserMessage returns the most recent user turn, if any.
func (t *Transcript) LastUserMessage() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.messages) - 1; i > 0; i-- {
		if t.messages[i].Role == RoleUser {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// =============================================================================
// METADATA
// =============================================================================

// Meta is a lightweight summary of a transcript for status displays.
type Meta struct {
	Turns     int
	Question  string
	UpdatedAt time.Time
}

// Meta returns summary information about the transcript. Question is the
// latest user turn, empty before the first one.
func (t *Transcript) Meta() Meta {
	var question string
	if msg, ok := t.LastUserMessage(); ok {
		question = msg.Content
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return Meta{
		Turns:     len(t.messages) - 1,
		Question:  question,
		UpdatedAt: t.updatedAt,
	}
}
