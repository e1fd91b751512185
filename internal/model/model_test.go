// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_WireFormat(t *testing.T) {
	msg := NewMessage(RoleUser, "hello")
	require.NotEmpty(t, msg.ID)
	require.True(t, strings.HasPrefix(msg.ID, "msg_"))

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","content":"hello"}`, string(data))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleSystem.Valid())
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAssistant.Valid())
	assert.False(t, Role("tool").Valid())
	assert.Equal(t, "Advisor", RoleAssistant.DisplayName())
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_DirectiveStaysFirst(t *testing.T) {
	tr := NewTranscript("stay on topic")
	require.Equal(t, 1, tr.Len())
	require.Equal(t, 0, tr.TurnCount())

	_, err := tr.Append(RoleUser, "hi")
	require.NoError(t, err)
	_, err = tr.Append(RoleAssistant, "hello")
	require.NoError(t, err)

	snap := tr.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, RoleSystem, snap[0].Role)
	assert.Equal(t, "stay on topic", snap[0].Content)
	assert.Equal(t, snap[0], tr.Directive())
}

func TestTranscript_RejectsSystemAppend(t *testing.T) {
	tr := NewTranscript("d")
	_, err := tr.Append(RoleSystem, "second directive")
	require.ErrorIs(t, err, ErrSystemRole)

	_, err = tr.Append(Role("tool"), "x")
	require.Error(t, err)
	assert.Equal(t, 1, tr.Len())
}

func TestTranscript_SnapshotIsCopy(t *testing.T) {
	tr := NewTranscript("d")
	_, _ = tr.Append(RoleUser, "original")

	snap := tr.Snapshot()
	snap[1].Content = "tampered"
	tail := tr.Tail()
	tail[0].Content = "tampered too"

	assert.Equal(t, "original", tr.Snapshot()[1].Content)
	assert.Equal(t, "original", tr.Tail()[0].Content)
}

func TestTranscript_LastUserMessage(t *testing.T) {
	tr := NewTranscript("d")
	_, ok := tr.LastUserMessage()
	assert.False(t, ok)

	_, _ = tr.Append(RoleUser, "first")
	_, _ = tr.Append(RoleAssistant, "reply")
	msg, ok := tr.LastUserMessage()
	require.True(t, ok)
	assert.Equal(t, "first", msg.Content)

	_, _ = tr.Append(RoleUser, "second")
	meta := tr.Meta()
	assert.Equal(t, 3, meta.Turns)
	assert.Equal(t, "second", meta.Question)
	assert.False(t, meta.UpdatedAt.IsZero())
}

func TestTranscript_MetaBeforeFirstTurn(t *testing.T) {
	meta := NewTranscript("d").Meta()
	assert.Equal(t, 0, meta.Turns)
	assert.Empty(t, meta.Question)
}

func TestTranscript_ConcurrentReaders(t *testing.T) {
	tr := NewTranscript("d")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = tr.Append(RoleUser, "q")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := tr.Snapshot()
			if snap[0].Role != RoleSystem {
				t.Error("directive moved")
			}
		}
	}()
	wg.Wait()
	assert.Equal(t, 201, tr.Len())
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestProfile_Snapshot(t *testing.T) {
	p := NewProfile()
	_, ok := p.Name()
	assert.False(t, ok)
	assert.Equal(t, `{"name":null}`, p.Snapshot().JSON())

	p.SetName("Anna")
	name, ok := p.Name()
	require.True(t, ok)
	assert.Equal(t, "Anna", name)

	snap := p.Snapshot()
	p.SetName("Ana")
	assert.Equal(t, `{"name":"Anna"}`, snap.JSON())
	assert.Equal(t, `{"name":"Ana"}`, p.Snapshot().JSON())
}
