// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/concierge/internal/model"
)

func sampleInputs() (model.Message, model.ProfileSnapshot, []model.Message) {
	tr := model.NewTranscript(DefaultDirective)
	_, _ = tr.Append(model.RoleUser, "my name is Anna")
	_, _ = tr.Append(model.RoleAssistant, "Nice to meet you, Anna!")
	_, _ = tr.Append(model.RoleUser, "Which cleanser for <oily> skin & pores?")

	prof := model.NewProfile()
	prof.SetName("Anna")
	return tr.Directive(), prof.Snapshot(), tr.Tail()
}

func TestCompose_Order(t *testing.T) {
	directive, snap, tail := sampleInputs()
	req := Compose(directive, snap, tail)

	require.Len(t, req.Messages, len(tail)+2)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, DefaultDirective, req.Messages[0].Content)
	assert.Equal(t, model.RoleSystem, req.Messages[1].Role)
	assert.Equal(t, `User profile: {"name":"Anna"}`, req.Messages[1].Content)
	for i, m := range tail {
		assert.Equal(t, m.Role, req.Messages[i+2].Role)
		assert.Equal(t, m.Content, req.Messages[i+2].Content)
	}
}

func TestCompose_NullProfile(t *testing.T) {
	directive := model.NewSystemMessage("d")
	req := Compose(directive, model.NewProfile().Snapshot(), nil)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, `User profile: {"name":null}`, req.Messages[1].Content)
}

func TestCompose_Pure(t *testing.T) {
	directive, snap, tail := sampleInputs()
	before := make([]model.Message, len(tail))
	copy(before, tail)

	a, err := Compose(directive, snap, tail).Encode()
	require.NoError(t, err)
	b, err := Compose(directive, snap, tail).Encode()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, before, tail)
	assert.Equal(t, Compose(directive, snap, tail), Compose(directive, snap, tail))
}

func TestCompose_DoesNotAliasTail(t *testing.T) {
	directive, snap, tail := sampleInputs()
	req := Compose(directive, snap, tail)
	req.Messages[2].Content = "changed"
	assert.Equal(t, "my name is Anna", tail[0].Content)
}

func TestRequest_Encode(t *testing.T) {
	req := Compose(model.NewSystemMessage("d"), model.ProfileSnapshot{}, []model.Message{
		model.NewMessage(model.RoleUser, "a <b> & c"),
	})
	body, err := req.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		`{"messages":[{"role":"system","content":"d"},{"role":"system","content":"User profile: {\"name\":null}"},{"role":"user","content":"a <b> & c"}]}`,
		string(body))
	assert.False(t, strings.HasSuffix(string(body), "\n"))
}

func TestHealthCheck(t *testing.T) {
	body, err := HealthCheck().Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"messages":[{"role":"system","content":"health-check"}]}`, string(body))
}

func TestDefaultDirective_ContainsRefusal(t *testing.T) {
	assert.Contains(t, DefaultDirective, `"`+RefusalText+`"`)
	assert.True(t, strings.HasPrefix(DefaultDirective, "You are a knowledgeable assistant"))
}
