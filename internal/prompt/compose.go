// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt assembles the outgoing request from the directive, a
// profile snapshot, and the transcript tail.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/concierge/internal/model"
)

// ProfilePrefix introduces the serialized profile in the synthetic system
// message.
const ProfilePrefix = "User profile: "

// Request is the body posted to the completion endpoint.
type Request struct {
	Messages []model.Message `json:"messages"`
}

// Compose builds a request of the form
// [directive, profile message, tail...]. It reads nothing but its
// arguments and never writes to them.
func Compose(directive model.Message, profile model.ProfileSnapshot, tail []model.Message) Request {
	msgs := make([]model.Message, 0, len(tail)+2)
	msgs = append(msgs, wire(directive), ProfileMessage(profile))
	for _, m := range tail {
		msgs = append(msgs, wire(m))
	}
	return Request{Messages: msgs}
}

// ProfileMessage is the synthetic system message carrying the profile.
func ProfileMessage(profile model.ProfileSnapshot) model.Message {
	return model.Message{
		Role:    model.RoleSystem,
		Content: ProfilePrefix + profile.JSON(),
	}
}

// HealthCheck builds the connectivity probe body.
func HealthCheck() Request {
	return Request{Messages: []model.Message{{Role: model.RoleSystem, Content: HealthCheckContent}}}
}

// Encode serializes the request. HTML characters are left unescaped so the
// body carries the user's text verbatim.
func (r Request) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// wire strips the local-only fields so identical content always encodes
// and compares identically.
func wire(m model.Message) model.Message {
	return model.Message{Role: m.Role, Content: m.Content}
}
