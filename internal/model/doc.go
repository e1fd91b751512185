// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the transcript, its
// messages, and the per-session user profile.
//
// # Key Types
//
//   - Transcript: append-only history that always opens with the directive
//   - Message: single turn with role and content
//   - Profile: facts the user has shared, currently just a name
//   - Role: message role enumeration (system, user, assistant)
//
// # Usage
//
//	tr := model.NewTranscript(prompt.DefaultDirective)
//	tr.Append(model.RoleUser, "Which serum suits dry skin?")
//	for _, msg := range tr.Snapshot() {
//	    fmt.Println(msg.Role, msg.Content)
//	}
package model
