// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs the submit-to-render cycle of a conversation.
//
// A Controller moves between two states, idle and submitting. While a
// request is in flight further submissions are rejected with ErrBusy and
// the Input collaborator is disabled. Each cycle:
//
//  1. detects profile facts and appends an acknowledgment turn on change
//  2. appends and renders the user turn
//  3. shows the pending indicator and composes the request
//  4. sends it and renders either the assistant turn or an error turn
//
// Failed sends never append to the transcript.
//
// # Usage
//
//	ctrl := session.NewController(client, surface, surface, session.Options{
//	    Logger:       logger,
//	    ProbeOnStart: true,
//	})
//	ctrl.Start(ctx)
//	if err := ctrl.Submit(ctx, "I'm Anna, which shampoo for curly hair?"); err != nil {
//	    // already rendered; inspect for exit codes only
//	}
package session
