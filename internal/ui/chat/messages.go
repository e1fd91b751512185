// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/concierge/internal/model"

// =============================================================================
// SURFACE MESSAGES
// =============================================================================
// Sent by Surface from the controller's goroutine into the program.

// renderMsg appends a turn to the display.
type renderMsg struct {
	Role model.Role
	Text string
}

// pendingMsg shows or hides the thinking indicator.
type pendingMsg struct {
	Visible bool
}

// inputEnabledMsg toggles the input field.
type inputEnabledMsg struct {
	Enabled bool
}

// =============================================================================
// CYCLE MESSAGES
// =============================================================================

// submitDoneMsg is returned by the submit command once the cycle ends.
type submitDoneMsg struct {
	Err error
}

// StatusMsg replaces the text in the status line.
type StatusMsg struct {
	Text  string
	Error bool
}
