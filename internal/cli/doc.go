// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the concierge command tree.
//
// Every command except "config" loads .env files and the configuration,
// applies flag overrides, opens the log file and builds one endpoint
// client before it runs.
//
// # Commands Overview
//
//   - (none): full-screen chat (Bubble Tea)
//   - chat: line prompt with input history (liner)
//   - ask: one question, answer on stdout, exit 1 on failure
//   - probe: health-check the endpoint
//   - config show|path|get|set|init: inspect or edit the config file
//
// # Exit Codes
//
// 0 success, 1 failed cycle or general error, 2 usage, 3 configuration,
// 5 probe failure.
package cli
