// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across concierge.
//
// # Key Functions
//
//   - Escape: strips terminal control sequences before display
//   - TruncateRunes, TruncateWidth: UTF-8 safe truncation
//   - SingleLine: whitespace-collapsed previews
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	safe := util.Escape(reply)
//	header := util.TruncateWidth(util.SingleLine(question), width-14)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
