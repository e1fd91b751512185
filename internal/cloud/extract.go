// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// EmptyResponseText stands in for a successful response with no body.
const EmptyResponseText = "(empty response)"

// completionPath locates the first completion's text in an OpenAI-style
// chat completion body.
const completionPath = "choices.0.message.content"

// extractText turns a 2xx body into displayable text. It never fails: when
// no completion is present it falls back to the body's error field, then
// to the raw body. malformed reports that the completion was missing.
func extractText(body []byte) (text string, malformed bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return EmptyResponseText, true
	}
	if !gjson.ValidBytes(body) {
		return string(body), true
	}

	// Non-string content (numbers, true, objects) is shown as its JSON text.
	if content := gjson.GetBytes(body, completionPath); truthy(content) {
		return content.String(), false
	}

	if errField := gjson.GetBytes(body, "error"); truthy(errField) {
		switch {
		case errField.Type == gjson.String:
			return errField.Str, true
		case errField.IsObject():
			if msg := errField.Get("message"); msg.Type == gjson.String && msg.Str != "" {
				return msg.Str, true
			}
		}
		return errField.Raw, true
	}

	return string(body), true
}

// truthy mirrors how loosely-typed endpoints signal "field present":
// null, false, zero and the empty string all count as absent.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}
