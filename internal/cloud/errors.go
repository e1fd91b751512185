// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint indicates no completion endpoint has been configured.
var ErrNoEndpoint = errors.New("no completion endpoint configured")

// TransportError means the request never produced a response: DNS,
// connection, TLS, cancellation, or a body that could not be read.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "transport: " + e.Diagnostic()
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Diagnostic is the human-readable cause shown to the user.
func (e *TransportError) Diagnostic() string {
	if e.Err == nil {
		return "unknown transport failure"
	}
	return e.Err.Error()
}

// EndpointError means the endpoint answered with a non-2xx status.
type EndpointError struct {
	Status int
	Body   string // best effort; may be empty or truncated
}

// Error implements the error interface.
func (e *EndpointError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("endpoint returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("endpoint returned HTTP %d: %s", e.Status, e.Body)
}
