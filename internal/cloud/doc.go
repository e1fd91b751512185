// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud talks to the remote completion endpoint.
//
// The endpoint is an opaque HTTP service that accepts a JSON body of
// {"messages":[{"role":...,"content":...}]} and answers with an
// OpenAI-style chat completion. The client makes exactly one attempt per
// call and normalizes every outcome into text or a typed error.
//
// # Key Types
//
//   - Client: pooled HTTP client bound to one endpoint URL
//   - TransportError: no response was received
//   - EndpointError: a non-2xx status with best-effort body text
//   - ProbeResult: outcome of the startup health check
//
// # Usage
//
//	client := cloud.NewClient(cfg.Endpoint.URL).WithLogger(logger)
//	text, err := client.Send(ctx, prompt.Compose(directive, snap, tail))
//	var epErr *cloud.EndpointError
//	if errors.As(err, &epErr) {
//	    fmt.Println(epErr.Status, epErr.Body)
//	}
//
// # Response Handling
//
// A 2xx body yields choices[0].message.content when present. Otherwise the
// body's error field is used, then the raw body, so a successful status
// always produces displayable text.
package cloud
