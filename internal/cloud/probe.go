// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jeranaias/concierge/internal/prompt"
	"github.com/jeranaias/concierge/internal/util"
)

// maxLoggedBody caps how much of a health-check body reaches the log.
const maxLoggedBody = 200

// ProbeResult describes one health-check round trip.
type ProbeResult struct {
	Endpoint  string
	Reachable bool // a response arrived, whatever its status
	Status    int
	Body      string // compacted JSON when the body was JSON, raw text otherwise
	Duration  time.Duration
	Err       error
}

// OK reports a reachable endpoint with a 2xx status.
func (r ProbeResult) OK() bool {
	return r.Reachable && r.Status >= 200 && r.Status <= 299
}

// Probe posts the health-check body and logs the outcome. It never touches
// conversation state and its result is informational only.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	res := ProbeResult{Endpoint: c.Endpoint()}
	start := time.Now()
	status, body, err := c.post(ctx, prompt.HealthCheck())
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = err
		c.logger.Error("endpoint health-check error", "endpoint", res.Endpoint, "error", err)
		return res
	}

	res.Reachable = true
	res.Status = status
	if gjson.ValidBytes(body) {
		res.Body = gjson.GetBytes(body, "@ugly").Raw
	} else {
		res.Body = string(body)
	}

	if !res.OK() {
		c.logger.Error("endpoint health-check failed", "endpoint", res.Endpoint, "status", status, "body", util.TruncateRunes(res.Body, maxLoggedBody))
		return res
	}
	c.logger.Info("endpoint reachable", "endpoint", res.Endpoint, "status", status, "response", util.TruncateRunes(res.Body, maxLoggedBody), "duration", res.Duration)
	return res
}
