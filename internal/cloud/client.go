// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/concierge/internal/prompt"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultUserAgent identifies this client to the endpoint.
	DefaultUserAgent = "concierge/0.1.0"

	// MaxResponseSize is the default ceiling on a response body.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// No overall Timeout is set; cancellation comes from the caller's context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts composed requests to a single completion endpoint. One call
// to Send is exactly one HTTP round trip; nothing is retried.
type Client struct {
	mu       sync.RWMutex
	endpoint string

	limiter *rate.Limiter

	userAgent       string
	headers         map[string]string
	maxResponseSize int64
	httpClient      *http.Client
	logger          *slog.Logger
}

// NewClient creates a client for endpoint. An empty endpoint is allowed;
// Send then fails with ErrNoEndpoint until SetEndpoint is called.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:        strings.TrimSpace(endpoint),
		userAgent:       DefaultUserAgent,
		maxResponseSize: MaxResponseSize,
		httpClient:      sharedHTTPClient,
		logger:          slog.New(slog.DiscardHandler),
	}
}

// WithUserAgent overrides the User-Agent header.
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// WithHeaders replaces the extra headers sent on every request.
// Content-Type is always application/json and cannot be overridden. Safe
// to call while requests are in flight.
func (c *Client) WithHeaders(headers map[string]string) *Client {
	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}
	c.mu.Lock()
	c.headers = copied
	c.mu.Unlock()
	return c
}

// WithRateLimit spaces sends to at most perMinute per minute. Zero or
// less removes the limit. The health-check is never limited.
func (c *Client) WithRateLimit(perMinute int) *Client {
	var l *rate.Limiter
	if perMinute > 0 {
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
	c.mu.Lock()
	c.limiter = l
	c.mu.Unlock()
	return c
}

// WithMaxResponseSize sets the response body ceiling in bytes.
func (c *Client) WithMaxResponseSize(n int64) *Client {
	if n > 0 {
		c.maxResponseSize = n
	}
	return c
}

// WithHTTPClient replaces the shared pooled HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger sets the logger used for request diagnostics.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// SetEndpoint repoints the client. It is safe to call while another
// goroutine is sending; in-flight calls keep the URL they started with.
func (c *Client) SetEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" {
		if err := ValidateEndpoint(endpoint); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.endpoint = endpoint
	c.mu.Unlock()
	return nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// ValidateEndpoint checks that raw is an absolute http(s) URL.
func ValidateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint URL %q: missing host", raw)
	}
	return nil
}

// =============================================================================
// SEND
// =============================================================================

// Send posts req and returns the assistant text. Errors are a
// *TransportError when no response arrived, an *EndpointError for a non-2xx
// status, or ErrNoEndpoint. A 2xx response always yields some text.
func (c *Client) Send(ctx context.Context, req prompt.Request) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	status, body, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &EndpointError{Status: status, Body: strings.TrimSpace(string(body))}
	}

	text, malformed := extractText(body)
	if malformed {
		c.logger.Debug("response carried no completion; using fallback text",
			"status", status, "bytes", len(body))
	}
	return text, nil
}

// wait blocks until the rate limiter admits a send. A wait cut short by
// ctx is a TransportError since no request was made.
func (c *Client) wait(ctx context.Context) error {
	c.mu.RLock()
	l := c.limiter
	endpoint := c.endpoint
	c.mu.RUnlock()
	if l == nil || endpoint == "" {
		return nil
	}
	if err := l.Wait(ctx); err != nil {
		return &TransportError{Err: err}
	}
	return nil
}

// post performs the single round trip. A non-nil error means no usable
// response; otherwise status and body are returned as received. For
// non-2xx statuses the body is best effort.
func (c *Client) post(ctx context.Context, req prompt.Request) (int, []byte, error) {
	endpoint := c.Endpoint()
	if endpoint == "" {
		return 0, nil, ErrNoEndpoint
	}

	payload, err := req.Encode()
	if err != nil {
		return 0, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	c.logRequest(httpReq, len(req.Messages))
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed", "error", err, "duration", time.Since(start))
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	body, readErr := c.readResponse(resp)
	if readErr != nil {
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return 0, nil, &TransportError{Err: readErr}
		}
		c.logger.Debug("partial error body", "error", readErr)
	}
	return resp.StatusCode, body, nil
}

// setHeaders applies configured headers, then the fixed ones.
func (c *Client) setHeaders(req *http.Request) {
	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}

// readResponse reads the body through the configured size limit. On error
// it still returns whatever was read.
// SECURITY: Response size limit prevents memory exhaustion.
func (c *Client) readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, c.maxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return body, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxResponseSize {
		return body[:c.maxResponseSize], fmt.Errorf("response exceeded maximum size of %d bytes", c.maxResponseSize)
	}
	return body, nil
}

// =============================================================================
// LOGGING
// =============================================================================

// logRequest records the call without headers or body; both may carry
// user text or credentials.
func (c *Client) logRequest(req *http.Request, messages int) {
	c.logger.Debug("api request", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "messages", messages)
}

func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	c.logger.Debug("api response", "status", resp.StatusCode, "duration", duration)
}
