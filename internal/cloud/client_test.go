// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/prompt"
)

func testRequest() prompt.Request {
	tr := model.NewTranscript("directive")
	_, _ = tr.Append(model.RoleUser, "Which serum for dry skin?")
	return prompt.Compose(tr.Directive(), model.NewProfile().Snapshot(), tr.Tail())
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_Success(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Use X twice daily."}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL).
		WithUserAgent("concierge-test").
		WithHeaders(map[string]string{"X-Client": "tests", "Content-Type": "text/plain"})

	req := testRequest()
	text, err := client.Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Use X twice daily.", text)

	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "concierge-test", gotHeader.Get("User-Agent"))
	assert.Equal(t, "tests", gotHeader.Get("X-Client"))

	want, err := req.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(gotBody))

	var decoded struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	require.Len(t, decoded.Messages, 3)
	assert.Equal(t, `User profile: {"name":null}`, decoded.Messages[1].Content)
}

func TestSend_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"completion", `{"choices":[{"message":{"content":"hello"}}]}`, "hello"},
		{"numeric completion", `{"choices":[{"message":{"content":42}}]}`, "42"},
		{"boolean completion", `{"choices":[{"message":{"content":true}}]}`, "true"},
		{"zero completion uses raw", `{"choices":[{"message":{"content":0}}]}`, `{"choices":[{"message":{"content":0}}]}`},
		{"empty completion uses error", `{"choices":[{"message":{"content":""}}],"error":"quota exceeded"}`, "quota exceeded"},
		{"error string", `{"error":"model unavailable"}`, "model unavailable"},
		{"error object", `{"error":{"message":"bad request","code":400}}`, "bad request"},
		{"error object without message", `{"error":{"code":400}}`, `{"code":400}`},
		{"null error uses raw", `{"error":null,"status":"ok"}`, `{"error":null,"status":"ok"}`},
		{"no known fields", `{"status":"ok"}`, `{"status":"ok"}`},
		{"empty choices", `{"choices":[]}`, `{"choices":[]}`},
		{"not json", `upstream says hi`, "upstream says hi"},
		{"empty body", ``, EmptyResponseText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(respondWith(http.StatusOK, tc.body))
			defer server.Close()

			text, err := NewClient(server.URL).Send(context.Background(), testRequest())
			require.NoError(t, err)
			assert.Equal(t, tc.want, text)
		})
	}
}

func TestSend_EndpointError(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusInternalServerError, "server overloaded"))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), testRequest())
	require.Error(t, err)

	var epErr *EndpointError
	require.True(t, errors.As(err, &epErr))
	assert.Equal(t, 500, epErr.Status)
	assert.Equal(t, "server overloaded", epErr.Body)
	assert.Contains(t, err.Error(), "500")
}

func TestSend_NoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSend_TransportError(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, "{}"))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Send(context.Background(), testRequest())
	require.Error(t, err)

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.NotEmpty(t, tErr.Diagnostic())
	assert.True(t, strings.HasPrefix(err.Error(), "transport: "))
}

func TestSend_Cancelled(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, "{}"))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Send(ctx, testRequest())
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSend_ResponseTooLarge(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, strings.Repeat("a", 64)))
	defer server.Close()

	_, err := NewClient(server.URL).WithMaxResponseSize(16).Send(context.Background(), testRequest())
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Contains(t, tErr.Diagnostic(), "maximum size")
}

func TestSend_RateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL).WithRateLimit(1)
	_, err := client.Send(context.Background(), testRequest())
	require.NoError(t, err)

	// The next token is a minute away; a short deadline gives up first.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Send(ctx, testRequest())
	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, int32(1), calls.Load())

	// Removing the limit lets the next send through at once.
	_, err = client.WithRateLimit(0).Send(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSend_NoEndpoint(t *testing.T) {
	_, err := NewClient("").Send(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestSetEndpoint(t *testing.T) {
	first := httptest.NewServer(respondWith(http.StatusOK, `{"choices":[{"message":{"content":"first"}}]}`))
	defer first.Close()
	second := httptest.NewServer(respondWith(http.StatusOK, `{"choices":[{"message":{"content":"second"}}]}`))
	defer second.Close()

	client := NewClient(first.URL)
	text, err := client.Send(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	require.NoError(t, client.SetEndpoint(second.URL))
	assert.Equal(t, second.URL, client.Endpoint())
	text, err = client.Send(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	assert.Error(t, client.SetEndpoint("ftp://example.com"))
	assert.Error(t, client.SetEndpoint("http://"))
	assert.Equal(t, second.URL, client.Endpoint())
}

// =============================================================================
// PROBE TESTS
// =============================================================================

func TestProbe_Reachable(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{ "ok" : true }`)
	}))
	defer server.Close()

	res := NewClient(server.URL).Probe(context.Background())
	assert.True(t, res.Reachable)
	assert.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, `{"ok":true}`, res.Body)
	assert.NoError(t, res.Err)
	assert.Equal(t, `{"messages":[{"role":"system","content":"health-check"}]}`, string(body))
}

func TestProbe_Failures(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusBadGateway, "down"))
	defer server.Close()

	res := NewClient(server.URL).Probe(context.Background())
	assert.True(t, res.Reachable)
	assert.False(t, res.OK())
	assert.Equal(t, "down", res.Body)

	res = NewClient("").Probe(context.Background())
	assert.False(t, res.Reachable)
	assert.ErrorIs(t, res.Err, ErrNoEndpoint)
}

func TestProbe_LogsCappedBody(t *testing.T) {
	long := strings.Repeat("x", 5000)
	server := httptest.NewServer(respondWith(http.StatusServiceUnavailable, long))
	defer server.Close()

	var logs bytes.Buffer
	client := NewClient(server.URL).WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	res := client.Probe(context.Background())

	assert.Equal(t, long, res.Body)
	assert.Contains(t, logs.String(), "endpoint health-check failed")
	assert.NotContains(t, logs.String(), long)
	assert.Contains(t, logs.String(), strings.Repeat("x", maxLoggedBody-3)+"...")
}
