// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/concierge/internal/cloud"
	"github.com/jeranaias/concierge/internal/model"
	"github.com/jeranaias/concierge/internal/profile"
	"github.com/jeranaias/concierge/internal/prompt"
	"github.com/jeranaias/concierge/internal/util"
)

// Sentinel errors returned by Submit.
var (
	// ErrEmptyInput is returned for blank or whitespace-only input.
	ErrEmptyInput = errors.New("session: empty input")

	// ErrBusy is returned when a cycle is already in flight.
	ErrBusy = errors.New("session: a request is already in progress")

	// ErrUnexpected is returned after a panic inside a cycle was recovered.
	ErrUnexpected = errors.New("session: unexpected failure")
)

// PendingText is what text frontends show while a request is in flight.
const PendingText = "Thinking…"

// =============================================================================
// COLLABORATORS
// =============================================================================

// Sender performs the network round trip. *cloud.Client implements it.
type Sender interface {
	Send(ctx context.Context, req prompt.Request) (string, error)
	Probe(ctx context.Context) cloud.ProbeResult
}

// Renderer displays turns. Text handed to it has already been escaped.
type Renderer interface {
	Render(role model.Role, text string)
	ShowPending()
	ClearPending()
}

// Input is the user's input affordance.
type Input interface {
	SetEnabled(enabled bool)
}

type noInput struct{}

func (noInput) SetEnabled(bool) {}

// =============================================================================
// STATE
// =============================================================================

// State is the controller's position in the submit cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Directive string
	Greeting  string
	Extractor *profile.Extractor
	Logger    *slog.Logger

	// ProbeOnStart launches the connectivity probe from Start.
	ProbeOnStart bool
}

// Controller owns one conversation: its transcript, its profile, and the
// single in-flight request.
type Controller struct {
	id         string
	transcript *model.Transcript
	profile    *model.Profile
	extractor  *profile.Extractor
	greeting   string
	probe      bool

	client   Sender
	renderer Renderer
	input    Input
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewController creates an idle controller. input may be nil.
func NewController(client Sender, renderer Renderer, input Input, opts Options) *Controller {
	if opts.Directive == "" {
		opts.Directive = prompt.DefaultDirective
	}
	if opts.Greeting == "" {
		opts.Greeting = prompt.DefaultGreeting
	}
	if opts.Extractor == nil {
		opts.Extractor = profile.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if input == nil {
		input = noInput{}
	}

	id := uuid.NewString()
	return &Controller{
		id:         id,
		transcript: model.NewTranscript(opts.Directive),
		profile:    model.NewProfile(),
		extractor:  opts.Extractor,
		greeting:   opts.Greeting,
		probe:      opts.ProbeOnStart,
		client:     client,
		renderer:   renderer,
		input:      input,
		logger:     opts.Logger.With("session", id),
	}
}

// ID returns the session identifier used in logs.
func (c *Controller) ID() string {
	return c.id
}

// Transcript returns a copy of the conversation, directive first.
func (c *Controller) Transcript() []model.Message {
	return c.transcript.Snapshot()
}

// Meta summarises the transcript: turn count and the latest question.
func (c *Controller) Meta() model.Meta {
	return c.transcript.Meta()
}

// Profile returns a copy of the current profile.
func (c *Controller) Profile() model.ProfileSnapshot {
	return c.profile.Snapshot()
}

// State returns the current cycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start shows the greeting and, when enabled, probes the endpoint in the
// background. The probe's outcome is only logged.
func (c *Controller) Start(ctx context.Context) {
	c.render(model.RoleAssistant, c.greeting)
	if !c.probe {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("health-check panicked", "panic", r)
			}
		}()
		res := c.client.Probe(ctx)
		c.logger.Debug("health-check finished", "reachable", res.Reachable, "status", res.Status, "duration", res.Duration)
	}()
}

// Submit runs one cycle for raw. Blank input returns ErrEmptyInput and a
// cycle already in flight returns ErrBusy; neither changes any state.
//
// Otherwise the user turn is recorded and rendered before the request is
// sent. Network failures are rendered as an error turn and returned; the
// transcript keeps the user turn but gains no assistant turn. Input is
// re-enabled on every exit path.
func (c *Controller) Submit(ctx context.Context, raw string) (err error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	c.input.SetEnabled(false)
	pending := false

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submit cycle panicked", "panic", r, "stack", string(debug.Stack()))
			if pending {
				c.renderer.ClearPending()
			}
			c.render(model.RoleAssistant, fmt.Sprintf("Unexpected error: %v", r))
			err = ErrUnexpected
		}
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		c.input.SetEnabled(true)
	}()

	if ack, ok := c.extractor.Observe(c.profile, text); ok {
		c.logger.Info("profile updated", "field", "name")
		c.appendAndRender(model.RoleAssistant, ack.Text())
	}

	c.appendAndRender(model.RoleUser, text)

	c.renderer.ShowPending()
	pending = true

	req := prompt.Compose(c.transcript.Directive(), c.profile.Snapshot(), c.transcript.Tail())

	start := time.Now()
	reply, sendErr := c.client.Send(ctx, req)
	c.renderer.ClearPending()
	pending = false

	if sendErr != nil {
		c.logger.Warn("completion failed", "error", sendErr, "duration", time.Since(start))
		c.render(model.RoleAssistant, FailureText(sendErr))
		return sendErr
	}

	c.logger.Debug("completion received", "duration", time.Since(start), "turns", c.transcript.TurnCount())
	c.appendAndRender(model.RoleAssistant, reply)
	return nil
}

// FailureText is the error turn shown for a failed send.
func FailureText(err error) string {
	var epErr *cloud.EndpointError
	if errors.As(err, &epErr) {
		return fmt.Sprintf("Error from worker: %d %s", epErr.Status, epErr.Body)
	}
	var tErr *cloud.TransportError
	if errors.As(err, &tErr) {
		return "Network error: " + tErr.Diagnostic()
	}
	return "Network error: " + err.Error()
}

func (c *Controller) appendAndRender(role model.Role, text string) {
	if _, err := c.transcript.Append(role, text); err != nil {
		panic(fmt.Sprintf("append %s turn: %v", role, err))
	}
	c.render(role, text)
}

func (c *Controller) render(role model.Role, text string) {
	c.renderer.Render(role, util.Escape(text))
}
