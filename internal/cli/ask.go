// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/concierge/internal/session"
)

// maxStdinQuestion caps a question read from stdin.
const maxStdinQuestion = 64 * 1024

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Long: `Send a single question and print the answer. Use "-" to read the
question from stdin. Exits 1 when the endpoint cannot answer.`,
		Example: `  concierge ask "Which serum suits dry skin?"
  echo "My name is Anna" | concierge ask -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if question == "-" {
				data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinQuestion))
				if err != nil {
					return fmt.Errorf("read question from stdin: %w", err)
				}
				question = string(data)
			}
			return a.runAsk(cmd.Context(), cmd.OutOrStdout(), question)
		},
	}
}

// runAsk runs exactly one cycle without greeting or probe.
func (a *app) runAsk(ctx context.Context, out io.Writer, question string) error {
	surface := newLineSurface(out, false, a.markdownRenderer(out))
	opts := a.sessionOptions()
	opts.ProbeOnStart = false
	ctrl := session.NewController(a.client, surface, nil, opts)

	err := ctrl.Submit(ctx, question)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrEmptyInput):
		return &UsageError{Message: "question is empty"}
	default:
		return &reportedError{err: err, code: ExitGeneralError}
	}
}
