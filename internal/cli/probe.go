// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/concierge/internal/cloud"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Send a health-check to the completion endpoint",
		Long: `Post the health-check conversation to the endpoint and report whether it
answered. Nothing is added to any conversation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProbe(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *app) runProbe(ctx context.Context, out io.Writer) error {
	res := a.client.Probe(ctx)
	printProbe(out, res)
	if res.OK() {
		return nil
	}
	err := res.Err
	if err == nil {
		err = &cloud.EndpointError{Status: res.Status, Body: res.Body}
	}
	return &reportedError{err: err, code: ExitNetworkError}
}

func printProbe(out io.Writer, res cloud.ProbeResult) {
	endpoint := res.Endpoint
	if endpoint == "" {
		endpoint = "(not configured)"
	}
	fmt.Fprintf(out, "Endpoint: %s\n", endpoint)

	switch {
	case res.OK():
		fmt.Fprintf(out, "Status:   %s HTTP %d in %s\n", okStyle.Render("reachable"), res.Status, res.Duration.Round(time.Millisecond))
		if res.Body != "" {
			fmt.Fprintf(out, "Response: %s\n", res.Body)
		}
	case res.Reachable:
		fmt.Fprintf(out, "Status:   %s %s\n", failStyle.Render("error"), session.FailureText(&cloud.EndpointError{Status: res.Status, Body: res.Body}))
	default:
		fmt.Fprintf(out, "Status:   %s %s\n", failStyle.Render("unreachable"), session.FailureText(res.Err))
	}
}
