// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/concierge/internal/config"
	"github.com/jeranaias/concierge/internal/session"
	"github.com/jeranaias/concierge/internal/ui/styles"
)

// HistoryFileName is the REPL input history file inside the config dir.
const HistoryFileName = "chat_history"

var (
	welcomeStyle = lipgloss.NewStyle().Foreground(styles.Gold).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondary)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader provides line editing and input history for the REPL.
// USABILITY: Supports arrow keys for history navigation and line editing.
type lineReader struct {
	line        *liner.State
	historyFile string
}

// newLineReader creates a reader. With history on, earlier input is loaded
// from the config directory and saved again by Close.
func newLineReader(history bool) *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &lineReader{line: line}
	if history {
		if dir, err := config.ConfigDir(); err == nil {
			r.historyFile = filepath.Join(dir, HistoryFileName)
		}
	}
	r.loadHistory()
	return r
}

func (r *lineReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// Read reads a line of input with the given prompt.
func (r *lineReader) Read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists input history.
// SECURITY: History may hold personal details; written 0600.
func (r *lineReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (r *lineReader) Close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in a line-oriented prompt with input history",
		Long: `Chat without the full-screen interface. Type a question and press
Enter; type "exit" or press Ctrl+D to leave. Arrow keys recall earlier
input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runChat runs the REPL until EOF, an exit word, or cancellation.
func (a *app) runChat(ctx context.Context, out io.Writer) error {
	interactive := isTerminalWriter(out)
	surface := newLineSurface(out, interactive, a.markdownRenderer(out))
	ctrl := session.NewController(a.client, surface, nil, a.sessionOptions())

	if interactive {
		fmt.Fprintln(out, welcomeStyle.Render("concierge")+" "+infoStyle.Render("type \"exit\" or press Ctrl+D to leave"))
		fmt.Fprintln(out)
	}
	ctrl.Start(ctx)

	reader := newLineReader(config.Global().UI.History)
	defer reader.Close()

	for {
		input, err := reader.Read("› ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		}

		// Failures are rendered by the controller; the session goes on.
		if err := ctrl.Submit(ctx, input); err != nil {
			a.logger.Debug("cycle ended with error", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
