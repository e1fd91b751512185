// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/concierge/internal/config"
)

// newConfigCmd builds "config" and its subcommands. They work on the file
// directly, so a broken or invalid file can still be inspected and fixed;
// environment overrides are never written back.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the configuration",
		Args:  cobra.NoArgs,
		// Replaces the root setup: no client and no log file needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			applyColorProfile()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPathTOML()
			if err != nil {
				return configError("init", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &CommandError{Command: "config", Action: "init", Reason: path + " already exists (use --force to overwrite)", Code: ExitConfigError}
			}
			if err := config.EnsureConfigDir(); err != nil {
				return configError("init", err)
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return configError("init", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration (header values redacted)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if cfg == nil {
					return configError("show", err)
				}
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Warning: using defaults: ")+err.Error())
				}
				fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.ActivePath()
				if err != nil {
					return configError("path", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:       "get <key>",
			Short:     "Print one value in dot notation (e.g. endpoint.url)",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.GetAllKeys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := readConfigFile()
				if err != nil {
					return configError("get", err)
				}
				value, err := cfg.Get(args[0])
				if err != nil {
					return &UsageError{Message: err.Error()}
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatValue(args[0], value))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change one value and save the file",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.GetAllKeys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfigValue(cmd, args[0], args[1])
			},
		},
		initCmd,
	)
	return cmd
}

// readConfigFile decodes the active file over the defaults without env
// overrides or validation.
func readConfigFile() (*config.Config, error) {
	cfg := config.Default()
	path, err := config.ActivePath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if strings.HasSuffix(path, ".json") {
		err = config.LoadJSON(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	cfg, err := readConfigFile()
	if err != nil {
		return configError("set", err)
	}
	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Message: err.Error()}
	}
	if err := cfg.Migrate(); err != nil {
		return configError("set", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return &UsageError{Message: err.Error()}
	}

	path, err := config.ActivePath()
	if err != nil {
		return configError("set", err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		return configError("set", err)
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return configError("set", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, formatValue(key, value))
	return nil
}

// formatValue prints a value, hiding header values.
// SECURITY: Headers commonly carry worker credentials.
func formatValue(key string, value interface{}) string {
	if strings.HasPrefix(key, "endpoint.headers") {
		if m, ok := value.(map[string]string); ok {
			names := make([]string, 0, len(m))
			for k := range m {
				names = append(names, k+"=[REDACTED]")
			}
			return strings.Join(names, ", ")
		}
		return "[REDACTED]"
	}
	return fmt.Sprint(value)
}
