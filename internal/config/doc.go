// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for concierge.
//
// Supports both TOML and JSON configuration formats, with defaults,
// .env files, environment variable overrides, validation, and live reload.
//
// # Key Types
//
//   - Config: main configuration structure
//   - EndpointConfig: completion worker URL, headers and limits
//   - AssistantConfig: directive and greeting text
//   - ValidateErrors: aggregated validation failures
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CONCIERGE_*), including those from .env files
//   - ~/.concierge/config.toml
//   - ~/.concierge/config.json
//   - Built-in defaults
//
// # Usage
//
//	if err := config.LoadDotEnv(); err != nil {
//	    return err
//	}
//	cfg, err := config.Load()
//	if err != nil && cfg == nil {
//	    return err
//	}
//	path, _ := config.ActivePath()
//	_ = config.Watch(ctx, path, func(next *config.Config) {
//	    _ = client.SetEndpoint(next.Endpoint.URL)
//	}, logger)
package config
