// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for concierge.
//
// Configuration file locations (in order of precedence):
//   - ~/.concierge/config.toml
//   - ~/.concierge/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/concierge/internal/prompt"
	"github.com/jeranaias/concierge/internal/util"
)

// CurrentVersion is the config schema version written by SaveTOML.
const CurrentVersion = "1"

// Bounds for endpoint.max_response_bytes.
const (
	MinResponseBytes     = 1024
	MaxResponseBytes     = 64 * 1024 * 1024
	DefaultResponseBytes = 4 * 1024 * 1024
)

// MaxRequestsPerMinute bounds endpoint.requests_per_minute.
const MaxRequestsPerMinute = 600

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete concierge configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Endpoint is the remote completion worker.
	Endpoint EndpointConfig `toml:"endpoint" json:"endpoint"`

	// Assistant holds the directive and greeting.
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`

	UI  UIConfig  `toml:"ui" json:"ui"`
	Log LogConfig `toml:"log" json:"log"`
}

// EndpointConfig describes how to reach the completion worker.
type EndpointConfig struct {
	// URL receives the POSTed conversation. Empty means unconfigured.
	URL string `toml:"url" json:"url"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `toml:"user_agent" json:"user_agent"`
	// Headers are added to every request. Values are redacted by String.
	Headers map[string]string `toml:"headers,omitempty" json:"headers,omitempty"`
	// ProbeOnStartup sends a health-check when a session starts.
	ProbeOnStartup bool `toml:"probe_on_startup" json:"probe_on_startup"`
	// MaxResponseBytes caps the size of a response body.
	MaxResponseBytes int64 `toml:"max_response_bytes" json:"max_response_bytes"`
	// RequestsPerMinute spaces out sends. Zero means unlimited.
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// AssistantConfig holds the text that frames every conversation.
type AssistantConfig struct {
	// Directive is the leading system message. Empty selects the built-in one.
	Directive string `toml:"directive" json:"directive"`
	// Greeting is shown at session start and never sent to the endpoint.
	Greeting string `toml:"greeting" json:"greeting"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders assistant turns as markdown when the terminal allows.
	Markdown bool `toml:"markdown" json:"markdown"`
	// History keeps line-editor input history between runs of the chat REPL.
	History bool `toml:"history" json:"history"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File is the log path. Empty means ~/.concierge/concierge.log.
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a configuration with all default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Endpoint: EndpointConfig{
			ProbeOnStartup:   true,
			MaxResponseBytes: DefaultResponseBytes,
		},
		Assistant: AssistantConfig{
			Directive: prompt.DefaultDirective,
			Greeting:  prompt.DefaultGreeting,
		},
		UI: UIConfig{
			Theme:    "auto",
			Markdown: true,
			History:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the concierge configuration directory path.
// CONCIERGE_CONFIG_DIR overrides the default of ~/.concierge.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CONCIERGE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".concierge"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read: the TOML file if
// present, else the JSON file if present, else the TOML path.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions tightens a config file to 0600.
// SECURITY: endpoint.headers may carry worker credentials.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// DOTENV
// =============================================================================

// LoadDotEnv loads KEY=VALUE pairs from ./.env and <config dir>/.env into the
// process environment. Variables that are already set win. Missing files
// are skipped.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	var existing []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to parse is skipped and its error returned alongside
// the defaults; an invalid result is an error with a nil config.
func Load() (*Config, error) {
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err := LoadFromPath(tomlPath)
			if err == nil {
				return cfg, nil
			}
			if !isDecodeError(err) {
				return nil, err
			}
			loadErr = err
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg, err := LoadFromPath(jsonPath)
			if err == nil {
				return cfg, nil
			}
			if !isDecodeError(err) {
				return nil, err
			}
			loadErr = errors.Join(loadErr, err)
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// errDecode marks failures to read or parse a config file.
var errDecode = errors.New("config file unreadable")

func isDecodeError(err error) bool {
	return errors.Is(err, errDecode)
}

// LoadTOML decodes a TOML file over cfg. Fields absent from the file keep
// the values already in cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		slog.Warn("could not ensure secure permissions", "path", path, "error", err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to decode TOML file: %w", errDecode, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("ignoring unknown config keys", "path", path, "keys", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		slog.Warn("could not ensure secure permissions", "path", path, "error", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read JSON file: %w", errDecode, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: failed to decode JSON file: %w", errDecode, err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are JSON; everything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Config files are written 0600 (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents a torn file on crash.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# concierge configuration file\n")
	buf.WriteString("# Edit with care; unknown keys are ignored.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// SECURITY: Config files are written 0600 (owner read/write only).
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveToPath writes cfg in the format implied by path's extension.
func SaveToPath(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"dark": true, "light": true, "auto": true}
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Endpoint
	// ==========================================================================

	if c.Endpoint.URL != "" {
		u, err := url.Parse(c.Endpoint.URL)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: "endpoint.url", Message: fmt.Sprintf("invalid URL: %v", err)})
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, ValidationError{Field: "endpoint.url", Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme)})
		case u.Host == "":
			errs = append(errs, ValidationError{Field: "endpoint.url", Message: "missing host"})
		}
	}

	if c.Endpoint.MaxResponseBytes < MinResponseBytes || c.Endpoint.MaxResponseBytes > MaxResponseBytes {
		errs = append(errs, ValidationError{
			Field:   "endpoint.max_response_bytes",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinResponseBytes, MaxResponseBytes, c.Endpoint.MaxResponseBytes),
		})
	}

	if c.Endpoint.RequestsPerMinute < 0 || c.Endpoint.RequestsPerMinute > MaxRequestsPerMinute {
		errs = append(errs, ValidationError{
			Field:   "endpoint.requests_per_minute",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxRequestsPerMinute, c.Endpoint.RequestsPerMinute),
		})
	}

	for name := range c.Endpoint.Headers {
		if name == "" || strings.ContainsAny(name, " \t\r\n:") {
			errs = append(errs, ValidationError{Field: "endpoint.headers", Message: fmt.Sprintf("invalid header name %q", name)})
		}
	}

	// ==========================================================================
	// Assistant
	// ==========================================================================

	if strings.TrimSpace(c.Assistant.Directive) == "" {
		errs = append(errs, ValidationError{Field: "assistant.directive", Message: "must not be empty"})
	}

	// ==========================================================================
	// UI and logging
	// ==========================================================================

	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-valued fields that have a non-zero default.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Endpoint.MaxResponseBytes == 0 {
		c.Endpoint.MaxResponseBytes = defaults.Endpoint.MaxResponseBytes
	}
	if c.Assistant.Directive == "" {
		c.Assistant.Directive = defaults.Assistant.Directive
	}
	if c.Assistant.Greeting == "" {
		c.Assistant.Greeting = defaults.Assistant.Greeting
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Migrate normalizes spellings accepted by older releases.
func (c *Config) Migrate() error {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.UI.Theme == "system" {
		c.UI.Theme = "auto"
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "warning" {
		c.Log.Level = "warn"
	}

	c.Endpoint.URL = strings.TrimSpace(c.Endpoint.URL)
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CONCIERGE_ENDPOINT_URL: overrides endpoint.url
//   - CONCIERGE_USER_AGENT: overrides endpoint.user_agent
//   - CONCIERGE_NO_PROBE: set to "1" or "true" to skip the startup probe
//   - CONCIERGE_THEME: overrides ui.theme
//   - CONCIERGE_LOG_LEVEL: overrides log.level
//   - CONCIERGE_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CONCIERGE_ENDPOINT_URL"); v != "" {
		c.Endpoint.URL = v
	}
	if v := os.Getenv("CONCIERGE_USER_AGENT"); v != "" {
		c.Endpoint.UserAgent = v
	}
	if v := os.Getenv("CONCIERGE_NO_PROBE"); v != "" {
		c.Endpoint.ProbeOnStartup = !parseBool(v)
	}
	if v := os.Getenv("CONCIERGE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("CONCIERGE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONCIERGE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g.,
// "endpoint.url"). A trailing segment after a map field selects one entry,
// as in "endpoint.headers.X-Worker-Key".
func (c *Config) Get(key string) (interface{}, error) {
	field, mapKey, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	if mapKey != "" {
		v := field.MapIndex(reflect.ValueOf(mapKey))
		if !v.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", key)
		}
		return v.Interface(), nil
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, mapKey, err := c.lookup(key)
	if err != nil {
		return err
	}
	if mapKey != "" {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, key)
		}
		if field.IsNil() {
			field.Set(reflect.MakeMap(field.Type()))
		}
		field.SetMapIndex(reflect.ValueOf(mapKey), reflect.ValueOf(s))
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks key through the struct. For "section.mapfield.entry" it
// returns the map field and the entry name.
func (c *Config) lookup(key string) (reflect.Value, string, error) {
	if key == "" {
		return reflect.Value{}, "", errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, "", fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, "", nil
		}

		switch field.Kind() {
		case reflect.Struct:
			v = field
		case reflect.Map:
			if i == len(parts)-2 && field.Type().Key().Kind() == reflect.String {
				return field, parts[i+1], nil
			}
			return reflect.Value{}, "", fmt.Errorf("invalid key: %s", key)
		default:
			return reflect.Value{}, "", fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}
	return reflect.Value{}, "", fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.String && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all scalar configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"endpoint.url",
		"endpoint.user_agent",
		"endpoint.headers",
		"endpoint.probe_on_startup",
		"endpoint.max_response_bytes",
		"endpoint.requests_per_minute",
		"assistant.directive",
		"assistant.greeting",
		"ui.theme",
		"ui.markdown",
		"ui.history",
		"log.level",
		"log.file",
	}
}

// =============================================================================
// COPY AND DISPLAY
// =============================================================================

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Endpoint.Headers != nil {
		clone.Endpoint.Headers = make(map[string]string, len(c.Endpoint.Headers))
		for k, v := range c.Endpoint.Headers {
			clone.Endpoint.Headers[k] = v
		}
	}
	return &clone
}

// String returns an indented JSON view of the config for debugging.
// SECURITY: Header values are redacted since they commonly carry worker
// credentials.
func (c *Config) String() string {
	safe := c.Clone()
	for k := range safe.Endpoint.Headers {
		safe.Endpoint.Headers[k] = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if cfg == nil {
			cfg = Default()
		}
		if err != nil {
			slog.Warn("using default configuration", "error", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
