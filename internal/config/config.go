// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/applock/internal/lock"
	"github.com/jeranaias/applock/internal/pattern"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete applock configuration.
//
// The session password is deliberately absent: it is provisioned
// interactively once per run and only ever held in memory.
type Config struct {
	// Lock holds the credentials and attempt policy.
	Lock LockConfig `toml:"lock" yaml:"lock" json:"lock"`

	// Grid holds the pattern grid geometry in recognizer units.
	Grid GridConfig `toml:"grid" yaml:"grid" json:"grid"`

	// Terminal maps terminal cells onto the grid.
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal" json:"terminal"`

	// Log configures session event logging.
	Log LogConfig `toml:"log" yaml:"log" json:"log"`

	// UI holds presentation preferences.
	UI UIConfig `toml:"ui" yaml:"ui" json:"ui"`
}

// LockConfig contains the credential and lockout settings.
type LockConfig struct {
	// PIN is the correct PIN. Compared exactly, no trimming.
	PIN string `toml:"pin" yaml:"pin" json:"pin"`
	// Pattern is the correct swipe pattern as node ids 1-9 in order.
	Pattern []int `toml:"pattern" yaml:"pattern" json:"pattern"`
	// MaxAttempts is the number of failures before permanent lockout.
	MaxAttempts int `toml:"max_attempts" yaml:"max_attempts" json:"max_attempts"`
	// Modality is the modality selected at start: "pin", "pattern" or "password".
	Modality string `toml:"modality" yaml:"modality" json:"modality"`
}

// GridConfig describes the 3x3 node layout.
type GridConfig struct {
	// Origin is the x and y of node 1's center.
	Origin float64 `toml:"origin" yaml:"origin" json:"origin"`
	// Gap is the distance between adjacent centers.
	Gap float64 `toml:"gap" yaml:"gap" json:"gap"`
	// Radius is the hit radius around each center.
	Radius float64 `toml:"radius" yaml:"radius" json:"radius"`
}

// TerminalConfig sets how many terminal cells separate adjacent nodes.
type TerminalConfig struct {
	// ColumnsPerGap is the horizontal cell distance between node centers.
	ColumnsPerGap int `toml:"columns_per_gap" yaml:"columns_per_gap" json:"columns_per_gap"`
	// RowsPerGap is the vertical cell distance between node centers.
	RowsPerGap int `toml:"rows_per_gap" yaml:"rows_per_gap" json:"rows_per_gap"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level" json:"level"`
	// File is where log entries go. Empty discards them; the lock screen
	// owns the terminal so stdout and stderr are not usable while it runs.
	File string `toml:"file" yaml:"file" json:"file"`
	// Format is "json" or "console".
	Format string `toml:"format" yaml:"format" json:"format"`
}

// UIConfig contains presentation preferences.
type UIConfig struct {
	// AltScreen runs the lock screen in the alternate screen buffer.
	AltScreen bool `toml:"alt_screen" yaml:"alt_screen" json:"alt_screen"`
	// ShowHelp shows the key help footer.
	ShowHelp bool `toml:"show_help" yaml:"show_help" json:"show_help"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Lock: LockConfig{
			PIN:         lock.DefaultPIN,
			Pattern:     lock.DefaultPattern(),
			MaxAttempts: lock.DefaultMaxAttempts,
			Modality:    lock.ModalityPIN.String(),
		},
		Grid: GridConfig{
			Origin: pattern.DefaultOrigin,
			Gap:    pattern.DefaultGap,
			Radius: pattern.DefaultRadius,
		},
		Terminal: TerminalConfig{
			ColumnsPerGap: 10,
			RowsPerGap:    5,
		},
		Log: LogConfig{
			Level:  "info",
			File:   "",
			Format: "json",
		},
		UI: UIConfig{
			AltScreen: true,
			ShowHelp:  true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the applock configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".applock"), nil
}

// candidateNames lists config file names in lookup order.
var candidateNames = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// FindConfigFile returns the first existing config file in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files carry the PIN and pattern, so they should be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from path, or from the first config file in
// ConfigDir when path is empty. Missing files fall back to defaults.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if dir, err := ConfigDir(); err == nil {
			path = FindConfigFile(dir)
		}
	}

	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile decodes the file at path onto cfg. The format is chosen by
// extension; anything other than .json, .yaml or .yml is read as TOML.
// Keys absent from the file keep their current values.
func LoadFile(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode JSON file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - APPLOCK_PIN: overrides lock.pin
//   - APPLOCK_PATTERN: overrides lock.pattern ("1-2-3-4" or "1234")
//   - APPLOCK_MAX_ATTEMPTS: overrides lock.max_attempts
//   - APPLOCK_MODALITY: overrides lock.modality
//   - APPLOCK_LOG_LEVEL: overrides log.level
//   - APPLOCK_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() error {
	if pin, ok := os.LookupEnv("APPLOCK_PIN"); ok {
		c.Lock.PIN = pin
	}

	if p := os.Getenv("APPLOCK_PATTERN"); p != "" {
		seq, err := pattern.ParseSequence(p)
		if err != nil {
			return fmt.Errorf("APPLOCK_PATTERN: %w", err)
		}
		c.Lock.Pattern = seq
	}

	if n := os.Getenv("APPLOCK_MAX_ATTEMPTS"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return fmt.Errorf("APPLOCK_MAX_ATTEMPTS: %w", err)
		}
		c.Lock.MaxAttempts = v
	}

	if m := os.Getenv("APPLOCK_MODALITY"); m != "" {
		c.Lock.Modality = m
	}

	if level := os.Getenv("APPLOCK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if file := os.Getenv("APPLOCK_LOG_FILE"); file != "" {
		c.Log.File = file
	}

	return nil
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e ValidateErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Validate validates the configuration and returns any errors as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Lock.PIN == "" {
		errs = append(errs, ValidationError{Field: "lock.pin", Message: "must not be empty"})
	}

	if err := pattern.ValidateSequence(c.Lock.Pattern); err != nil {
		errs = append(errs, ValidationError{Field: "lock.pattern", Message: err.Error()})
	}

	if c.Lock.MaxAttempts < 1 {
		errs = append(errs, ValidationError{
			Field:   "lock.max_attempts",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Lock.MaxAttempts),
		})
	}

	if _, err := lock.ParseModality(c.Lock.Modality); err != nil {
		errs = append(errs, ValidationError{
			Field:   "lock.modality",
			Message: fmt.Sprintf("invalid modality '%s', must be one of: password, pin, pattern", c.Lock.Modality),
		})
	}

	if c.Grid.Gap <= 0 {
		errs = append(errs, ValidationError{Field: "grid.gap", Message: "must be positive"})
	}
	if c.Grid.Radius <= 0 {
		errs = append(errs, ValidationError{Field: "grid.radius", Message: "must be positive"})
	}

	if c.Terminal.ColumnsPerGap < 2 {
		errs = append(errs, ValidationError{Field: "terminal.columns_per_gap", Message: "must be at least 2"})
	}
	if c.Terminal.RowsPerGap < 1 {
		errs = append(errs, ValidationError{Field: "terminal.rows_per_gap", Message: "must be at least 1"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, console", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// InitialModality returns the parsed start modality.
func (c *Config) InitialModality() lock.Modality {
	m, err := lock.ParseModality(c.Lock.Modality)
	if err != nil {
		return lock.ModalityPIN
	}
	return m
}

// BuildGrid returns the recognizer geometry.
func (c *Config) BuildGrid() (*pattern.Grid, error) {
	return pattern.NewUniformGrid(c.Grid.Origin, c.Grid.Origin, c.Grid.Gap, c.Grid.Radius)
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// ErrUnknownKey is returned by Get for keys that do not exist.
var ErrUnknownKey = errors.New("config: unknown key")

// Get retrieves a configuration value using dot notation (e.g., "lock.max_attempts").
// Keys are the TOML names.
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		v = field
	}
	return v.Interface(), nil
}

// fieldByTag finds the struct field whose toml tag is name.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// =============================================================================
// OUTPUT
// =============================================================================

// Redacted returns a copy with the PIN and pattern masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.Lock.Pattern = nil
	if c.Lock.PIN != "" {
		out.Lock.PIN = strings.Repeat("*", len(c.Lock.PIN))
	}
	return &out
}

// TOML encodes the configuration as TOML.
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// String returns the redacted configuration as TOML.
func (c *Config) String() string {
	s, err := c.Redacted().TOML()
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return s
}
