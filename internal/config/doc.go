// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and validation for applock.
//
// TOML, YAML and JSON files are supported, with defaults for every key,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - LockConfig: PIN, pattern, attempt limit and start modality
//   - GridConfig: Pattern grid geometry in recognizer units
//   - TerminalConfig: Cell spacing used to map mouse events onto the grid
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the caller)
//   - Environment variables (APPLOCK_*)
//   - ~/.applock/config.toml, config.yaml, config.yml or config.json
//   - Built-in defaults
//
// The session password is never read from configuration.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid, err := cfg.BuildGrid()
package config
