// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command and flag application for applock.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration, secrets masked
//   path                Show the configuration file in use
//   validate            Check the configuration and report every problem
//
// Examples:
//   applock config
//   applock config path
//   applock --config ./lock.yaml config validate
//   APPLOCK_PIN=2468 applock config show

package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jeranaias/applock/internal/config"
	"github.com/jeranaias/applock/internal/pattern"
)

// =============================================================================
// LOADING
// =============================================================================

// ConfigPath returns the config file that LoadConfig reads, or "" when
// only defaults apply.
func ConfigPath(args Args) string {
	if args.ConfigPath != "" {
		return args.ConfigPath
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return config.FindConfigFile(dir)
}

// LoadConfig loads the config file and environment, then applies flags.
func LoadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load(ConfigPath(args))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := ApplyFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides cfg with command-line flags and revalidates.
func ApplyFlags(cfg *config.Config, args Args) error {
	if args.MaxAttempts > 0 {
		cfg.Lock.MaxAttempts = args.MaxAttempts
	}
	if args.PINSet {
		cfg.Lock.PIN = args.PIN
	}
	if args.Pattern != "" {
		seq, err := pattern.ParseSequence(args.Pattern)
		if err != nil {
			return &ValidationError{Field: "pattern", Value: args.Pattern, Reason: err.Error(), Example: "--pattern 1-5-9"}
		}
		cfg.Lock.Pattern = seq
	}
	if args.Modality != "" {
		cfg.Lock.Modality = args.Modality
	}
	if args.LogFile != "" {
		cfg.Log.File = args.LogFile
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
	if args.NoAltScreen {
		cfg.UI.AltScreen = false
	}
	if args.NoHelp {
		cfg.UI.ShowHelp = false
	}

	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig runs "applock config".
func HandleConfig(w io.Writer, args Args) error {
	switch args.Subcommand {
	case "path":
		return handleConfigPath(w, args)
	case "validate":
		return handleConfigValidate(w, args)
	default:
		return handleConfigShow(w, args)
	}
}

func handleConfigShow(w io.Writer, args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, TitleStyle.Render("applock configuration"))
	source := ConfigPath(args)
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("Source"), ValueStyle.Render(source))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("Pattern length"), ValueStyle.Render(fmt.Sprint(len(cfg.Lock.Pattern))))
	fmt.Fprintln(w, RenderSeparator())
	fmt.Fprint(w, cfg.String())
	return nil
}

func handleConfigPath(w io.Writer, args Args) error {
	if path := ConfigPath(args); path != "" {
		fmt.Fprintln(w, path)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return &CommandError{Command: "config", Action: "path", Reason: "no config directory", Err: err}
	}
	fmt.Fprintln(w, filepath.Join(dir, "config.toml"))
	fmt.Fprintln(w, DimStyle.Render("(not created; built-in defaults are in use)"))
	return nil
}

func handleConfigValidate(w io.Writer, args Args) error {
	_, err := LoadConfig(args)

	var verrs config.ValidateErrors
	switch {
	case err == nil:
		fmt.Fprintf(w, "%s configuration is valid\n", RenderStatus(true))
		return nil
	case errors.As(err, &verrs):
		fmt.Fprintf(w, "%s %d problem(s)\n", RenderStatus(false), len(verrs))
		for _, v := range verrs {
			fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(v.Field), v.Message)
		}
	default:
		fmt.Fprintf(w, "%s %v\n", RenderStatus(false), err)
	}
	return &CommandError{Command: "config", Action: "validate", Reason: "configuration is invalid", Err: err}
}
