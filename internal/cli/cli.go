// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for applock.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdPlain
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdPlain:
		return "plain"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags. Empty strings and zero mean "not given".
	ConfigPath  string
	MaxAttempts int
	PIN         string
	PINSet      bool
	Pattern     string
	Modality    string
	LogFile     string
	LogLevel    string
	NoAltScreen bool
	NoHelp      bool

	// Command-specific
	Subcommand string

	// Raw args after the command name
	Raw []string
}

// globalBoolFlags never take a value.
var globalBoolFlags = []string{"help", "h", "version", "no-alt-screen", "no-help"}

// knownFlags lists every flag the parser accepts.
var knownFlags = map[string]bool{
	"help": true, "h": true, "version": true, "no-alt-screen": true, "no-help": true,
	"config": true, "c": true, "max-attempts": true, "pin": true, "pattern": true,
	"modality": true, "m": true, "log-file": true, "log-level": true,
}

const usageText = `applock - terminal screen lock with password, PIN and pattern unlock

Usage:
  applock [flags]                  Start the lock screen (default)
  applock plain [flags]            Line-mode lock prompt for terminals without mouse support
  applock config [show|path|validate]
                                   Show the effective configuration (secrets masked),
                                   print the config file path, or validate it
  applock version                  Show version information
  applock help                     Show this help

Flags:
  -c, --config PATH                Config file (default: ~/.applock/config.{toml,yaml,json})
  --max-attempts N                 Failed attempts before permanent lockout (default: 5)
  --pin PIN                        PIN to unlock with
  --pattern IDS                    Pattern as node ids, e.g. 1-2-3-4 (grid is 1-9 row by row)
  -m, --modality NAME              Method selected at start: password, pin or pattern
  --log-file PATH                  Write session events to PATH
  --log-level LEVEL                debug, info, warn or error
  --no-alt-screen                  Draw the lock screen inline; patterns are
                                   then typed as node digits, not drawn
  --no-help                        Hide the key help footer

Environment:
  APPLOCK_PIN, APPLOCK_PATTERN, APPLOCK_MAX_ATTEMPTS, APPLOCK_MODALITY,
  APPLOCK_LOG_LEVEL, APPLOCK_LOG_FILE override the config file.
  Flags override both.

The session password is never configured. It is set the first time
Password is selected and lasts until the program exits.

Exit status:
  0  access granted
  1  locked out after the maximum number of attempts
  2  usage error
  3  configuration error
  4  other failure
  130 quit before unlocking

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "applock version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, globalBoolFlags...)

	for _, name := range p.Flags() {
		if !knownFlags[name] {
			return CmdHelp, Args{}, &ValidationError{Field: "flag", Value: "--" + name, Reason: "unknown flag"}
		}
	}

	args, err := parseGlobalFlags(p)
	if err != nil {
		return CmdHelp, Args{}, err
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	if p.PositionalCount() == 0 {
		return CmdTUI, args, nil
	}

	cmd := strings.ToLower(p.Subcommand())
	args.Raw = p.PositionalFrom(1)

	switch cmd {
	case "tui", "lock":
		return CmdTUI, args, nil

	case "plain", "line":
		return CmdPlain, args, nil

	case "config":
		args.Subcommand = "show"
		if sub := p.Positional(1); sub != "" {
			args.Subcommand = strings.ToLower(sub)
		}
		switch args.Subcommand {
		case "show", "path", "validate":
		default:
			return CmdConfig, args, &ValidationError{
				Field:   "config subcommand",
				Value:   args.Subcommand,
				Reason:  "must be one of show, path, validate",
				Example: "applock config validate",
			}
		}
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, &ValidationError{Field: "command", Value: cmd, Reason: "unknown command"}
	}
}

// parseGlobalFlags reads the flags shared by every command.
func parseGlobalFlags(p *ArgParser) (Args, error) {
	args := Args{
		ConfigPath:  p.FlagOrDefault("config", p.Flag("c")),
		Pattern:     p.Flag("pattern"),
		Modality:    p.FlagOrDefault("modality", p.Flag("m")),
		LogFile:     p.Flag("log-file"),
		LogLevel:    p.Flag("log-level"),
		NoAltScreen: p.BoolFlag("no-alt-screen"),
		NoHelp:      p.BoolFlag("no-help"),
	}

	args.PIN, args.PINSet = p.LookupFlag("pin")
	if p.BoolFlag("pin") {
		return args, &ValidationError{Field: "pin", Reason: "flag needs a value", Example: "--pin 2468"}
	}

	if p.HasFlag("max-attempts") {
		n, err := ParseIntWithValidation(p.Flag("max-attempts"), "max-attempts")
		if err != nil {
			return args, &ValidationError{Field: "max-attempts", Value: p.Flag("max-attempts"), Reason: err.Error()}
		}
		args.MaxAttempts = n
	}

	return args, nil
}
