// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for applock commands.
//
// Command handlers return errors and let main decide how to display them.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/applock/internal/config"
	"github.com/jeranaias/applock/internal/lock"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitGranted indicates the user unlocked
	ExitGranted = 0
	// ExitLockedOut indicates the attempt limit was reached
	ExitLockedOut = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitGeneralError indicates any other failure, including an engine
	// used after its terminal outcome
	ExitGeneralError = 4
	// ExitAborted indicates the user quit before unlocking
	ExitAborted = 130
)

// ErrAborted is returned when the user leaves a lock prompt without a
// terminal outcome.
var ErrAborted = errors.New("cli: aborted before unlocking")

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "config", "plain")
	Action  string // Action being performed (e.g., "validate")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ConfigError marks a failure to load or apply configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err in the house format. Config validation errors
// are listed one per line.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		fmt.Fprintf(w, "%s invalid configuration\n", ErrorStyle.Render("[ERROR]"))
		for _, v := range verrs {
			fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(v.Field), v.Message)
		}
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// GetExitCode determines the exit code for an error returned by a command.
func GetExitCode(err error) int {
	if err == nil {
		return ExitGranted
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var configErr *ConfigError
	var verrs config.ValidateErrors
	if errors.As(err, &configErr) || errors.As(err, &verrs) {
		return ExitConfigError
	}

	if errors.Is(err, ErrAborted) {
		return ExitAborted
	}

	return ExitGeneralError
}

// ExitCode maps the final engine state of a lock session onto an exit code.
func ExitCode(state lock.State, err error) int {
	if err != nil {
		return GetExitCode(err)
	}
	switch state {
	case lock.StateGranted:
		return ExitGranted
	case lock.StateLockedOut:
		return ExitLockedOut
	default:
		return ExitAborted
	}
}
