// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

import "fmt"

// State is the engine's position in its lifecycle.
type State int

const (
	// StateActive accepts submissions.
	StateActive State = iota

	// StateGranted is terminal: a credential matched.
	StateGranted

	// StateLockedOut is terminal: the attempt limit was reached.
	StateLockedOut
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGranted:
		return "granted"
	case StateLockedOut:
		return "locked_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further verification is allowed.
func (s State) Terminal() bool {
	return s == StateGranted || s == StateLockedOut
}

// OutcomeKind classifies a verification result.
type OutcomeKind int

const (
	// OutcomeGranted means the credential matched.
	OutcomeGranted OutcomeKind = iota

	// OutcomeDenied means the credential did not match and one attempt was used.
	OutcomeDenied

	// OutcomeConfigurationError means the modality could not be checked
	// (password not yet provisioned). No attempt was used.
	OutcomeConfigurationError
)

// String returns the outcome name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGranted:
		return "granted"
	case OutcomeDenied:
		return "denied"
	case OutcomeConfigurationError:
		return "configuration_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of one Verify call. Remaining and Terminal are
// meaningful for OutcomeDenied; Terminal is also set for OutcomeGranted.
type Outcome struct {
	Kind      OutcomeKind
	Remaining int
	Terminal  bool
}

// Granted reports whether access was granted.
func (o Outcome) Granted() bool {
	return o.Kind == OutcomeGranted
}

// LockedOut reports whether this denial exhausted the attempts.
func (o Outcome) LockedOut() bool {
	return o.Kind == OutcomeDenied && o.Terminal
}

// Message returns the user-facing text for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeGranted:
		return "Access granted!"
	case OutcomeConfigurationError:
		return "Password not set! Select Password to set it first."
	case OutcomeDenied:
		if o.Terminal {
			return "Access denied! Maximum attempts reached."
		}
		if o.Remaining == 1 {
			return "Access denied! Try again. 1 attempt left."
		}
		return fmt.Sprintf("Access denied! Try again. %d attempts left.", o.Remaining)
	default:
		return o.Kind.String()
	}
}
