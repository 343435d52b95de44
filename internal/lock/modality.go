// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

import (
	"fmt"
	"strings"
)

// Modality is the authentication method the user has selected.
type Modality int

const (
	// ModalityPassword is a typed password provisioned once per run.
	ModalityPassword Modality = iota

	// ModalityPIN is a typed numeric PIN fixed at construction.
	ModalityPIN

	// ModalityPattern is a swipe pattern over the 3x3 grid.
	ModalityPattern
)

// Modalities lists every modality in selector order.
var Modalities = []Modality{ModalityPassword, ModalityPIN, ModalityPattern}

// String returns the lowercase name used in config files and logs.
func (m Modality) String() string {
	switch m {
	case ModalityPassword:
		return "password"
	case ModalityPIN:
		return "pin"
	case ModalityPattern:
		return "pattern"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// Label returns the display name.
func (m Modality) Label() string {
	switch m {
	case ModalityPassword:
		return "Password"
	case ModalityPIN:
		return "PIN"
	case ModalityPattern:
		return "Pattern"
	default:
		return m.String()
	}
}

// Valid reports whether m is one of the defined modalities.
func (m Modality) Valid() bool {
	switch m {
	case ModalityPassword, ModalityPIN, ModalityPattern:
		return true
	default:
		return false
	}
}

// IsText reports whether the modality takes a typed credential.
func (m Modality) IsText() bool {
	return m == ModalityPassword || m == ModalityPIN
}

// ParseModality parses a modality name, case-insensitively.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "password", "pass", "pw":
		return ModalityPassword, nil
	case "pin":
		return ModalityPIN, nil
	case "pattern", "swipe":
		return ModalityPattern, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModality, s)
	}
}
