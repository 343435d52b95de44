// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

import (
	"crypto/subtle"
	"fmt"

	"github.com/jeranaias/applock/internal/pattern"
)

const (
	// DefaultPIN is the PIN used when none is configured.
	DefaultPIN = "1234"
)

// DefaultPattern returns the pattern used when none is configured: the top
// row followed by the first node of the middle row.
func DefaultPattern() []int {
	return []int{1, 2, 3, 4}
}

// =============================================================================
// CREDENTIAL
// =============================================================================

// Credential is a submitted value. Text carries a password or PIN,
// Pattern carries node ids in visit order.
type Credential struct {
	Text    string
	Pattern []int
}

// TextCredential wraps a typed password or PIN.
func TextCredential(s string) Credential {
	return Credential{Text: s}
}

// PatternCredential wraps a captured node sequence.
func PatternCredential(seq []int) Credential {
	return Credential{Pattern: seq}
}

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredentialStore holds the correct credential for each modality.
// The PIN and pattern are fixed at construction; the password is set at
// most once, in memory, for the lifetime of the store.
type CredentialStore struct {
	pin         string
	pattern     []int
	password    string
	provisioned bool
}

// NewCredentialStore creates a store with the given PIN and pattern.
// The pattern must name distinct grid nodes and contain at least one.
func NewCredentialStore(pin string, seq []int) (*CredentialStore, error) {
	if err := pattern.ValidateSequence(seq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	stored := make([]int, len(seq))
	copy(stored, seq)
	return &CredentialStore{pin: pin, pattern: stored}, nil
}

// ProvisionPassword sets the session password. It fails with
// ErrAlreadyProvisioned on any call after the first success.
func (s *CredentialStore) ProvisionPassword(value string) error {
	if s.provisioned {
		return ErrAlreadyProvisioned
	}
	if value == "" {
		return ErrEmptyPassword
	}
	s.password = value
	s.provisioned = true
	return nil
}

// IsPasswordProvisioned reports whether a password has been set.
func (s *CredentialStore) IsPasswordProvisioned() bool {
	return s.provisioned
}

// PatternLength returns the number of nodes in the stored pattern.
func (s *CredentialStore) PatternLength() int {
	return len(s.pattern)
}

// Matches compares submitted against the stored credential for m.
// Comparison is exact: no trimming, case folding or partial credit.
// A password check before provisioning fails with ErrNotProvisioned.
func (s *CredentialStore) Matches(m Modality, submitted Credential) (bool, error) {
	switch m {
	case ModalityPassword:
		if !s.provisioned {
			return false, ErrNotProvisioned
		}
		return equalText(s.password, submitted.Text), nil
	case ModalityPIN:
		return equalText(s.pin, submitted.Text), nil
	case ModalityPattern:
		return equalSequence(s.pattern, submitted.Pattern), nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownModality, int(m))
	}
}

func equalText(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func equalSequence(want, got []int) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
