// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

import "errors"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrAlreadyProvisioned is returned when a password was already set this session.
	// Callers recover by keeping the existing password.
	ErrAlreadyProvisioned = errors.New("lock: password already provisioned")

	// ErrNotProvisioned is returned when a password check runs before a password was set.
	// This is a configuration problem, not a denial.
	ErrNotProvisioned = errors.New("lock: password not provisioned")

	// ErrInvalidState is returned when the engine is asked to act after a
	// terminal outcome. It indicates a bug in the presentation layer.
	ErrInvalidState = errors.New("lock: engine is in a terminal state")

	// ErrInvalidPattern is returned when a stored pattern is malformed.
	ErrInvalidPattern = errors.New("lock: invalid pattern")

	// ErrEmptyPassword is returned when provisioning an empty password.
	ErrEmptyPassword = errors.New("lock: password must not be empty")

	// ErrUnknownModality is returned for a modality outside the closed set.
	ErrUnknownModality = errors.New("lock: unknown modality")
)
