// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package lock implements the screen-lock authentication engine.

# Key Types

  - Modality: closed set of credential kinds (password, PIN, pattern)
  - CredentialStore: correct credentials; the password is write-once
  - AttemptLimiter: failure counter with a fixed maximum
  - Engine: state machine combining the three with a pattern.Recognizer
  - Outcome: result of a verification (granted, denied, configuration error)

# Lifecycle

An Engine starts in StateActive. A matching credential moves it to
StateGranted; a mismatch that exhausts the attempt limit moves it to
StateLockedOut. Both are terminal and any later Verify returns
ErrInvalidState. Failures are never forgiven, not even by a later match.

# Usage

	store, err := lock.NewCredentialStore("1234", []int{1, 2, 3, 4})
	if err != nil {
	    return err
	}
	engine := lock.NewEngine(store, lock.WithAttemptLimit(5))

	out, err := engine.Verify(lock.ModalityPIN, lock.TextCredential("0000"))
	// out.Kind == lock.OutcomeDenied, out.Remaining == 4

Password checks require ProvisionPassword first; until then Verify returns
OutcomeConfigurationError and no attempt is consumed.
*/
package lock
