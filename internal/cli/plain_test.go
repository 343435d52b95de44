// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jeranaias/applock/internal/lock"
)

// scriptedInput answers prompts from a fixed script and reports io.EOF
// once it runs out. It serves as both LineReader and SecretReader.
type scriptedInput struct {
	answers []string
	prompts []string
}

func (s *scriptedInput) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

func (s *scriptedInput) ReadSecret(prompt string) (string, error) {
	return s.Prompt(prompt)
}

func newPlainEngine(t *testing.T, attempts int) *lock.Engine {
	t.Helper()
	store, err := lock.NewCredentialStore("1234", []int{1, 2, 3, 4})
	require.NoError(t, err)
	return lock.NewEngine(store,
		lock.WithAttemptLimit(attempts),
		lock.WithLogger(zaptest.NewLogger(t)),
	)
}

func runScript(t *testing.T, engine *lock.Engine, answers ...string) (lock.State, string, error) {
	t.Helper()
	in := &scriptedInput{answers: answers}
	var out bytes.Buffer
	state, err := NewPlainSession(engine, in, in, &out).Run()
	return state, out.String(), err
}

func TestPlainSession_GrantByPIN(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, out, err := runScript(t, engine, "pin", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
	assert.Contains(t, out, "Access granted!")
}

func TestPlainSession_EmptyChoiceKeepsCurrentMethod(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, _, err := runScript(t, engine, "", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
}

func TestPlainSession_Lockout(t *testing.T) {
	engine := newPlainEngine(t, 2)

	state, out, err := runScript(t, engine, "pin", "0000", "pin", "1111", "pin", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateLockedOut, state)
	assert.Contains(t, out, "1 attempt left.")
	assert.Contains(t, out, "Maximum attempts reached.")
	assert.Equal(t, 0, engine.Remaining())
}

func TestPlainSession_PasswordProvisioning(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, out, err := runScript(t, engine, "password", "hunter2", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
	assert.Contains(t, out, "Password set.")
	assert.True(t, engine.IsPasswordProvisioned())
}

func TestPlainSession_WrongPasswordAfterProvisioning(t *testing.T) {
	engine := newPlainEngine(t, 3)

	_, out, err := runScript(t, engine, "password", "hunter2", "nope")
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, out, "2 attempts left.")
	assert.Equal(t, 2, engine.Remaining())
}

func TestPlainSession_CancelProvisioningFallsBackToPIN(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, out, err := runScript(t, engine, "password", "", "", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
	assert.Contains(t, out, "Password not set. Switched to PIN.")
	assert.False(t, engine.IsPasswordProvisioned())
	assert.Equal(t, 3, engine.Remaining())
}

func TestPlainSession_Pattern(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, _, err := runScript(t, engine, "pattern", "1-2-3-4")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
}

func TestPlainSession_WrongPatternIsCleared(t *testing.T) {
	engine := newPlainEngine(t, 3)

	_, out, err := runScript(t, engine, "pattern", "1 5 9")
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, out, "2 attempts left.")
	assert.Empty(t, engine.CurrentPattern())
}

func TestPlainSession_UnreadablePatternUsesNoAttempt(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, out, err := runScript(t, engine, "pattern", "one-two", "pattern", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
	assert.Contains(t, out, "Type node numbers 1-9")
	assert.Equal(t, 3, engine.Remaining())
}

func TestPlainSession_UnknownMethod(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, out, err := runScript(t, engine, "retina", "pin", "1234")
	require.NoError(t, err)
	assert.Equal(t, lock.StateGranted, state)
	assert.Contains(t, out, `Unknown method "retina".`)
}

func TestPlainSession_Quit(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, _, err := runScript(t, engine, "q")
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, lock.StateActive, state)
	assert.Equal(t, ExitAborted, ExitCode(state, err))
}

func TestPlainSession_EndOfInput(t *testing.T) {
	engine := newPlainEngine(t, 3)

	state, _, err := runScript(t, engine)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, lock.StateActive, state)
}

func TestInputErr(t *testing.T) {
	assert.ErrorIs(t, inputErr(io.EOF), ErrAborted)
	assert.ErrorIs(t, inputErr(liner.ErrPromptAborted), ErrAborted)

	boom := errors.New("boom")
	err := inputErr(boom)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAborted)
}

func TestRenderOutcome(t *testing.T) {
	assert.Contains(t, renderOutcome(lock.Outcome{Kind: lock.OutcomeGranted, Terminal: true}), "[OK]")
	assert.Contains(t, renderOutcome(lock.Outcome{Kind: lock.OutcomeDenied, Terminal: true}), "[#]")
	assert.Contains(t, renderOutcome(lock.Outcome{Kind: lock.OutcomeDenied, Remaining: 2}), "[X]")
	assert.Contains(t, renderOutcome(lock.Outcome{Kind: lock.OutcomeConfigurationError}), "[!]")
}
