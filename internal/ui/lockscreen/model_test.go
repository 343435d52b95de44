// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lockscreen

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jeranaias/applock/internal/lock"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// =============================================================================
// HELPERS
// =============================================================================

func newEngine(t *testing.T, opts ...lock.EngineOption) *lock.Engine {
	t.Helper()
	store, err := lock.NewCredentialStore("1234", []int{1, 2, 3, 4})
	require.NoError(t, err)
	opts = append([]lock.EngineOption{
		lock.WithLogger(zaptest.NewLogger(t)),
		lock.WithAttemptLimit(3),
	}, opts...)
	return lock.NewEngine(store, opts...)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func alt(s string) tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true} }
func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

var enter = keyOf(tea.KeyEnter)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// mouseAt returns a mouse message over the center of node id, shaped the
// way bubbletea reports it: drags carry the held button with a motion
// action, releases carry no button.
func mouseAt(m Model, id int, action tea.MouseAction) tea.MouseMsg {
	originCol, originRow := m.canvasOrigin()
	col, row := m.canvas.nodeCell(id)
	return mouseCell(originCol+col, originRow+row, action)
}

func mouseCell(x, y int, action tea.MouseAction) tea.MouseMsg {
	msg := tea.MouseMsg{X: x, Y: y, Action: action}
	switch action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		msg.Button = tea.MouseButtonLeft
		msg.Type = tea.MouseLeft
	case tea.MouseActionRelease:
		msg.Type = tea.MouseRelease
	}
	return msg
}

const (
	press   = tea.MouseActionPress
	drag    = tea.MouseActionMotion
	release = tea.MouseActionRelease
)

// =============================================================================
// TEXT MODALITIES
// =============================================================================

func TestModel_StartsOnPIN(t *testing.T) {
	m := New(newEngine(t))
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	assert.True(t, m.input.Focused())
	assert.False(t, m.provisioning)
	assert.Contains(t, m.View(), "Enter PIN")
	assert.Contains(t, m.View(), "Attempts left: 3 of 3")
}

func TestModel_CorrectPINGrants(t *testing.T) {
	m := New(newEngine(t))

	m, cmd := send(t, m, runes("1234"), enter)
	assert.False(t, isQuit(cmd))
	assert.True(t, m.done)
	assert.Equal(t, lock.StateGranted, m.State())
	assert.Contains(t, m.View(), "Access granted!")

	// Any other key is ignored; continue exits.
	m, cmd = send(t, m, runes("x"))
	assert.False(t, isQuit(cmd))
	_, cmd = send(t, m, enter)
	assert.True(t, isQuit(cmd))
}

func TestModel_WrongPINDenies(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, runes("0000"), enter)
	assert.False(t, m.done)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 2, m.engine.Remaining())
	assert.Contains(t, m.View(), "Access denied! Try again. 2 attempts left.")
}

func TestModel_InputIsMasked(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, runes("9876"))
	assert.Equal(t, "9876", m.input.Value())
	assert.NotContains(t, m.View(), "9876")
}

func TestModel_LockoutIsTerminal(t *testing.T) {
	m := New(newEngine(t))

	for i := 0; i < 3; i++ {
		m, _ = send(t, m, runes("1111"), enter)
	}
	assert.True(t, m.done)
	assert.Equal(t, lock.StateLockedOut, m.State())
	assert.Contains(t, m.View(), "Maximum attempts reached")

	// Selection is frozen once locked out.
	m, _ = send(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	_, cmd := send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestModel_CtrlCQuits(t *testing.T) {
	_, cmd := send(t, New(newEngine(t)), keyOf(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
}

func TestModel_ClearResetsInput(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, runes("12"), keyOf(tea.KeyCtrlU))
	assert.Empty(t, m.input.Value())
}

// =============================================================================
// MODALITY SELECTION
// =============================================================================

func TestModel_TabCyclesModalities(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, lock.ModalityPattern, m.engine.Modality())
	assert.False(t, m.input.Focused())

	m, _ = send(t, m, keyOf(tea.KeyShiftTab))
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	assert.True(t, m.input.Focused())
}

func TestModel_AltDigitsSelect(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("3"))
	assert.Equal(t, lock.ModalityPattern, m.engine.Modality())

	m, _ = send(t, m, alt("2"))
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	// Plain digits were not consumed by selection.
	m, _ = send(t, m, runes("3"))
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	assert.Equal(t, "3", m.input.Value())
}

func TestModel_SwitchingKeepsAttempts(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, runes("9999"), enter, alt("3"), alt("2"))
	assert.Equal(t, 2, m.engine.Remaining())
}

// =============================================================================
// PASSWORD PROVISIONING
// =============================================================================

func TestModel_SelectingPasswordOpensPrompt(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("1"))
	assert.True(t, m.provisioning)
	assert.True(t, m.provision.Focused())
	assert.Equal(t, lock.ModalityPassword, m.engine.Modality())
	assert.Contains(t, m.View(), "Set a password for this session")
}

func TestModel_CancelProvisioningRevertsToPIN(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("1"), runes("abc"), keyOf(tea.KeyEsc))
	assert.False(t, m.provisioning)
	assert.Equal(t, lock.ModalityPIN, m.engine.Modality())
	assert.False(t, m.engine.IsPasswordProvisioned())
	assert.Equal(t, 3, m.engine.Remaining())
	assert.Contains(t, m.View(), "Password not set. Switched to PIN.")
}

func TestModel_ProvisionThenUnlock(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("1"), enter)
	assert.True(t, m.provisioning, "empty password keeps the prompt open")
	assert.Contains(t, m.View(), "Password must not be empty.")

	m, _ = send(t, m, runes("hunter2"), enter)
	assert.False(t, m.provisioning)
	assert.True(t, m.engine.IsPasswordProvisioned())
	assert.True(t, m.input.Focused())

	m, _ = send(t, m, runes("hunter3"), enter)
	assert.Equal(t, 2, m.engine.Remaining())

	m, _ = send(t, m, runes("hunter2"), enter)
	assert.Equal(t, lock.StateGranted, m.State())
}

func TestModel_InitialPasswordModalityPrompts(t *testing.T) {
	m := New(newEngine(t, lock.WithInitialModality(lock.ModalityPassword)))
	assert.True(t, m.provisioning)
}

func TestModel_ReselectingProvisionedPasswordSkipsPrompt(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("1"), runes("pw"), enter, alt("2"), alt("1"))
	assert.False(t, m.provisioning)
	assert.Equal(t, lock.ModalityPassword, m.engine.Modality())
}

// =============================================================================
// PATTERN
// =============================================================================

func TestModel_KeyboardPattern(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("3"), runes("1"), runes("2"), runes("3"))
	assert.Equal(t, []int{1, 2, 3}, m.engine.CurrentPattern())
	assert.Contains(t, m.View(), "1-2-3")

	m, _ = send(t, m, runes("4"), enter)
	assert.Equal(t, lock.StateGranted, m.State())
}

func TestModel_MousePattern(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"))

	m, _ = send(t, m,
		mouseAt(m, 1, press),
		mouseAt(m, 2, drag),
		mouseAt(m, 3, drag),
		mouseAt(m, 4, drag),
		mouseAt(m, 4, release),
	)
	assert.Equal(t, []int{1, 2, 3, 4}, m.engine.CurrentPattern())
	assert.False(t, m.engine.Recognizer().Active())

	m, _ = send(t, m, enter)
	assert.Equal(t, lock.StateGranted, m.State())
}

func TestModel_MouseMissAndMotionWithoutPress(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"))

	m, _ = send(t, m, mouseAt(m, 5, drag))
	assert.Empty(t, m.engine.CurrentPattern())

	m, _ = send(t, m, mouseCell(0, 0, press))
	assert.Empty(t, m.engine.CurrentPattern())
	assert.True(t, m.engine.Recognizer().Active())
}

func TestModel_MouseIgnoredForTextModalities(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, mouseAt(m, 1, press))
	assert.False(t, m.engine.Recognizer().Active())
	assert.Empty(t, m.engine.CurrentPattern())
}

func TestModel_WrongPatternClears(t *testing.T) {
	m := New(newEngine(t))

	m, _ = send(t, m, alt("3"), runes("9"), runes("8"), enter)
	assert.Empty(t, m.engine.CurrentPattern())
	assert.Equal(t, 2, m.engine.Remaining())
	assert.Contains(t, m.View(), "2 attempts left")
}

func TestModel_ClearPattern(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"), runes("5"), runes("6"), keyOf(tea.KeyCtrlU))
	assert.Empty(t, m.engine.CurrentPattern())
	assert.Equal(t, 3, m.engine.Remaining())
}

func TestModel_NewPressStartsNewGesture(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"))
	m, _ = send(t, m,
		mouseAt(m, 7, press),
		mouseAt(m, 7, release),
		mouseAt(m, 1, press),
		mouseAt(m, 5, drag),
	)
	assert.Equal(t, []int{1, 5}, m.engine.CurrentPattern())
}

func TestModel_PressDiscardsKeyboardGesture(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"), runes("9"), runes("8"))
	require.Equal(t, []int{9, 8}, m.engine.CurrentPattern())

	m, _ = send(t, m,
		mouseAt(m, 1, press),
		mouseAt(m, 2, drag),
		mouseAt(m, 3, drag),
		mouseAt(m, 4, drag),
		mouseAt(m, 4, release),
	)
	assert.Equal(t, []int{1, 2, 3, 4}, m.engine.CurrentPattern())

	m, _ = send(t, m, enter)
	assert.Equal(t, lock.StateGranted, m.State())
	assert.Equal(t, 3, m.engine.Remaining())
}

func TestModel_ReleaseWithoutPressKeepsKeyboardGesture(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"), runes("1"), runes("2"))
	m, _ = send(t, m, mouseAt(m, 5, release), mouseAt(m, 5, drag), runes("3"))
	assert.Equal(t, []int{1, 2, 3}, m.engine.CurrentPattern())
}

func TestModel_RightButtonIgnored(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, alt("3"))

	msg := mouseAt(m, 1, press)
	msg.Button = tea.MouseButtonRight
	m, _ = send(t, m, msg)
	assert.False(t, m.engine.Recognizer().Active())
	assert.Empty(t, m.engine.CurrentPattern())
}

func TestModel_MouseDisabled(t *testing.T) {
	m := New(newEngine(t), WithMouse(false))
	assert.False(t, m.MouseEnabled())
	m, _ = send(t, m, alt("3"))
	assert.Contains(t, m.View(), "type node numbers 1-9")
	assert.NotContains(t, m.View(), "mouse")

	m, _ = send(t, m, mouseAt(m, 1, press), mouseAt(m, 2, drag), mouseAt(m, 2, release))
	assert.Empty(t, m.engine.CurrentPattern())

	m, _ = send(t, m, runes("1"), runes("2"), runes("3"), runes("4"), enter)
	assert.Equal(t, lock.StateGranted, m.State())
}

// =============================================================================
// MISC
// =============================================================================

func TestModel_EngineAlreadyTerminal(t *testing.T) {
	engine := newEngine(t)
	_, err := engine.Submit("1234")
	require.NoError(t, err)

	m := New(engine)
	assert.True(t, m.done)
	_, cmd := send(t, m, enter)
	assert.True(t, isQuit(cmd))
}

func TestModel_EngineErrorIsFatal(t *testing.T) {
	engine := newEngine(t)
	m := New(engine)

	_, err := engine.Submit("1234")
	require.NoError(t, err)

	m, cmd := send(t, m, runes("1234"), enter)
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), lock.ErrInvalidState)
}

func TestModel_NoticeTruncatedToWidth(t *testing.T) {
	m := New(newEngine(t))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 20}, runes("0"), enter)
	assert.Contains(t, m.noticeView(), "...")
	assert.NotContains(t, m.noticeView(), "attempts left.")
}

func TestModel_HelpToggle(t *testing.T) {
	m := New(newEngine(t))
	assert.Contains(t, m.View(), "unlock")

	m, _ = send(t, m, keyOf(tea.KeyF1))
	assert.True(t, m.help.ShowAll)

	m = New(newEngine(t), WithHelp(false))
	assert.NotContains(t, m.View(), "unlock")
}
