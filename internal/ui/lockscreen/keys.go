// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lockscreen

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the lock screen.
// Plain digits are left to the PIN field and to keyboard pattern drawing,
// so modality selection uses alt-digits and tab.
type KeyMap struct {
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Choose   key.Binding
	Draw     key.Binding
	Clear    key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Continue key.Binding
}

// DefaultKeyMap returns the default key bindings for the lock screen.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "unlock"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next method"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous method"),
		),
		Choose: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3"),
			key.WithHelp("A-1/2/3", "password/PIN/pattern"),
		),
		Draw: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "draw node"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "clear"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", "esc", " ", "q"),
			key.WithHelp("Enter", "exit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Draw, k.Cancel, k.Continue, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded footer.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Cancel, k.Continue},
		{k.Next, k.Prev, k.Choose},
		{k.Draw, k.Help, k.Quit},
	}
}

// modeText enables the bindings used while a text field has focus.
func (k *KeyMap) modeText() {
	k.setAll(true)
	k.Draw.SetEnabled(false)
	k.Cancel.SetEnabled(false)
	k.Continue.SetEnabled(false)
}

// modePattern enables the bindings used on the pattern canvas.
func (k *KeyMap) modePattern() {
	k.setAll(true)
	k.Cancel.SetEnabled(false)
	k.Continue.SetEnabled(false)
}

// modeProvision enables the bindings used by the password prompt.
func (k *KeyMap) modeProvision() {
	k.setAll(false)
	k.Submit.SetEnabled(true)
	k.Cancel.SetEnabled(true)
	k.Help.SetEnabled(true)
	k.Quit.SetEnabled(true)
}

// modeDone leaves only the exit bindings after a terminal outcome.
func (k *KeyMap) modeDone() {
	k.setAll(false)
	k.Continue.SetEnabled(true)
	k.Quit.SetEnabled(true)
}

func (k *KeyMap) setAll(on bool) {
	for _, b := range []*key.Binding{
		&k.Submit, &k.Next, &k.Prev, &k.Choose, &k.Draw,
		&k.Clear, &k.Cancel, &k.Help, &k.Quit, &k.Continue,
	} {
		b.SetEnabled(on)
	}
}
