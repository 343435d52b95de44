// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the lock screen.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// CONTAINER STYLES
	// ==========================================================================

	App   lipgloss.Style
	Panel lipgloss.Style
	Title lipgloss.Style

	// ==========================================================================
	// MODALITY TABS
	// ==========================================================================

	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabDisabled lipgloss.Style

	// ==========================================================================
	// INPUT STYLES
	// ==========================================================================

	InputLabel  lipgloss.Style
	InputPrompt lipgloss.Style
	InputHint   lipgloss.Style

	// ==========================================================================
	// PATTERN GRID
	// ==========================================================================

	NodeIdle    lipgloss.Style
	NodeVisited lipgloss.Style
	NodeLast    lipgloss.Style
	PathText    lipgloss.Style

	// ==========================================================================
	// STATUS
	// ==========================================================================

	Attempts       lipgloss.Style
	AttemptsLow    lipgloss.Style
	ProvisionTitle lipgloss.Style
	ProvisionBox   lipgloss.Style
	Footer         lipgloss.Style
}

// NewTheme creates a new theme with terminal capability detection.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the style definitions.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Padding(1, 2)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)

	t.Title = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.TabDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true).
		Padding(0, 1)

	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.NodeIdle = lipgloss.NewStyle().
		Foreground(NodeIdle)

	t.NodeVisited = lipgloss.NewStyle().
		Foreground(NodeVisited).
		Bold(true)

	t.NodeLast = lipgloss.NewStyle().
		Foreground(NodeLast).
		Bold(true)

	t.PathText = lipgloss.NewStyle().
		Foreground(Cyan)

	t.Attempts = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.AttemptsLow = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ProvisionTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ProvisionBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Amber).
		Padding(0, 2)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginTop(1)
}

// SetSize updates the theme dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Compact reports whether the terminal is too narrow for the bordered panel.
func (t *Theme) Compact() bool {
	return t.Width > 0 && t.Width < 50
}
