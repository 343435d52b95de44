// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/applock/internal/config"
	"github.com/jeranaias/applock/internal/lock"
	"github.com/jeranaias/applock/internal/ui/lockscreen"
)

// RunTUI shows the lock screen until the user unlocks, is locked out,
// or quits.
func RunTUI(engine *lock.Engine, cfg *config.Config) (lock.State, error) {
	if err := RequiresTTY("show the lock screen"); err != nil {
		return engine.State(), err
	}
	if w, h := GetTerminalSize(); w < MinTerminalWidth || h < MinTerminalHeight {
		return engine.State(), &CommandError{
			Command: "tui",
			Action:  "start",
			Reason:  fmt.Sprintf("terminal is %dx%d, need at least %dx%d (try 'applock plain')", w, h, MinTerminalWidth, MinTerminalHeight),
		}
	}

	screenOpts, programOpts := tuiOptions(cfg)
	m := lockscreen.New(engine, screenOpts...)

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return engine.State(), &CommandError{Command: "tui", Action: "run", Reason: "terminal program failed", Err: err}
	}
	if fm, ok := final.(lockscreen.Model); ok && fm.Err() != nil {
		return engine.State(), fm.Err()
	}
	return engine.State(), nil
}

// tuiOptions returns the lock screen and program options for cfg. Mouse
// cells are only mapped onto the canvas in the alt screen, where the view
// starts at the top row. Inline rendering starts wherever the cursor was,
// so without the alt screen the pattern is drawn from the keyboard only.
func tuiOptions(cfg *config.Config) ([]lockscreen.Option, []tea.ProgramOption) {
	screenOpts := []lockscreen.Option{
		lockscreen.WithCellSpacing(cfg.Terminal.ColumnsPerGap, cfg.Terminal.RowsPerGap),
		lockscreen.WithHelp(cfg.UI.ShowHelp),
		lockscreen.WithMouse(cfg.UI.AltScreen),
	}

	var programOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	return screenOpts, programOpts
}
