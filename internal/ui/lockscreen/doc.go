// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lockscreen provides the bubbletea lock screen for applock.
//
// The screen is a thin presentation layer over lock.Engine: it forwards
// modality selection, password provisioning, text submissions and pattern
// gestures, and renders whatever outcome the engine reports.
//
// # Pattern Input
//
// The 3x3 grid is drawn with node 1's center at a fixed cell. Mouse
// events are converted from terminal cells into the recognizer's
// coordinate space, so hit testing stays in the engine. Typing a node
// digit while Pattern is selected feeds that node's center instead.
// A left press always starts a new gesture.
//
// Cell mapping assumes the view starts at the top row, which only holds
// in the alt screen. Inline programs should pass WithMouse(false).
//
// # Usage
//
//	m := lockscreen.New(engine, lockscreen.WithCellSpacing(10, 5))
//	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	final, err := p.Run()
package lockscreen
