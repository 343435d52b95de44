// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"go.uber.org/zap"

	"github.com/jeranaias/applock/internal/config"
	"github.com/jeranaias/applock/internal/lock"
)

// NewEngine builds a lock engine from cfg. The password starts
// unprovisioned.
func NewEngine(cfg *config.Config, logger *zap.Logger) (*lock.Engine, error) {
	store, err := lock.NewCredentialStore(cfg.Lock.PIN, cfg.Lock.Pattern)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	grid, err := cfg.BuildGrid()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	return lock.NewEngine(store,
		lock.WithAttemptLimit(cfg.Lock.MaxAttempts),
		lock.WithGrid(grid),
		lock.WithLogger(logger),
		lock.WithInitialModality(cfg.InitialModality()),
	), nil
}
