// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command execution for applock.
//
// # Key Types
//
//   - Command: The command to run (lock screen, plain mode, config, version, help)
//   - Args: Parsed global flags and command arguments
//   - ArgParser: Flag and positional argument parsing shared by all commands
//   - PlainSession: Line-mode lock prompt driving a lock.Engine
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	cfg, err := cli.LoadConfig(args)
//	engine, err := cli.NewEngine(cfg, logger)
//	state, err := cli.RunTUI(engine, cfg)
//	os.Exit(cli.ExitCode(state, err))
package cli
