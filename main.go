// applock - A terminal screen lock with password, PIN and pattern unlock.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/jeranaias/applock/internal/cli"
	"github.com/jeranaias/applock/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code.
func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		cli.PrintUsage(os.Stderr)
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitGranted
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitGranted
	case cli.CmdConfig:
		if err := cli.HandleConfig(os.Stdout, args); err != nil {
			// validate already printed its report
			if args.Subcommand != "validate" {
				cli.DisplayError(os.Stderr, err)
			}
			return cli.GetExitCode(err)
		}
		return cli.ExitGranted
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		cli.DisplayError(os.Stderr, &cli.ConfigError{Err: err})
		return cli.ExitConfigError
	}
	defer logger.Sync() //nolint:errcheck

	engine, err := cli.NewEngine(cfg, logger)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	state := engine.State()
	if cmd == cli.CmdPlain {
		state, err = cli.RunPlain(engine, os.Stdout)
	} else {
		state, err = cli.RunTUI(engine, cfg)
	}

	code := cli.ExitCode(state, err)
	logger.Info("lock session ended",
		zap.String("session_id", engine.SessionID()),
		zap.Stringer("state", state),
		zap.Int("exit_code", code),
	)
	if err != nil && code != cli.ExitAborted {
		cli.DisplayError(os.Stderr, err)
	}
	return code
}
