// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/mwpot14/mwsweep/cmd/check"
	"github.com/mwpot14/mwsweep/cmd/config"
	"github.com/mwpot14/mwsweep/cmd/plan"
	"github.com/mwpot14/mwsweep/cmd/run"
	"github.com/urfave/cli/v3"
)

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		plan.PlanCmd,
		check.CheckCmd,
		config.ConfigCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "mwsweep",
	Description: `mwsweep launches the Milky Way potential-fit MCMC sweep: a fixed
number of parallel invocations of the external sampler, each selecting one
input by index and writing one distinct output file. The launcher starts
every job at once, waits at a single barrier for all of them to terminate,
and exits. With no configuration file it reproduces the original 31-job
fit-sigma sweep exactly.`,
	Usage:                 "mwsweep run [-f sweep.yaml]",
	Version:               Version + " (" + Commit + ")",
	Copyright:             "Copyright (c) mwpot14 2025. All rights reserved.",
	EnableShellCompletion: true,
}
