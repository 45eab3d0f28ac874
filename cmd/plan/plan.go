// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan implements the command that prints the sweep invocation list.
package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwpot14/mwsweep/internal/config"
	"github.com/mwpot14/mwsweep/internal/getter"
	"github.com/mwpot14/mwsweep/internal/sweep"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag      = "file"
	jobsFlag      = "jobs"
	outputDirFlag = "output-dir"
)

// ErrFetchDefinition is returned when the sweep definition cannot be fetched.
var ErrFetchDefinition = errors.New("failed to fetch sweep definition")

// PlanCmd is the command that prints every command line the sweep would run,
// without starting anything.
var PlanCmd = New()

// New returns a fresh plan command.
func New() *cli.Command {
	return &cli.Command{
		Name:        "plan",
		Description: "Print the full invocation list for the sweep without running it.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Sweep definition file (YAML or HCL, local path or go-getter URL)",
				TakesFile: true,
			},
			&cli.IntFlag{
				Name:    jobsFlag,
				Aliases: []string{"n"},
				Usage:   "Override the number of jobs in the sweep",
			},
			&cli.StringFlag{
				Name:  outputDirFlag,
				Usage: "Override the directory that output files are written to",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	def := config.Default()

	if fileName := cmd.String(fileFlag); fileName != "" {
		data, err := getter.Fetch(ctx, fileName)
		if err != nil {
			return cli.Exit(errors.Join(ErrFetchDefinition, err).Error(), 1)
		}

		def, err = config.Load(fileName, data)
		if err != nil {
			return cli.Exit(errors.Join(ErrFetchDefinition, err).Error(), 1)
		}
	}

	if cmd.IsSet(jobsFlag) {
		def.Jobs = cmd.Int(jobsFlag)
	}

	if cmd.IsSet(outputDirFlag) {
		def.OutputDir = cmd.String(outputDirFlag)
	}

	plan, err := def.Plan()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintf(cmd.Writer, "%s: %d jobs\n", plan.Name, len(plan.Jobs))

	for _, job := range plan.Jobs {
		fmt.Fprintf(cmd.Writer, "%3d  %s\n", job.Index, sweep.Shellwords(job.Argv(plan.Program)))
	}

	return nil
}
