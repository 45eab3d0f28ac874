// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the commands for working with sweep definition
// files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mwpot14/mwsweep/internal/config"
	"github.com/mwpot14/mwsweep/internal/getter"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag  = "file"
	forceFlag = "force"

	defaultInitFile = "sweep.yaml"
	initFileMode    = 0o644
)

var (
	// ErrFileExists is returned when init would overwrite an existing file.
	ErrFileExists = errors.New("file already exists (use --force to overwrite)")
	// ErrFetchDefinition is returned when the sweep definition cannot be fetched.
	ErrFetchDefinition = errors.New("failed to fetch sweep definition")
)

// ConfigCmd groups the sweep definition file commands.
var ConfigCmd = New()

// New returns a fresh config command tree.
func New() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Work with sweep definition files",
		Commands: []*cli.Command{
			newInitCmd(),
			newShowCmd(),
		},
	}
}

// newInitCmd builds the command that writes the built-in sweep definition
// to a YAML file, giving a starting point to edit.
func newInitCmd() *cli.Command {
	return &cli.Command{
		Name:        "init",
		Description: "Write the built-in sweep definition to a YAML file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "File to write",
				Value:     defaultInitFile,
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:        forceFlag,
				Usage:       "Overwrite the file if it exists",
				DefaultText: "false",
			},
		},
		Action: initAction,
	}
}

// newShowCmd builds the command that prints the effective sweep definition:
// the defaults, or the given file parsed and merged over them.
func newShowCmd() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Description: "Print the effective sweep definition as YAML.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Sweep definition file (YAML or HCL, local path or go-getter URL)",
				TakesFile: true,
			},
		},
		Action: showAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	fileName := cmd.String(fileFlag)

	if !cmd.Bool(forceFlag) {
		if _, err := os.Stat(fileName); err == nil {
			return cli.Exit(fmt.Sprintf("%s: %s", fileName, ErrFileExists), 1)
		}
	}

	data, err := config.Default().ToYAML()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := os.WriteFile(fileName, data, initFileMode); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Subcommands do not inherit the Writer set on the config command, so
	// resolve it through the root.
	fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", fileName)

	return nil
}

func showAction(ctx context.Context, cmd *cli.Command) error {
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

	out, err := def.ToYAML()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprint(cmd.Root().Writer, string(out))

	return nil
}
