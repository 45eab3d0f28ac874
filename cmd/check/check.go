// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package check implements the data preflight command. It reads every data
// file the sampler depends on and reports which ones are missing or
// malformed, so a broken sweep fails before 31 processes are launched.
package check

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/mwpot14/mwsweep/internal/dataset"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	dataDirFlag = "data-dir"
	dsinlFlag   = "dsinl"

	defaultDataDir = "mwpot14data"
)

// FsFactory returns the filesystem the data files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// CheckCmd is the command that validates the sampler's input data files.
var CheckCmd = New()

// New returns a fresh check command.
func New() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Description: "Read every input data file and report missing or malformed ones.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    dataDirFlag,
				Aliases: []string{"d"},
				Usage:   "Directory containing the input data files",
				Value:   defaultDataDir,
			},
			&cli.FloatFlag{
				Name:  dsinlFlag,
				Usage: "Correlation length in sin(l) for the terminal velocity data",
				Value: dataset.DefaultDSinL,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String(dataDirFlag)
	dsinl := cmd.Float(dsinlFlag)
	fsys := FsFactory()

	var merr *multierror.Error

	if kz, err := dataset.ReadBovyRix13Kz(fsys, dir); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", dataset.BovyRix13File, err))
	} else {
		fmt.Fprintf(cmd.Writer, "%-26s %d rows\n", dataset.BovyRix13File, len(kz.SurfRs))
	}

	type termVelCheck struct {
		file string
		read func(afero.Fs, string, float64) (dataset.TermVelData, error)
	}

	for _, c := range []termVelCheck{
		{dataset.ClemensFile, dataset.ReadClemens},
		{dataset.McClureGriffiths07File, dataset.ReadMcClureGriffiths07},
		{dataset.McClureGriffiths16File, dataset.ReadMcClureGriffiths16},
	} {
		tv, err := c.read(fsys, dir, dsinl)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", c.file, err))
			continue
		}

		fmt.Fprintf(cmd.Writer, "%-26s %d longitude bins\n", c.file, len(tv.Glon))
	}

	if err := merr.ErrorOrNil(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(cmd.Writer, "all data files ok")

	return nil
}
