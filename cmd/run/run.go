// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the command that launches the sweep.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mwpot14/mwsweep/internal/config"
	"github.com/mwpot14/mwsweep/internal/ctxlog"
	"github.com/mwpot14/mwsweep/internal/getter"
	"github.com/mwpot14/mwsweep/internal/progress"
	"github.com/mwpot14/mwsweep/internal/sweep"
	"github.com/mwpot14/mwsweep/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag      = "file"
	jobsFlag      = "jobs"
	outputDirFlag = "output-dir"
	summaryFlag   = "summary"
	tuiFlag       = "tui"
	dryRunFlag    = "dry-run"

	eventBufferSize = 256
)

var (
	// ErrFetchDefinition is returned when the sweep definition cannot be fetched.
	ErrFetchDefinition = errors.New("failed to fetch sweep definition")
	// ErrBuildPlan is returned when the sweep plan cannot be built.
	ErrBuildPlan = errors.New("failed to build sweep plan")
	// ErrOutputDir is returned when the output directory cannot be created.
	ErrOutputDir = errors.New("failed to create output directory")
)

// RunCmd is the command that launches all sweep jobs and waits for them.
var RunCmd = New()

// New returns a fresh run command. Commands hold parse state, so tests
// build a new one per invocation.
func New() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Description: "Launch every job in the sweep at once and wait for all of them to finish.",
		Flags:       runFlags(),
		Action:      actionFunc,
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
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
		&cli.BoolFlag{
			Name:        summaryFlag,
			Usage:       "Print a per-job result summary and exit non-zero if any job failed",
			DefaultText: "false",
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t"},
			Usage:       "Show live job status in a full-screen interface",
			DefaultText: "false",
		},
		&cli.BoolFlag{
			Name:        dryRunFlag,
			Usage:       "Print the commands that would run without starting them",
			DefaultText: "false",
		},
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	def, err := loadDefinition(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	plan, err := def.Plan()
	if err != nil {
		return cli.Exit(errors.Join(ErrBuildPlan, err).Error(), 1)
	}

	if cmd.Bool(dryRunFlag) {
		for _, job := range plan.Jobs {
			fmt.Fprintln(cmd.Writer, sweep.Shellwords(job.Argv(plan.Program)))
		}

		return nil
	}

	if err := os.MkdirAll(def.OutputDir, 0o755); err != nil {
		return cli.Exit(errors.Join(ErrOutputDir, err).Error(), 1)
	}

	if cmd.Bool(tuiFlag) {
		return runTUI(ctx, plan)
	}

	return runPlain(ctx, cmd, plan)
}

// loadDefinition resolves the effective sweep definition: the defaults,
// overlaid by the definition file if one was given, overlaid by flags.
func loadDefinition(ctx context.Context, cmd *cli.Command) (config.Definition, error) {
	def := config.Default()

	if fileName := cmd.String(fileFlag); fileName != "" {
		data, err := getter.Fetch(ctx, fileName)
		if err != nil {
			return def, errors.Join(ErrFetchDefinition, err)
		}

		def, err = config.Load(fileName, data)
		if err != nil {
			return def, errors.Join(ErrFetchDefinition, err)
		}
	}

	if cmd.IsSet(jobsFlag) {
		def.Jobs = cmd.Int(jobsFlag)
	}

	if cmd.IsSet(outputDirFlag) {
		def.OutputDir = cmd.String(outputDirFlag)
	}

	return def, nil
}

// runPlain launches the sweep with child stdio inherited from the launcher,
// logging lifecycle events as they arrive.
func runPlain(ctx context.Context, cmd *cli.Command, plan *sweep.Plan) error {
	batch := plan.Batch()

	reporter := progress.NewChannelReporter(ctx, eventBufferSize)
	batch.SetReporter(reporter)

	listenDone := make(chan struct{})

	go func() {
		defer close(listenDone)

		for ev := range reporter.Events() {
			logEvent(ctx, ev)
		}
	}()

	res := batch.Run(ctx)

	reporter.Close()
	<-listenDone

	if !cmd.Bool(summaryFlag) {
		// Job exit codes are deliberately not inspected here: the sweep is
		// complete once every job has terminated, whatever its status.
		return nil
	}

	opts := sweep.DefaultOutputOptions()
	opts.ShowSuccessDetails = true

	if err := res.WriteText(cmd.Writer, opts); err != nil {
		return cli.Exit("failed to write results: "+err.Error(), 1)
	}

	if res.HasFailure() {
		return cli.Exit("", 1)
	}

	return nil
}

// runTUI launches the sweep behind a full-screen status display. Child
// stdio is routed to the null device so process output cannot corrupt the
// display.
func runTUI(ctx context.Context, plan *sweep.Plan) error {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return cli.Exit("failed to open "+os.DevNull+": "+err.Error(), 1)
	}
	defer devNull.Close() //nolint:errcheck

	batch := plan.Batch()
	for _, r := range batch.Commands {
		if ps, ok := r.(*sweep.OSProcess); ok {
			ps.Stdout = devNull
			ps.Stderr = devNull
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logs buffer while the display owns the terminal and replay afterwards.
	logBuf := &lockedBuffer{}
	ctx = ctxlog.NewForTUI(ctx, logBuf)

	defer func() {
		if s := logBuf.String(); s != "" {
			fmt.Fprint(os.Stderr, s)
		}
	}()

	runner := tui.NewRunner(plan, cancel)

	res, err := runner.Run(ctx, batch)
	if err != nil {
		return cli.Exit("display error: "+err.Error(), 1)
	}

	opts := sweep.DefaultOutputOptions()
	if err := res.WriteText(os.Stdout, opts); err != nil {
		return cli.Exit("failed to write results: "+err.Error(), 1)
	}

	return nil
}

// lockedBuffer is a concurrency-safe byte buffer. Jobs log from their own
// goroutines while the display owns the terminal.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func logEvent(ctx context.Context, ev progress.Event) {
	switch ev.Type {
	case progress.EventStarted:
		ctxlog.Info(ctx, "job started", "job", ev.Label)
	case progress.EventRunning:
		ctxlog.Debug(ctx, "job running", "job", ev.Label, "message", ev.Message)
	case progress.EventCompleted:
		ctxlog.Info(ctx, "job completed", "job", ev.Label)
	case progress.EventFailed:
		ctxlog.Warn(ctx, "job failed", "job", ev.Label, "exit_code", ev.ExitCode)
	}
}
