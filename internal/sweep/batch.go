// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"slices"
	"sync"

	"github.com/mwpot14/mwsweep/internal/ctxlog"
	"github.com/mwpot14/mwsweep/internal/progress"
)

var _ Runnable = (*ParallelBatch)(nil)

// ParallelBatch runs every command at once and joins them at a single
// barrier. There is no staggering, batching or admission control: all
// commands are started back to back, and Run returns only after the last
// one has terminated, regardless of how any of them exited.
type ParallelBatch struct {
	Label    string            // Label for the batch
	Commands []Runnable        // The jobs to run
	Env      map[string]string // Environment inherited by every job
	reporter progress.Reporter
}

// GetLabel implements Runnable.
func (b *ParallelBatch) GetLabel() string {
	if b.Label == "" {
		return "Sweep"
	}

	return b.Label
}

// InheritEnv implements Runnable.
func (b *ParallelBatch) InheritEnv(env map[string]string) {
	if b.Env == nil {
		b.Env = make(map[string]string, len(env))
	}

	for k, v := range env {
		if _, ok := b.Env[k]; !ok {
			b.Env[k] = v
		}
	}
}

// SetReporter implements Runnable. The reporter is propagated to every job
// at Run time.
func (b *ParallelBatch) SetReporter(r progress.Reporter) {
	b.reporter = r
}

// Run implements Runnable.
func (b *ParallelBatch) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).
		With("label", b.GetLabel()).
		With("runnableType", "ParallelBatch")

	logger.Debug("starting batch", "commands", len(b.Commands))

	for _, cmd := range b.Commands {
		cmd.InheritEnv(b.Env)

		if b.reporter != nil {
			cmd.SetReporter(b.reporter)
		}
	}

	children := make(Results, 0, len(b.Commands))
	wg := &sync.WaitGroup{}
	resChan := make(chan Results, len(b.Commands))

	for _, cmd := range b.Commands {
		wg.Add(1)

		go func(c Runnable) {
			defer wg.Done()

			resChan <- c.Run(ctx)
		}(cmd)
	}

	// The join barrier: nothing below runs until every job has terminated.
	wg.Wait()
	close(resChan)

	for r := range resChan {
		children = slices.Concat(children, r)
	}

	slices.SortFunc(children, func(a, b *Result) int {
		return a.Index - b.Index
	})

	res := &Result{
		Label:    b.GetLabel(),
		Children: children,
		Status:   ResultStatusSuccess,
	}
	if children.HasFailure() {
		res.Status = ResultStatusError
		res.ExitCode = -1
	}

	logger.Debug("batch finished", "failed", children.FailureCount(), "total", len(children))

	return Results{res}
}
