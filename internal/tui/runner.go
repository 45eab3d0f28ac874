// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwpot14/mwsweep/internal/progress"
	"github.com/mwpot14/mwsweep/internal/sweep"
)

// Reporter implements progress.Reporter by forwarding events into the
// bubbletea program.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewReporter creates a Reporter bound to a program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{program: program}
}

// Report implements progress.Reporter.
func (r *Reporter) Report(event progress.Event) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.closed || r.program == nil {
		return
	}

	r.program.Send(EventMsg{Event: event})
}

// Close implements progress.Reporter.
func (r *Reporter) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.closed = true
}

// Runner executes a sweep batch underneath a live terminal view.
type Runner struct {
	program  *tea.Program
	reporter *Reporter
}

// NewRunner creates a Runner for the given plan. cancel is wired to the
// ctrl+c key so the user can abort the whole sweep.
func NewRunner(plan *sweep.Plan, cancel func()) *Runner {
	model := NewModel(plan, cancel)
	program := tea.NewProgram(model, tea.WithAltScreen())

	return &Runner{
		program:  program,
		reporter: NewReporter(program),
	}
}

// Run starts the terminal view and executes the batch. It returns the batch
// results once the batch has joined and the view has exited.
func (r *Runner) Run(ctx context.Context, batch *sweep.ParallelBatch) (sweep.Results, error) {
	batch.SetReporter(r.reporter)

	resultChan := make(chan sweep.Results, 1)

	go func() {
		defer close(resultChan)

		res := batch.Run(ctx)
		resultChan <- res
		r.program.Send(SweepDoneMsg{Results: res})
	}()

	_, err := r.program.Run()

	r.reporter.Close()

	// The batch's join barrier: even if the view exits early, wait for
	// every job to terminate.
	res := <-resultChan

	return res, err
}
