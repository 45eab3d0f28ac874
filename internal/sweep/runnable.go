// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"

	"github.com/mwpot14/mwsweep/internal/progress"
)

// Runnable is implemented by anything that can be executed as part of a
// sweep: a single sampler process or the whole parallel batch.
type Runnable interface {
	// Run executes the runnable and returns its results. It must handle
	// context cancellation and forward signals to any spawned process.
	Run(ctx context.Context) Results
	// GetLabel returns the label of the runnable.
	GetLabel() string
	// InheritEnv adds environment variables without overwriting ones
	// already set on the runnable.
	InheritEnv(env map[string]string)
	// SetReporter sets the progress reporter. It must be called before Run.
	SetReporter(r progress.Reporter)
}
