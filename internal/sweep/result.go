// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ResultStatus describes the terminal state of a job or batch.
type ResultStatus int

const (
	// ResultStatusUnknown means the runnable never reached a terminal state.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means the process exited with code zero.
	ResultStatusSuccess
	// ResultStatusFailed means the process exited with a non-zero code.
	ResultStatusFailed
	// ResultStatusError means the process could not be started, was killed,
	// or the wait itself errored.
	ResultStatusError
)

// String implements the Stringer interface for ResultStatus.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusFailed:
		return "failed"
	case ResultStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one runnable.
type Result struct {
	Index    int           // Job index, zero for the batch root
	Label    string        // Label of the runnable
	ExitCode int           // Exit code of the process
	Error    error         // Error, if any
	Status   ResultStatus  // Terminal state
	Elapsed  time.Duration // Wall-clock duration
	Children Results       // Per-job results for a batch
}

// Results is a list of Result pointers.
type Results []*Result

// HasFailure reports whether any result, including nested ones, recorded a
// non-zero exit code or an error.
func (r Results) HasFailure() bool {
	for _, v := range r {
		if v.Status == ResultStatusFailed || v.Status == ResultStatusError {
			return true
		}

		if v.Children.HasFailure() {
			return true
		}
	}

	return false
}

// FailureCount returns the number of leaf results that failed or errored.
func (r Results) FailureCount() int {
	count := 0

	for _, v := range r {
		if len(v.Children) > 0 {
			count += v.Children.FailureCount()
			continue
		}

		if v.Status == ResultStatusFailed || v.Status == ResultStatusError {
			count++
		}
	}

	return count
}

// Err aggregates every failure into a single multierror, or nil when the
// whole sweep succeeded.
func (r Results) Err() error {
	var merr *multierror.Error

	for _, v := range r {
		if len(v.Children) > 0 {
			merr = multierror.Append(merr, v.Children.Err())
			continue
		}

		switch v.Status {
		case ResultStatusError:
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", v.Label, v.Error))
		case ResultStatusFailed:
			merr = multierror.Append(merr, fmt.Errorf("%s: exit code %d", v.Label, v.ExitCode))
		}
	}

	return merr.ErrorOrNil()
}
