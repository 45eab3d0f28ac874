// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStatusString(t *testing.T) {
	assert.Equal(t, "success", ResultStatusSuccess.String())
	assert.Equal(t, "failed", ResultStatusFailed.String())
	assert.Equal(t, "error", ResultStatusError.String())
	assert.Equal(t, "unknown", ResultStatusUnknown.String())
}

func sampleResults() Results {
	return Results{&Result{
		Label:  "sweep",
		Status: ResultStatusError,
		Children: Results{
			&Result{Index: 0, Label: "job0", Status: ResultStatusSuccess, Elapsed: 2 * time.Second},
			&Result{Index: 1, Label: "job1", Status: ResultStatusFailed, ExitCode: 2},
			&Result{Index: 2, Label: "job2", Status: ResultStatusError, ExitCode: -1, Error: errors.New("boom")},
		},
	}}
}

func TestResultsHasFailure(t *testing.T) {
	assert.True(t, sampleResults().HasFailure())

	ok := Results{&Result{
		Label:  "sweep",
		Status: ResultStatusSuccess,
		Children: Results{
			&Result{Index: 0, Status: ResultStatusSuccess},
		},
	}}
	assert.False(t, ok.HasFailure())
}

func TestResultsFailureCount(t *testing.T) {
	assert.Equal(t, 2, sampleResults().FailureCount())
}

func TestResultsErrAggregates(t *testing.T) {
	err := sampleResults().Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job1: exit code 2")
	assert.Contains(t, err.Error(), "job2")
	assert.Contains(t, err.Error(), "boom")
	assert.NotContains(t, err.Error(), "job0")
}

func TestResultsErrNilOnSuccess(t *testing.T) {
	ok := Results{&Result{
		Label:    "sweep",
		Status:   ResultStatusSuccess,
		Children: Results{&Result{Index: 0, Status: ResultStatusSuccess}},
	}}
	assert.NoError(t, ok.Err())
}

func TestWriteTextSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	err := sampleResults().WriteText(buf, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sweep")
	assert.Contains(t, out, "job0")
	assert.Contains(t, out, "job1")
	assert.Contains(t, out, "(exit code: 2)")
	assert.Contains(t, out, "boom")
}

func TestWriteTextShowsSuccessDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &OutputOptions{ShowSuccessDetails: true}

	require.NoError(t, sampleResults().WriteText(buf, opts))
	assert.Contains(t, buf.String(), "[2s]")
}
