// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwpot14/mwsweep/internal/progress"
	"github.com/mwpot14/mwsweep/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T, jobs int) *sweep.Plan {
	t.Helper()

	plan, err := sweep.NewPlan(sweep.Params{
		Name:           "test-sweep",
		Program:        "/bin/true",
		OutputDir:      t.TempDir(),
		OutputTemplate: "out-%d.dat",
		Jobs:           jobs,
		DT:             600.0,
		TD:             10.0,
		FitSigma:       true,
		Samplers:       6,
	})
	require.NoError(t, err)

	return plan
}

func TestJobStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", JobStatus(42).String())
}

func TestNewModelRowsMatchPlan(t *testing.T) {
	m := NewModel(testPlan(t, 5), nil)
	require.Len(t, m.rows, 5)

	for i, row := range m.rows {
		assert.Equal(t, StatusPending, row.status, "row %d", i)
		assert.Contains(t, row.label, "test-sweep")
	}
}

func TestModelAppliesLifecycleEvents(t *testing.T) {
	m := NewModel(testPlan(t, 3), nil)

	now := time.Now()

	m.applyEvent(progress.Event{JobIndex: 1, Type: progress.EventStarted, Timestamp: now})
	assert.Equal(t, StatusRunning, m.rows[1].status)

	m.applyEvent(progress.Event{JobIndex: 1, Type: progress.EventCompleted, Timestamp: now.Add(time.Second)})
	assert.Equal(t, StatusSuccess, m.rows[1].status)

	m.applyEvent(progress.Event{
		JobIndex:  2,
		Type:      progress.EventFailed,
		Timestamp: now,
		ExitCode:  1,
		Err:       errors.New("sampler diverged"),
	})
	assert.Equal(t, StatusFailed, m.rows[2].status)
	assert.Equal(t, "sampler diverged", m.rows[2].message)

	// Rows without events stay pending.
	assert.Equal(t, StatusPending, m.rows[0].status)
}

func TestModelIgnoresOutOfRangeEvents(t *testing.T) {
	m := NewModel(testPlan(t, 2), nil)

	m.applyEvent(progress.Event{JobIndex: -1, Type: progress.EventStarted})
	m.applyEvent(progress.Event{JobIndex: 7, Type: progress.EventStarted})

	for _, row := range m.rows {
		assert.Equal(t, StatusPending, row.status)
	}
}

func TestModelViewShowsCounts(t *testing.T) {
	m := NewModel(testPlan(t, 3), nil)
	now := time.Now()

	m.applyEvent(progress.Event{JobIndex: 0, Type: progress.EventStarted, Timestamp: now})
	m.applyEvent(progress.Event{JobIndex: 1, Type: progress.EventStarted, Timestamp: now})
	m.applyEvent(progress.Event{JobIndex: 1, Type: progress.EventFailed, Timestamp: now, ExitCode: 2})

	view := m.View()
	assert.Contains(t, view, "test-sweep")
	assert.Contains(t, view, "1 running, 0 succeeded, 1 failed")
	assert.Contains(t, view, "(exit code: 2)")
}

func TestModelCompletedView(t *testing.T) {
	m := NewModel(testPlan(t, 1), nil)
	now := time.Now()

	m.applyEvent(progress.Event{JobIndex: 0, Type: progress.EventStarted, Timestamp: now})
	m.applyEvent(progress.Event{JobIndex: 0, Type: progress.EventCompleted, Timestamp: now})

	updated, _ := m.Update(SweepDoneMsg{Results: sweep.Results{}})
	model, ok := updated.(*Model)
	require.True(t, ok)

	view := model.View()
	assert.Contains(t, view, "Sweep complete: 1 succeeded, 0 failed")
	assert.Contains(t, view, "press q to exit")
}

func TestModelCtrlCCancels(t *testing.T) {
	cancelled := false
	m := NewModel(testPlan(t, 1), func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, cancelled)
	require.NotNil(t, cmd)
}

func TestModelQQuitsOnlyWhenComplete(t *testing.T) {
	m := NewModel(testPlan(t, 1), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Nil(t, cmd, "q must not quit while the sweep is running")

	updated, _ := m.Update(SweepDoneMsg{})
	model := updated.(*Model)

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd, "q should quit after completion")
}
