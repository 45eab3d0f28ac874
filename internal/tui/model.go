// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwpot14/mwsweep/internal/progress"
	"github.com/mwpot14/mwsweep/internal/sweep"
)

// JobStatus is the display state of one job row.
type JobStatus int

const (
	// StatusPending means the job has not been started yet.
	StatusPending JobStatus = iota
	// StatusRunning means the job's process is running.
	StatusRunning
	// StatusSuccess means the job's process exited with code zero.
	StatusSuccess
	// StatusFailed means the job's process failed or errored.
	StatusFailed
)

// String implements the Stringer interface for JobStatus.
func (s JobStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// jobRow is the display state for a single job of the sweep.
type jobRow struct {
	label    string
	status   JobStatus
	message  string
	exitCode int
	started  time.Time
	ended    time.Time
}

// EventMsg wraps a progress event for the bubbletea update loop.
type EventMsg struct {
	Event progress.Event
}

// SweepDoneMsg signals that the whole batch has joined.
type SweepDoneMsg struct {
	Results sweep.Results
}

type tickMsg time.Time

// Styles holds the lipgloss styles for the sweep view.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Summary lipgloss.Style
	Help    lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Summary: lipgloss.NewStyle().Bold(true),
		Help:    lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for a running sweep: one row per job plus a
// completion summary.
type Model struct {
	title     string
	rows      []jobRow
	spinner   spinner.Model
	styles    *Styles
	startTime time.Time
	width     int
	completed bool
	quitting  bool
	results   sweep.Results
	cancel    func()
}

// NewModel creates a Model for the given plan. cancel is invoked when the
// user aborts with ctrl+c; it may be nil.
func NewModel(plan *sweep.Plan, cancel func()) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	rows := make([]jobRow, len(plan.Jobs))
	for i, j := range plan.Jobs {
		rows[i] = jobRow{label: j.Label}
	}

	return &Model{
		title:     plan.Name,
		rows:      rows,
		spinner:   sp,
		styles:    DefaultStyles(),
		startTime: time.Now(),
		cancel:    cancel,
	}
}

// Init implements bubbletea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements bubbletea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}

			m.quitting = true

			return m, tea.Quit
		case "q", "enter":
			if m.completed {
				m.quitting = true
				return m, tea.Quit
			}
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tickMsg:
		return m, tick()

	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case SweepDoneMsg:
		m.completed = true
		m.results = msg.Results

		return m, nil
	}

	return m, nil
}

func (m *Model) applyEvent(event progress.Event) {
	if event.JobIndex < 0 || event.JobIndex >= len(m.rows) {
		return
	}

	row := &m.rows[event.JobIndex]
	row.message = event.Message

	switch event.Type {
	case progress.EventStarted:
		row.status = StatusRunning
		row.started = event.Timestamp
	case progress.EventRunning:
		// Heartbeat only refreshes the message.
	case progress.EventCompleted:
		row.status = StatusSuccess
		row.ended = event.Timestamp
		row.exitCode = event.ExitCode
	case progress.EventFailed:
		row.status = StatusFailed
		row.ended = event.Timestamp
		row.exitCode = event.ExitCode

		if event.Err != nil {
			row.message = event.Err.Error()
		}
	}
}

// View implements bubbletea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sb := strings.Builder{}

	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n\n")

	for _, row := range m.rows {
		sb.WriteString(m.renderRow(row))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	sb.WriteString("\n")

	return sb.String()
}

func (m *Model) renderRow(row jobRow) string {
	var marker, line string

	switch row.status {
	case StatusPending:
		marker = m.styles.Pending.Render("·")
		line = fmt.Sprintf("%s %s", marker, m.styles.Pending.Render(row.label))
	case StatusRunning:
		marker = m.styles.Running.Render(m.spinner.View())
		elapsed := time.Since(row.started).Round(time.Second)
		line = fmt.Sprintf("%s %s [%s]", marker, m.styles.Running.Render(row.label), elapsed)
	case StatusSuccess:
		marker = m.styles.Success.Render("✓")
		line = fmt.Sprintf("%s %s [%s]", marker, m.styles.Success.Render(row.label), row.ended.Sub(row.started).Round(time.Second))
	case StatusFailed:
		marker = m.styles.Failed.Render("✗")
		line = fmt.Sprintf("%s %s (exit code: %d)", marker, m.styles.Failed.Render(row.label), row.exitCode)

		if row.message != "" {
			line += " " + m.styles.Failed.Render(row.message)
		}
	}

	return line
}

func (m *Model) renderFooter() string {
	running, succeeded, failed := m.counts()

	if m.completed {
		summary := fmt.Sprintf("Sweep complete: %d succeeded, %d failed [%s]",
			succeeded, failed, time.Since(m.startTime).Round(time.Second))

		return m.styles.Summary.Render(summary) + "\n" +
			m.styles.Help.Render("press q to exit")
	}

	status := fmt.Sprintf("%d running, %d succeeded, %d failed [%s]",
		running, succeeded, failed, time.Since(m.startTime).Round(time.Second))

	return m.styles.Summary.Render(status) + "\n" +
		m.styles.Help.Render("ctrl+c to abort the sweep")
}

func (m *Model) counts() (running, succeeded, failed int) {
	for _, row := range m.rows {
		switch row.status {
		case StatusRunning:
			running++
		case StatusSuccess:
			succeeded++
		case StatusFailed:
			failed++
		}
	}

	return running, succeeded, failed
}
