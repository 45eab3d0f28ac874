// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "time"

// EventType classifies a progress event.
type EventType int

const (
	// EventStarted indicates a sampler process has been started.
	EventStarted EventType = iota
	// EventRunning indicates a periodic heartbeat from a running process.
	EventRunning
	// EventCompleted indicates a process terminated with a success exit code.
	EventCompleted
	// EventFailed indicates a process terminated with a failure.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventRunning:
		return "running"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a real-time update emitted during sweep execution. One event
// stream covers all jobs of the sweep; JobIndex identifies the job.
type Event struct {
	JobIndex  int       // Index of the job within the sweep
	Label     string    // Label of the job
	Type      EventType // What happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	ExitCode  int       // Exit code, for EventCompleted/EventFailed
	Err       error     // Error, for EventFailed
}

// Reporter is implemented by sinks that receive sweep progress events.
// Report must be non-blocking; the sweep never waits on a slow listener.
type Reporter interface {
	Report(event Event)
	Close()
}

// Listener receives events from a ChannelReporter.
type Listener interface {
	OnEvent(event Event)
}

// NullReporter is a no-op Reporter, used when nothing is listening.
type NullReporter struct{}

// Report implements Reporter by doing nothing.
func (nr *NullReporter) Report(_ Event) {}

// Close implements Reporter by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
