// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the event stream emitted while a sweep runs.
// The sweep reports job lifecycle events (started, running, completed,
// failed) through a Reporter; the terminal UI and the run command's log
// output consume them through a Listener. Reporting is best-effort and
// never blocks job execution.
package progress
