// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders a live terminal view of a running sweep: one row per
// job with its status and elapsed time, and a summary once the batch has
// joined. The view consumes the same progress events as the plain run
// output, bridged into the bubbletea program by a Reporter.
package tui
