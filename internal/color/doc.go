// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides ANSI escape sequences for terminal output.
// Color output is enabled when stdout is a terminal, unless the NO_COLOR
// environment variable is set. The FORCE_COLOR environment variable
// forces color output even when stdout is not a terminal.
package color
