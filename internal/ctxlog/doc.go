// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog.Logger in a context.Context so that every
// layer of the launcher logs through the same handler. The log level is read
// from an environment variable derived from the executable name: for a
// binary named "mwsweep" the variable is MWSWEEP_LOG_LEVEL, and accepts
// DEBUG, INFO, WARN or ERROR (defaulting to WARN).
package ctxlog
