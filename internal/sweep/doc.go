// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sweep contains the core of the launcher: the sweep plan (one job
// per index, each with a distinct output file and an identical set of fixed
// sampler arguments), the OS process runner, and the parallel batch that
// starts every job without staggering and joins them at a single barrier.
//
// The batch does not judge exit codes. A job that fails is recorded in its
// Result but never stops, retries, or cancels the others; the batch returns
// only once every started process has terminated.
package sweep
