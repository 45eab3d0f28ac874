// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerReturnsDefaultWhenUnset(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestNewStoresLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	ctx := New(context.Background(), logger)
	assert.Same(t, logger, Logger(ctx))
}

func TestNewNilLoggerFallsBack(t *testing.T) {
	ctx := New(context.Background(), nil)
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestNewForTUIWritesToBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)

	Error(ctx, "sampler exploded", "index", 12)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "sampler exploded")
	assert.Contains(t, out, "index=12")
}

func TestContextHelpersUseContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := New(context.Background(), logger)

	Debug(ctx, "debug msg")
	Info(ctx, "info msg")
	Warn(ctx, "warn msg")
	Error(ctx, "error msg")

	out := buf.String()
	assert.Contains(t, out, "debug msg")
	assert.Contains(t, out, "info msg")
	assert.Contains(t, out, "warn msg")
	assert.Contains(t, out, "error msg")
}
