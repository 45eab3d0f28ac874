// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestMain(m *testing.M) {
	stub := gostub.Stub(&cli.OsExiter, func(int) {})
	code := m.Run()
	stub.Reset()
	os.Exit(code)
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sweep.yaml")

	var buf bytes.Buffer

	cmd := New()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"config", "init", "-f", target})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "name: mwpot14-fitsigma")
	assert.Contains(t, out, "jobs: 31")
	assert.Contains(t, out, "program: ./mcmc_pal5.py")
}

func TestConfigInit_RefusesToOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(target, []byte("precious: true\n"), 0o644))

	cmd := New()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"config", "init", "-f", target})
	require.Error(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "precious: true\n", string(data))
}

func TestConfigInit_Force(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o644))

	cmd := New()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"config", "init", "--force", "-f", target})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "jobs: 31")
}

func TestConfigShow_Defaults(t *testing.T) {
	var buf bytes.Buffer

	cmd := New()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"config", "show"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "name: mwpot14-fitsigma")
	assert.Contains(t, out, "jobs: 31")
	assert.Contains(t, out, "fit_sigma: true")
}

func TestConfigShow_FileMergedOverDefaults(t *testing.T) {
	defFile := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(defFile, []byte("jobs: 7\n"), 0o644))

	var buf bytes.Buffer

	cmd := New()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"config", "show", "-f", defFile})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "jobs: 7")
	// Unset fields keep the built-in values.
	assert.Contains(t, out, "program: ./mcmc_pal5.py")
}

func TestConfigShow_MissingFile(t *testing.T) {
	cmd := New()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{
		"config", "show", "-f", filepath.Join(t.TempDir(), "nope.yaml"),
	})
	assert.Error(t, err)
}
