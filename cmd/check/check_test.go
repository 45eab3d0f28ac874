// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package check

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwpot14/mwsweep/internal/dataset"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
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

// termVelTable builds a two-column table with one sample per half degree
// over the given longitude range.
func termVelTable(lo, hi float64, delim string) string {
	out := ""
	for l := lo; l < hi; l += 0.5 {
		out += fmt.Sprintf("%.2f %s %.2f\n", l, delim, 100.0)
	}

	return out
}

// validDataFs builds a filesystem holding a complete, well-formed set of
// data files under dir.
func validDataFs(t *testing.T, dir string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()

	files := map[string]string{
		dataset.BovyRix13File:          "0,0,4.5,0,0,0,70.5,5.1\n0,0,5.5,0,0,0,64.2,4.8\n",
		dataset.ClemensFile:            termVelTable(30, 90, "|"),
		dataset.McClureGriffiths07File: termVelTable(270, 330, ""),
		dataset.McClureGriffiths16File: termVelTable(30, 90, "&"),
	}

	for name, contents := range files {
		err := afero.WriteFile(fsys, filepath.Join(dir, name), []byte(contents), 0o644)
		require.NoError(t, err)
	}

	return fsys
}

func TestCheck_AllFilesOK(t *testing.T) {
	stub := gostub.Stub(&FsFactory, func() afero.Fs {
		return validDataFs(t, defaultDataDir)
	})
	defer stub.Reset()

	var buf bytes.Buffer

	cmd := New()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"check"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, dataset.BovyRix13File)
	assert.Contains(t, out, dataset.ClemensFile)
	assert.Contains(t, out, dataset.McClureGriffiths07File)
	assert.Contains(t, out, dataset.McClureGriffiths16File)
	assert.Contains(t, out, "all data files ok")
}

func TestCheck_DataDirFlag(t *testing.T) {
	stub := gostub.Stub(&FsFactory, func() afero.Fs {
		return validDataFs(t, "elsewhere")
	})
	defer stub.Reset()

	var buf bytes.Buffer

	cmd := New()
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), []string{"check", "-d", "elsewhere"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all data files ok")
}

func TestCheck_MissingFile(t *testing.T) {
	stub := gostub.Stub(&FsFactory, func() afero.Fs {
		fsys := validDataFs(t, defaultDataDir)
		require.NoError(t, fsys.Remove(filepath.Join(defaultDataDir, dataset.ClemensFile)))

		return fsys
	})
	defer stub.Reset()

	cmd := New()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"check"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.ClemensFile)
}

func TestCheck_MalformedFileReportedWithOthers(t *testing.T) {
	stub := gostub.Stub(&FsFactory, func() afero.Fs {
		fsys := validDataFs(t, defaultDataDir)
		err := afero.WriteFile(fsys,
			filepath.Join(defaultDataDir, dataset.BovyRix13File),
			[]byte("not,numbers,at,all,x,y,z,w\n"), 0o644)
		require.NoError(t, err)
		err = afero.WriteFile(fsys,
			filepath.Join(defaultDataDir, dataset.McClureGriffiths16File),
			[]byte("xx & 2\n"), 0o644)
		require.NoError(t, err)

		return fsys
	})
	defer stub.Reset()

	cmd := New()
	cmd.Writer = &bytes.Buffer{}

	// Both broken files show up in the one error.
	err := cmd.Run(context.Background(), []string{"check"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.BovyRix13File)
	assert.Contains(t, err.Error(), dataset.McClureGriffiths16File)
}
