// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package getter fetches sweep definition files. Sources use Hashicorp's
// go-getter URL syntax, so a definition can live on the local disk, in a
// git repository, or on an HTTP server.
package getter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
)

// ErrGetDefinition is returned when the definition file cannot be fetched.
var ErrGetDefinition = errors.New("failed to get definition file")

const (
	pathSeparator = "//"
	refSeparator  = "?"
	minURLParts   = 3 // scheme, host and path
)

// Fetch retrieves the contents of the definition file at url.
// Remote sources are downloaded to a temporary directory that is removed
// before returning.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetDefinition
	}

	tmpDir, err := os.MkdirTemp("", "mwsweep-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetDefinition, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetDefinition, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// Non-file URLs are fetched as a directory and the file read from it.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetDefinition, err)
		}

		var newURL string

		newURL, fileName = splitFileName(url)
		if newURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetDefinition, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetDefinition, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetDefinition, err)
	}

	return data, nil
}

// splitFileName splits a go-getter URL into the directory URL and the file
// name, carrying any ref query over to the directory URL.
func splitFileName(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, pathSeparator)
	if len(parts) < minURLParts {
		return "", ""
	}

	if strings.Contains(parts[len(parts)-1], refSeparator) {
		refSplit := strings.Split(parts[len(parts)-1], refSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		parts[len(parts)-1] = refSplit[0]
	}

	if filepath.Clean(parts[len(parts)-1]) == filepath.Dir(parts[len(parts)-1]) {
		return "", ""
	}

	fileName = filepath.Base(parts[len(parts)-1])
	parts[len(parts)-1] = filepath.Dir(parts[len(parts)-1])

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, pathSeparator)

	if ref != "" {
		newURL += refSeparator + ref
	}

	return newURL, fileName
}
