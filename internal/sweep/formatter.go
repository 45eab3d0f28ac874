// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"fmt"
	"io"
	"time"

	"github.com/mwpot14/mwsweep/internal/color"
)

// OutputOptions controls what the summary writer includes.
type OutputOptions struct {
	ShowSuccessDetails bool // Whether to print the elapsed time for successful jobs
}

// DefaultOutputOptions returns the default summary options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		ShowSuccessDetails: false,
	}
}

// WriteText writes a human-readable summary tree of the results to w.
func (r Results) WriteText(w io.Writer, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, res := range r {
		if err := writeResultWithIndent(w, res, "", options); err != nil {
			return err
		}
	}

	return nil
}

func writeResultWithIndent(w io.Writer, r *Result, indent string, options *OutputOptions) error {
	var statusStr, labelPrefix string

	switch r.Status {
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.Sequence(color.Bold, color.FgRed)
	case ResultStatusFailed:
		statusStr = color.Colorize("✗", color.FgYellow)
		labelPrefix = color.Sequence(color.Bold, color.FgYellow)
	case ResultStatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.Sequence(color.Bold, color.FgGreen)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	if _, err := fmt.Fprintf(
		w,
		"%s%s %s%s%s",
		indent,
		statusStr,
		labelPrefix,
		label,
		color.Sequence(color.Reset),
	); err != nil {
		return err
	}

	if r.ExitCode != 0 {
		if _, err := fmt.Fprintf(w, " (exit code: %d)", r.ExitCode); err != nil {
			return err
		}
	}

	if r.Elapsed > 0 && (r.Status != ResultStatusSuccess || options.ShowSuccessDetails) {
		if _, err := fmt.Fprintf(w, " [%s]", r.Elapsed.Round(100*time.Millisecond)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if r.Error != nil {
		errColor := color.FgRed
		if r.Status == ResultStatusFailed {
			errColor = color.FgYellow
		}

		if _, err := fmt.Fprintf(
			w,
			"%s  %s %s%s\n",
			indent,
			color.ColorizeNoReset("➜ Error:", errColor),
			r.Error.Error(),
			color.Sequence(color.Reset),
		); err != nil {
			return err
		}
	}

	for _, child := range r.Children {
		if err := writeResultWithIndent(w, child, indent+"  ", options); err != nil {
			return err
		}
	}

	return nil
}
