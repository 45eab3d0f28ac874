// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Code is a single ANSI SGR control code.
type Code int

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground hi-intensity colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix    = "\033["
	suffix    = "m"
	resetSeq  = prefix + "0" + suffix
	growSlack = 16
)

var enabled bool

func init() {
	enabled = detect()
}

// Sequence returns the raw escape sequence for the given codes.
// It is emitted regardless of whether color output is enabled, so callers
// that need conditional behavior should use Colorize instead.
func Sequence(codes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(suffix) + growSlack)
	sb.WriteString(prefix)

	for i, c := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(c)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

// Colorize wraps str in the given codes and appends a reset.
// If color output is disabled, str is returned unchanged.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(resetSeq) + growSlack)
	sb.WriteString(Sequence(codes...))
	sb.WriteString(str)
	sb.WriteString(resetSeq)

	return sb.String()
}

// ColorizeNoReset is Colorize without the trailing reset sequence.
func ColorizeNoReset(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Sequence(codes...) + str
}

// Enabled reports whether color output is in effect. It is computed once at
// package init from NO_COLOR, FORCE_COLOR and terminal detection.
func Enabled() bool {
	return enabled
}

func detect() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
