// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package sweep

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNoJobs is returned when the requested sweep size is not positive.
	ErrNoJobs = errors.New("sweep must have at least one job")
	// ErrNoProgram is returned when no sampler program is configured.
	ErrNoProgram = errors.New("no sampler program configured")
	// ErrBadTemplate is returned when the output template does not contain
	// exactly one integer verb.
	ErrBadTemplate = errors.New("output template must contain exactly one %d verb")
	// ErrDuplicateOutput is returned when two jobs resolve to the same
	// output path.
	ErrDuplicateOutput = errors.New("duplicate output path in sweep")
)

// Params are the launcher inputs: the sweep size plus the fixed sampler
// hyperparameters shared by every invocation.
type Params struct {
	Name           string            // Label for the sweep
	Program        string            // Path to the sampler program
	OutputDir      string            // Directory receiving the output files
	OutputTemplate string            // File name template with one %d verb, e.g. mwpot14-fitsigma-%d.dat
	Jobs           int               // Sweep size N; indices run over [0, N)
	DT             float64           // Integration timestep (--dt)
	TD             float64           // Time duration parameter (--td)
	FitSigma       bool              // Enable sigma fitting (--fitsigma)
	Samplers       int               // Worker/chain multiplicity (-m)
	Env            map[string]string // Extra environment for every job
}

// Job is one invocation of the sweep: an index, the output path derived
// from it, and the full fixed argument list.
type Job struct {
	Index      int
	Label      string
	OutputPath string
	Args       []string
}

// Plan is the fully resolved sweep: N jobs with pairwise distinct output
// paths and identical fixed arguments.
type Plan struct {
	Name    string
	Program string
	Jobs    []Job
	Env     map[string]string
}

// NewPlan resolves Params into a Plan. Each index in [0, Params.Jobs) yields
// exactly one job; construction fails rather than produce a sweep that would
// let two jobs write the same file.
func NewPlan(p Params) (*Plan, error) {
	if p.Jobs < 1 {
		return nil, ErrNoJobs
	}

	if p.Program == "" {
		return nil, ErrNoProgram
	}

	if err := validateTemplate(p.OutputTemplate); err != nil {
		return nil, err
	}

	jobs := make([]Job, p.Jobs)
	seen := make(map[string]int, p.Jobs)

	for i := range p.Jobs {
		out := filepath.Join(p.OutputDir, fmt.Sprintf(p.OutputTemplate, i))

		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: jobs %d and %d both write %s", ErrDuplicateOutput, prev, i, out)
		}

		seen[out] = i

		jobs[i] = Job{
			Index:      i,
			Label:      fmt.Sprintf("%s[%d]", p.Name, i),
			OutputPath: out,
			Args:       jobArgs(p, i, out),
		}
	}

	return &Plan{
		Name:    p.Name,
		Program: p.Program,
		Jobs:    jobs,
		Env:     p.Env,
	}, nil
}

// Argv returns the complete command line for the job, including the
// program itself.
func (j Job) Argv(program string) []string {
	argv := make([]string, 0, len(j.Args)+1)
	argv = append(argv, program)

	return append(argv, j.Args...)
}

// Shellwords renders argv as a single shell-style line, quoting any word
// containing whitespace.
func Shellwords(argv []string) string {
	words := make([]string, len(argv))

	for i, a := range argv {
		if strings.ContainsAny(a, " \t") {
			a = strconv.Quote(a)
		}

		words[i] = a
	}

	return strings.Join(words, " ")
}

// Batch builds the runnable parallel batch for the plan.
func (p *Plan) Batch() *ParallelBatch {
	procs := make([]Runnable, len(p.Jobs))

	for i, j := range p.Jobs {
		procs[i] = &OSProcess{
			Index: j.Index,
			Label: j.Label,
			Path:  p.Program,
			Args:  j.Args,
		}
	}

	return &ParallelBatch{
		Label:    p.Name,
		Commands: procs,
		Env:      p.Env,
	}
}

func jobArgs(p Params, index int, outputPath string) []string {
	args := []string{
		"-i", strconv.Itoa(index),
		"-o", outputPath,
		"--dt=" + formatFloat(p.DT),
		"--td=" + formatFloat(p.TD),
	}

	if p.FitSigma {
		args = append(args, "--fitsigma")
	}

	return append(args, "-m", strconv.Itoa(p.Samplers))
}

// formatFloat renders a float the way the sampler's command line expects:
// shortest representation, but always with a decimal point (600.0, not 600).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

func validateTemplate(template string) error {
	if strings.Count(template, "%") != 1 || !strings.Contains(template, "%d") {
		return fmt.Errorf("%w: %q", ErrBadTemplate, template)
	}

	return nil
}
