// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the sweep definition. Definitions are written in
// YAML or HCL, selected by file extension; every field is optional and
// falls back to the built-in defaults, which reproduce the original
// mwpot14 fit-sigma sweep exactly.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mwpot14/mwsweep/internal/sweep"
)

var (
	// ErrInvalidYAML is returned when the YAML definition cannot be parsed.
	ErrInvalidYAML = errors.New("invalid YAML definition")
	// ErrUnknownFormat is returned for a definition file with an
	// unrecognized extension.
	ErrUnknownFormat = errors.New("unknown definition format (want .yaml, .yml or .hcl)")
)

// Default sweep constants. These are the values the launcher was born with:
// 31 sampler runs over the Pal 5 input grid with fixed hyperparameters.
const (
	DefaultName           = "mwpot14-fitsigma"
	DefaultProgram        = "./mcmc_pal5.py"
	DefaultOutputDir      = "output"
	DefaultOutputTemplate = "mwpot14-fitsigma-%d.dat"
	DefaultJobs           = 31
	DefaultDT             = 600.0
	DefaultTD             = 10.0
	DefaultFitSigma       = true
	DefaultSamplers       = 6
)

// Definition is the on-disk sweep configuration.
type Definition struct {
	Name           string            `yaml:"name"`
	Program        string            `yaml:"program"`
	OutputDir      string            `yaml:"output_dir"`
	OutputTemplate string            `yaml:"output_template"`
	Jobs           int               `yaml:"jobs"`
	DT             float64           `yaml:"dt"`
	TD             float64           `yaml:"td"`
	FitSigma       bool              `yaml:"fit_sigma"`
	Samplers       int               `yaml:"samplers"`
	Env            map[string]string `yaml:"env,omitempty"`
}

// Default returns the built-in definition: the literal original sweep.
func Default() Definition {
	return Definition{
		Name:           DefaultName,
		Program:        DefaultProgram,
		OutputDir:      DefaultOutputDir,
		OutputTemplate: DefaultOutputTemplate,
		Jobs:           DefaultJobs,
		DT:             DefaultDT,
		TD:             DefaultTD,
		FitSigma:       DefaultFitSigma,
		Samplers:       DefaultSamplers,
	}
}

// Load parses the definition file contents. The format is chosen from the
// file name extension. Fields absent from the file keep their defaults.
func Load(filename string, data []byte) (Definition, error) {
	// A go-getter URL may carry a ?ref= query after the file name.
	name, _, _ := strings.Cut(filename, "?")

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return loadYAML(data)
	case ".hcl":
		return loadHCL(name, data)
	default:
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
}

func loadYAML(data []byte) (Definition, error) {
	def := Default()

	if err := yaml.UnmarshalWithOptions(data, &def, yaml.Strict()); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return def, nil
}

// ToYAML renders the definition as a YAML document, used by
// "config init" and "config show".
func (d Definition) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal definition: %w", err)
	}

	return out, nil
}

// Params converts the definition into the sweep parameters.
func (d Definition) Params() sweep.Params {
	return sweep.Params{
		Name:           d.Name,
		Program:        d.Program,
		OutputDir:      d.OutputDir,
		OutputTemplate: d.OutputTemplate,
		Jobs:           d.Jobs,
		DT:             d.DT,
		TD:             d.TD,
		FitSigma:       d.FitSigma,
		Samplers:       d.Samplers,
		Env:            d.Env,
	}
}

// Plan resolves the definition into a sweep plan, validating it in the
// process.
func (d Definition) Plan() (*sweep.Plan, error) {
	return sweep.NewPlan(d.Params())
}
