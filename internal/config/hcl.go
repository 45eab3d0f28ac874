// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

// ErrInvalidHCL is returned when the HCL definition cannot be decoded.
var ErrInvalidHCL = errors.New("invalid HCL definition")

// hclDefinition mirrors Definition with pointer fields so that attributes
// absent from the file can be told apart from explicit zero values.
type hclDefinition struct {
	Name           *string           `hcl:"name,optional"`
	Program        *string           `hcl:"program,optional"`
	OutputDir      *string           `hcl:"output_dir,optional"`
	OutputTemplate *string           `hcl:"output_template,optional"`
	Jobs           *int              `hcl:"jobs,optional"`
	DT             *float64          `hcl:"dt,optional"`
	TD             *float64          `hcl:"td,optional"`
	FitSigma       *bool             `hcl:"fit_sigma,optional"`
	Samplers       *int              `hcl:"samplers,optional"`
	Env            map[string]string `hcl:"env,optional"`
}

// evalContext exposes a small set of variables to HCL expressions, so a
// definition can say e.g. "samplers = cpu_count".
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cpu_count": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}

func loadHCL(filename string, data []byte) (Definition, error) {
	var raw hclDefinition

	if err := hclsimple.Decode(filename, data, evalContext(), &raw); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidHCL, err)
	}

	def := Default()

	if raw.Name != nil {
		def.Name = *raw.Name
	}

	if raw.Program != nil {
		def.Program = *raw.Program
	}

	if raw.OutputDir != nil {
		def.OutputDir = *raw.OutputDir
	}

	if raw.OutputTemplate != nil {
		def.OutputTemplate = *raw.OutputTemplate
	}

	if raw.Jobs != nil {
		def.Jobs = *raw.Jobs
	}

	if raw.DT != nil {
		def.DT = *raw.DT
	}

	if raw.TD != nil {
		def.TD = *raw.TD
	}

	if raw.FitSigma != nil {
		def.FitSigma = *raw.FitSigma
	}

	if raw.Samplers != nil {
		def.Samplers = *raw.Samplers
	}

	if raw.Env != nil {
		def.Env = raw.Env
	}

	return def, nil
}
