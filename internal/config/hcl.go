// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top level of an HCL job file: exactly one job block.
type hclFile struct {
	Jobs []hclJob `hcl:"job,block"`
}

type hclJob struct {
	Name        string  `hcl:"name,label"`
	Workers     *int    `hcl:"workers,optional"`
	Temp        *string `hcl:"temp,optional"`
	MaxTries    *int    `hcl:"max_tries,optional"`
	Command     *string `hcl:"command,optional"`
	Shell       *string `hcl:"shell,optional"`
	FrameTime   *string `hcl:"frame_time,optional"`
	TotalFrames *uint64 `hcl:"total_frames,optional"`
	ChunkFrames *uint64 `hcl:"chunk_frames,optional"`
	Chunks      []Range `hcl:"chunk,block"`
}

func (h hclJob) document() *document {
	return &document{
		Name:        &h.Name,
		Workers:     h.Workers,
		Temp:        h.Temp,
		MaxTries:    h.MaxTries,
		Command:     h.Command,
		Shell:       h.Shell,
		FrameTime:   h.FrameTime,
		TotalFrames: h.TotalFrames,
		ChunkFrames: h.ChunkFrames,
		Chunks:      h.Chunks,
	}
}

func parseHCL(filename string, data []byte) (*Job, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, hclError(diags)
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &f); diags.HasErrors() {
		return nil, hclError(diags)
	}

	if len(f.Jobs) != 1 {
		return nil, fmt.Errorf("%w: %s: expected exactly one job block, found %d", ErrInvalidHCL, filename, len(f.Jobs))
	}

	j, err := f.Jobs[0].document().toJob()
	if err != nil {
		return nil, errors.Join(ErrInvalidHCL, err)
	}

	return j, nil
}

// evalContext exposes the process environment as the env object.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}

func hclError(diags hcl.Diagnostics) error {
	var result error

	for _, d := range diags.Errs() {
		result = multierror.Append(result, d)
	}

	return errors.Join(ErrInvalidHCL, result)
}
