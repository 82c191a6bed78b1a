// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclSource struct {
		Name   string `hcl:"name,label"`
		Path   string `hcl:"path"`
		Prefix string `hcl:"prefix,optional"`
	}
	type hclConfig struct {
		Letters *struct {
			SearchFile string `hcl:"search_file,optional"`
			RenameFile string `hcl:"rename_file,optional"`
			SourceDir  string `hcl:"source_dir,optional"`
			TargetDir  string `hcl:"target_dir,optional"`
			Extension  string `hcl:"extension,optional"`
		} `hcl:"letters,block"`
		Collect *struct {
			TargetDir  string      `hcl:"target_dir,optional"`
			AllMatches bool        `hcl:"all_matches,optional"`
			Sources    []hclSource `hcl:"source,block"`
			Yearly     *struct {
				Name  string            `hcl:"name,label"`
				Years map[string]string `hcl:"years"`
			} `hcl:"yearly,block"`
		} `hcl:"collect,block"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		Workers        int      `hcl:"workers,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	parsed := &Config{
		IgnorePatterns: hclCfg.IgnorePatterns,
		Workers:        hclCfg.Workers,
	}

	if l := hclCfg.Letters; l != nil {
		parsed.Letters = LettersArgs{
			SearchFile: l.SearchFile,
			RenameFile: l.RenameFile,
			SourceDir:  l.SourceDir,
			TargetDir:  l.TargetDir,
			Extension:  l.Extension,
		}
	}

	if c := hclCfg.Collect; c != nil {
		parsed.Collect.TargetDir = c.TargetDir
		parsed.Collect.AllMatches = c.AllMatches
		for _, s := range c.Sources {
			parsed.Collect.Sources = append(parsed.Collect.Sources, Source{
				Name:   s.Name,
				Path:   s.Path,
				Prefix: s.Prefix,
			})
		}
		if c.Yearly != nil {
			parsed.Collect.Yearly = &YearlySources{
				Name:  c.Yearly.Name,
				Years: c.Yearly.Years,
			}
		}
	}

	cfg := withDefaults(parsed)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
