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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultExtension is appended to rename terms when letters.extension is unset.
const DefaultExtension = ".pdf"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, on top of the built-in defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📂 Source is a named directory tree searched for matches
type Source struct {
	Name   string `json:"name" yaml:"name"`                         // Name used in reports
	Path   string `json:"path" yaml:"path"`                         // Root directory
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"` // Prepended to copied file names
}

// 📅 YearlySources is a group of source roots keyed by year
type YearlySources struct {
	Name  string            `json:"name" yaml:"name"`   // Group name, e.g. "toi"
	Years map[string]string `json:"years" yaml:"years"` // year -> path
}

// ✉️ LettersArgs configures the paired search/rename run
type LettersArgs struct {
	SearchFile string `json:"search_file" yaml:"search_file"`                 // Search terms, one per line
	RenameFile string `json:"rename_file" yaml:"rename_file"`                 // Rename terms, one per line
	SourceDir  string `json:"source_dir" yaml:"source_dir"`                   // Tree searched for matches
	TargetDir  string `json:"target_dir" yaml:"target_dir"`                   // Parent of the per-run folder
	Extension  string `json:"extension,omitempty" yaml:"extension,omitempty"` // Appended to rename terms
}

// 🗂️ CollectArgs configures the multi-root per-term run
type CollectArgs struct {
	TargetDir  string         `json:"target_dir" yaml:"target_dir"`
	Sources    []Source       `json:"sources" yaml:"sources"`
	Yearly     *YearlySources `json:"yearly,omitempty" yaml:"yearly,omitempty"`
	AllMatches bool           `json:"all_matches,omitempty" yaml:"all_matches,omitempty"` // Copy every match, not one per directory
}

// 📚 Config represents the complete configuration
type Config struct {
	Letters        LettersArgs `json:"letters" yaml:"letters"`
	Collect        CollectArgs `json:"collect" yaml:"collect"`
	IgnorePatterns []string    `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"` // Globs skipped while walking
	Workers        int         `json:"workers,omitempty" yaml:"workers,omitempty"`                 // 0 means one per CPU
}

// 🏭 Default returns the built-in source/target table used when no config file is given
func Default() *Config {
	return &Config{
		Letters: LettersArgs{
			SearchFile: "search/term.txt",
			RenameFile: "rename/file.txt",
			SourceDir:  "source/directory",
			TargetDir:  "/target/directory",
			Extension:  DefaultExtension,
		},
		Collect: CollectArgs{
			TargetDir: "target/directory",
			Sources: []Source{
				{Name: "directory_1", Path: "/source/directory_1"},
				{Name: "directory_2", Path: "/source/directory_2"},
				{Name: "directory_3", Path: "/source/directory_3", Prefix: "Schedule_"},
				{Name: "directory_4", Path: "/source/directory_4"},
			},
			Yearly: &YearlySources{
				Name: "toi",
				Years: map[string]string{
					"2019": "/source/directory/2019",
					"2020": "/source/directory/2020",
					"2021": "/source/directory/2021",
					"2022": "/source/directory/2022",
					"2023": "/source/directory/2023",
					"2024": "/source/directory/2024",
				},
			},
		},
	}
}

// 🎯 Load loads the configuration from a file, or the defaults when path is empty
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("no config file given, using built-in defaults")
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Letters
	if cfg.Letters.SearchFile == "" {
		return errors.Errorf("letters.search_file is required")
	}
	if cfg.Letters.RenameFile == "" {
		return errors.Errorf("letters.rename_file is required")
	}
	if cfg.Letters.SourceDir == "" {
		return errors.Errorf("letters.source_dir is required")
	}
	if cfg.Letters.TargetDir == "" {
		return errors.Errorf("letters.target_dir is required")
	}

	// Collect
	if cfg.Collect.TargetDir == "" {
		return errors.Errorf("collect.target_dir is required")
	}
	if len(cfg.Collect.Sources) == 0 && (cfg.Collect.Yearly == nil || len(cfg.Collect.Yearly.Years) == 0) {
		return errors.Errorf("collect needs at least one source")
	}
	seen := map[string]bool{}
	for i, src := range cfg.Collect.Sources {
		if src.Name == "" {
			return errors.Errorf("collect.sources[%d].name is required", i)
		}
		if src.Path == "" {
			return errors.Errorf("collect.sources[%d].path is required", i)
		}
		if seen[src.Name] {
			return errors.Errorf("collect.sources[%d]: duplicate name %q", i, src.Name)
		}
		seen[src.Name] = true
	}
	if y := cfg.Collect.Yearly; y != nil {
		if y.Name == "" {
			return errors.Errorf("collect.yearly.name is required")
		}
		for year, path := range y.Years {
			if path == "" {
				return errors.Errorf("collect.yearly.years[%s] has no path", year)
			}
		}
	}

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative")
	}

	// Clean up paths
	cfg.Letters.SearchFile = filepath.Clean(cfg.Letters.SearchFile)
	cfg.Letters.RenameFile = filepath.Clean(cfg.Letters.RenameFile)
	cfg.Letters.SourceDir = filepath.Clean(cfg.Letters.SourceDir)
	cfg.Letters.TargetDir = filepath.Clean(cfg.Letters.TargetDir)
	cfg.Collect.TargetDir = filepath.Clean(cfg.Collect.TargetDir)
	for i := range cfg.Collect.Sources {
		cfg.Collect.Sources[i].Path = filepath.Clean(cfg.Collect.Sources[i].Path)
	}
	if y := cfg.Collect.Yearly; y != nil {
		for year, path := range y.Years {
			y.Years[year] = filepath.Clean(path)
		}
	}

	// Set defaults
	if cfg.Letters.Extension == "" {
		cfg.Letters.Extension = DefaultExtension
	}
	if !strings.HasPrefix(cfg.Letters.Extension, ".") {
		cfg.Letters.Extension = "." + cfg.Letters.Extension
	}

	return nil
}

// 🌳 Roots expands the collect sources into the full list of roots to scan.
// Fixed sources come first in config order, then one root per year, oldest first.
func (cfg *Config) Roots() []Source {
	roots := make([]Source, 0, len(cfg.Collect.Sources))
	roots = append(roots, cfg.Collect.Sources...)

	if y := cfg.Collect.Yearly; y != nil {
		years := make([]string, 0, len(y.Years))
		for year := range y.Years {
			years = append(years, year)
		}
		sort.Strings(years)
		for _, year := range years {
			roots = append(roots, Source{
				Name: y.Name + "/" + year,
				Path: y.Years[year],
			})
		}
	}

	return roots
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("letters: %s -> %s, collect: %d roots -> %s",
		cfg.Letters.SourceDir, cfg.Letters.TargetDir, len(cfg.Roots()), cfg.Collect.TargetDir)
}

// 🧩 withDefaults overlays the fields set in parsed onto the built-in defaults.
// Lists and the yearly group replace the defaults wholesale.
func withDefaults(parsed *Config) *Config {
	cfg := Default()

	if parsed.Letters.SearchFile != "" {
		cfg.Letters.SearchFile = parsed.Letters.SearchFile
	}
	if parsed.Letters.RenameFile != "" {
		cfg.Letters.RenameFile = parsed.Letters.RenameFile
	}
	if parsed.Letters.SourceDir != "" {
		cfg.Letters.SourceDir = parsed.Letters.SourceDir
	}
	if parsed.Letters.TargetDir != "" {
		cfg.Letters.TargetDir = parsed.Letters.TargetDir
	}
	if parsed.Letters.Extension != "" {
		cfg.Letters.Extension = parsed.Letters.Extension
	}

	if parsed.Collect.TargetDir != "" {
		cfg.Collect.TargetDir = parsed.Collect.TargetDir
	}
	if len(parsed.Collect.Sources) > 0 {
		cfg.Collect.Sources = parsed.Collect.Sources
	}
	if parsed.Collect.Yearly != nil {
		cfg.Collect.Yearly = parsed.Collect.Yearly
	}
	cfg.Collect.AllMatches = parsed.Collect.AllMatches

	cfg.IgnorePatterns = parsed.IgnorePatterns
	cfg.Workers = parsed.Workers

	return cfg
}
