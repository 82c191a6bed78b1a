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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walteh/filefetch/cmd/filefetch/opts"
	"github.com/walteh/filefetch/pkg/config"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Revision  string `json:"revision"`
	Modified  bool   `json:"modified"`
}

// GetVersionInfo reads the version from the embedded build info
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}

// 📋 FormatVersion renders the build info followed by the configuration the
// binary would run with: where it came from and which roots collect searches
func FormatVersion(info *VersionInfo, source string, cfg *config.Config, cfgErr error) string {
	var b strings.Builder

	modified := ""
	if info.Modified {
		modified = " (modified)"
	}
	fmt.Fprintf(&b, "🚀 filefetch %s (%s/%s%s)\n", info.Version, info.GoVersion, info.Platform, modified)
	if info.Revision != "" {
		fmt.Fprintf(&b, "Revision:  %s\n", info.Revision)
	}

	if source == "" {
		source = "built-in defaults"
	}
	if cfgErr != nil {
		fmt.Fprintf(&b, "Config:    %s (invalid: %v)\n", source, cfgErr)
		return b.String()
	}
	fmt.Fprintf(&b, "Config:    %s\n", source)
	fmt.Fprintf(&b, "Letters:   %s -> %s\n", cfg.Letters.SourceDir, cfg.Letters.TargetDir)

	roots := cfg.Roots()
	fmt.Fprintf(&b, "Collect:   %d roots -> %s\n", len(roots), cfg.Collect.TargetDir)
	for _, root := range roots {
		fmt.Fprintf(&b, "  %-15s %s\n", root.Name, root.Path)
	}

	return b.String()
}

// newVersionCmd prints build and configuration info. A broken config file is
// shown in the output instead of failing the command.
func newVersionCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and configuration information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, ro)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(cmd.Context(), configFile)
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion(GetVersionInfo(), configFile, cfg, err))
		},
	}
}
