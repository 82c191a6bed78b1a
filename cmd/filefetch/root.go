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
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/cmd/filefetch/commands"
	"github.com/walteh/filefetch/cmd/filefetch/opts"
	"github.com/walteh/filefetch/pkg/config"
	"github.com/walteh/filefetch/pkg/log"
)

var (
	// Flags
	configFile   string
	debugLogging bool
	workers      int
)

// 🌱 newRootCmd assembles the root command and its subcommands around ro
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filefetch",
		Short: "Find the latest matching files and copy them into a named folder",
		Long: `filefetch searches directory trees for files whose names contain a search
term and copies the matches into a target folder, never overwriting what
is already there.

  letters  copies the newest match for each search term under its rename term
  collect  copies matches for every term from every configured source root`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRoot(cmd, ro)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewLettersCmd(ro),
		commands.NewCollectCmd(ro),
		newVersionCmd(ro),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml, .yml, .hcl, .json); built-in defaults when empty")
	cmd.PersistentFlags().BoolVarP(&debugLogging, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "parallel source roots for collect (0 means one per CPU)")
}

// setupRoot configures logging and loads the config once flags are parsed
func setupRoot(cmd *cobra.Command, ro *opts.RootOpts) error {
	ctx := setupLogging(cmd, ro)

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("workers") {
		if workers < 0 {
			return errors.Errorf("--workers must not be negative")
		}
		cfg.Workers = workers
	}
	ro.Config = cfg

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return nil
}

// logLevel returns the structured log level; the JSON stream only runs with --debug
func logLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.Disabled
}

// setupLogging builds the structured logger and the console logger and puts
// both on the command context
func setupLogging(cmd *cobra.Command, ro *opts.RootOpts) context.Context {
	logs := ro.Logs
	if logs == nil {
		logs = io.Discard
	}

	zlog := zerolog.New(logs).Level(logLevel(debugLogging)).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Str("command", cmd.Name()).
		Logger()

	ctx := zlog.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(ro.Console, zlog))
	cmd.SetContext(ctx)
	return ctx
}
