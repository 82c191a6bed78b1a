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

package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/cmd/filefetch/opts"
	"github.com/walteh/filefetch/pkg/config"
	"github.com/walteh/filefetch/pkg/log"
	"github.com/walteh/filefetch/pkg/operation"
	"github.com/walteh/filefetch/pkg/terms"
)

// NewCollectCmd creates the collect command
func NewCollectCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		termList   string
		allMatches bool
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Copy matches for each term from every source root into a folder per term",
		Long: `Collect searches every configured source root in parallel.
It will:
1. Ask for comma separated search terms (unless --terms is given)
2. Create <target_dir>/<term>/ for each term
3. Copy matching files from each root, adding the root's name prefix
4. Print a summary and ask again, until input ends or the process is interrupted

By default at most one file per directory is copied for each term; use
--all-matches to copy every match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *opts.Config
			if allMatches {
				cfg.Collect.AllMatches = true
			}
			runner := operation.NewRunner(zerolog.Ctx(ctx), cfg.Workers)

			if cmd.Flags().Changed("terms") {
				return collectOnce(ctx, &cfg, runner, termList)
			}

			opts.Prompter.Header("filefetch collect")
			for {
				answer, err := opts.Prompter.Ask(ctx, "Enter the search terms, separated by commas:")
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return nil
				}
				if err != nil {
					return errors.Errorf("reading search terms: %w", err)
				}

				opts.Prompter.Clear()

				if err := collectOnce(ctx, &cfg, runner, answer); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().StringVar(&termList, "terms", "", "comma separated search terms; runs once without prompting")
	cmd.Flags().BoolVar(&allMatches, "all-matches", false, "copy every match instead of one per directory")

	return cmd
}

// collectOnce runs one collection for a comma separated term list
func collectOnce(ctx context.Context, cfg *config.Config, runner *operation.Runner, input string) error {
	list, err := terms.ParseList(input)
	if errors.Is(err, terms.ErrNoTerms) {
		log.FromContext(ctx).Warning("You did not enter any search term. Please try again.")
		return nil
	}
	if err != nil {
		return errors.Errorf("parsing search terms: %w", err)
	}

	summary, err := operation.Collect(ctx, cfg, runner, list)
	if err != nil {
		// Interrupted runs end quietly
		if ctx.Err() != nil {
			return nil
		}
		return errors.Errorf("running collect: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("total", summary.Total()).Msg("collect finished")
	log.FromContext(ctx).LogNewline()
	return nil
}
