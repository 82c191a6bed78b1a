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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/cmd/filefetch/opts"
	"github.com/walteh/filefetch/pkg/operation"
)

// NewLettersCmd creates the letters command
func NewLettersCmd(opts *opts.RootOpts) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "letters",
		Short: "Copy the newest match for each search term under its rename term",
		Long: `Letters reads the search term file and the rename term file line by line.
It will:
1. Ask for the folder name (unless --folder is given)
2. Check both lists have the same number of terms
3. Find the newest file whose name contains each search term
4. Copy it into <target_dir>/<folder>/<rename term><extension>

Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cmd.Flags().Changed("folder") {
				opts.Prompter.Header("filefetch letters")
				answer, err := opts.Prompter.Ask(ctx, "Enter the folder name:")
				if err != nil && !errors.Is(err, io.EOF) {
					return errors.Errorf("reading folder name: %w", err)
				}
				folder = answer
			}

			err := operation.NewLettersOperation(opts.Config, folder).Execute(ctx)
			if operation.IsAborted(err) {
				zerolog.Ctx(ctx).Debug().Err(err).Msg("letters run aborted")
				return nil
			}
			if err != nil {
				return errors.Errorf("running letters: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "name of the folder created under letters.target_dir")

	return cmd
}
