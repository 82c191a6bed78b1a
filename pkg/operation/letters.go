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

package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/pkg/config"
	"github.com/walteh/filefetch/pkg/locate"
	"github.com/walteh/filefetch/pkg/log"
	"github.com/walteh/filefetch/pkg/status"
	"github.com/walteh/filefetch/pkg/terms"
)

// illegalFolderChars may not appear in a letters folder name.
const illegalFolderChars = `\/:*?"<>|`

// lettersSource is the source name shown in letters reports
const lettersSource = "letters"

// ✉️ LettersOperation copies the latest match for each search term under the
// paired rename term into one per-run folder.
type LettersOperation struct {
	args   config.LettersArgs
	ignore []string
	folder string
}

// 🏭 NewLettersOperation creates a letters run writing into folder
func NewLettersOperation(cfg *config.Config, folder string) *LettersOperation {
	return &LettersOperation{
		args:   cfg.Letters,
		ignore: cfg.IgnorePatterns,
		folder: strings.TrimSpace(folder),
	}
}

// Name implements Operation
func (op *LettersOperation) Name() string {
	return lettersSource + ":" + op.folder
}

// 🔍 ValidateFolderName rejects empty names and names with path or shell characters
func ValidateFolderName(folder string) error {
	if strings.TrimSpace(folder) == "" {
		return errors.WithStack(ErrEmptyFolderName)
	}
	if strings.ContainsAny(folder, illegalFolderChars) || !validFileName(strings.TrimSpace(folder)) {
		return errors.Errorf("%w: %q", ErrIllegalFolderName, folder)
	}
	return nil
}

// validFileName reports whether name is a single path element
func validFileName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// 🏃 Execute runs the letters batch
func (op *LettersOperation) Execute(ctx context.Context) error {
	logger := log.FromContext(ctx)

	if err := ValidateFolderName(op.folder); err != nil {
		logger.Error(folderMessage(err))
		return err
	}

	searchTerms := terms.Load(ctx, op.args.SearchFile)
	renameTerms := terms.Load(ctx, op.args.RenameFile)

	// Pre-flight checks, nothing is created before these pass
	if len(searchTerms) != len(renameTerms) {
		logger.Error("Number of search terms and rename terms is different.")
		return errors.Errorf("%w: %d search, %d rename", ErrTermCountMismatch, len(searchTerms), len(renameTerms))
	}
	if len(searchTerms) == 0 {
		logger.Error("No search or rename terms found.")
		return errors.WithStack(ErrNoTerms)
	}

	target := filepath.Join(op.args.TargetDir, op.folder)
	if err := os.MkdirAll(target, 0755); err != nil {
		return errors.Errorf("creating target folder: %w", err)
	}

	logger.StartRun(ctx, log.RunOperation{
		Kind:   lettersSource,
		Target: target,
		Terms:  len(searchTerms),
		Roots:  1,
	})
	defer logger.EndRun(ctx)

	for i, search := range searchTerms {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("letters run interrupted: %w", err)
		}
		op.fetch(ctx, search, renameTerms[i]+op.args.Extension, target)
	}

	return nil
}

// fetch locates one term and copies it under name, reporting the outcome.
func (op *LettersOperation) fetch(ctx context.Context, search, name, target string) {
	logger := log.FromContext(ctx)
	report := log.FileOperation{Source: lettersSource, Term: search, Name: name}

	// Rename terms stay inside the run folder
	if !validFileName(name) {
		report.Outcome = status.OutcomeFailed
		report.Message = fmt.Sprintf("Rename term for '%s' is not a valid file name: '%s'", search, name)
		logger.LogFileOperation(ctx, report)
		return
	}

	found, err := locate.FindLatest(ctx, op.args.SourceDir, search, locate.Options{Ignore: op.ignore})
	if err != nil {
		report.Outcome = status.OutcomeFailed
		report.Message = fmt.Sprintf("Error searching for '%s'", search)
		report.Err = err
		logger.LogFileOperation(ctx, report)
		return
	}
	if found == nil {
		report.Outcome = status.OutcomeNotFound
		report.Message = fmt.Sprintf("No file found for the search term '%s'.", search)
		logger.LogFileOperation(ctx, report)
		return
	}

	zerolog.Ctx(ctx).Debug().Str("term", search).Str("match", found.Path).Msg("copying latest match")

	dst, err := CopyFile(ctx, found.Path, target, name, CopyOptions{})
	switch {
	case errors.Is(err, ErrExists):
		report.Outcome = status.OutcomeExists
		report.Message = fmt.Sprintf("File '%s' already exists in '%s'.", name, target)
	case err != nil:
		report.Outcome = status.OutcomeFailed
		report.Message = fmt.Sprintf("Error copying file '%s' to '%s'", found.Path, dst)
		report.Err = err
	default:
		report.Outcome = status.OutcomeCopied
		report.Message = fmt.Sprintf("'%s' was found and copied to the folder '%s'.", search, op.folder)
	}
	logger.LogFileOperation(ctx, report)
}

// folderMessage returns the console text for a folder name error
func folderMessage(err error) string {
	if errors.Is(err, ErrIllegalFolderName) {
		return "Folder name contains invalid characters."
	}
	return "Invalid folder name."
}
