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
)

// 🗂️ CollectOperation copies matches for every term from one source root into
// <target>/<term>/, prefixing names with the root's prefix.
type CollectOperation struct {
	source config.Source
	terms  []string
	target string
	opts   locate.Options
}

// 🏭 NewCollectOperation creates the task for one source root
func NewCollectOperation(cfg *config.Config, source config.Source, terms []string) *CollectOperation {
	return &CollectOperation{
		source: source,
		terms:  terms,
		target: cfg.Collect.TargetDir,
		opts: locate.Options{
			Ignore:     cfg.IgnorePatterns,
			AllMatches: cfg.Collect.AllMatches,
		},
	}
}

// 🏭 NewCollectOperations creates one task per configured source root
func NewCollectOperations(cfg *config.Config, terms []string) []Operation {
	roots := cfg.Roots()
	ops := make([]Operation, 0, len(roots))
	for _, root := range roots {
		ops = append(ops, NewCollectOperation(cfg, root, terms))
	}
	return ops
}

// Name implements Operation
func (op *CollectOperation) Name() string {
	return op.source.Name
}

// 🏃 Execute scans the source root once per term
func (op *CollectOperation) Execute(ctx context.Context) error {
	ctx = zerolog.Ctx(ctx).With().Str("source", op.source.Name).Logger().WithContext(ctx)

	// One report for a missing root instead of one per term
	if _, err := os.Stat(op.source.Path); err != nil {
		log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
			Source:  op.source.Name,
			Outcome: status.OutcomeFailed,
			Message: fmt.Sprintf("Source root '%s' is not available", op.source.Path),
			Err:     err,
		})
		return nil
	}

	for _, term := range op.terms {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("collecting from %s: %w", op.source.Name, err)
		}
		op.collectTerm(ctx, term)
	}
	return nil
}

// collectTerm copies the matches for one term, reporting each file.
func (op *CollectOperation) collectTerm(ctx context.Context, term string) {
	logger := log.FromContext(ctx)

	termDir, err := op.termDir(term)
	if err == nil {
		err = os.MkdirAll(termDir, 0755)
	}
	if err != nil {
		logger.LogFileOperation(ctx, log.FileOperation{
			Source:  op.source.Name,
			Term:    term,
			Outcome: status.OutcomeFailed,
			Message: fmt.Sprintf("Error creating the folder for '%s'", term),
			Err:     err,
		})
		return
	}

	copied := 0
	err = locate.FirstPerDirectory(ctx, op.source.Path, term, op.opts, func(f locate.Found) error {
		name := op.source.Prefix + f.Name
		report := log.FileOperation{Source: op.source.Name, Term: term, Name: name}

		dst, err := CopyFile(ctx, f.Path, termDir, name, CopyOptions{PreserveMetadata: true})
		switch {
		case errors.Is(err, ErrExists):
			report.Outcome = status.OutcomeExists
			report.Message = fmt.Sprintf("File '%s' already exists in '%s'.", name, termDir)
		case err != nil:
			report.Outcome = status.OutcomeFailed
			report.Message = fmt.Sprintf("Error copying file '%s' to '%s'", f.Path, dst)
			report.Err = err
		default:
			copied++
			report.Outcome = status.OutcomeCopied
			report.Message = fmt.Sprintf("'%s' was found.", name)
		}
		logger.LogFileOperation(ctx, report)

		// Interrupts stop the walk; everything else moves on to the next match
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return nil
	})
	if err != nil {
		logger.LogFileOperation(ctx, log.FileOperation{
			Source:  op.source.Name,
			Term:    term,
			Outcome: status.OutcomeFailed,
			Message: fmt.Sprintf("Error searching for '%s'", term),
			Err:     err,
		})
		return
	}

	zerolog.Ctx(ctx).Debug().Str("term", term).Int("copied", copied).Msg("term collected")
}

// termDir returns <target>/<term>, refusing terms that would leave the target.
func (op *CollectOperation) termDir(term string) (string, error) {
	dir := filepath.Join(op.target, term)
	rel, err := filepath.Rel(op.target, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("term %q does not name a folder inside %s", term, op.target)
	}
	return dir, nil
}
