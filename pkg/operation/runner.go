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
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/filefetch/pkg/config"
	"github.com/walteh/filefetch/pkg/log"
	"github.com/walteh/filefetch/pkg/status"
)

// 🏃 Runner executes operations on a bounded worker pool
type Runner struct {
	logger  *zerolog.Logger
	workers int
}

// 🏗️ NewRunner creates a new runner; workers <= 0 means one per CPU
func NewRunner(logger *zerolog.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		logger:  logger,
		workers: workers,
	}
}

// Workers returns the pool size
func (r *Runner) Workers() int {
	return r.workers
}

// 🏃 Run executes every operation and blocks until all have finished.
// Operations do not cancel each other; the first error returned is reported.
func (r *Runner) Run(ctx context.Context, ops ...Operation) error {
	var g errgroup.Group
	g.SetLimit(r.workers)

	r.logger.Debug().Int("operations", len(ops)).Int("workers", r.workers).Msg("dispatching")

	for _, op := range ops {
		g.Go(func() error {
			r.logger.Debug().Str("operation", op.Name()).Msg("starting operation")
			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("executing %s: %w", op.Name(), err)
			}
			r.logger.Debug().Str("operation", op.Name()).Msg("operation finished")
			return nil
		})
	}

	return g.Wait()
}

// 🗂️ Collect runs one collect task per source root for the given terms and
// returns the run summary.
func Collect(ctx context.Context, cfg *config.Config, runner *Runner, terms []string) (status.Summary, error) {
	logger := log.FromContext(ctx)

	ops := NewCollectOperations(cfg, terms)
	logger.StartRun(ctx, log.RunOperation{
		Kind:   "collect",
		Target: cfg.Collect.TargetDir,
		Terms:  len(terms),
		Roots:  len(ops),
	})

	err := runner.Run(ctx, ops...)
	summary := logger.EndRun(ctx)
	if err != nil {
		return summary, errors.Errorf("collecting: %w", err)
	}
	return summary, nil
}
