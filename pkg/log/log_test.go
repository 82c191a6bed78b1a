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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Source:  "directory_1",
					Term:    "alpha",
					Name:    "alpha.pdf",
					Outcome: status.OutcomeCopied,
					Message: "'alpha.pdf' was found.",
				})
			},
			wantLogs: []string{
				"✓ directory_1     'alpha.pdf' was found.",
			},
		},
		{
			name: "log_failed_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Source:  "letters",
					Term:    "alpha",
					Outcome: status.OutcomeFailed,
					Message: "Error copying file 'a' to 'b'",
					Err:     errors.New("disk full"),
				})
			},
			wantLogs: []string{
				"✗ letters         Error copying file 'a' to 'b': disk full",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.StartRun(ctx, RunOperation{Kind: "collect", Target: "/tmp/out", Terms: 2, Roots: 3})
				logger.LogFileOperation(ctx, FileOperation{Source: "a", Outcome: status.OutcomeCopied, Message: "x"})
				logger.LogFileOperation(ctx, FileOperation{Source: "b", Outcome: status.OutcomeNotFound, Message: "y"})
				summary := logger.EndRun(ctx)
				assert.Equal(t, status.Summary{Copied: 1, NotFound: 1}, summary)
			},
			wantLogs: []string{
				"[collect into /tmp/out]",
				"◆ 2 terms • 3 roots",
				"✓ a               x",
				"- b               y",
				"! 1 copied, 1 not found",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("collecting files")
			},
			wantLogs: []string{
				"filefetch • collecting files",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.Nop())

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestLoggerConcurrentRun(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	ctx := context.Background()

	logger.StartRun(ctx, RunOperation{Kind: "collect", Target: "out", Terms: 1, Roots: 8})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.LogFileOperation(ctx, FileOperation{Source: "x", Outcome: status.OutcomeCopied})
			}
		}()
	}
	wg.Wait()

	summary := logger.EndRun(ctx)
	assert.Equal(t, 400, summary.Copied, "every concurrent report should be counted")
}
