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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/filefetch/pkg/status"
)

// 🎯 FileOperation is one reported term/file result
type FileOperation struct {
	Source  string         // Source root name
	Term    string         // Search term
	Name    string         // Destination file name, if any
	Outcome status.Outcome // What happened
	Message string         // Human readable line
	Err     error          // Underlying error for failures
}

// 📦 RunOperation describes one batch run for logging
type RunOperation struct {
	Kind   string // "letters" or "collect"
	Target string // Target folder
	Terms  int    // Number of search terms
	Roots  int    // Number of source roots
}

// 🎯 Logger prints human readable status lines and mirrors them to zerolog.
// All methods are safe for concurrent use.
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	summary    status.Summary
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.summary.Add(op.Outcome)

	msg := op.Message
	if op.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, op.Err)
	}
	fmt.Fprintln(l.console, status.FormatFileOperation(op.Source, msg, op.Outcome))

	var event *zerolog.Event
	switch op.Outcome {
	case status.OutcomeFailed:
		event = l.zlog.Error().Err(op.Err)
	case status.OutcomeNotFound, status.OutcomeExists:
		event = l.zlog.Warn()
	default:
		event = l.zlog.Info()
	}
	event.
		Str("source", op.Source).
		Str("term", op.Term).
		Str("name", op.Name).
		Str("outcome", op.Outcome.String()).
		Msg(op.Message)
}

// 📝 StartRun starts a new batch run and resets the summary
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.summary = status.Summary{}

	fmt.Fprintf(l.console, "[%s into %s]\n",
		op.Kind,
		color.New(color.FgCyan).Sprint(op.Target))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d terms", op.Terms),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d roots", op.Roots))

	l.zlog.Info().
		Str("kind", op.Kind).
		Str("target", op.Target).
		Int("terms", op.Terms).
		Int("roots", op.Roots).
		Msg("starting run")
}

// 📝 EndRun ends the current run and returns its summary
func (l *Logger) EndRun(ctx context.Context) status.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := l.summary
	if l.currentRun == nil {
		return summary
	}

	symbol := color.New(color.FgGreen).Sprint("✓")
	if !summary.OK() {
		symbol = color.New(color.FgYellow).Sprint("!")
	}
	fmt.Fprintf(l.console, "%s %s\n", symbol, summary.String())

	l.zlog.Info().
		Str("kind", l.currentRun.Kind).
		Int("copied", summary.Copied).
		Int("not_found", summary.NotFound).
		Int("exists", summary.Exists).
		Int("failed", summary.Failed).
		Msg("run complete")

	l.currentRun = nil
	l.summary = status.Summary{}
	return summary
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("filefetch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
