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

package locate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Found is a matching file and its modification time
type Found struct {
	Path    string    // Full path, root joined with the relative path
	Name    string    // Base name
	ModTime time.Time // Modification time
}

// 🔧 Options tune a walk
type Options struct {
	Ignore     []string // Doublestar globs, relative to the root, of paths to skip
	AllMatches bool     // FirstPerDirectory yields every match instead of one per directory
}

// 🔍 Matches reports whether a file name contains the term
func Matches(name, term string) bool {
	return strings.Contains(name, term)
}

// 🕒 FindLatest returns the matching file under root with the newest
// modification time, or nil when nothing matches.
//
// Ties keep the first file seen. The walk is lexical, so among equal times
// the lexically smallest path wins.
func FindLatest(ctx context.Context, root, term string, opts Options) (*Found, error) {
	var latest *Found

	err := walk(ctx, root, term, opts, func(f Found) error {
		if latest == nil || f.ModTime.After(latest.ModTime) {
			match := f
			latest = &match
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if latest != nil {
		zerolog.Ctx(ctx).Debug().
			Str("root", root).
			Str("term", term).
			Str("path", latest.Path).
			Time("mod_time", latest.ModTime).
			Msg("latest match")
	}

	return latest, nil
}

// 📂 FirstPerDirectory calls fn for matching files under root, at most one per
// directory: once a directory has produced a match, its remaining files are
// passed over, while its subdirectories are still visited.
// With opts.AllMatches every match is passed to fn.
//
// An error returned by fn stops the walk and is returned wrapped.
func FirstPerDirectory(ctx context.Context, root, term string, opts Options, fn func(Found) error) error {
	matched := map[string]bool{}

	return walk(ctx, root, term, opts, func(f Found) error {
		dir := filepath.Dir(f.Path)
		if !opts.AllMatches && matched[dir] {
			zerolog.Ctx(ctx).Debug().Str("path", f.Path).Msg("directory already matched, skipping")
			return nil
		}
		matched[dir] = true
		return fn(f)
	})
}

// walk calls fn for every regular file under root whose name contains term.
func walk(ctx context.Context, root, term string, opts Options, fn func(Found) error) error {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(root); err != nil {
		return errors.Errorf("reading source root %s: %w", root, err)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries below the root are passed over
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && ignored(ctx, root, path, opts.Ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !Matches(d.Name(), term) {
			return nil
		}

		info, ok := regularFile(path, d)
		if !ok {
			return nil
		}

		return fn(Found{
			Path:    path,
			Name:    d.Name(),
			ModTime: info.ModTime(),
		})
	})
	if err != nil {
		return errors.Errorf("walking %s: %w", root, err)
	}

	return nil
}

// regularFile resolves symlinks and reports whether path is a regular file.
func regularFile(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	}

	if !d.Type().IsRegular() {
		return nil, false
	}

	info, err := d.Info()
	if err != nil {
		return nil, false
	}
	return info, true
}

// ignored checks path against the ignore globs, relative to root.
func ignored(ctx context.Context, root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("path ignored by pattern")
			return true
		}
	}

	return false
}
