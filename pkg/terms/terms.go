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

// Package terms reads search terms from line-delimited files and comma lists.
package terms

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/pkg/log"
)

// commentPrefix marks a line to skip. It is checked against the raw line.
const commentPrefix = "#"

// maxLineSize bounds one line of a term file
const maxLineSize = 1 << 20

// ErrNoTerms is returned by ParseList when the first term is empty.
var ErrNoTerms = errors.Base("no search terms entered")

// 📄 Load returns the non-blank, non-comment lines of path, trimmed, in order.
// A missing or unreadable file is reported and yields an empty slice.
func Load(ctx context.Context, path string) []string {
	terms, err := read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.FromContext(ctx).Warningf("File '%s' not found.", path)
		} else {
			log.FromContext(ctx).Errorf("Error reading file '%s': %v", path, err)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("term file unavailable")
		return []string{}
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("terms", len(terms)).Msg("loaded terms")
	return terms
}

func read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening term file: %w", err)
	}
	defer f.Close()

	terms := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		term := strings.TrimSpace(line)
		if term == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading term file: %w", err)
	}

	return terms, nil
}

// ✂️ ParseList splits a comma separated line into trimmed terms.
// Only an empty first term is rejected; later blank entries are dropped.
func ParseList(input string) ([]string, error) {
	parts := strings.Split(input, ",")
	if strings.TrimSpace(parts[0]) == "" {
		return nil, errors.WithStack(ErrNoTerms)
	}

	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms, nil
}
