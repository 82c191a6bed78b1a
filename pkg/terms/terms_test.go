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

package terms

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/filefetch/pkg/log"
)

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	buf := &bytes.Buffer{}
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(buf, zlog))
	return ctx, buf
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain_lines",
			content: "alpha\nbeta\ngamma\n",
			want:    []string{"alpha", "beta", "gamma"},
		},
		{
			name:    "comments_and_blanks_interspersed",
			content: "# header\nalpha\n\n   \n#beta\ngamma\n# trailing\n",
			want:    []string{"alpha", "gamma"},
		},
		{
			name:    "surrounding_whitespace_trimmed",
			content: "  alpha  \n\tbeta\r\n",
			want:    []string{"alpha", "beta"},
		},
		{
			name:    "indented_hash_is_a_term",
			content: "  # not a comment\n",
			want:    []string{"# not a comment"},
		},
		{
			name:    "no_trailing_newline",
			content: "alpha\nbeta",
			want:    []string{"alpha", "beta"},
		},
		{
			name:    "only_comments",
			content: "# a\n# b\n",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			path := filepath.Join(t.TempDir(), "terms.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got := Load(ctx, path)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx, buf := testContext(t)
	path := filepath.Join(t.TempDir(), "missing.txt")

	got := Load(ctx, path)

	assert.NotNil(t, got, "missing file should yield an empty, non-nil slice")
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "File '"+path+"' not found.")
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "single_term",
			input: "UC123",
			want:  []string{"UC123"},
		},
		{
			name:  "comma_separated_with_spaces",
			input: " UC1 , UC2,UC3 ",
			want:  []string{"UC1", "UC2", "UC3"},
		},
		{
			name:  "later_blank_entries_dropped",
			input: "UC1,, ,UC2,",
			want:  []string{"UC1", "UC2"},
		},
		{
			name:    "empty_input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "blank_first_term",
			input:   "  ,UC2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoTerms))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadLongLines(t *testing.T) {
	long := strings.Repeat("x", 200*1024)

	tests := []struct {
		name        string
		content     string
		want        []string
		wantMessage string
	}{
		{
			name:    "line_above_default_scanner_limit",
			content: "alpha\n" + long + "\nbeta\n",
			want:    []string{"alpha", long, "beta"},
		},
		{
			name:        "line_above_max",
			content:     "alpha\n" + strings.Repeat("y", maxLineSize+1) + "\n",
			want:        []string{},
			wantMessage: "Error reading file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := testContext(t)
			path := filepath.Join(t.TempDir(), "terms.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got := Load(ctx, path)
			assert.Equal(t, tt.want, got)
			if tt.wantMessage != "" {
				assert.Contains(t, buf.String(), tt.wantMessage)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
