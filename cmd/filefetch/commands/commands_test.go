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

package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/filefetch/cmd/filefetch/commands"
	"github.com/walteh/filefetch/cmd/filefetch/opts"
	"github.com/walteh/filefetch/pkg/config"
	"github.com/walteh/filefetch/pkg/log"
	"github.com/walteh/filefetch/pkg/prompt"
)

// 🧪 testEnv is a throwaway filesystem layout plus the options commands run with
type testEnv struct {
	ctx     context.Context
	console *bytes.Buffer
	opts    *opts.RootOpts
	source  string
	target  string
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	dir := t.TempDir()
	env := &testEnv{
		console: &bytes.Buffer{},
		source:  filepath.Join(dir, "source"),
		target:  filepath.Join(dir, "target"),
	}
	require.NoError(t, os.MkdirAll(env.source, 0755))

	cfg := config.Default()
	cfg.Letters = config.LettersArgs{
		SearchFile: writeFile(t, dir, "search.txt", "alpha\nbeta\n"),
		RenameFile: writeFile(t, dir, "rename.txt", "A\nB\n"),
		SourceDir:  env.source,
		TargetDir:  env.target,
	}
	cfg.Collect = config.CollectArgs{
		TargetDir: env.target,
		Sources:   []config.Source{{Name: "directory_1", Path: env.source}},
	}
	cfg.Workers = 2
	require.NoError(t, cfg.Validate())

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	env.ctx = log.NewContext(zlog.WithContext(context.Background()), log.New(env.console, zlog))
	env.opts = &opts.RootOpts{
		Config:   cfg,
		Prompter: prompt.NewPlain(strings.NewReader(input), env.console),
		Console:  env.console,
	}
	return env
}

func (env *testEnv) run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(env.console)
	cmd.SetErr(env.console)
	return cmd.ExecuteContext(env.ctx)
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	mtime := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

// 🧪 TestLettersCmd tests the letters command
func TestLettersCmd(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		args          []string
		expectedFiles []string
		expectedLines []string
	}{
		{
			name:          "folder_flag",
			args:          []string{"--folder", "run"},
			expectedFiles: []string{"run/A.pdf", "run/B.pdf"},
			expectedLines: []string{"'alpha' was found and copied to the folder 'run'."},
		},
		{
			name:          "folder_prompted",
			input:         "  prompted \n",
			expectedFiles: []string{"prompted/A.pdf", "prompted/B.pdf"},
			expectedLines: []string{"Enter the folder name:", "'beta' was found and copied to the folder 'prompted'."},
		},
		{
			name:          "invalid_folder_exits_cleanly",
			args:          []string{"--folder", "a:b"},
			expectedLines: []string{"Folder name contains invalid characters."},
		},
		{
			name:          "no_answer",
			input:         "",
			expectedLines: []string{"Invalid folder name."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.input)
			writeFile(t, env.source, "alpha_final.pdf", "alpha")
			writeFile(t, env.source, "sub/beta.pdf", "beta")

			err := env.run(t, commands.NewLettersCmd(env.opts), tt.args...)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedFiles, listFiles(t, env.target))
			for _, line := range tt.expectedLines {
				assert.Contains(t, env.console.String(), line)
			}
		})
	}
}

// 🧪 TestCollectCmd tests the collect command
func TestCollectCmd(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		args          []string
		expectedFiles []string
		expectedLines []string
	}{
		{
			name:          "terms_flag",
			args:          []string{"--terms", "alpha, beta"},
			expectedFiles: []string{"alpha/alpha_1.pdf", "beta/beta.pdf"},
			expectedLines: []string{"'alpha_1.pdf' was found.", "2 copied"},
		},
		{
			name:          "all_matches_flag",
			args:          []string{"--terms", "alpha", "--all-matches"},
			expectedFiles: []string{"alpha/alpha_1.pdf", "alpha/alpha_2.pdf"},
		},
		{
			name:          "prompt_loop_until_eof",
			input:         "alpha\n\nbeta\n",
			expectedFiles: []string{"alpha/alpha_1.pdf", "beta/beta.pdf"},
			expectedLines: []string{
				"Enter the search terms, separated by commas:",
				"You did not enter any search term. Please try again.",
			},
		},
		{
			name:          "empty_terms_flag",
			args:          []string{"--terms", " ,alpha"},
			expectedLines: []string{"You did not enter any search term. Please try again."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.input)
			writeFile(t, env.source, "alpha_1.pdf", "one")
			writeFile(t, env.source, "alpha_2.pdf", "two")
			writeFile(t, env.source, "nested/beta.pdf", "beta")

			err := env.run(t, commands.NewCollectCmd(env.opts), tt.args...)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedFiles, listFiles(t, env.target))
			for _, line := range tt.expectedLines {
				assert.Contains(t, env.console.String(), line)
			}
		})
	}
}

// 🧪 TestCollectCmdRepeatedTerm checks a second run does not overwrite the first
func TestCollectCmdRepeatedTerm(t *testing.T) {
	env := newTestEnv(t, "beta\nbeta\n")
	writeFile(t, env.source, "beta.pdf", "beta")

	require.NoError(t, env.run(t, commands.NewCollectCmd(env.opts)))

	assert.Equal(t, []string{"beta/beta.pdf"}, listFiles(t, env.target))
	assert.Contains(t, env.console.String(), "0 copied, 1 already existed")
}
