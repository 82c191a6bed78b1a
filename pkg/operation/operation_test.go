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

package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/filefetch/pkg/log"
)

// 🧪 createTestEnv creates a context carrying a test zerolog logger and a
// console logger writing to the returned buffer
func createTestEnv(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	buf := &bytes.Buffer{}
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(buf, zlog))
	return ctx, buf
}

// 🧪 writeFile creates root/rel with content and a modification time age before now
func writeFile(t *testing.T, root, rel, content string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// 🧪 listFiles returns the slash separated relative paths of all files under root
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
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

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func zerologFor(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
