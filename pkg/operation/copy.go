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
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrExists is returned by CopyFile when the destination name is taken.
var ErrExists = errors.Base("destination already exists")

// 🔧 CopyOptions tune CopyFile
type CopyOptions struct {
	PreserveMetadata bool // Copy permission bits and modification time
}

// 📦 CopyFile copies src to dstDir/name and returns the destination path.
//
// The destination is created exclusively, so an existing file is never
// touched and concurrent copies to the same name fail with ErrExists
// instead of racing.
func CopyFile(ctx context.Context, src, dstDir, name string, opts CopyOptions) (string, error) {
	dst := filepath.Join(dstDir, name)

	if err := ctx.Err(); err != nil {
		return dst, errors.Errorf("copying %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return dst, errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return dst, errors.Errorf("reading source info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return dst, errors.Errorf("source %s is not a regular file", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return dst, errors.WithStack(ErrExists)
		}
		return dst, errors.Errorf("creating destination: %w", err)
	}

	if err := write(out, in); err != nil {
		// Remove the partial copy; the name was ours since O_EXCL succeeded
		if rmErr := os.Remove(dst); rmErr != nil {
			zerolog.Ctx(ctx).Warn().Err(rmErr).Str("path", dst).Msg("removing partial copy")
		}
		return dst, err
	}

	if opts.PreserveMetadata {
		if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
			return dst, errors.Errorf("copying permissions: %w", err)
		}
		if err := os.Chtimes(dst, time.Time{}, info.ModTime()); err != nil {
			return dst, errors.Errorf("copying modification time: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("src", src).
		Str("dst", dst).
		Int64("size", info.Size()).
		Bool("preserve_metadata", opts.PreserveMetadata).
		Msg("copied file")

	return dst, nil
}

func write(out *os.File, in io.Reader) error {
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("writing destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}
	return nil
}
