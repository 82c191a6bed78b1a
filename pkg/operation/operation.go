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

	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of work handed to a Runner
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation; per-file problems are reported, not returned
	Execute(ctx context.Context) error
}

// Pre-flight errors. They abort a run before anything is written.
var (
	ErrEmptyFolderName   = errors.Base("empty folder name")
	ErrIllegalFolderName = errors.Base("folder name contains invalid characters")
	ErrTermCountMismatch = errors.Base("number of search terms and rename terms is different")
	ErrNoTerms           = errors.Base("no search or rename terms found")
)

// 🛑 IsAborted reports whether err is a pre-flight abort rather than a failure
func IsAborted(err error) bool {
	return errors.Is(err, ErrEmptyFolderName) ||
		errors.Is(err, ErrIllegalFolderName) ||
		errors.Is(err, ErrTermCountMismatch) ||
		errors.Is(err, ErrNoTerms)
}
