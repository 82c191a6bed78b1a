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

package status

import (
	"fmt"
	"strings"
)

// 📊 Outcome is the result of handling one located (or missing) file
type Outcome int

const (
	OutcomeUnknown  Outcome = iota
	OutcomeCopied           // File was copied to the target
	OutcomeNotFound         // No file matched the term
	OutcomeExists           // Destination name already taken, nothing written
	OutcomeFailed           // Walk or copy failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeNotFound:
		return "not found"
	case OutcomeExists:
		return "exists"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🧮 Summary counts outcomes for one run. Not safe for concurrent use on its own.
type Summary struct {
	Copied   int
	NotFound int
	Exists   int
	Failed   int
}

// Add records one outcome
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeCopied:
		s.Copied++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeExists:
		s.Exists++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of recorded outcomes
func (s Summary) Total() int {
	return s.Copied + s.NotFound + s.Exists + s.Failed
}

// OK reports whether nothing failed or was skipped
func (s Summary) OK() bool {
	return s.NotFound == 0 && s.Exists == 0 && s.Failed == 0
}

func (s Summary) String() string {
	parts := []string{fmt.Sprintf("%d copied", s.Copied)}
	if s.NotFound > 0 {
		parts = append(parts, fmt.Sprintf("%d not found", s.NotFound))
	}
	if s.Exists > 0 {
		parts = append(parts, fmt.Sprintf("%d already existed", s.Exists))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	return strings.Join(parts, ", ")
}
