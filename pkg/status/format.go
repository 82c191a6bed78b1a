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

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	sourceWidth = 15 // Width for the source root name
)

// 🎯 FormatFileOperation formats one reported file line for display
func FormatFileOperation(source, message string, outcome Outcome) string {
	// Determine prefix symbol
	var prefix string
	switch outcome {
	case OutcomeCopied:
		prefix = color.GreenString("✓")
	case OutcomeExists:
		prefix = color.YellowString("=")
	case OutcomeFailed:
		prefix = color.RedString("✗")
	case OutcomeNotFound:
		prefix = color.HiBlackString("-")
	default:
		prefix = color.HiBlackString("?")
	}

	// Build final string with indentation
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		color.CyanString("%-*s", sourceWidth, source),
		message,
	)
}
