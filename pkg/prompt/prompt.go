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

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// clearScreen moves the cursor home and clears the terminal
const clearScreen = "\033[H\033[2J"

// 💬 Prompter reads answers from the user. On a terminal it uses pterm's
// interactive input; otherwise it reads plain lines.
type Prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// 🏭 New creates a prompter for stdin/stdout style files, detecting whether
// both ends are terminals
func New(in *os.File, out *os.File) *Prompter {
	return &Prompter{
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in) && isTerminal(out),
	}
}

// 🏭 NewPlain creates a line-reading prompter that never touches the terminal
func NewPlain(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether prompts go through the terminal UI
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// ❓ Ask shows message and returns the answer trimmed of surrounding whitespace.
// io.EOF is returned once the input is exhausted.
func (p *Prompter) Ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Errorf("prompting: %w", err)
	}

	if p.interactive {
		answer, err := pterm.DefaultInteractiveTextInput.Show(message)
		if err != nil {
			return "", errors.Errorf("reading answer: %w", err)
		}
		return strings.TrimSpace(answer), nil
	}

	fmt.Fprintf(p.out, "%s ", message)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", errors.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// 🧹 Clear clears the console when running on a terminal
func (p *Prompter) Clear() {
	if p.interactive {
		fmt.Fprint(p.out, clearScreen)
	}
}

// 🏷️ Header prints a full width title bar on a terminal
func (p *Prompter) Header(title string) {
	if p.interactive {
		pterm.DefaultHeader.WithFullWidth().Println(title)
	}
}
