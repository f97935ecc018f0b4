// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

// Package plainterm implements the Terminal interface for the gopher80
// debugger. It's a simple as simple can be and offers no special features.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the default, most basic terminal interface. It keeps the
// terminal in whatever mode it started, probably cooked mode. As such, it
// offers only rudimentary editing facility and little control over output.
type PlainTerminal struct {
	input  *bufio.Scanner
	output io.Writer

	// the input is connected to a terminal device. the prompt is only written
	// if this is true
	realInput bool
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type. If input or output are nil then stdin and stdout are
// used.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	pt := &PlainTerminal{}

	if input == nil {
		input = os.Stdin
		pt.realInput = term.IsTerminal(int(os.Stdin.Fd()))
	}
	if output == nil {
		output = os.Stdout
	}

	pt.input = bufio.NewScanner(input)
	pt.output = output

	return pt
}

// Initialise implements the terminal.Terminal interface.
func (pt *PlainTerminal) Initialise() error {
	return nil
}

// CleanUp implements the terminal.Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}

// WatchForKey implements the terminal.Terminal interface. The plain terminal
// can't see key presses until the return key is pressed.
func (pt *PlainTerminal) WatchForKey(_ func()) func() {
	return func() {}
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.realInput
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	// we don't need to echo user input for this type of terminal
	if style == terminal.StyleEcho {
		return
	}

	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	_, _ = io.WriteString(pt.output, s)
	_, _ = io.WriteString(pt.output, "\n")
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	if pt.realInput {
		_, _ = io.WriteString(pt.output, prompt.String())
	}

	if !pt.input.Scan() {
		if err := pt.input.Err(); err != nil {
			return "", curated.Errorf("plainterm: %v", err)
		}
		return "", curated.Errorf(terminal.UserAbort)
	}

	return pt.input.Text(), nil
}
