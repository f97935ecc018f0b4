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

package colorterm

import (
	"io"

	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/mgutz/ansi"
)

type palette struct {
	prompt     func(string) string
	help       func(string) string
	feedback   func(string) string
	cpuStep    func(string) string
	instrument func(string) string
	log        func(string) string
	err        func(string) string
}

var pens = palette{
	prompt:     ansi.ColorFunc("white+b"),
	help:       ansi.ColorFunc("white+h"),
	feedback:   ansi.ColorFunc("white"),
	cpuStep:    ansi.ColorFunc("yellow+h"),
	instrument: ansi.ColorFunc("cyan"),
	log:        ansi.ColorFunc("magenta"),
	err:        ansi.ColorFunc("red+h"),
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	// readline has already echoed the input line
	if style == terminal.StyleEcho {
		return
	}

	switch style {
	case terminal.StyleHelp:
		s = pens.help(s)
	case terminal.StyleFeedback:
		s = pens.feedback(s)
	case terminal.StyleCPUStep:
		s = pens.cpuStep(s)
	case terminal.StyleInstrument:
		s = pens.instrument(s)
	case terminal.StyleLog:
		s = pens.log(s)
	case terminal.StyleError:
		s = pens.err("* " + s)
	}

	_, _ = io.WriteString(ct.out, s+"\n")
}
