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

// Package colorterm implements the Terminal interface for the gopher80
// debugger. It supports color output, history and tab completion.
package colorterm

import (
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/paths"
	"github.com/pkg/term"
)

// the name of the history file in the cache folder.
const historyFile = "history"

// ColorTerminal implements debugger UI interface with a basic ANSI terminal.
type ColorTerminal struct {
	rl  *readline.Instance
	out io.Writer

	// words used for tab completion
	completions []string

	// input from stdin is routed to readline or, if a key watch is active,
	// to the onKey function
	pipe  *io.PipeWriter
	crit  sync.Mutex
	onKey func()
}

// NewColorTerminal is the preferred method of initialisation for the
// ColorTerminal type. The completions are the words offered by the tab key at
// the start of the line.
func NewColorTerminal(completions []string) *ColorTerminal {
	return &ColorTerminal{
		completions: completions,
	}
}

// Initialise implements the terminal.Terminal interface.
func (ct *ColorTerminal) Initialise() error {
	items := make([]readline.PrefixCompleterInterface, 0, len(ct.completions))
	for _, c := range ct.completions {
		items = append(items, readline.PcItem(c))
	}

	pr, pw := io.Pipe()
	ct.pipe = pw

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     paths.HistoryPath(historyFile),
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
		Stdin:           pr,
	})
	if err != nil {
		return curated.Errorf("colorterm: %v", err)
	}
	ct.rl = rl
	ct.out = rl.Stdout()

	go ct.route(os.Stdin)

	return nil
}

func (ct *ColorTerminal) route(in io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if err != nil {
			ct.pipe.CloseWithError(err)
			return
		}

		ct.crit.Lock()
		onKey := ct.onKey
		ct.crit.Unlock()

		if onKey != nil {
			onKey()
			continue // for loop
		}

		if _, err := ct.pipe.Write(buf[:n]); err != nil {
			return
		}
	}
}

// CleanUp implements the terminal.Terminal interface.
func (ct *ColorTerminal) CleanUp() {
	if ct.rl != nil {
		_ = ct.rl.Close()
	}
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// WatchForKey implements the terminal.Terminal interface. The controlling
// terminal is put into cbreak mode for the duration of the watch so that a
// key press is seen without waiting for the return key.
func (ct *ColorTerminal) WatchForKey(onKey func()) func() {
	ct.crit.Lock()
	ct.onKey = onKey
	ct.crit.Unlock()

	tty, err := term.Open("/dev/tty")
	if err == nil {
		if err = tty.SetCbreak(); err != nil {
			_ = tty.Close()
			tty = nil
		}
	} else {
		tty = nil
	}

	return func() {
		ct.crit.Lock()
		ct.onKey = nil
		ct.crit.Unlock()

		if tty != nil {
			_ = tty.Restore()
			_ = tty.Close()
		}
	}
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	ct.rl.SetPrompt(pens.prompt(prompt.String()))

	s, err := ct.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", curated.Errorf(terminal.UserInterrupt)
		}
		if err == io.EOF {
			return "", curated.Errorf(terminal.UserAbort)
		}
		return "", curated.Errorf("colorterm: %v", err)
	}

	return s, nil
}
