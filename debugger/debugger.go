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

package debugger

import (
	"bufio"
	"os"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/dbgmem"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/logger"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	comp   *hardware.Computer
	dsm    *disassembly.Disassembly
	dbgmem dbgmem.DbgMem
	term   terminal.Terminal

	// may be nil
	Prefs *Preferences

	breakpoints *breakpoints

	state govern.State

	// the input loop continues while running is true. set to false by the
	// QUIT command
	running bool
}

// NewDebugger creates and initialises everything required for a new debugging
// session. The preferences argument can be nil.
func NewDebugger(comp *hardware.Computer, term terminal.Terminal, p *Preferences) (*Debugger, error) {
	if comp == nil {
		return nil, curated.Errorf("debugger: no computer")
	}
	if term == nil {
		return nil, curated.Errorf("debugger: no terminal")
	}

	dbg := &Debugger{
		comp:        comp,
		dsm:         disassembly.NewDisassembly(comp.CPU.Table(), comp.Mem),
		dbgmem:      dbgmem.DbgMem{Comp: comp},
		term:        term,
		Prefs:       p,
		breakpoints: newBreakpoints(),
		state:       govern.EmulatorStart,
	}

	return dbg, nil
}

// State returns the current state of the debugger.
func (dbg *Debugger) State() govern.State {
	return dbg.state
}

// Start the main debugger sequence. The script is a file of debugger commands
// run before user input is accepted. It is not an error for the script file to
// be missing.
func (dbg *Debugger) Start(script string) error {
	dbg.state = govern.Initialising

	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	dbg.running = true
	dbg.state = govern.Paused

	if script != "" {
		if err := dbg.runScript(script); err != nil {
			logger.Logf(logger.Allow, "debugger", "script: %v", err)
		}
	}

	defer func() {
		dbg.state = govern.Ending
	}()

	return dbg.inputLoop()
}

func (dbg *Debugger) runScript(script string) error {
	f, err := os.Open(script)
	if err != nil {
		return curated.Errorf(curated.HostIO, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for dbg.running && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue // for loop
		}
		dbg.printLine(terminal.StyleEcho, line)
		if err := dbg.parseInput(line); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return scanner.Err()
}

func (dbg *Debugger) inputLoop() error {
	for dbg.running {
		input, err := dbg.term.TermRead(dbg.prompt())
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				continue // for loop
			}
			if curated.Is(err, terminal.UserAbort) {
				return nil
			}
			return err
		}

		dbg.printLine(terminal.StyleEcho, input)

		if err := dbg.parseInput(input); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

func (dbg *Debugger) prompt() terminal.Prompt {
	pc := dbg.comp.CPU.PC.Value()
	e, _ := dbg.dsm.GetEntryByAddress(pc)
	return terminal.Prompt{
		Type:    terminal.PromptTypeCPUStep,
		Address: pc,
		Content: e.String(),
		Halted:  dbg.comp.CPU.Halted,
	}
}

func (dbg *Debugger) printLine(sty terminal.Style, s string) {
	for _, l := range strings.Split(s, "\n") {
		dbg.term.TermPrintLine(sty, l)
	}
}
