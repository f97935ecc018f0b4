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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/dbgmem"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/medialoader"
	"github.com/pkg/errors"
)

// error patterns for user input.
const (
	unknownCommand  = "%s is not a debugging command"
	missingArgument = "%s requires an argument"
	invalidArgument = "invalid argument for %s (%s)"
)

// the number of instructions disassembled by DISASM if no count is given.
const defaultDisasmCount = 10

// the number of log entries printed by LOG if no count is given.
const defaultLogCount = 10

// parseInput executes a single line of user input.
func (dbg *Debugger) parseInput(input string) error {
	tk := tokeniseInput(input)

	command, ok := tk.getUpper()
	if !ok {
		return nil
	}

	switch command {
	case cmdHelp:
		dbg.processHelp(tk)

	case cmdQuit:
		dbg.running = false

	case cmdReset:
		dbg.comp.Reset()
		dbg.printLine(terminal.StyleFeedback, "machine reset")

	case cmdStep:
		arg, _ := tk.getUpper()
		switch arg {
		case "":
			dbg.step()
		case stepOver:
			return dbg.stepOver()
		case stepOut:
			return dbg.stepOut()
		default:
			return curated.Errorf(invalidArgument, cmdStep, arg)
		}

	case cmdRun:
		return dbg.run(nil)

	case cmdBreak:
		address, err := dbg.getAddress(tk, cmdBreak)
		if err != nil {
			return err
		}
		if err := dbg.breakpoints.add(address); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("break at %04x", address))

	case cmdDrop:
		address, err := dbg.getAddress(tk, cmdDrop)
		if err != nil {
			return err
		}
		if err := dbg.breakpoints.drop(address); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("dropped break at %04x", address))

	case cmdClear:
		dbg.breakpoints.clear()
		dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")

	case cmdList:
		dbg.printLine(terminal.StyleInstrument, dbg.breakpoints.String())

	case cmdCPU:
		dbg.printLine(terminal.StyleInstrument, dbg.comp.CPU.String())

	case cmdPeek:
		return dbg.processPeek(tk)

	case cmdPoke:
		return dbg.processPoke(tk)

	case cmdDisasm:
		return dbg.processDisasm(tk)

	case cmdClock:
		dbg.printLine(terminal.StyleInstrument, dbg.comp.Clock.String())
		now := dbg.comp.Clock.Ticks()
		for _, p := range dbg.comp.Clock.Pending() {
			dbg.printLine(terminal.StyleInstrument, fmt.Sprintf("  %s in %d ticks", p.Name, p.Target-now))
		}

	case cmdInterrupts:
		dbg.printLine(terminal.StyleInstrument, dbg.comp.Interrupts.String())

	case cmdFloppy:
		dbg.printLine(terminal.StyleInstrument, dbg.comp.Floppy.String())

	case cmdCassette:
		dbg.printLine(terminal.StyleInstrument, dbg.comp.Cassette.String())

	case cmdScreen:
		for _, l := range dbg.comp.Mem.Video().Lines() {
			dbg.printLine(terminal.StyleInstrument, "|"+l)
		}

	case cmdInsert:
		if tk.remaining() == 0 {
			return curated.Errorf(missingArgument, cmdInsert)
		}
		ld := medialoader.NewLoader(tk.remainder())
		if err := dbg.comp.AttachMedia(&ld); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("attached %s", ld))

	case cmdSave:
		if tk.remaining() == 0 {
			return curated.Errorf(missingArgument, cmdSave)
		}
		fn := tk.remainder()
		if err := dbg.comp.SaveState(fn); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("state saved to %s", fn))

	case cmdLoad:
		if tk.remaining() == 0 {
			return curated.Errorf(missingArgument, cmdLoad)
		}
		fn := tk.remainder()
		if err := dbg.comp.LoadState(fn); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("state loaded from %s", fn))

	case cmdMemviz:
		if tk.remaining() == 0 {
			return curated.Errorf(missingArgument, cmdMemviz)
		}
		return dbg.processMemviz(tk.remainder())

	case cmdLog:
		n := defaultLogCount
		if arg, ok := tk.get(); ok {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return curated.Errorf(invalidArgument, cmdLog, arg)
			}
			n = v
		}
		s := &strings.Builder{}
		logger.Tail(s, n)
		dbg.printLine(terminal.StyleLog, strings.TrimSuffix(s.String(), "\n"))

	case cmdPrefs:
		return dbg.processPrefs(tk)

	default:
		return curated.Errorf(unknownCommand, command)
	}

	return nil
}

func (dbg *Debugger) getAddress(tk *tokens, command string) (uint16, error) {
	arg, ok := tk.get()
	if !ok {
		return 0, curated.Errorf(missingArgument, command)
	}
	address, ok := dbg.dbgmem.ParseAddress(arg)
	if !ok {
		return 0, curated.Errorf(invalidArgument, command, arg)
	}
	return address, nil
}

func (dbg *Debugger) processHelp(tk *tokens) {
	if arg, ok := tk.getUpper(); ok {
		if h, ok := help[arg]; ok {
			dbg.printLine(terminal.StyleHelp, h)
		} else {
			dbg.printLine(terminal.StyleHelp, fmt.Sprintf("no help for %s", arg))
		}
		return
	}

	s := strings.Builder{}
	for i, c := range Commands {
		if i > 0 && i%6 == 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("%-12s", c))
	}
	dbg.printLine(terminal.StyleHelp, strings.TrimRight(s.String(), " "))
}

func (dbg *Debugger) processPeek(tk *tokens) error {
	arg, ok := tk.get()
	if !ok {
		return curated.Errorf(missingArgument, cmdPeek)
	}

	count := 1
	if c, ok := tk.get(); ok {
		v, err := dbgmem.ParseValue(c, 16)
		if err != nil || v == 0 {
			return curated.Errorf(invalidArgument, cmdPeek, c)
		}
		count = int(v)
	}

	ai, err := dbg.dbgmem.Peek(arg)
	if err != nil {
		return err
	}
	dbg.printLine(terminal.StyleInstrument, ai.String())

	for i := 1; i < count; i++ {
		ai, err = dbg.dbgmem.Peek(ai.Address + 1)
		if err != nil {
			return err
		}
		dbg.printLine(terminal.StyleInstrument, ai.String())
	}

	return nil
}

func (dbg *Debugger) processPoke(tk *tokens) error {
	arg, ok := tk.get()
	if !ok {
		return curated.Errorf(missingArgument, cmdPoke)
	}
	if tk.remaining() == 0 {
		return curated.Errorf(missingArgument, cmdPoke)
	}

	ai := dbg.dbgmem.GetAddressInfo(arg)
	if ai == nil {
		return curated.Errorf(invalidArgument, cmdPoke, arg)
	}
	address := ai.Address

	for v, ok := tk.get(); ok; v, ok = tk.get() {
		data, err := dbgmem.ParseValue(v, 8)
		if err != nil {
			return curated.Errorf(invalidArgument, cmdPoke, v)
		}
		ai, err := dbg.dbgmem.Poke(address, uint8(data))
		if err != nil {
			return err
		}
		dbg.printLine(terminal.StyleInstrument, ai.String())
		address++
	}

	return nil
}

func (dbg *Debugger) processDisasm(tk *tokens) error {
	address := dbg.comp.CPU.PC.Value()
	if arg, ok := tk.get(); ok {
		var ok bool
		address, ok = dbg.dbgmem.ParseAddress(arg)
		if !ok {
			return curated.Errorf(invalidArgument, cmdDisasm, arg)
		}
	}

	count := defaultDisasmCount
	if arg, ok := tk.get(); ok {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			return curated.Errorf(invalidArgument, cmdDisasm, arg)
		}
		count = v
	}

	for i := 0; i < count; i++ {
		e, _ := dbg.dsm.GetEntryByAddress(address)
		s := fmt.Sprintf("%s  %-11s  %s", e.Address, e.Bytecode, e)
		if e.Level == disassembly.EntryLevelExecuted {
			s = fmt.Sprintf("%s  (%s)", s, e.Level)
		}
		dbg.printLine(terminal.StyleCPUStep, s)
		address = e.Next()
	}

	return nil
}

func (dbg *Debugger) processMemviz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(curated.HostIO, errors.Wrap(err, "memviz"))
	}
	defer f.Close()

	cpu := dbg.comp.CPU.State()
	pending := dbg.comp.Clock.Pending()
	memviz.Map(f, &cpu, &pending)

	dbg.printLine(terminal.StyleFeedback, fmt.Sprintf("graph written to %s", filename))
	return nil
}

func (dbg *Debugger) processPrefs(tk *tokens) error {
	if dbg.Prefs == nil {
		dbg.printLine(terminal.StyleFeedback, "no preferences")
		return nil
	}

	arg, ok := tk.getUpper()
	if !ok {
		dbg.printLine(terminal.StyleInstrument, dbg.Prefs.String())
		return nil
	}

	switch arg {
	case "SAVE":
		return dbg.Prefs.Save()
	case "LOAD":
		return dbg.Prefs.Load()
	case "COLOUR":
		v, _ := tk.getUpper()
		switch v {
		case "ON":
			return dbg.Prefs.Colour.Set(true)
		case "OFF":
			return dbg.Prefs.Colour.Set(false)
		}
		return curated.Errorf(invalidArgument, cmdPrefs, v)
	}

	return curated.Errorf(invalidArgument, cmdPrefs, arg)
}
