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

	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/hardware/cpu"
)

// haltCondition is checked after every instruction while the emulation is
// running. The emulation halts when it returns true.
type haltCondition func(res cpu.Result) bool

// step executes a single instruction.
func (dbg *Debugger) step() {
	dbg.state = govern.Stepping
	res := dbg.comp.Step()
	dbg.dsm.UpdateEntry(res)
	dbg.printResult(res)
	dbg.state = govern.Paused
}

// stepOver runs until the instruction following the current instruction is
// reached if the current instruction is a call or a repeating instruction.
// Otherwise it is the same as step().
func (dbg *Debugger) stepOver() error {
	e, _ := dbg.dsm.GetEntryByAddress(dbg.comp.CPU.PC.Value())
	if e.Defn.Category != cpu.Call && e.Defn.Category != cpu.Loop {
		dbg.step()
		return nil
	}

	next := e.Next()
	return dbg.run(func(_ cpu.Result) bool {
		return dbg.comp.CPU.PC.Value() == next
	})
}

// stepOut runs until a return instruction pops the current stack frame.
func (dbg *Debugger) stepOut() error {
	sp := dbg.comp.CPU.SP.Value()
	return dbg.run(func(res cpu.Result) bool {
		return res.Defn != nil && res.Defn.Category == cpu.Return && dbg.comp.CPU.SP.Value() > sp
	})
}

// run the emulation until the halt condition is met, a breakpoint is reached
// or a key is pressed. the halt condition can be nil.
func (dbg *Debugger) run(halt haltCondition) error {
	dbg.state = govern.Running
	defer func() {
		dbg.state = govern.Paused
	}()

	release := dbg.term.WatchForKey(dbg.comp.Stop)
	defer release()

	var reason string

	err := dbg.comp.Run(func() (govern.State, error) {
		res := dbg.comp.CPU.LastResult
		dbg.dsm.UpdateEntry(res)

		if halt != nil && halt(res) {
			return govern.Ending, nil
		}

		pc := dbg.comp.CPU.PC.Value()
		if dbg.breakpoints.check(pc) {
			reason = fmt.Sprintf("break at %04x", pc)
			return govern.Ending, nil
		}

		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	if reason != "" {
		dbg.printLine(terminal.StyleFeedback, reason)
	}
	dbg.printResult(dbg.comp.CPU.LastResult)

	return nil
}

func (dbg *Debugger) printResult(res cpu.Result) {
	if res.Defn == nil {
		return
	}

	e, _ := dbg.dsm.GetEntryByAddress(res.Address)
	s := fmt.Sprintf("%s  %-11s  %s  [%d]", e.Address, e.Bytecode, e, res.Cycles)
	if res.Interrupt != cpu.NoInterrupt {
		s = fmt.Sprintf("%s  %s serviced [%d]", s, res.Interrupt, res.InterruptCycles)
	}
	dbg.printLine(terminal.StyleCPUStep, s)
}
