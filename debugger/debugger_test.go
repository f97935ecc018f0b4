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

package debugger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/test"
)

var program = []uint8{
	0x31, 0x00, 0x80, // 0000 LD SP,8000h
	0xcd, 0x10, 0x00, // 0003 CALL 0010h
	0x00,       //       0006 NOP
	0x18, 0xfe, //       0007 JR 0007h
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x3e, 0x42, // 0010 LD A,42h
	0x06, 0x03, // 0012 LD B,03h
	0x10, 0xfe, // 0014 DJNZ 0014h
	0xc9, //       0016 RET
}

type mockTerm struct {
	input  []string
	output []string
	styles []terminal.Style
}

func (trm *mockTerm) Initialise() error {
	return nil
}

func (trm *mockTerm) CleanUp() {
}

func (trm *mockTerm) WatchForKey(_ func()) func() {
	return func() {}
}

func (trm *mockTerm) IsInteractive() bool {
	return false
}

func (trm *mockTerm) TermRead(_ terminal.Prompt) (string, error) {
	if len(trm.input) == 0 {
		return "", curated.Errorf(terminal.UserAbort)
	}
	s := trm.input[0]
	trm.input = trm.input[1:]
	return s, nil
}

func (trm *mockTerm) TermPrintLine(sty terminal.Style, s string) {
	if sty == terminal.StyleEcho {
		return
	}
	trm.output = append(trm.output, s)
	trm.styles = append(trm.styles, sty)
}

// contains returns true if any line of output contains the string.
func (trm *mockTerm) contains(s string) bool {
	for _, l := range trm.output {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func (trm *mockTerm) errors() int {
	n := 0
	for _, sty := range trm.styles {
		if sty == terminal.StyleError {
			n++
		}
	}
	return n
}

func newComputer(t *testing.T) *hardware.Computer {
	t.Helper()
	comp, err := hardware.NewComputer(nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, comp.Mem.LoadROM(program))
	comp.Reset()
	return comp
}

func run(t *testing.T, comp *hardware.Computer, script string, input ...string) *mockTerm {
	t.Helper()
	trm := &mockTerm{input: input}
	dbg, err := debugger.NewDebugger(comp, trm, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dbg.State(), govern.EmulatorStart)
	test.DemandSuccess(t, dbg.Start(script))
	test.ExpectEquality(t, dbg.State(), govern.Ending)
	return trm
}

func TestDebugger_withNonExistantInitScript(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, filepath.Join(t.TempDir(), "non_existent_script"), "QUIT", "STEP")

	// the STEP command is never reached
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0000)
	test.ExpectEquality(t, len(trm.output), 0)
}

func TestScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script")
	test.DemandSuccess(t, os.WriteFile(script, []byte("# comment\nSTEP\n\nstep\n"), 0o600))

	comp := newComputer(t)
	trm := run(t, comp, script)
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0010)
	test.ExpectSuccess(t, trm.contains("LD SP,8000h"))
	test.ExpectSuccess(t, trm.contains("CALL 0010h"))
}

func TestStepOver(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "", "STEP", "STEP OVER")

	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0006)
	test.ExpectEquality(t, comp.CPU.A.Value(), 0x42)
	test.ExpectEquality(t, comp.CPU.B.Value(), 0x00)
	test.ExpectEquality(t, comp.CPU.SP.Value(), 0x8000)
	test.ExpectEquality(t, trm.errors(), 0)

	// step over a DJNZ instruction runs until the loop is complete
	comp = newComputer(t)
	comp.CPU.PC.Load(0x0010)
	comp.CPU.SP.Load(0x8000)
	run(t, comp, "", "STEP", "STEP", "STEP OVER")
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0016)
	test.ExpectEquality(t, comp.CPU.B.Value(), 0x00)
}

func TestStepOut(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "", "STEP", "STEP", "STEP OUT")

	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0006)
	test.ExpectEquality(t, comp.CPU.SP.Value(), 0x8000)
	test.ExpectEquality(t, comp.CPU.B.Value(), 0x00)
	test.ExpectSuccess(t, trm.contains("RET"))
}

func TestBreakpoints(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "",
		"BREAK 0014h",
		"BREAK $14",
		"LIST",
		"RUN",
	)

	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0014)
	test.ExpectEquality(t, comp.CPU.B.Value(), 0x03)
	test.ExpectEquality(t, trm.errors(), 1)
	test.ExpectSuccess(t, trm.contains("break exists (0014)"))
	test.ExpectSuccess(t, trm.contains(" 0: 0014"))
	test.ExpectSuccess(t, trm.contains("break at 0014"))

	// running again stops at the same breakpoint on the next loop
	trm = run(t, comp, "", "BREAK 0x14", "RUN")
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0014)
	test.ExpectEquality(t, comp.CPU.B.Value(), 0x02)

	trm = run(t, comp, "", "BREAK 0014h", "DROP 0014h", "DROP 0014h", "LIST", "BREAK 0016h", "CLEAR", "LIST")
	test.ExpectEquality(t, trm.errors(), 1)
	test.ExpectSuccess(t, trm.contains("no break at 0014"))
	test.ExpectSuccess(t, trm.contains("no breakpoints"))
}

func TestPeekPoke(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "",
		"POKE 4000h 0x12 $34",
		"PEEK 4000h 2",
		"POKE 3800h 1",
		"PEEK 0 1",
		"POKE",
	)

	test.ExpectEquality(t, comp.Mem.Peek(0x4000), 0x12)
	test.ExpectEquality(t, comp.Mem.Peek(0x4001), 0x34)
	test.ExpectSuccess(t, trm.contains("4000 [RAM] -> 12"))
	test.ExpectSuccess(t, trm.contains("4001 [RAM] -> 34"))
	test.ExpectSuccess(t, trm.contains("0000 [ROM] -> 31"))
	test.ExpectEquality(t, trm.errors(), 2)
}

func TestDisasm(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "", "STEP", "DISASM 0 3")

	test.DemandEquality(t, len(trm.output), 4)
	test.ExpectSuccess(t, strings.HasSuffix(trm.output[1], "LD SP,8000h  (executed)"))
	test.ExpectSuccess(t, strings.HasSuffix(trm.output[2], "CALL 0010h"))
	test.ExpectSuccess(t, strings.HasSuffix(trm.output[3], "NOP"))
}

func TestCommands(t *testing.T) {
	comp := newComputer(t)
	trm := run(t, comp, "", "FOO", "HELP STEP", "HELP", "CPU", "CLOCK", "INTERRUPTS", "SCREEN", "PREFS", "STEP SIDEWAYS")

	test.ExpectEquality(t, trm.errors(), 2)
	test.ExpectSuccess(t, trm.contains("FOO is not a debugging command"))
	test.ExpectSuccess(t, trm.contains("Step forward one instruction"))
	test.ExpectSuccess(t, trm.contains("MEMVIZ"))
	test.ExpectSuccess(t, trm.contains("rtc in"))
	test.ExpectSuccess(t, trm.contains("no preferences"))
}

func TestStateFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "state")

	comp := newComputer(t)
	run(t, comp, "", "STEP", "STEP", "SAVE "+fn, "STEP", "STEP")
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0014)

	trm := run(t, comp, "", "LOAD "+fn)
	test.ExpectEquality(t, comp.CPU.PC.Value(), 0x0010)
	test.ExpectEquality(t, trm.errors(), 0)

	mv := filepath.Join(t.TempDir(), "cpu.dot")
	trm = run(t, comp, "", "MEMVIZ "+mv)
	test.ExpectEquality(t, trm.errors(), 0)
	_, err := os.Stat(mv)
	test.ExpectSuccess(t, err)
}
