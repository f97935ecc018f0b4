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

// debugger keywords.
const (
	cmdReset = "RESET"
	cmdQuit  = "QUIT"
	cmdHelp  = "HELP"

	cmdRun  = "RUN"
	cmdStep = "STEP"

	cmdInsert     = "INSERT"
	cmdDisasm     = "DISASM"
	cmdCPU        = "CPU"
	cmdPeek       = "PEEK"
	cmdPoke       = "POKE"
	cmdClock      = "CLOCK"
	cmdInterrupts = "INTERRUPTS"
	cmdFloppy     = "FLOPPY"
	cmdCassette   = "CASSETTE"
	cmdScreen     = "SCREEN"
	cmdLog        = "LOG"
	cmdMemviz     = "MEMVIZ"
	cmdPrefs      = "PREFS"

	cmdSave = "SAVE"
	cmdLoad = "LOAD"

	// halt conditions
	cmdBreak = "BREAK"
	cmdList  = "LIST"
	cmdDrop  = "DROP"
	cmdClear = "CLEAR"
)

// arguments to the STEP command.
const (
	stepOver = "OVER"
	stepOut  = "OUT"
)

// Commands is the list of debugger keywords in the order they are listed by
// the HELP command. Suitable for tab completion.
var Commands = []string{
	cmdHelp,
	cmdStep,
	cmdRun,
	cmdBreak,
	cmdList,
	cmdDrop,
	cmdClear,
	cmdCPU,
	cmdPeek,
	cmdPoke,
	cmdDisasm,
	cmdClock,
	cmdInterrupts,
	cmdFloppy,
	cmdCassette,
	cmdScreen,
	cmdInsert,
	cmdSave,
	cmdLoad,
	cmdMemviz,
	cmdLog,
	cmdPrefs,
	cmdReset,
	cmdQuit,
}

var help = map[string]string{
	cmdHelp:       "Lists commands and provides help for individual commands",
	cmdStep:       "Step forward one instruction. STEP OVER runs over CALL, RST, DJNZ and repeating instructions. STEP OUT runs until the current subroutine returns",
	cmdRun:        "Run emulation until a breakpoint is met or a key is pressed",
	cmdBreak:      "Halt emulation when the program counter reaches the address",
	cmdList:       "List current breakpoints",
	cmdDrop:       "Drop the breakpoint at the address",
	cmdClear:      "Clear all breakpoints",
	cmdCPU:        "Display the current state of the CPU",
	cmdPeek:       "Inspect memory addresses. PEEK <address> [count]",
	cmdPoke:       "Modify memory addresses. POKE <address> <value> [value ...]",
	cmdDisasm:     "Disassemble instructions. DISASM [address] [count]",
	cmdClock:      "Display the clock and pending pulses",
	cmdInterrupts: "Display the state of the interrupt triggers",
	cmdFloppy:     "Display the state of the floppy drives",
	cmdCassette:   "Display the state of the cassette",
	cmdScreen:     "Display the contents of the video memory",
	cmdInsert:     "Attach a program, disk, cassette or ROM file",
	cmdSave:       "Save the machine state to a file",
	cmdLoad:       "Load the machine state from a file",
	cmdMemviz:     "Write a graph of the CPU state and pending pulses in dot format",
	cmdLog:        "Print the most recent log entries. LOG [count]",
	cmdPrefs:      "Display debugger preferences. PREFS [SAVE|LOAD|COLOUR ON|COLOUR OFF]",
	cmdReset:      "Reset the machine",
	cmdQuit:       "Exits the debugger",
}
