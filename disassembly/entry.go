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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/hardware/cpu"
)

// EntryLevel describes the level of the Entry.
type EntryLevel int

// List of valid EntryLevel in increasing reliability.
//
// Decoded entries have been decoded as though every address is the start of
// a valid instruction. Blessed entries have been reached by following the flow
// of instructions from an entry point. Executed entries have been executed by
// the CPU.
const (
	EntryLevelDecoded EntryLevel = iota
	EntryLevelBlessed
	EntryLevelExecuted
)

func (l EntryLevel) String() string {
	switch l {
	case EntryLevelDecoded:
		return "decoded"
	case EntryLevelBlessed:
		return "blessed"
	case EntryLevelExecuted:
		return "executed"
	}
	return ""
}

// Entry is a disassembled instruction.
type Entry struct {
	Level EntryLevel

	Addr  uint16
	Bytes []uint8
	Defn  *cpu.Definition

	// string representations of the instruction. use Disassembly.GetField()
	// for versions padded for columnation
	Address  string
	Bytecode string
	Operator string
	Operand  string
	Cycles   string
}

func (e *Entry) String() string {
	if e.Operand == "" {
		return e.Operator
	}
	return fmt.Sprintf("%s %s", e.Operator, e.Operand)
}

// Next returns the address of the next instruction in sequence.
func (e *Entry) Next() uint16 {
	return e.Addr + uint16(len(e.Bytes))
}

// peek is the subset of the memory interface required for disassembly.
type peek interface {
	Peek(address uint16) uint8
}

// reader adapts a peek implementation to the cpu.Reader interface so that the
// instruction table can decode from memory without side effects.
type reader struct {
	mem peek
}

func (r reader) Read(address uint16) uint8 {
	return r.mem.Peek(address)
}

// Decode the instruction at the address. The memory is accessed with Peek()
// and so has no side effects.
func Decode(tab *cpu.InstructionTable, mem peek, address uint16) *Entry {
	defn := tab.DecodeMemory(reader{mem: mem}, address)

	e := &Entry{
		Level:   EntryLevelDecoded,
		Addr:    address,
		Defn:    defn,
		Bytes:   make([]uint8, defn.Size),
		Address: fmt.Sprintf("%04x", address),
	}

	for i := range e.Bytes {
		e.Bytes[i] = mem.Peek(address + uint16(i))
	}

	b := strings.Builder{}
	for i, v := range e.Bytes {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteString(fmt.Sprintf("%02x", v))
	}
	e.Bytecode = b.String()

	mnemonic := formatOperands(e, defn.Mnemonic)
	if op, operand, ok := strings.Cut(mnemonic, " "); ok {
		e.Operator = op
		e.Operand = operand
	} else {
		e.Operator = mnemonic
	}

	if defn.Conditional() {
		e.Cycles = fmt.Sprintf("%d/%d", defn.Cycles, defn.AltCycles)
	} else {
		e.Cycles = fmt.Sprintf("%d", defn.Cycles)
	}

	return e
}

// formatOperands replaces the operand tokens in the mnemonic with the values
// from the instruction bytes.
func formatOperands(e *Entry, mnemonic string) string {
	size := len(e.Bytes)

	if strings.Contains(mnemonic, cpu.OperandWord) {
		v := uint16(e.Bytes[size-2]) | uint16(e.Bytes[size-1])<<8
		mnemonic = strings.Replace(mnemonic, cpu.OperandWord, fmt.Sprintf("%04xh", v), 1)
	}

	if strings.Contains(mnemonic, cpu.OperandByte) {
		mnemonic = strings.Replace(mnemonic, cpu.OperandByte, fmt.Sprintf("%02xh", e.Bytes[size-1]), 1)
	}

	if strings.Contains(mnemonic, cpu.OperandDisplacement) {
		d := int8(e.Bytes[2])
		var s string
		if d < 0 {
			s = fmt.Sprintf("-%02xh", -int(d))
		} else {
			s = fmt.Sprintf("+%02xh", d)
		}
		mnemonic = strings.Replace(mnemonic, cpu.OperandDisplacement, s, 1)
	}

	if strings.Contains(mnemonic, cpu.OperandRelative) {
		target := e.Addr + uint16(size) + uint16(int8(e.Bytes[size-1]))
		mnemonic = strings.Replace(mnemonic, cpu.OperandRelative, fmt.Sprintf("%04xh", target), 1)
	}

	return mnemonic
}
