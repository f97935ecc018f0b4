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

package cpu

import (
	"fmt"
	"strings"
)

// Family is the prefix family an instruction belongs to.
type Family int

// List of prefix families.
const (
	Unprefixed Family = iota
	PrefixCB
	PrefixDD
	PrefixED
	PrefixFD
	PrefixDDCB
	PrefixFDCB
)

func (f Family) String() string {
	switch f {
	case Unprefixed:
		return "unprefixed"
	case PrefixCB:
		return "CB"
	case PrefixDD:
		return "DD"
	case PrefixED:
		return "ED"
	case PrefixFD:
		return "FD"
	case PrefixDDCB:
		return "DD CB"
	case PrefixFDCB:
		return "FD CB"
	}
	return "unknown family"
}

// Category of the effect an instruction has on the flow of the program.
type Category int

// List of categories.
const (
	Sequential Category = iota

	// jumps and relative jumps, conditional or not
	Jump

	// CALL and RST instructions. these are the instructions that step-over
	// will run over
	Call

	// DJNZ and repeating block instructions. these are also run over by
	// step-over
	Loop

	// RET, RETI and RETN
	Return

	Halt
)

// Effect is the function that performs an instruction. The program counter
// has already been moved past the instruction when the effect is called. The
// return value indicates that the instruction took the alternate number of
// cycles. For example, a conditional jump that was taken.
type Effect func(mc *CPU) bool

// Operand tokens that may appear in a mnemonic. The tokens are replaced with
// the formatted operand during disassembly.
const (
	OperandWord         = "%nn"
	OperandByte         = "%n"
	OperandDisplacement = "%d"
	OperandRelative     = "%e"
)

// Definition describes an instruction in the instruction set.
type Definition struct {
	Family Family

	// the opcode bytes of the instruction. for the DD CB and FD CB families
	// the third byte is the position of the displacement and is always zero
	Opcode       [4]uint8
	OpcodeLength int

	// the mnemonic is a template. operand tokens are replaced during
	// disassembly
	Mnemonic string

	// number of bytes in the instruction including the opcode
	Size int

	// T-states taken by the instruction. the alternate value is used when
	// the effect function returns true
	Cycles    int
	AltCycles int

	// the instruction is a prefix byte for which there is no definition. it
	// is executed as a no-operation
	IsPrefix bool

	// how much the R register is increased when the instruction is executed
	Refresh uint8

	Category Category
	Effect   Effect

	// the instruction has a displacement byte
	displaced bool
}

// Signature returns the opcode bytes packed into a single value. The
// signature is used to order the definitions in the table index.
func (defn *Definition) Signature() uint32 {
	return uint32(defn.Opcode[0])<<24 | uint32(defn.Opcode[1])<<16 | uint32(defn.Opcode[2])<<8 | uint32(defn.Opcode[3])
}

// Indexed returns true if the instruction has a displacement byte.
func (defn *Definition) Indexed() bool {
	return defn.displaced
}

// Conditional returns true if the instruction has an alternate cycle count.
func (defn *Definition) Conditional() bool {
	return defn.AltCycles != defn.Cycles
}

// OpcodeString returns the opcode bytes as a string.
func (defn *Definition) OpcodeString() string {
	s := strings.Builder{}
	for i := 0; i < defn.OpcodeLength; i++ {
		if i > 0 {
			s.WriteRune(' ')
		}
		if i == 2 && (defn.Family == PrefixDDCB || defn.Family == PrefixFDCB) {
			s.WriteString("dd")
		} else {
			s.WriteString(fmt.Sprintf("%02x", defn.Opcode[i]))
		}
	}
	return s.String()
}

func (defn *Definition) String() string {
	cycles := fmt.Sprintf("%d", defn.Cycles)
	if defn.Conditional() {
		cycles = fmt.Sprintf("%d/%d", defn.Cycles, defn.AltCycles)
	}
	return fmt.Sprintf("%-12s %-16s %d bytes (%s cycles)", defn.OpcodeString(), defn.Mnemonic, defn.Size, cycles)
}

// operandSize returns the number of bytes required by the operand tokens in
// the mnemonic.
func operandSize(mnemonic string) int {
	n := 0
	if strings.Contains(mnemonic, OperandWord) {
		n += 2
	} else if strings.Contains(mnemonic, OperandByte) {
		n++
	}
	if strings.Contains(mnemonic, OperandDisplacement) {
		n++
	}
	if strings.Contains(mnemonic, OperandRelative) {
		n++
	}
	return n
}
