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

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/cpu/registers"
	"github.com/jetsetilly/gopher80/hardware/memory"
)

// IO is the interface to the port bus used by the IN and OUT instructions.
type IO interface {
	In(port uint8) uint8
	Out(port uint8, data uint8)
}

// Clock is advanced by the number of ticks taken by each instruction.
type Clock interface {
	Advance(n uint64)
}

// Interrupts reports the state of the interrupt lines.
type Interrupts interface {
	NMI() bool
	IRQ() bool
}

// 8bit register identifiers. used by the instruction table to select a
// register from the CPU executing the instruction.
type reg8 int

const (
	regB reg8 = iota
	regC
	regD
	regE
	regH
	regL
	regAtHL
	regA
	regIXH
	regIXL
	regAtIX
	regIYH
	regIYL
	regAtIY
	regAtBC
	regAtDE
	numReg8
)

var reg8Names = [numReg8]string{
	"B", "C", "D", "E", "H", "L", "(HL)", "A",
	"IXH", "IXL", "(IX" + OperandDisplacement + ")",
	"IYH", "IYL", "(IY" + OperandDisplacement + ")",
	"(BC)", "(DE)",
}

// 16bit register identifiers.
type reg16 int

const (
	regBC reg16 = iota
	regDE
	regHL
	regSP
	regAF
	regIX
	regIY
	numReg16
)

var reg16Names = [numReg16]string{"BC", "DE", "HL", "SP", "AF", "IX", "IY"}

// CPU implements the Z80 microprocessor.
type CPU struct {
	A *registers.Plain8
	F *registers.Plain8
	B *registers.Plain8
	C *registers.Plain8
	D *registers.Plain8
	E *registers.Plain8
	H *registers.Plain8
	L *registers.Plain8

	IXH *registers.Plain8
	IXL *registers.Plain8
	IYH *registers.Plain8
	IYL *registers.Plain8

	I *registers.Plain8
	R *registers.Plain8

	AF *registers.Compound16
	BC *registers.Compound16
	DE *registers.Compound16
	HL *registers.Compound16
	IX *registers.Compound16
	IY *registers.Compound16

	SP *registers.Plain16
	PC *registers.Plain16

	// the alternate register set
	AltAF *registers.Plain16
	AltBC *registers.Plain16
	AltDE *registers.Plain16
	AltHL *registers.Plain16

	IFF1 bool
	IFF2 bool
	IM   uint8

	// the CPU is executing HALT instructions until an interrupt occurs
	Halted bool

	// memory views
	atSP *registers.DoubleIndirect16

	// the displacement of the current indexed instruction
	displacement *registers.Plain8

	// address and definition of the current instruction
	instr *registers.Plain16
	defn  *Definition

	// indexed by the reg8 and reg16 identifiers
	r8  [numReg8]registers.Register8
	r16 [numReg16]registers.Register16

	// interrupts are not accepted immediately after an EI instruction
	eiDelay bool

	// a serviced interrupt line must be deasserted before it can be serviced
	// again
	nmiServiced bool
	irqServiced bool

	tab  *InstructionTable
	mem  memory.Memory
	io   IO
	clk  Clock
	ints Interrupts

	// the result of the most recent call to Step()
	LastResult Result
}

// NewCPU is the preferred method of initialisation for the CPU type. The io,
// clk and ints arguments can be nil.
func NewCPU(tab *InstructionTable, mem memory.Memory, io IO, clk Clock, ints Interrupts) *CPU {
	mc := &CPU{
		A:   registers.NewPlain8("A"),
		F:   registers.NewPlain8("F"),
		B:   registers.NewPlain8("B"),
		C:   registers.NewPlain8("C"),
		D:   registers.NewPlain8("D"),
		E:   registers.NewPlain8("E"),
		H:   registers.NewPlain8("H"),
		L:   registers.NewPlain8("L"),
		IXH: registers.NewPlain8("IXH"),
		IXL: registers.NewPlain8("IXL"),
		IYH: registers.NewPlain8("IYH"),
		IYL: registers.NewPlain8("IYL"),
		I:   registers.NewPlain8("I"),
		R:   registers.NewPlain8("R"),

		SP: registers.NewPlain16("SP"),
		PC: registers.NewPlain16("PC"),

		AltAF: registers.NewPlain16("AF'"),
		AltBC: registers.NewPlain16("BC'"),
		AltDE: registers.NewPlain16("DE'"),
		AltHL: registers.NewPlain16("HL'"),

		displacement: registers.NewPlain8("d"),
		instr:        registers.NewPlain16("instruction"),

		tab:  tab,
		mem:  mem,
		io:   io,
		clk:  clk,
		ints: ints,
	}

	mc.AF = registers.NewCompound16(mc.A, mc.F)
	mc.BC = registers.NewCompound16(mc.B, mc.C)
	mc.DE = registers.NewCompound16(mc.D, mc.E)
	mc.HL = registers.NewCompound16(mc.H, mc.L)
	mc.IX = registers.NewCompound16(mc.IXH, mc.IXL)
	mc.IY = registers.NewCompound16(mc.IYH, mc.IYL)

	mc.r16 = [numReg16]registers.Register16{
		regBC: mc.BC,
		regDE: mc.DE,
		regHL: mc.HL,
		regSP: mc.SP,
		regAF: mc.AF,
		regIX: mc.IX,
		regIY: mc.IY,
	}

	mc.Plumb(mem)
	mc.Reset()

	return mc
}

// Plumb a new memory implementation into the CPU.
func (mc *CPU) Plumb(mem memory.Memory) {
	mc.mem = mem
	mc.atSP = registers.NewDoubleIndirect16(mc.SP, mem)
	mc.r8 = [numReg8]registers.Register8{
		regB:    mc.B,
		regC:    mc.C,
		regD:    mc.D,
		regE:    mc.E,
		regH:    mc.H,
		regL:    mc.L,
		regAtHL: registers.NewIndirect8(mc.HL, mem),
		regA:    mc.A,
		regIXH:  mc.IXH,
		regIXL:  mc.IXL,
		regAtIX: registers.NewIndexed8(mc.IX, mc.displacement, mem),
		regIYH:  mc.IYH,
		regIYL:  mc.IYL,
		regAtIY: registers.NewIndexed8(mc.IY, mc.displacement, mem),
		regAtBC: registers.NewIndirect8(mc.BC, mem),
		regAtDE: registers.NewIndirect8(mc.DE, mem),
	}
}

// PlumbPeripherals plumbs a new port bus, clock and interrupt controller into
// the CPU.
func (mc *CPU) PlumbPeripherals(io IO, clk Clock, ints Interrupts) {
	mc.io = io
	mc.clk = clk
	mc.ints = ints
}

// Reset the CPU. The program counter is set to zero and interrupts are
// disabled. The contents of the other registers are undefined on real
// hardware. The emulation sets them to 0xff.
func (mc *CPU) Reset() {
	mc.PC.Load(0)
	mc.SP.Load(0xffff)
	mc.AF.Load(0xffff)
	mc.BC.Load(0xffff)
	mc.DE.Load(0xffff)
	mc.HL.Load(0xffff)
	mc.IX.Load(0xffff)
	mc.IY.Load(0xffff)
	mc.AltAF.Load(0xffff)
	mc.AltBC.Load(0xffff)
	mc.AltDE.Load(0xffff)
	mc.AltHL.Load(0xffff)
	mc.I.Load(0)
	mc.R.Load(0)
	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0
	mc.Halted = false
	mc.eiDelay = false
	mc.nmiServiced = false
	mc.irqServiced = false
	mc.LastResult = Result{}
}

func (mc *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %s %s %s %s %s %s %s",
		mc.PC, mc.SP, mc.AF, mc.BC, mc.DE, mc.HL, mc.IX, mc.IY))
	s.WriteString(fmt.Sprintf(" %s %s [%s]", mc.I, mc.R, FlagsString(mc.F.Value())))
	if mc.IFF1 {
		s.WriteString(" EI")
	} else {
		s.WriteString(" DI")
	}
	s.WriteString(fmt.Sprintf(" IM%d", mc.IM))
	if mc.Halted {
		s.WriteString(" HALT")
	}
	return s.String()
}

// Table returns the instruction table used by the CPU.
func (mc *CPU) Table() *InstructionTable {
	return mc.tab
}

// refresh increases the lower seven bits of the R register. Bit 7 is
// unchanged.
func (mc *CPU) refresh(n uint8) {
	r := mc.R.Value()
	mc.R.Load(r&0x80 | (r+n)&0x7f)
}

func (mc *CPU) advance(cycles int) {
	if mc.clk != nil {
		mc.clk.Advance(uint64(cycles) * clocks.TicksPerTState)
	}
}

// Step executes the next instruction and then services any pending
// interrupt. Details of the instruction are in the LastResult field.
func (mc *CPU) Step() {
	start := mc.PC.Value()
	defn := mc.tab.DecodeMemory(mc.mem, start)

	mc.LastResult = Result{
		Address: start,
		Defn:    defn,
	}

	mc.instr.Load(start)
	mc.defn = defn
	if defn.Indexed() {
		mc.displacement.Load(mc.mem.Read(start + 2))
	}

	// the refresh register is increased during the opcode fetch and so before
	// the effect of the instruction
	mc.refresh(defn.Refresh)

	mc.PC.Load(start + uint16(defn.Size))
	mc.eiDelay = false

	var alt bool
	if defn.Effect != nil {
		alt = defn.Effect(mc)
	}

	if alt {
		mc.LastResult.Cycles = defn.AltCycles
	} else {
		mc.LastResult.Cycles = defn.Cycles
	}
	mc.advance(mc.LastResult.Cycles)

	mc.serviceInterrupts()
}

// operand8 returns the last byte of the current instruction.
func (mc *CPU) operand8() uint8 {
	return mc.mem.Read(mc.instr.Value() + uint16(mc.defn.Size) - 1)
}

// operand16 returns the last two bytes of the current instruction as a
// little-endian word.
func (mc *CPU) operand16() uint16 {
	return mc.mem.ReadWord(mc.instr.Value() + uint16(mc.defn.Size) - 2)
}

// relative returns the target address of a relative jump.
func (mc *CPU) relative() uint16 {
	return mc.instr.Value() + uint16(mc.defn.Size) + uint16(int8(mc.operand8()))
}

func (mc *CPU) push(v uint16) {
	mc.SP.Load(mc.SP.Value() - 2)
	mc.atSP.Load(v)
}

func (mc *CPU) pop() uint16 {
	v := mc.atSP.Value()
	mc.SP.Load(mc.SP.Value() + 2)
	return v
}

// exchange the values of two registers.
func exchange(a registers.Register16, b registers.Register16) {
	v := a.Value()
	a.Load(b.Value())
	b.Load(v)
}

func (mc *CPU) in(port uint8) uint8 {
	if mc.io == nil {
		return 0xff
	}
	return mc.io.In(port)
}

func (mc *CPU) out(port uint8, data uint8) {
	if mc.io != nil {
		mc.io.Out(port, data)
	}
}

// PredictRET returns the address that the next RET instruction will return
// to.
func (mc *CPU) PredictRET() uint16 {
	return mc.atSP.Value()
}
