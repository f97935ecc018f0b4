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

// index describes how the HL register and its halves are replaced by the DD
// and FD prefixes.
type index struct {
	family Family
	prefix uint8
	pair   reg16
	high   reg8
	low    reg8
	mem    reg8
}

var hlIndex = index{family: Unprefixed, pair: regHL, high: regH, low: regL, mem: regAtHL}
var ixIndex = index{family: PrefixDD, prefix: 0xdd, pair: regIX, high: regIXH, low: regIXL, mem: regAtIX}
var iyIndex = index{family: PrefixFD, prefix: 0xfd, pair: regIY, high: regIYH, low: regIYL, mem: regAtIY}

// regs returns the eight registers selected by the three bit register field
// of an opcode. Register 6 is the memory operand.
func (idx index) regs() [8]reg8 {
	return [8]reg8{regB, regC, regD, regE, idx.high, idx.low, idx.mem, regA}
}

// cycles returns the plain value for the unprefixed family and the indexed
// value for the DD and FD families.
func (idx index) cycles(plain int, indexed int) int {
	if idx.prefix == 0 {
		return plain
	}
	return indexed
}

func (idx index) name() string {
	return reg16Names[idx.pair]
}

// the plain register set, used by instructions that have both an indexed
// memory operand and a register operand
var plainRegs = hlIndex.regs()

// builder creates definitions for a single family.
type builder struct {
	idx  index
	defs []*Definition
}

// def adds a new definition. For the DD and FD families the definition is
// only added if the touches argument is true. The touches argument should be
// true if the instruction uses HL or one of its halves.
func (b *builder) def(touches bool, opcode uint8, mnemonic string, cycles int, altCycles int, cat Category, eff Effect) *Definition {
	if b.idx.prefix != 0 && !touches {
		return nil
	}

	defn := &Definition{
		Family:    b.idx.family,
		Mnemonic:  mnemonic,
		Cycles:    cycles,
		AltCycles: altCycles,
		Category:  cat,
		Effect:    eff,
	}

	if b.idx.prefix == 0 {
		defn.Opcode = [4]uint8{opcode}
		defn.OpcodeLength = 1
		defn.Refresh = 1
	} else {
		defn.Opcode = [4]uint8{b.idx.prefix, opcode}
		defn.OpcodeLength = 2
		defn.Refresh = 2
	}

	b.finalise(defn)
	return defn
}

// finalise a definition once the opcode and mnemonic have been set.
func (b *builder) finalise(defn *Definition) {
	defn.displaced = strings.Contains(defn.Mnemonic, OperandDisplacement)
	if defn.Family == PrefixDDCB || defn.Family == PrefixFDCB {
		defn.Size = 4
	} else {
		defn.Size = defn.OpcodeLength + operandSize(defn.Mnemonic)
	}
	b.defs = append(b.defs, defn)
}

// simple is a def() for an instruction with no alternate cycle count and that
// does not change the flow of the program.
func (b *builder) simple(touches bool, opcode uint8, mnemonic string, cycles int, eff func(mc *CPU)) {
	b.def(touches, opcode, mnemonic, cycles, cycles, Sequential, func(mc *CPU) bool {
		eff(mc)
		return false
	})
}

// conditions tested by the conditional instructions selected by bits 3 to 5
// of the opcode.
var conditions = [8]func(mc *CPU) bool{
	func(mc *CPU) bool { return !mc.flag(FlagZ) },
	func(mc *CPU) bool { return mc.flag(FlagZ) },
	func(mc *CPU) bool { return !mc.flag(FlagC) },
	func(mc *CPU) bool { return mc.flag(FlagC) },
	func(mc *CPU) bool { return !mc.flag(FlagPV) },
	func(mc *CPU) bool { return mc.flag(FlagPV) },
	func(mc *CPU) bool { return !mc.flag(FlagS) },
	func(mc *CPU) bool { return mc.flag(FlagS) },
}

var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// unprefixedDefinitions returns the definitions for instructions with no
// prefix byte.
func unprefixedDefinitions(idx index) []*Definition {
	b := &builder{idx: idx}
	b.load8()
	b.arithmetic8()
	b.incdec8()
	b.pair16()
	b.other16()
	b.flow()
	b.misc()
	return b.defs
}

// indexDefinitions returns the definitions for instructions in the DD or FD
// families. These are the unprefixed instructions that use HL, H, L or (HL)
// with the index register substituted.
func indexDefinitions(idx index) []*Definition {
	b := &builder{idx: idx}
	b.load8()
	b.arithmetic8()
	b.incdec8()
	b.pair16()
	return b.defs
}

func (b *builder) load8() {
	regs := b.idx.regs()

	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			// HALT
			if dst == 6 && src == 6 {
				continue
			}

			d := regs[dst]
			s := regs[src]
			cycles := 4
			switch {
			case dst == 6:
				s = plainRegs[src]
				cycles = b.idx.cycles(7, 19)
			case src == 6:
				d = plainRegs[dst]
				cycles = b.idx.cycles(7, 19)
			case dst == 4 || dst == 5 || src == 4 || src == 5:
				cycles = b.idx.cycles(4, 8)
			}

			touches := dst == 4 || dst == 5 || dst == 6 || src == 4 || src == 5 || src == 6
			b.simple(touches, uint8(0x40|dst<<3|src), fmt.Sprintf("LD %s,%s", reg8Names[d], reg8Names[s]), cycles, func(mc *CPU) {
				mc.r8[d].Load(mc.r8[s].Value())
			})
		}

		// LD r,n
		d := regs[dst]
		cycles := 7
		switch dst {
		case 4, 5:
			cycles = b.idx.cycles(7, 11)
		case 6:
			cycles = b.idx.cycles(10, 19)
		}
		b.simple(dst == 4 || dst == 5 || dst == 6, uint8(0x06|dst<<3), fmt.Sprintf("LD %s,%s", reg8Names[d], OperandByte), cycles, func(mc *CPU) {
			mc.r8[d].Load(mc.operand8())
		})
	}
}

func (b *builder) arithmetic8() {
	regs := b.idx.regs()

	for op := 0; op < 8; op++ {
		op := op // per-iteration copy for closures (pre go1.22 loop semantics)
		for src := 0; src < 8; src++ {
			s := regs[src]
			cycles := 4
			switch src {
			case 4, 5:
				cycles = b.idx.cycles(4, 8)
			case 6:
				cycles = b.idx.cycles(7, 19)
			}
			b.simple(src == 4 || src == 5 || src == 6, uint8(0x80|op<<3|src), aluMnemonics[op]+reg8Names[s], cycles, func(mc *CPU) {
				mc.alu(op, mc.r8[s].Value())
			})
		}

		b.simple(false, uint8(0xc6|op<<3), aluMnemonics[op]+OperandByte, 7, func(mc *CPU) {
			mc.alu(op, mc.operand8())
		})
	}
}

func (b *builder) incdec8() {
	regs := b.idx.regs()

	for i := 0; i < 8; i++ {
		r := regs[i]
		cycles := 4
		switch i {
		case 4, 5:
			cycles = b.idx.cycles(4, 8)
		case 6:
			cycles = b.idx.cycles(11, 23)
		}
		touches := i == 4 || i == 5 || i == 6

		b.simple(touches, uint8(0x04|i<<3), "INC "+reg8Names[r], cycles, func(mc *CPU) {
			mc.r8[r].Inc()
			mc.incFlags(mc.r8[r].Value())
		})
		b.simple(touches, uint8(0x05|i<<3), "DEC "+reg8Names[r], cycles, func(mc *CPU) {
			mc.r8[r].Dec()
			mc.decFlags(mc.r8[r].Value())
		})
	}
}

// pair16 creates the instructions that use HL as a 16bit register.
func (b *builder) pair16() {
	hl := b.idx.pair
	name := b.idx.name()

	b.simple(true, 0x21, fmt.Sprintf("LD %s,%s", name, OperandWord), b.idx.cycles(10, 14), func(mc *CPU) {
		mc.r16[hl].Load(mc.operand16())
	})
	b.simple(true, 0x22, fmt.Sprintf("LD (%s),%s", OperandWord, name), b.idx.cycles(16, 20), func(mc *CPU) {
		mc.mem.WriteWord(mc.operand16(), mc.r16[hl].Value())
	})
	b.simple(true, 0x2a, fmt.Sprintf("LD %s,(%s)", name, OperandWord), b.idx.cycles(16, 20), func(mc *CPU) {
		mc.r16[hl].Load(mc.mem.ReadWord(mc.operand16()))
	})
	b.simple(true, 0x23, "INC "+name, b.idx.cycles(6, 10), func(mc *CPU) {
		mc.r16[hl].Inc()
	})
	b.simple(true, 0x2b, "DEC "+name, b.idx.cycles(6, 10), func(mc *CPU) {
		mc.r16[hl].Dec()
	})

	for i, rr := range [4]reg16{regBC, regDE, hl, regSP} {
		rr := rr // per-iteration copy for closures (pre go1.22 loop semantics)
		b.simple(true, uint8(0x09|i<<4), fmt.Sprintf("ADD %s,%s", name, reg16Names[rr]), b.idx.cycles(11, 15), func(mc *CPU) {
			mc.r16[hl].Load(mc.add16(mc.r16[hl].Value(), mc.r16[rr].Value()))
		})
	}

	b.simple(true, 0xe1, "POP "+name, b.idx.cycles(10, 14), func(mc *CPU) {
		mc.r16[hl].Load(mc.pop())
	})
	b.simple(true, 0xe5, "PUSH "+name, b.idx.cycles(11, 15), func(mc *CPU) {
		mc.push(mc.r16[hl].Value())
	})
	b.simple(true, 0xe3, fmt.Sprintf("EX (SP),%s", name), b.idx.cycles(19, 23), func(mc *CPU) {
		v := mc.atSP.Value()
		mc.atSP.Load(mc.r16[hl].Value())
		mc.r16[hl].Load(v)
	})
	b.simple(true, 0xf9, fmt.Sprintf("LD SP,%s", name), b.idx.cycles(6, 10), func(mc *CPU) {
		mc.SP.Load(mc.r16[hl].Value())
	})
	b.def(true, 0xe9, fmt.Sprintf("JP (%s)", name), b.idx.cycles(4, 8), b.idx.cycles(4, 8), Jump, func(mc *CPU) bool {
		mc.PC.Load(mc.r16[hl].Value())
		return false
	})
}

// other16 creates the 16bit instructions that are not affected by the DD and
// FD prefixes.
func (b *builder) other16() {
	for i, rr := range [4]reg16{regBC, regDE, regHL, regSP} {
		rr := rr // per-iteration copy for closures (pre go1.22 loop semantics)
		if rr == regHL {
			continue
		}
		b.simple(false, uint8(0x01|i<<4), fmt.Sprintf("LD %s,%s", reg16Names[rr], OperandWord), 10, func(mc *CPU) {
			mc.r16[rr].Load(mc.operand16())
		})
		b.simple(false, uint8(0x03|i<<4), "INC "+reg16Names[rr], 6, func(mc *CPU) {
			mc.r16[rr].Inc()
		})
		b.simple(false, uint8(0x0b|i<<4), "DEC "+reg16Names[rr], 6, func(mc *CPU) {
			mc.r16[rr].Dec()
		})
	}

	for i, rr := range [4]reg16{regBC, regDE, regHL, regAF} {
		rr := rr // per-iteration copy for closures (pre go1.22 loop semantics)
		if rr == regHL {
			continue
		}
		b.simple(false, uint8(0xc1|i<<4), "POP "+reg16Names[rr], 10, func(mc *CPU) {
			mc.r16[rr].Load(mc.pop())
		})
		b.simple(false, uint8(0xc5|i<<4), "PUSH "+reg16Names[rr], 11, func(mc *CPU) {
			mc.push(mc.r16[rr].Value())
		})
	}

	b.simple(false, 0x02, "LD (BC),A", 7, func(mc *CPU) {
		mc.r8[regAtBC].Load(mc.A.Value())
	})
	b.simple(false, 0x12, "LD (DE),A", 7, func(mc *CPU) {
		mc.r8[regAtDE].Load(mc.A.Value())
	})
	b.simple(false, 0x0a, "LD A,(BC)", 7, func(mc *CPU) {
		mc.A.Load(mc.r8[regAtBC].Value())
	})
	b.simple(false, 0x1a, "LD A,(DE)", 7, func(mc *CPU) {
		mc.A.Load(mc.r8[regAtDE].Value())
	})
	b.simple(false, 0x32, fmt.Sprintf("LD (%s),A", OperandWord), 13, func(mc *CPU) {
		mc.mem.Write(mc.operand16(), mc.A.Value())
	})
	b.simple(false, 0x3a, fmt.Sprintf("LD A,(%s)", OperandWord), 13, func(mc *CPU) {
		mc.A.Load(mc.mem.Read(mc.operand16()))
	})

	b.simple(false, 0x08, "EX AF,AF'", 4, func(mc *CPU) {
		exchange(mc.AF, mc.AltAF)
	})
	b.simple(false, 0xd9, "EXX", 4, func(mc *CPU) {
		exchange(mc.BC, mc.AltBC)
		exchange(mc.DE, mc.AltDE)
		exchange(mc.HL, mc.AltHL)
	})
	b.simple(false, 0xeb, "EX DE,HL", 4, func(mc *CPU) {
		exchange(mc.DE, mc.HL)
	})
}

func (b *builder) flow() {
	b.def(false, 0xc3, "JP "+OperandWord, 10, 10, Jump, func(mc *CPU) bool {
		mc.PC.Load(mc.operand16())
		return false
	})
	b.def(false, 0x18, "JR "+OperandRelative, 12, 12, Jump, func(mc *CPU) bool {
		mc.PC.Load(mc.relative())
		return false
	})
	b.def(false, 0x10, "DJNZ "+OperandRelative, 8, 13, Loop, func(mc *CPU) bool {
		mc.B.Dec()
		if mc.B.IsNonZero() {
			mc.PC.Load(mc.relative())
			return true
		}
		return false
	})
	b.def(false, 0xcd, "CALL "+OperandWord, 17, 17, Call, func(mc *CPU) bool {
		mc.push(mc.PC.Value())
		mc.PC.Load(mc.operand16())
		return false
	})
	b.def(false, 0xc9, "RET", 10, 10, Return, func(mc *CPU) bool {
		mc.PC.Load(mc.pop())
		return false
	})

	for cc := 0; cc < 8; cc++ {
		cond := conditions[cc]
		name := conditionNames[cc]

		b.def(false, uint8(0xc2|cc<<3), fmt.Sprintf("JP %s,%s", name, OperandWord), 10, 10, Jump, func(mc *CPU) bool {
			if cond(mc) {
				mc.PC.Load(mc.operand16())
			}
			return false
		})
		b.def(false, uint8(0xc4|cc<<3), fmt.Sprintf("CALL %s,%s", name, OperandWord), 10, 17, Call, func(mc *CPU) bool {
			if cond(mc) {
				mc.push(mc.PC.Value())
				mc.PC.Load(mc.operand16())
				return true
			}
			return false
		})
		b.def(false, uint8(0xc0|cc<<3), "RET "+name, 5, 11, Return, func(mc *CPU) bool {
			if cond(mc) {
				mc.PC.Load(mc.pop())
				return true
			}
			return false
		})

		// only the first four conditions are available to JR
		if cc < 4 {
			b.def(false, uint8(0x20|cc<<3), fmt.Sprintf("JR %s,%s", name, OperandRelative), 7, 12, Jump, func(mc *CPU) bool {
				if cond(mc) {
					mc.PC.Load(mc.relative())
					return true
				}
				return false
			})
		}

		vector := uint16(cc << 3)
		b.def(false, uint8(0xc7|cc<<3), fmt.Sprintf("RST %02xh", vector), 11, 11, Call, func(mc *CPU) bool {
			mc.push(mc.PC.Value())
			mc.PC.Load(vector)
			return false
		})
	}
}

func (b *builder) misc() {
	b.simple(false, 0x00, "NOP", 4, func(mc *CPU) {})

	b.def(false, 0x76, "HALT", 4, 4, Halt, func(mc *CPU) bool {
		// the program counter stays on the HALT instruction until an
		// interrupt occurs
		mc.Halted = true
		mc.PC.Load(mc.instr.Value())
		return false
	})

	b.simple(false, 0xf3, "DI", 4, func(mc *CPU) {
		mc.IFF1 = false
		mc.IFF2 = false
	})
	b.simple(false, 0xfb, "EI", 4, func(mc *CPU) {
		mc.IFF1 = true
		mc.IFF2 = true
		mc.eiDelay = true
	})

	b.simple(false, 0x07, "RLCA", 4, func(mc *CPU) { mc.rotateA(rotRLC) })
	b.simple(false, 0x0f, "RRCA", 4, func(mc *CPU) { mc.rotateA(rotRRC) })
	b.simple(false, 0x17, "RLA", 4, func(mc *CPU) { mc.rotateA(rotRL) })
	b.simple(false, 0x1f, "RRA", 4, func(mc *CPU) { mc.rotateA(rotRR) })

	b.simple(false, 0x27, "DAA", 4, func(mc *CPU) { mc.daa() })
	b.simple(false, 0x2f, "CPL", 4, func(mc *CPU) {
		mc.A.Load(^mc.A.Value())
		mc.F.Load(mc.F.Value()&(FlagS|FlagZ|FlagPV|FlagC) | FlagH | FlagN | mc.A.Value()&flagsXY)
	})
	b.simple(false, 0x37, "SCF", 4, func(mc *CPU) {
		mc.F.Load(mc.F.Value()&(FlagS|FlagZ|FlagPV) | FlagC | mc.A.Value()&flagsXY)
	})
	b.simple(false, 0x3f, "CCF", 4, func(mc *CPU) {
		f := mc.F.Value()&(FlagS|FlagZ|FlagPV) | mc.A.Value()&flagsXY
		if mc.flag(FlagC) {
			f |= FlagH
		} else {
			f |= FlagC
		}
		mc.F.Load(f)
	})

	b.simple(false, 0xd3, fmt.Sprintf("OUT (%s),A", OperandByte), 11, func(mc *CPU) {
		mc.out(mc.operand8(), mc.A.Value())
	})
	b.simple(false, 0xdb, fmt.Sprintf("IN A,(%s)", OperandByte), 11, func(mc *CPU) {
		mc.A.Load(mc.in(mc.operand8()))
	})
}
