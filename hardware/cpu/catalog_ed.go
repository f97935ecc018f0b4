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
)

// edDefinitions returns the definitions for the ED family. Opcodes in the
// family that are not defined are executed as a two byte no-operation.
func edDefinitions() []*Definition {
	b := &builder{idx: index{family: PrefixED, prefix: 0xed}}

	for i, r := range plainRegs {
		r := r // per-iteration copy for closures (pre go1.22 loop semantics)
		if i == 6 {
			b.simple(true, 0x70, "IN (C)", 12, func(mc *CPU) {
				mc.F.Load(szp(mc.in(mc.C.Value())) | mc.carry())
			})
			b.simple(true, 0x71, "OUT (C),0", 12, func(mc *CPU) {
				mc.out(mc.C.Value(), 0)
			})
			continue
		}

		b.simple(true, uint8(0x40|i<<3), fmt.Sprintf("IN %s,(C)", reg8Names[r]), 12, func(mc *CPU) {
			v := mc.in(mc.C.Value())
			mc.r8[r].Load(v)
			mc.F.Load(szp(v) | mc.carry())
		})
		b.simple(true, uint8(0x41|i<<3), fmt.Sprintf("OUT (C),%s", reg8Names[r]), 12, func(mc *CPU) {
			mc.out(mc.C.Value(), mc.r8[r].Value())
		})
	}

	for i, rr := range [4]reg16{regBC, regDE, regHL, regSP} {
		rr := rr // per-iteration copy for closures (pre go1.22 loop semantics)
		name := reg16Names[rr]
		b.simple(true, uint8(0x42|i<<4), "SBC HL,"+name, 15, func(mc *CPU) {
			mc.HL.Load(mc.sbc16(mc.HL.Value(), mc.r16[rr].Value()))
		})
		b.simple(true, uint8(0x4a|i<<4), "ADC HL,"+name, 15, func(mc *CPU) {
			mc.HL.Load(mc.adc16(mc.HL.Value(), mc.r16[rr].Value()))
		})
		b.simple(true, uint8(0x43|i<<4), fmt.Sprintf("LD (%s),%s", OperandWord, name), 20, func(mc *CPU) {
			mc.mem.WriteWord(mc.operand16(), mc.r16[rr].Value())
		})
		b.simple(true, uint8(0x4b|i<<4), fmt.Sprintf("LD %s,(%s)", name, OperandWord), 20, func(mc *CPU) {
			mc.r16[rr].Load(mc.mem.ReadWord(mc.operand16()))
		})
	}

	// NEG, RETN and IM are mirrored across the otherwise unused opcodes in
	// the 0x40 to 0x7f range
	for i := 0; i < 8; i++ {
		b.simple(true, uint8(0x44|i<<3), "NEG", 8, func(mc *CPU) {
			mc.neg()
		})

		if i == 1 {
			b.def(true, 0x4d, "RETI", 14, 14, Return, func(mc *CPU) bool {
				mc.IFF1 = mc.IFF2
				mc.PC.Load(mc.pop())
				return false
			})
		} else {
			b.def(true, uint8(0x45|i<<3), "RETN", 14, 14, Return, func(mc *CPU) bool {
				mc.IFF1 = mc.IFF2
				mc.PC.Load(mc.pop())
				return false
			})
		}

		mode := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}[i]
		b.simple(true, uint8(0x46|i<<3), fmt.Sprintf("IM %d", mode), 8, func(mc *CPU) {
			mc.IM = mode
		})
	}

	b.simple(true, 0x47, "LD I,A", 9, func(mc *CPU) {
		mc.I.Load(mc.A.Value())
	})
	b.simple(true, 0x4f, "LD R,A", 9, func(mc *CPU) {
		mc.R.Load(mc.A.Value())
	})
	b.simple(true, 0x57, "LD A,I", 9, func(mc *CPU) {
		mc.A.Load(mc.I.Value())
		mc.loadIRFlags()
	})
	b.simple(true, 0x5f, "LD A,R", 9, func(mc *CPU) {
		mc.A.Load(mc.R.Value())
		mc.loadIRFlags()
	})

	b.simple(true, 0x67, "RRD", 18, func(mc *CPU) {
		m := mc.r8[regAtHL]
		v := m.Value()
		a := mc.A.Value()
		m.Load(a<<4 | v>>4)
		mc.A.Load(a&0xf0 | v&0x0f)
		mc.F.Load(szp(mc.A.Value()) | mc.carry())
	})
	b.simple(true, 0x6f, "RLD", 18, func(mc *CPU) {
		m := mc.r8[regAtHL]
		v := m.Value()
		a := mc.A.Value()
		m.Load(v<<4 | a&0x0f)
		mc.A.Load(a&0xf0 | v>>4)
		mc.F.Load(szp(mc.A.Value()) | mc.carry())
	})

	b.block()

	return b.defs
}

// loadIRFlags sets the flags after the LD A,I and LD A,R instructions. The
// parity flag is a copy of IFF2.
func (mc *CPU) loadIRFlags() {
	f := sz(mc.A.Value()) | mc.carry()
	if mc.IFF2 {
		f |= FlagPV
	}
	mc.F.Load(f)
}

// block creates the block transfer, search and I/O instructions. Each has a
// single and a repeating version, and an incrementing and decrementing
// version.
func (b *builder) block() {
	type blockOp struct {
		opcode uint8
		name   string
		eff    func(mc *CPU, step uint16) bool
	}

	ops := []blockOp{
		{opcode: 0xa0, name: "LD", eff: (*CPU).blockLD},
		{opcode: 0xa1, name: "CP", eff: (*CPU).blockCP},
		{opcode: 0xa2, name: "IN", eff: (*CPU).blockIN},
		{opcode: 0xa3, name: "OUT", eff: (*CPU).blockOUT},
	}

	for _, op := range ops {
		for _, dir := range []struct {
			offset uint8
			suffix string
			step   uint16
		}{
			{offset: 0x00, suffix: "I", step: 1},
			{offset: 0x08, suffix: "D", step: 0xffff},
		} {
			single := op.name + dir.suffix
			repeat := op.name + dir.suffix + "R"

			// the OUT instructions have irregular names
			if op.name == "OUT" {
				single = "OUT" + dir.suffix
				repeat = "OT" + dir.suffix + "R"
			}

			eff := op.eff
			step := dir.step

			b.simple(true, op.opcode|dir.offset, single, 16, func(mc *CPU) {
				eff(mc, step)
			})
			b.def(true, op.opcode|dir.offset|0x10, repeat, 16, 21, Loop, func(mc *CPU) bool {
				if eff(mc, step) {
					mc.PC.Load(mc.instr.Value())
					return true
				}
				return false
			})
		}
	}
}

// blockLD is the LDI and LDD instruction. Returns true if the instruction
// should be repeated by the LDIR and LDDR instructions.
func (mc *CPU) blockLD(step uint16) bool {
	v := mc.r8[regAtHL].Value()
	mc.r8[regAtDE].Load(v)
	mc.HL.Load(mc.HL.Value() + step)
	mc.DE.Load(mc.DE.Value() + step)
	mc.BC.Dec()

	n := mc.A.Value() + v
	f := mc.F.Value()&(FlagS|FlagZ|FlagC) | n&FlagX | (n<<4)&FlagY
	if mc.BC.IsNonZero() {
		f |= FlagPV
	}
	mc.F.Load(f)

	return mc.BC.IsNonZero()
}

// blockCP is the CPI and CPD instruction. Returns true if the instruction
// should be repeated by the CPIR and CPDR instructions.
func (mc *CPU) blockCP(step uint16) bool {
	c := mc.carry()
	r := mc.sub8(mc.r8[regAtHL].Value(), 0)
	mc.HL.Load(mc.HL.Value() + step)
	mc.BC.Dec()

	f := mc.F.Value()&^(FlagPV|FlagC|flagsXY) | c
	n := r
	if f&FlagH != 0 {
		n--
	}
	f |= n&FlagX | (n<<4)&FlagY
	if mc.BC.IsNonZero() {
		f |= FlagPV
	}
	mc.F.Load(f)

	return mc.BC.IsNonZero() && f&FlagZ == 0
}

// blockIN is the INI and IND instruction. Returns true if the instruction
// should be repeated by the INIR and INDR instructions.
func (mc *CPU) blockIN(step uint16) bool {
	mc.r8[regAtHL].Load(mc.in(mc.C.Value()))
	mc.HL.Load(mc.HL.Value() + step)
	mc.B.Dec()
	mc.F.Load(sz(mc.B.Value()) | FlagN | mc.carry())
	return mc.B.IsNonZero()
}

// blockOUT is the OUTI and OUTD instruction. Returns true if the instruction
// should be repeated by the OTIR and OTDR instructions.
func (mc *CPU) blockOUT(step uint16) bool {
	v := mc.r8[regAtHL].Value()
	mc.B.Dec()
	mc.out(mc.C.Value(), v)
	mc.HL.Load(mc.HL.Value() + step)
	mc.F.Load(sz(mc.B.Value()) | FlagN | mc.carry())
	return mc.B.IsNonZero()
}
