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

// cbDefinitions returns the definitions for the CB family. Every opcode in
// the family is defined.
func cbDefinitions() []*Definition {
	b := &builder{idx: index{family: PrefixCB, prefix: 0xcb}}

	for i, r := range plainRegs {
		r := r // per-iteration copy for closures (pre go1.22 loop semantics)
		cycles := 8
		bitCycles := 8
		if i == 6 {
			cycles = 15
			bitCycles = 12
		}

		for op := 0; op < 8; op++ {
			op := op // per-iteration copy for closures (pre go1.22 loop semantics)
			b.simple(true, uint8(op<<3|i), fmt.Sprintf("%s %s", rotMnemonics[op], reg8Names[r]), cycles, func(mc *CPU) {
				mc.r8[r].Load(mc.rotateCB(op, mc.r8[r].Value()))
			})
		}

		for bit := 0; bit < 8; bit++ {
			bit := bit // per-iteration copy for closures (pre go1.22 loop semantics)
			b.simple(true, uint8(0x40|bit<<3|i), fmt.Sprintf("BIT %d,%s", bit, reg8Names[r]), bitCycles, func(mc *CPU) {
				v := mc.r8[r].Value()
				xy := v
				if r == regAtHL {
					// undocumented flags for BIT n,(HL) are approximated with
					// the H register
					xy = mc.H.Value()
				}
				mc.bit(bit, v, xy)
			})
			b.simple(true, uint8(0x80|bit<<3|i), fmt.Sprintf("RES %d,%s", bit, reg8Names[r]), cycles, func(mc *CPU) {
				mc.r8[r].Load(mc.r8[r].Value() &^ (1 << bit))
			})
			b.simple(true, uint8(0xc0|bit<<3|i), fmt.Sprintf("SET %d,%s", bit, reg8Names[r]), cycles, func(mc *CPU) {
				mc.r8[r].Load(mc.r8[r].Value() | (1 << bit))
			})
		}
	}

	return b.defs
}

// indexedCBDefinitions returns the definitions for the DD CB or FD CB
// families. The operand is always the indexed memory location. Except for
// BIT, if the register field of the opcode is not 6 then the result is also
// copied to that register.
func indexedCBDefinitions(idx index) []*Definition {
	family := PrefixDDCB
	if idx.family == PrefixFD {
		family = PrefixFDCB
	}
	b := &builder{idx: index{family: family, prefix: idx.prefix}}

	m := idx.mem
	add := func(opcode uint8, mnemonic string, cycles int, eff func(mc *CPU)) {
		b.finalise(&Definition{
			Family:       family,
			Opcode:       [4]uint8{idx.prefix, 0xcb, 0x00, opcode},
			OpcodeLength: 4,
			Mnemonic:     mnemonic,
			Cycles:       cycles,
			AltCycles:    cycles,
			Refresh:      2,
			Effect: func(mc *CPU) bool {
				eff(mc)
				return false
			},
		})
	}

	for i, r := range plainRegs {
		i, r := i, r // per-iteration copy for closures (pre go1.22 loop semantics)
		// the register receiving a copy of the result
		var suffix string
		if i != 6 {
			suffix = "," + reg8Names[r]
		}

		store := func(mc *CPU, v uint8) {
			mc.r8[m].Load(v)
			if i != 6 {
				mc.r8[r].Load(v)
			}
		}

		for op := 0; op < 8; op++ {
			op := op // per-iteration copy for closures (pre go1.22 loop semantics)
			add(uint8(op<<3|i), fmt.Sprintf("%s %s%s", rotMnemonics[op], reg8Names[m], suffix), 23, func(mc *CPU) {
				store(mc, mc.rotateCB(op, mc.r8[m].Value()))
			})
		}

		for bit := 0; bit < 8; bit++ {
			bit := bit // per-iteration copy for closures (pre go1.22 loop semantics)
			add(uint8(0x40|bit<<3|i), fmt.Sprintf("BIT %d,%s", bit, reg8Names[m]), 20, func(mc *CPU) {
				// undocumented flags come from the high byte of the effective
				// address
				addr := mc.r16[idx.pair].Value() + uint16(int8(mc.displacement.Value()))
				mc.bit(bit, mc.r8[m].Value(), uint8(addr>>8))
			})
			add(uint8(0x80|bit<<3|i), fmt.Sprintf("RES %d,%s%s", bit, reg8Names[m], suffix), 23, func(mc *CPU) {
				store(mc, mc.r8[m].Value()&^(1<<bit))
			})
			add(uint8(0xc0|bit<<3|i), fmt.Sprintf("SET %d,%s%s", bit, reg8Names[m], suffix), 23, func(mc *CPU) {
				store(mc, mc.r8[m].Value()|(1<<bit))
			})
		}
	}

	return b.defs
}
