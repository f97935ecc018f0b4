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

// Flags in the F register.
const (
	FlagS  uint8 = 0x80
	FlagZ  uint8 = 0x40
	FlagY  uint8 = 0x20
	FlagH  uint8 = 0x10
	FlagX  uint8 = 0x08
	FlagPV uint8 = 0x04
	FlagN  uint8 = 0x02
	FlagC  uint8 = 0x01
)

// the undocumented flags are copies of bits 5 and 3 of a result
const flagsXY = FlagX | FlagY

// FlagsString returns the flags as a string. Upper case letters are used for
// flags that are set.
func FlagsString(f uint8) string {
	const on = "SZYHXPNC"
	const off = "szyhxpnc"
	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if f&(0x80>>i) != 0 {
			s[i] = on[i]
		} else {
			s[i] = off[i]
		}
	}
	return string(s)
}

func parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// sz returns the sign, zero and undocumented flags for the value.
func sz(v uint8) uint8 {
	f := v & (FlagS | flagsXY)
	if v == 0 {
		f |= FlagZ
	}
	return f
}

// szp is like sz() but with the parity flag.
func szp(v uint8) uint8 {
	f := sz(v)
	if parity(v) {
		f |= FlagPV
	}
	return f
}

func (mc *CPU) flag(f uint8) bool {
	return mc.F.Value()&f == f
}

func (mc *CPU) carry() uint8 {
	return mc.F.Value() & FlagC
}

// the eight arithmetic operations selected by bits 3 to 5 of the opcode.
const (
	aluADD = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

var aluMnemonics = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

func (mc *CPU) alu(op int, v uint8) {
	switch op {
	case aluADD:
		mc.add8(v, 0)
	case aluADC:
		mc.add8(v, mc.carry())
	case aluSUB:
		mc.A.Load(mc.sub8(v, 0))
	case aluSBC:
		mc.A.Load(mc.sub8(v, mc.carry()))
	case aluAND:
		r := mc.A.Value() & v
		mc.A.Load(r)
		mc.F.Load(szp(r) | FlagH)
	case aluXOR:
		r := mc.A.Value() ^ v
		mc.A.Load(r)
		mc.F.Load(szp(r))
	case aluOR:
		r := mc.A.Value() | v
		mc.A.Load(r)
		mc.F.Load(szp(r))
	case aluCP:
		mc.sub8(v, 0)
		// undocumented flags come from the operand and not the result
		mc.F.Load(mc.F.Value()&^flagsXY | v&flagsXY)
	}
}

func (mc *CPU) add8(v uint8, c uint8) {
	a := mc.A.Value()
	sum := uint16(a) + uint16(v) + uint16(c)
	r := uint8(sum)

	f := sz(r)
	if (a&0x0f)+(v&0x0f)+c > 0x0f {
		f |= FlagH
	}
	if (^(a^v))&(a^r)&0x80 != 0 {
		f |= FlagPV
	}
	if sum > 0xff {
		f |= FlagC
	}

	mc.A.Load(r)
	mc.F.Load(f)
}

// sub8 sets the flags for the subtraction of v from the accumulator and
// returns the result. The accumulator is not changed.
func (mc *CPU) sub8(v uint8, c uint8) uint8 {
	a := mc.A.Value()
	diff := int(a) - int(v) - int(c)
	r := uint8(diff)

	f := sz(r) | FlagN
	if int(a&0x0f)-int(v&0x0f)-int(c) < 0 {
		f |= FlagH
	}
	if (a^v)&(a^r)&0x80 != 0 {
		f |= FlagPV
	}
	if diff < 0 {
		f |= FlagC
	}

	mc.F.Load(f)
	return r
}

// incFlags sets the flags after an 8bit increment that produced the result r.
func (mc *CPU) incFlags(r uint8) {
	f := sz(r) | mc.carry()
	if r&0x0f == 0x00 {
		f |= FlagH
	}
	if r == 0x80 {
		f |= FlagPV
	}
	mc.F.Load(f)
}

// decFlags sets the flags after an 8bit decrement that produced the result r.
func (mc *CPU) decFlags(r uint8) {
	f := sz(r) | mc.carry() | FlagN
	if r&0x0f == 0x0f {
		f |= FlagH
	}
	if r == 0x7f {
		f |= FlagPV
	}
	mc.F.Load(f)
}

// add16 is the ADD HL,rr instruction. S, Z and PV are not affected.
func (mc *CPU) add16(a uint16, v uint16) uint16 {
	sum := uint32(a) + uint32(v)
	r := uint16(sum)

	f := mc.F.Value() & (FlagS | FlagZ | FlagPV)
	if (a&0x0fff)+(v&0x0fff) > 0x0fff {
		f |= FlagH
	}
	if sum > 0xffff {
		f |= FlagC
	}
	f |= uint8(r>>8) & flagsXY

	mc.F.Load(f)
	return r
}

func (mc *CPU) adc16(a uint16, v uint16) uint16 {
	c := uint16(mc.carry())
	sum := uint32(a) + uint32(v) + uint32(c)
	r := uint16(sum)

	f := uint8(r>>8) & (FlagS | flagsXY)
	if r == 0 {
		f |= FlagZ
	}
	if (a&0x0fff)+(v&0x0fff)+c > 0x0fff {
		f |= FlagH
	}
	if (^(a^v))&(a^r)&0x8000 != 0 {
		f |= FlagPV
	}
	if sum > 0xffff {
		f |= FlagC
	}

	mc.F.Load(f)
	return r
}

func (mc *CPU) sbc16(a uint16, v uint16) uint16 {
	c := uint16(mc.carry())
	diff := int32(a) - int32(v) - int32(c)
	r := uint16(diff)

	f := uint8(r>>8)&(FlagS|flagsXY) | FlagN
	if r == 0 {
		f |= FlagZ
	}
	if int32(a&0x0fff)-int32(v&0x0fff)-int32(c) < 0 {
		f |= FlagH
	}
	if (a^v)&(a^r)&0x8000 != 0 {
		f |= FlagPV
	}
	if diff < 0 {
		f |= FlagC
	}

	mc.F.Load(f)
	return r
}

// the rotate and shift operations of the CB family selected by bits 3 to 5 of
// the opcode.
const (
	rotRLC = iota
	rotRRC
	rotRL
	rotRR
	rotSLA
	rotSRA
	rotSLL
	rotSRL
)

var rotMnemonics = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// rotate returns the result of the rotate or shift operation and the new
// state of the carry flag.
func rotate(op int, v uint8, carry bool) (uint8, bool) {
	var r uint8
	var c bool

	switch op {
	case rotRLC:
		c = v&0x80 != 0
		r = v<<1 | v>>7
	case rotRRC:
		c = v&0x01 != 0
		r = v>>1 | v<<7
	case rotRL:
		c = v&0x80 != 0
		r = v << 1
		if carry {
			r |= 0x01
		}
	case rotRR:
		c = v&0x01 != 0
		r = v >> 1
		if carry {
			r |= 0x80
		}
	case rotSLA:
		c = v&0x80 != 0
		r = v << 1
	case rotSRA:
		c = v&0x01 != 0
		r = v>>1 | v&0x80
	case rotSLL:
		c = v&0x80 != 0
		r = v<<1 | 0x01
	case rotSRL:
		c = v&0x01 != 0
		r = v >> 1
	}

	return r, c
}

// rotateCB is a rotate or shift instruction from the CB family.
func (mc *CPU) rotateCB(op int, v uint8) uint8 {
	r, c := rotate(op, v, mc.flag(FlagC))
	f := szp(r)
	if c {
		f |= FlagC
	}
	mc.F.Load(f)
	return r
}

// rotateA is one of the accumulator rotate instructions. S, Z and PV are not
// affected.
func (mc *CPU) rotateA(op int) {
	r, c := rotate(op, mc.A.Value(), mc.flag(FlagC))
	f := mc.F.Value()&(FlagS|FlagZ|FlagPV) | r&flagsXY
	if c {
		f |= FlagC
	}
	mc.A.Load(r)
	mc.F.Load(f)
}

// bit is the BIT instruction. The undocumented flags are taken from xy.
func (mc *CPU) bit(b int, v uint8, xy uint8) {
	f := mc.carry() | FlagH | xy&flagsXY
	m := v & (1 << b)
	if m == 0 {
		f |= FlagZ | FlagPV
	}
	f |= m & FlagS
	mc.F.Load(f)
}

func (mc *CPU) daa() {
	a := mc.A.Value()
	n := mc.flag(FlagN)

	var adj uint8
	c := mc.flag(FlagC)
	if mc.flag(FlagH) || a&0x0f > 0x09 {
		adj |= 0x06
	}
	if c || a > 0x99 {
		adj |= 0x60
		c = true
	}

	var r uint8
	if n {
		r = a - adj
	} else {
		r = a + adj
	}

	f := szp(r)
	if n {
		f |= FlagN
	}
	if (a^r)&0x10 != 0 {
		f |= FlagH
	}
	if c {
		f |= FlagC
	}

	mc.A.Load(r)
	mc.F.Load(f)
}

// neg is the NEG instruction.
func (mc *CPU) neg() {
	v := mc.A.Value()
	mc.A.Load(0)
	mc.A.Load(mc.sub8(v, 0))
}
