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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/test"
)

func TestLoadAndArithmetic(t *testing.T) {
	h := newHarness(
		0x3e, 0x7f, // LD A,7f
		0xc6, 0x01, // ADD A,01
		0x47, //       LD B,A
		0x90, //       SUB B
		0xd6, 0x01, // SUB 01
		0xfe, 0xff, // CP ff
	)

	test.ExpectEquality(t, h.step(1), 7)
	test.ExpectEquality(t, h.mc.A.Value(), 0x7f)

	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0x80)
	h.flags(t, cpu.FlagS|cpu.FlagH|cpu.FlagPV, cpu.FlagZ|cpu.FlagN|cpu.FlagC)

	h.step(2)
	test.ExpectEquality(t, h.mc.B.Value(), 0x80)
	test.ExpectEquality(t, h.mc.A.Value(), 0x00)
	h.flags(t, cpu.FlagZ|cpu.FlagN, cpu.FlagS|cpu.FlagC)

	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0xff)
	h.flags(t, cpu.FlagS|cpu.FlagC|cpu.FlagN|cpu.FlagH, cpu.FlagZ)

	// CP does not change the accumulator
	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0xff)
	h.flags(t, cpu.FlagZ|cpu.FlagN, cpu.FlagC)

	test.ExpectEquality(t, h.mc.PC.Value(), 0x000a)
}

func TestIncDec(t *testing.T) {
	h := newHarness(
		0x01, 0xff, 0x12, // LD BC,12ff
		0x03, //             INC BC
		0x0c, //             INC C
		0x3c, //             INC A
		0x3d, //             DEC A
		0x21, 0x00, 0x40, // LD HL,4000
		0x35, //             DEC (HL)
	)
	h.mc.A.Load(0x7f)

	h.step(2)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x1300)
	test.ExpectEquality(t, h.mc.B.Value(), 0x13)

	h.step(1)
	test.ExpectEquality(t, h.mc.C.Value(), 0x01)

	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0x80)
	h.flags(t, cpu.FlagPV|cpu.FlagH|cpu.FlagS, cpu.FlagN)

	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0x7f)
	h.flags(t, cpu.FlagPV|cpu.FlagH|cpu.FlagN, cpu.FlagS)

	test.ExpectEquality(t, h.step(2), 10+11)
	test.ExpectEquality(t, h.mem.Read(0x4000), 0xff)
}

func TestConditionalTiming(t *testing.T) {
	h := newHarness(
		0xaf, //       XOR A
		0x20, 0x10, // JR NZ,+10 (not taken)
		0x28, 0x02, // JR Z,+2 (taken)
		0x00, 0x00,
		0x06, 0x03, // LD B,03
		0x10, 0xfe, // DJNZ -2
	)

	test.ExpectEquality(t, h.step(1), 4)
	test.ExpectEquality(t, h.step(1), 7)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0003)
	test.ExpectEquality(t, h.step(1), 12)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0007)

	h.step(1)
	test.ExpectEquality(t, h.step(3), 13+13+8)
	test.ExpectEquality(t, h.mc.B.Value(), 0x00)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x000b)
	test.ExpectEquality(t, h.mc.LastResult.Cycles, 8)
}

func TestCallAndReturn(t *testing.T) {
	h := newHarness(
		0xcd, 0x10, 0x00, // CALL 0010
		0x00,
	)
	h.mem.Load(0x0010,
		0xc5, //       PUSH BC
		0xe1, //       POP HL
		0xc9, //       RET
	)
	h.mc.BC.Load(0xbeef)

	test.ExpectEquality(t, h.step(1), 17)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0010)
	test.ExpectEquality(t, h.mc.SP.Value(), 0x7ffe)
	test.ExpectEquality(t, h.mem.ReadWord(0x7ffe), 0x0003)
	test.ExpectEquality(t, h.mc.PredictRET(), 0x0003)

	h.step(2)
	test.ExpectEquality(t, h.mc.HL.Value(), 0xbeef)

	test.ExpectEquality(t, h.step(1), 10)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0003)
	test.ExpectEquality(t, h.mc.SP.Value(), 0x8000)
}

func TestRST(t *testing.T) {
	h := newHarness(0x00, 0xef)
	h.step(2)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0028)
	test.ExpectEquality(t, h.mem.ReadWord(0x7ffe), 0x0002)
	test.ExpectEquality(t, h.mc.LastResult.Defn.Category, cpu.Call)
}

func TestExchange(t *testing.T) {
	h := newHarness(
		0xe3, //       EX (SP),HL
		0x08, //       EX AF,AF'
		0xd9, //       EXX
		0xeb, //       EX DE,HL
	)
	h.mem.WriteWord(0x8000, 0x1234)
	h.mc.HL.Load(0xabcd)
	h.mc.AF.Load(0x0102)
	h.mc.AltAF.Load(0x0304)
	h.mc.BC.Load(0x1111)
	h.mc.AltBC.Load(0x2222)
	h.mc.AltDE.Load(0x5555)
	h.mc.AltHL.Load(0x6666)

	test.ExpectEquality(t, h.step(1), 19)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x1234)
	test.ExpectEquality(t, h.mem.ReadWord(0x8000), 0xabcd)

	h.step(1)
	test.ExpectEquality(t, h.mc.AF.Value(), 0x0304)
	test.ExpectEquality(t, h.mc.AltAF.Value(), 0x0102)

	h.step(1)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x2222)
	test.ExpectEquality(t, h.mc.AltHL.Value(), 0x1234)

	h.step(1)
	test.ExpectEquality(t, h.mc.DE.Value(), 0x6666)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x5555)
}

func TestIndexed(t *testing.T) {
	h := newHarness(
		0xdd, 0x21, 0x00, 0x50, // LD IX,5000
		0xdd, 0x36, 0x02, 0x99, // LD (IX+2),99
		0xdd, 0x7e, 0x02, //       LD A,(IX+2)
		0xdd, 0x34, 0xfe, //       INC (IX-2)
		0xdd, 0x26, 0x12, //       LD IXH,12
		0xdd, 0x65, //             LD H,L (becomes LD IXH,IXL)
		0xdd, 0x66, 0x02, //       LD H,(IX+2)
	)
	h.mc.L.Load(0x77)

	test.ExpectEquality(t, h.step(1), 14)
	test.ExpectEquality(t, h.mc.IX.Value(), 0x5000)
	test.ExpectEquality(t, h.mc.IXH.Value(), 0x50)

	test.ExpectEquality(t, h.step(1), 19)
	test.ExpectEquality(t, h.mem.Read(0x5002), 0x99)

	test.ExpectEquality(t, h.step(1), 19)
	test.ExpectEquality(t, h.mc.A.Value(), 0x99)

	test.ExpectEquality(t, h.step(1), 23)
	test.ExpectEquality(t, h.mem.Read(0x4ffe), 0x01)

	test.ExpectEquality(t, h.step(1), 11)
	test.ExpectEquality(t, h.mc.IX.Value(), 0x1200)

	h.step(1)
	test.ExpectEquality(t, h.mc.IX.Value(), 0x0000)
	test.ExpectEquality(t, h.mc.H.Value(), 0xff)

	// the register operand of an instruction with an indexed memory operand
	// is not substituted
	h.mc.IX.Load(0x5000)
	h.step(1)
	test.ExpectEquality(t, h.mc.H.Value(), 0x99)
	test.ExpectEquality(t, h.mc.IXH.Value(), 0x50)
}

func TestIndexedCB(t *testing.T) {
	h := newHarness(
		0xfd, 0xcb, 0x01, 0xde, // SET 3,(IY+1)
		0xfd, 0xcb, 0x01, 0x00, // RLC (IY+1),B
		0xfd, 0xcb, 0x01, 0x5e, // BIT 3,(IY+1)
	)
	h.mc.IY.Load(0x6000)

	test.ExpectEquality(t, h.step(1), 23)
	test.ExpectEquality(t, h.mem.Read(0x6001), 0x08)

	h.step(1)
	test.ExpectEquality(t, h.mem.Read(0x6001), 0x10)
	test.ExpectEquality(t, h.mc.B.Value(), 0x10)

	test.ExpectEquality(t, h.step(1), 20)
	h.flags(t, cpu.FlagZ|cpu.FlagH, cpu.FlagN)
}

func TestCB(t *testing.T) {
	h := newHarness(
		0xcb, 0x00, // RLC B
		0xcb, 0x38, // SRL B
		0xcb, 0x7e, // BIT 7,(HL)
		0xcb, 0xfe, // SET 7,(HL)
		0xcb, 0x7e, // BIT 7,(HL)
	)
	h.mc.B.Load(0x81)
	h.mc.HL.Load(0x4000)

	h.step(1)
	test.ExpectEquality(t, h.mc.B.Value(), 0x03)
	h.flags(t, cpu.FlagC|cpu.FlagPV, cpu.FlagZ)

	h.step(1)
	test.ExpectEquality(t, h.mc.B.Value(), 0x01)
	h.flags(t, cpu.FlagC, cpu.FlagPV)

	test.ExpectEquality(t, h.step(1), 12)
	h.flags(t, cpu.FlagZ|cpu.FlagH, cpu.FlagS)

	test.ExpectEquality(t, h.step(1), 15)
	test.ExpectEquality(t, h.mem.Read(0x4000), 0x80)

	h.step(1)
	h.flags(t, cpu.FlagS, cpu.FlagZ)
}

func TestBlockTransfer(t *testing.T) {
	h := newHarness(
		0xed, 0xb0, // LDIR
		0x00,
	)
	h.mem.Load(0x4000, 1, 2, 3, 4)
	h.mc.HL.Load(0x4000)
	h.mc.DE.Load(0x5000)
	h.mc.BC.Load(0x0004)

	test.ExpectEquality(t, h.step(4), 21+21+21+16)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0002)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x0000)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x4004)
	test.ExpectEquality(t, h.mc.DE.Value(), 0x5004)
	test.ExpectEquality(t, h.mem.Read(0x5003), 0x04)
	h.flags(t, 0, cpu.FlagPV)
}

func TestBlockSearch(t *testing.T) {
	h := newHarness(
		0xed, 0xb1, // CPIR
	)
	h.mem.Load(0x4000, 'a', 'b', 'c', 'd')
	h.mc.HL.Load(0x4000)
	h.mc.BC.Load(0x0010)
	h.mc.A.Load('c')

	h.step(3)
	h.flags(t, cpu.FlagZ|cpu.FlagPV, 0)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x4003)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x000d)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0002)
}

func TestPorts(t *testing.T) {
	h := newHarness(
		0xdb, 0xe0, // IN A,(e0)
		0xd3, 0xec, // OUT (ec),A
		0x0e, 0xff, // LD C,ff
		0xed, 0x50, // IN D,(C)
	)
	h.io.in[0xe0] = 0x80
	h.io.in[0xff] = 0x00

	test.ExpectEquality(t, h.step(1), 11)
	test.ExpectEquality(t, h.mc.A.Value(), 0x80)

	h.step(1)
	test.ExpectEquality(t, h.io.lastPort, 0xec)
	test.ExpectEquality(t, h.io.lastData, 0x80)

	h.mc.F.Load(cpu.FlagC)
	test.ExpectEquality(t, h.step(2), 7+12)
	test.ExpectEquality(t, h.mc.D.Value(), 0x00)
	h.flags(t, cpu.FlagZ|cpu.FlagPV|cpu.FlagC, cpu.FlagS)
}

func TestDAAAndNEG(t *testing.T) {
	h := newHarness(
		0x3e, 0x15, // LD A,15
		0xc6, 0x27, // ADD A,27
		0x27, //       DAA
		0xd6, 0x43, // SUB 43
		0x27, //       DAA
		0xed, 0x44, // NEG
	)

	h.step(3)
	test.ExpectEquality(t, h.mc.A.Value(), 0x42)
	h.step(2)
	test.ExpectEquality(t, h.mc.A.Value(), 0x99)
	h.flags(t, cpu.FlagC|cpu.FlagN, 0)

	h.step(1)
	test.ExpectEquality(t, h.mc.A.Value(), 0x67)
	h.flags(t, cpu.FlagC|cpu.FlagN, cpu.FlagZ)
}

func Test16BitArithmetic(t *testing.T) {
	h := newHarness(
		0x09, //       ADD HL,BC
		0xed, 0x42, // SBC HL,BC
		0xed, 0x4a, // ADC HL,BC
	)
	h.mc.HL.Load(0xf000)
	h.mc.BC.Load(0x1000)

	test.ExpectEquality(t, h.step(1), 11)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x0000)
	h.flags(t, cpu.FlagC, cpu.FlagN)

	test.ExpectEquality(t, h.step(1), 15)
	test.ExpectEquality(t, h.mc.HL.Value(), 0xefff)
	h.flags(t, cpu.FlagC|cpu.FlagN|cpu.FlagS, cpu.FlagZ)

	h.step(1)
	test.ExpectEquality(t, h.mc.HL.Value(), 0x0000)
	h.flags(t, cpu.FlagZ|cpu.FlagC, cpu.FlagN)
}

func TestRefreshRegister(t *testing.T) {
	h := newHarness(
		0x00, //       NOP
		0xcb, 0x00, // RLC B
		0x3e, 0xfe, // LD A,fe
		0xed, 0x4f, // LD R,A
		0x00, //       NOP
		0xed, 0x5f, // LD A,R
	)

	h.step(1)
	test.ExpectEquality(t, h.mc.R.Value(), 0x01)
	h.step(1)
	test.ExpectEquality(t, h.mc.R.Value(), 0x03)

	h.step(2)
	test.ExpectEquality(t, h.mc.R.Value(), 0xfe)

	// bit 7 is preserved when the lower seven bits wrap
	h.step(1)
	test.ExpectEquality(t, h.mc.R.Value(), 0xff)
	h.step(1)
	test.ExpectEquality(t, h.mc.R.Value(), 0x81)
	test.ExpectEquality(t, h.mc.A.Value(), 0x81)
}

func TestPrefixNOPs(t *testing.T) {
	h := newHarness(
		0xdd, 0x00, // DD prefix followed by NOP
		0xed, 0x77, // undefined ED
		0xfd, 0xfd, 0x21, 0x34, 0x12, // FD FD LD IY,1234
	)

	test.ExpectEquality(t, h.step(1), 4)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0001)
	test.ExpectEquality(t, h.mc.LastResult.Defn.IsPrefix, true)
	test.ExpectEquality(t, h.mc.R.Value(), 0x01)

	h.step(1)
	test.ExpectEquality(t, h.step(1), 8)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0004)

	h.step(2)
	test.ExpectEquality(t, h.mc.IY.Value(), 0x1234)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0009)
}

func TestHalt(t *testing.T) {
	h := newHarness(
		0x76, // HALT
	)

	test.ExpectEquality(t, h.step(3), 12)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0000)
	test.ExpectEquality(t, h.mc.Halted, true)
	test.ExpectEquality(t, h.mc.R.Value(), 0x03)
}

func TestState(t *testing.T) {
	h := newHarness(
		0x01, 0x34, 0x12, // LD BC,1234
		0xfb, //             EI
		0x03, //             INC BC
	)
	h.step(2)
	s := h.mc.State()
	test.ExpectEquality(t, s.BC, 0x1234)
	test.ExpectEquality(t, s.EIDelay, true)

	h.step(1)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x1235)

	h.mc.Restore(s)
	test.ExpectEquality(t, h.mc.PC.Value(), 0x0004)
	test.ExpectEquality(t, h.mc.BC.Value(), 0x1234)
	test.ExpectEquality(t, h.mc.State(), s)
}
