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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/cpu/registers"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/test"
)

func TestPlain(t *testing.T) {
	r8 := registers.NewPlain8("A")
	test.ExpectImplements(t, r8, registers.Register8(nil))
	test.ExpectEquality(t, r8.IsZero(), true)

	r8.Dec()
	test.ExpectEquality(t, r8.Value(), 0xff)
	test.ExpectEquality(t, r8.IsNonZero(), true)
	r8.Inc()
	test.ExpectEquality(t, r8.Value(), 0x00)
	test.ExpectEquality(t, r8.String(), "A=00")

	r16 := registers.NewPlain16("SP")
	test.ExpectImplements(t, r16, registers.Register16(nil))
	r16.Dec()
	test.ExpectEquality(t, r16.Value(), 0xffff)
	test.ExpectEquality(t, r16.Add(2), true)
	test.ExpectEquality(t, r16.Value(), 0x0001)
	test.ExpectEquality(t, r16.String(), "SP=0001")
}

func TestCompoundRoundTrip(t *testing.T) {
	b := registers.NewPlain8("B")
	c := registers.NewPlain8("C")
	bc := registers.NewCompound16(b, c)
	test.ExpectEquality(t, bc.Label(), "BC")

	for v := 0; v <= 0xffff; v++ {
		bc.Load(uint16(v))
		combined := uint16(b.Value())<<8 | uint16(c.Value())
		if !test.ExpectEquality(t, combined, uint16(v)) {
			break
		}
		if !test.ExpectEquality(t, bc.Value(), uint16(v)) {
			break
		}
	}

	// changes to the halves are visible through the compound register
	b.Load(0x12)
	c.Load(0x34)
	test.ExpectEquality(t, bc.Value(), 0x1234)
	test.ExpectEquality(t, bc.High().Value(), 0x12)
	test.ExpectEquality(t, bc.Low().Value(), 0x34)
}

func TestCompoundCarry(t *testing.T) {
	h := registers.NewPlain8("H")
	l := registers.NewPlain8("L")
	hl := registers.NewCompound16(h, l)

	// low byte wraps
	hl.Load(0x12ff)
	hl.Inc()
	test.ExpectEquality(t, h.Value(), 0x13)
	test.ExpectEquality(t, l.Value(), 0x00)

	// low byte does not wrap
	for lo := 0; lo < 0xff; lo++ {
		hl.Load(0x1200 | uint16(lo))
		hl.Inc()
		if !test.ExpectEquality(t, h.Value(), 0x12) {
			break
		}
	}

	// decrement is symmetric
	hl.Load(0x1300)
	hl.Dec()
	test.ExpectEquality(t, hl.Value(), 0x12ff)
	hl.Load(0x1301)
	hl.Dec()
	test.ExpectEquality(t, hl.Value(), 0x1300)

	// full wraparound
	hl.Load(0xffff)
	hl.Inc()
	test.ExpectEquality(t, hl.IsZero(), true)
	hl.Dec()
	test.ExpectEquality(t, hl.Value(), 0xffff)
}

func TestIndirect(t *testing.T) {
	mem := memory.NewFlat()
	h := registers.NewPlain8("H")
	l := registers.NewPlain8("L")
	hl := registers.NewCompound16(h, l)
	m := registers.NewIndirect8(hl, mem)
	test.ExpectImplements(t, m, registers.Register8(nil))
	test.ExpectEquality(t, m.Label(), "(HL)")

	hl.Load(0x4000)
	m.Load(0x7f)
	test.ExpectEquality(t, mem.Read(0x4000), 0x7f)
	m.Inc()
	test.ExpectEquality(t, mem.Read(0x4000), 0x80)

	// the indirection follows the proxy register
	hl.Load(0x4001)
	test.ExpectEquality(t, m.IsZero(), true)
	m.Dec()
	test.ExpectEquality(t, mem.Read(0x4001), 0xff)
	test.ExpectEquality(t, mem.Read(0x4000), 0x80)
}

func TestIndexed(t *testing.T) {
	mem := memory.NewFlat()
	ix := registers.NewPlain16("IX")
	d := registers.NewPlain8("d")
	m := registers.NewIndexed8(ix, d, mem)
	test.ExpectEquality(t, m.Label(), "(IX+d)")

	ix.Load(0x5000)
	d.Load(0x05)
	test.ExpectEquality(t, m.Address(), 0x5005)
	m.Load(0x01)
	test.ExpectEquality(t, mem.Read(0x5005), 0x01)

	// negative displacement
	d.Load(0xfe)
	test.ExpectEquality(t, m.Address(), 0x4ffe)
	m.Inc()
	test.ExpectEquality(t, mem.Read(0x4ffe), 0x01)

	// effective address wraps
	ix.Load(0xffff)
	d.Load(0x01)
	test.ExpectEquality(t, m.Address(), 0x0000)
}

func TestDoubleIndirect(t *testing.T) {
	mem := memory.NewFlat()
	sp := registers.NewPlain16("SP")
	m := registers.NewDoubleIndirect16(sp, mem)
	test.ExpectImplements(t, m, registers.Register16(nil))
	test.ExpectEquality(t, m.Label(), "(SP)")

	sp.Load(0x7ffe)
	m.Load(0xbeef)
	test.ExpectEquality(t, mem.Read(0x7ffe), 0xef)
	test.ExpectEquality(t, mem.Read(0x7fff), 0xbe)
	m.Inc()
	test.ExpectEquality(t, m.Value(), 0xbef0)
	test.ExpectEquality(t, m.IsNonZero(), true)
}
