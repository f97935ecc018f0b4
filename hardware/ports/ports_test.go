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

package ports_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/ports"
	"github.com/jetsetilly/gopher80/test"
)

type latch struct {
	value uint8
	reads int
}

func (l *latch) Read(port uint8) uint8 {
	l.reads++
	return l.value
}

func (l *latch) Write(port uint8, data uint8) {
	l.value = data
}

func (l *latch) Peek(port uint8) uint8 {
	return l.value
}

func TestBus(t *testing.T) {
	bus := ports.NewBus()
	test.ExpectEquality(t, bus.In(0x10), 0xff)

	l := &latch{}
	bus.Attach(l, ports.Range(0xe0, 0xe3)...)

	bus.Out(0xe2, 0x55)
	test.ExpectEquality(t, l.value, 0x55)
	test.ExpectEquality(t, bus.In(0xe0), 0x55)
	test.ExpectEquality(t, bus.LastPort, 0xe0)
	test.ExpectFailure(t, bus.LastWrite)

	// peeking doesn't count as a read
	test.ExpectEquality(t, bus.Peek(0xe3), 0x55)
	test.ExpectEquality(t, l.reads, 1)
	test.ExpectEquality(t, bus.Peek(0x00), 0xff)

	// writes to unattached ports are ignored
	bus.Out(0xe4, 0x00)
	test.ExpectEquality(t, l.value, 0x55)

	// read-only attachment
	r := &latch{value: 0x30}
	bus.AttachReader(r, 0xf0)
	bus.Out(0xf0, 0x01)
	test.ExpectEquality(t, bus.In(0xf0), 0x30)
}

func TestRange(t *testing.T) {
	test.ExpectEquality(t, len(ports.Range(0xe0, 0xe3)), 4)
	test.ExpectEquality(t, len(ports.Range(0xfc, 0xff)), 4)
	test.ExpectEquality(t, len(ports.Range(0x00, 0xff)), 256)
}
