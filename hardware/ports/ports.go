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

// Package ports is the Z80 I/O port bus. Devices are attached to one or more
// of the 256 port addresses and are called by the CPU's IN and OUT
// instructions. Reading a port that has no device returns 0xff, the value of a
// floating data bus.
//
// Only the low byte of the port address is decoded.
package ports

import (
	"fmt"
	"strings"
)

// Reader is a device that responds to IN instructions.
type Reader interface {
	Read(port uint8) uint8
}

// Writer is a device that responds to OUT instructions.
type Writer interface {
	Write(port uint8, data uint8)
}

// Device responds to both IN and OUT instructions.
type Device interface {
	Reader
	Writer
}

// the value read from a port with no device.
const floating = 0xff

// Bus dispatches port reads and writes to the attached devices.
type Bus struct {
	readers [256]Reader
	writers [256]Writer

	// the most recent access. used by the debugger
	LastPort  uint8
	LastData  uint8
	LastWrite bool
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// Attach a device to the bus for both reading and writing.
func (b *Bus) Attach(d Device, ports ...uint8) {
	b.AttachReader(d, ports...)
	b.AttachWriter(d, ports...)
}

// AttachReader attaches a device that responds only to reads. Any existing
// reader for the ports is replaced.
func (b *Bus) AttachReader(r Reader, ports ...uint8) {
	for _, p := range ports {
		b.readers[p] = r
	}
}

// AttachWriter attaches a device that responds only to writes. Any existing
// writer for the ports is replaced.
func (b *Bus) AttachWriter(w Writer, ports ...uint8) {
	for _, p := range ports {
		b.writers[p] = w
	}
}

// Range returns the list of ports from first to last inclusive.
func Range(first uint8, last uint8) []uint8 {
	r := make([]uint8, 0, int(last)-int(first)+1)
	for p := int(first); p <= int(last); p++ {
		r = append(r, uint8(p))
	}
	return r
}

// In reads from the port.
func (b *Bus) In(port uint8) uint8 {
	data := uint8(floating)
	if r := b.readers[port]; r != nil {
		data = r.Read(port)
	}
	b.LastPort = port
	b.LastData = data
	b.LastWrite = false
	return data
}

// Out writes to the port. Writes to ports with no device are ignored.
func (b *Bus) Out(port uint8, data uint8) {
	if w := b.writers[port]; w != nil {
		w.Write(port, data)
	}
	b.LastPort = port
	b.LastData = data
	b.LastWrite = true
}

// Peek returns the value of the port without calling the device. Devices that
// implement the Peeker interface are consulted, otherwise the floating value is
// returned. Used by the debugger to avoid the side effects of reading.
func (b *Bus) Peek(port uint8) uint8 {
	if p, ok := b.readers[port].(Peeker); ok {
		return p.Peek(port)
	}
	return floating
}

// Peeker is implemented by devices that can report a port value without side
// effects.
type Peeker interface {
	Peek(port uint8) uint8
}

func (b *Bus) String() string {
	s := strings.Builder{}
	for p := 0; p < 256; p++ {
		r := b.readers[p] != nil
		w := b.writers[p] != nil
		if !r && !w {
			continue
		}
		s.WriteString(fmt.Sprintf("%02x ", p))
		if r {
			s.WriteString("R")
		}
		if w {
			s.WriteString("W")
		}
		s.WriteString("\n")
	}
	return s.String()
}
