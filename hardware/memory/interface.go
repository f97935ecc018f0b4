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

package memory

// Memory defines the operations for the memory system when accessed from the
// CPU. Words are little-endian. Addresses wrap around at the top of the
// address space.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, data uint16)
}

// DebuggerBus defines the meta-operations for the memory system. Think of
// these functions as "debugging" functions, that is operations outside of the
// normal operation of the machine. Poke() can change ROM.
type DebuggerBus interface {
	Peek(address uint16) uint8
	Poke(address uint16, value uint8)
}

// Region is an area of memory with side effects.
type Region interface {
	Label() string

	// the address argument is the offset from the start of the region
	Read(offset uint16) uint8
	Write(offset uint16, data uint8)
	Peek(offset uint16) uint8
}

// readWord and writeWord are used by implementations of the Memory interface.
func readWord(mem Memory, address uint16) uint16 {
	return uint16(mem.Read(address)) | uint16(mem.Read(address+1))<<8
}

func writeWord(mem Memory, address uint16, data uint16) {
	mem.Write(address, uint8(data))
	mem.Write(address+1, uint8(data>>8))
}
