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

// Flat is 64k of RAM with no side effects.
type Flat struct {
	Data [0x10000]uint8
}

// NewFlat is the preferred method of initialisation for the Flat type.
func NewFlat() *Flat {
	return &Flat{}
}

// Read implements the Memory interface.
func (f *Flat) Read(address uint16) uint8 {
	return f.Data[address]
}

// Write implements the Memory interface.
func (f *Flat) Write(address uint16, data uint8) {
	f.Data[address] = data
}

// ReadWord implements the Memory interface.
func (f *Flat) ReadWord(address uint16) uint16 {
	return readWord(f, address)
}

// WriteWord implements the Memory interface.
func (f *Flat) WriteWord(address uint16, data uint16) {
	writeWord(f, address, data)
}

// Peek implements the DebuggerBus interface.
func (f *Flat) Peek(address uint16) uint8 {
	return f.Data[address]
}

// Poke implements the DebuggerBus interface.
func (f *Flat) Poke(address uint16, value uint8) {
	f.Data[address] = value
}

// Load copies data into memory starting at the address.
func (f *Flat) Load(address uint16, data ...uint8) {
	for i, d := range data {
		f.Data[address+uint16(i)] = d
	}
}
