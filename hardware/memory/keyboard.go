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

// the keyboard matrix has eight rows of eight keys. each row is selected by
// one of the low eight address lines.
const keyboardRows = 8

// Keyboard is the keyboard matrix region. Reading the region returns the
// logical OR of every row selected by the address. A set bit is a pressed key.
type Keyboard struct {
	rows [keyboardRows]uint8
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Label implements the Region interface.
func (k *Keyboard) Label() string {
	return "Keyboard"
}

// Read implements the Region interface.
func (k *Keyboard) Read(offset uint16) uint8 {
	return k.Peek(offset)
}

// Write implements the Region interface. Writes to the keyboard are ignored.
func (k *Keyboard) Write(offset uint16, data uint8) {
}

// Peek implements the Region interface.
func (k *Keyboard) Peek(offset uint16) uint8 {
	var v uint8
	for r := 0; r < keyboardRows; r++ {
		if offset&(1<<r) != 0 {
			v |= k.rows[r]
		}
	}
	return v
}

// Press the key at the row and column.
func (k *Keyboard) Press(row int, col int) {
	k.rows[row&7] |= 1 << (col & 7)
}

// Release the key at the row and column.
func (k *Keyboard) Release(row int, col int) {
	k.rows[row&7] &^= 1 << (col & 7)
}

// ReleaseAll keys.
func (k *Keyboard) ReleaseAll() {
	k.rows = [keyboardRows]uint8{}
}
