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

package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gopher80/hardware/cpu"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	ByteCode bool
	Cycles   bool

	// the minimum level of entry to write
	Level EntryLevel
}

// Write the disassembly to io.Writer in address order.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	for _, e := range dsm.Entries(attr.Level) {
		if err := dsm.WriteEntry(output, attr, e); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntry writes a single Entry to io.Writer.
func (dsm *Disassembly) WriteEntry(output io.Writer, attr WriteAttr, e *Entry) error {
	s := strings.Builder{}
	s.WriteString(dsm.GetField(Address, e))
	s.WriteString("  ")
	if attr.ByteCode {
		s.WriteString(dsm.GetField(Bytecode, e))
		s.WriteString("  ")
	}
	s.WriteString(dsm.GetField(Operator, e))
	s.WriteString(" ")
	s.WriteString(dsm.GetField(Operand, e))
	if attr.Cycles {
		s.WriteString("  ")
		s.WriteString(dsm.GetField(Cycles, e))
	}

	_, err := io.WriteString(output, strings.TrimRight(s.String(), " ")+"\n")
	return err
}

// WriteIndex writes every instruction definition in the table, in signature
// order.
func WriteIndex(output io.Writer, tab *cpu.InstructionTable) error {
	for _, defn := range tab.Index() {
		if _, err := io.WriteString(output, fmt.Sprintf("%s\n", defn)); err != nil {
			return err
		}
	}
	return nil
}
