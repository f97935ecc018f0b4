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

import "fmt"

type widths struct {
	address  int
	bytecode int
	operator int
	operand  int
	cycles   int
}

type format struct {
	address  string
	bytecode string
	operator string
	operand  string
	cycles   string
}

type fields struct {
	widths widths
	fmt    format
}

// update width and formatting information for entry fields
func (fld *fields) update(e *Entry) {
	if len(e.Address) > fld.widths.address {
		fld.widths.address = len(e.Address)
	}
	if len(e.Bytecode) > fld.widths.bytecode {
		fld.widths.bytecode = len(e.Bytecode)
	}
	if len(e.Operator) > fld.widths.operator {
		fld.widths.operator = len(e.Operator)
	}
	if len(e.Operand) > fld.widths.operand {
		fld.widths.operand = len(e.Operand)
	}
	if len(e.Cycles) > fld.widths.cycles {
		fld.widths.cycles = len(e.Cycles)
	}

	fld.fmt.address = fmt.Sprintf("%%%ds", fld.widths.address)
	fld.fmt.bytecode = fmt.Sprintf("%%-%ds", fld.widths.bytecode)
	fld.fmt.operator = fmt.Sprintf("%%-%ds", fld.widths.operator)
	fld.fmt.operand = fmt.Sprintf("%%-%ds", fld.widths.operand)
	fld.fmt.cycles = fmt.Sprintf("%%%ds", fld.widths.cycles)
}

// Field identifies which part of the disassembly entry is of interest.
type Field int

// List of valid fields.
const (
	Address Field = iota
	Bytecode
	Operator
	Operand
	Cycles
)

// GetField returns the formatted field from the specified Entry.
func (dsm *Disassembly) GetField(field Field, e *Entry) string {
	switch field {
	case Address:
		return fmt.Sprintf(dsm.fields.fmt.address, e.Address)
	case Bytecode:
		return fmt.Sprintf(dsm.fields.fmt.bytecode, e.Bytecode)
	case Operator:
		return fmt.Sprintf(dsm.fields.fmt.operator, e.Operator)
	case Operand:
		return fmt.Sprintf(dsm.fields.fmt.operand, e.Operand)
	case Cycles:
		return fmt.Sprintf(dsm.fields.fmt.cycles, e.Cycles)
	}
	return ""
}
