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

import (
	"fmt"
)

// InterruptKind is the type of interrupt serviced by the CPU.
type InterruptKind int

// List of interrupt kinds.
const (
	NoInterrupt InterruptKind = iota
	NMI
	IRQ
)

func (k InterruptKind) String() string {
	switch k {
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	}
	return ""
}

// Result of a call to CPU.Step().
type Result struct {
	// address and definition of the instruction that was executed
	Address uint16
	Defn    *Definition

	// number of T-states taken by the instruction
	Cycles int

	// the interrupt serviced after the instruction and the number of T-states
	// taken to service it
	Interrupt       InterruptKind
	InterruptCycles int
}

func (r Result) String() string {
	if r.Defn == nil {
		return "no instruction"
	}
	s := fmt.Sprintf("%04x %s [%d]", r.Address, r.Defn.Mnemonic, r.Cycles)
	if r.Interrupt != NoInterrupt {
		s = fmt.Sprintf("%s %s [%d]", s, r.Interrupt, r.InterruptCycles)
	}
	return s
}
