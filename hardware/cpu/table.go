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
	"sort"
)

// Reader is the memory interface required to decode instructions.
type Reader interface {
	Read(address uint16) uint8
}

// InstructionTable is the complete Z80 instruction set. Decoding an
// instruction never fails.
type InstructionTable struct {
	unprefixed [256]*Definition
	cb         [256]*Definition
	dd         [256]*Definition
	ed         [256]*Definition
	fd         [256]*Definition
	ddcb       [256]*Definition
	fdcb       [256]*Definition

	// every definition ordered by signature
	index []*Definition

	// no-operations for opcodes with no definition
	nopDD   *Definition
	nopFD   *Definition
	nopED   *Definition
	nopDDCB *Definition
	nopFDCB *Definition
}

// NewInstructionTable creates the instruction table. The table can be shared
// by any number of CPU instances.
func NewInstructionTable() *InstructionTable {
	tab := &InstructionTable{
		nopDD: &Definition{
			Family:       PrefixDD,
			Opcode:       [4]uint8{0xdd},
			OpcodeLength: 1,
			Mnemonic:     "NOP*",
			Size:         1,
			Cycles:       4,
			AltCycles:    4,
			IsPrefix:     true,
			Refresh:      1,
		},
		nopFD: &Definition{
			Family:       PrefixFD,
			Opcode:       [4]uint8{0xfd},
			OpcodeLength: 1,
			Mnemonic:     "NOP*",
			Size:         1,
			Cycles:       4,
			AltCycles:    4,
			IsPrefix:     true,
			Refresh:      1,
		},
		nopED: &Definition{
			Family:       PrefixED,
			Opcode:       [4]uint8{0xed},
			OpcodeLength: 2,
			Mnemonic:     "NOP*",
			Size:         2,
			Cycles:       8,
			AltCycles:    8,
			Refresh:      2,
		},
		nopDDCB: &Definition{
			Family:       PrefixDDCB,
			Opcode:       [4]uint8{0xdd, 0xcb},
			OpcodeLength: 4,
			Mnemonic:     "NOP*",
			Size:         4,
			Cycles:       23,
			AltCycles:    23,
			Refresh:      2,
		},
		nopFDCB: &Definition{
			Family:       PrefixFDCB,
			Opcode:       [4]uint8{0xfd, 0xcb},
			OpcodeLength: 4,
			Mnemonic:     "NOP*",
			Size:         4,
			Cycles:       23,
			AltCycles:    23,
			Refresh:      2,
		},
	}

	var defs []*Definition
	defs = append(defs, unprefixedDefinitions(hlIndex)...)
	defs = append(defs, indexDefinitions(ixIndex)...)
	defs = append(defs, indexDefinitions(iyIndex)...)
	defs = append(defs, cbDefinitions()...)
	defs = append(defs, indexedCBDefinitions(ixIndex)...)
	defs = append(defs, indexedCBDefinitions(iyIndex)...)
	defs = append(defs, edDefinitions()...)

	tab.loadTables(defs)

	return tab
}

// loadTables places each definition in the table for its family. it must only
// be called once for a table.
func (tab *InstructionTable) loadTables(defs []*Definition) {
	place := func(slot **Definition, defn *Definition) {
		if *slot != nil {
			panic(fmt.Sprintf("cpu: duplicate definition for %s (%s)", defn.OpcodeString(), (*slot).Mnemonic))
		}
		if defn.Size < defn.OpcodeLength || defn.Size > 4 {
			panic(fmt.Sprintf("cpu: illegal size for %s (%d)", defn.Mnemonic, defn.Size))
		}
		*slot = defn
	}

	for _, defn := range defs {
		switch defn.Opcode[0] {
		case 0xcb:
			place(&tab.cb[defn.Opcode[1]], defn)
		case 0xdd:
			if defn.Opcode[1] == 0xcb {
				place(&tab.ddcb[defn.Opcode[3]], defn)
			} else {
				place(&tab.dd[defn.Opcode[1]], defn)
			}
		case 0xfd:
			if defn.Opcode[1] == 0xcb {
				place(&tab.fdcb[defn.Opcode[3]], defn)
			} else {
				place(&tab.fd[defn.Opcode[1]], defn)
			}
		case 0xed:
			place(&tab.ed[defn.Opcode[1]], defn)
		default:
			place(&tab.unprefixed[defn.Opcode[0]], defn)
		}
		tab.index = append(tab.index, defn)
	}

	sort.SliceStable(tab.index, func(i, j int) bool {
		return tab.index[i].Signature() < tab.index[j].Signature()
	})
}

// Decode returns the definition for the instruction that begins with the
// byte b0. The b1 and b3 bytes are the second and fourth bytes of the
// instruction. They are ignored if they are not required to decode the
// instruction.
func (tab *InstructionTable) Decode(b0 uint8, b1 uint8, b3 uint8) *Definition {
	var defn *Definition

	switch b0 {
	case 0xcb:
		defn = tab.cb[b1]
	case 0xdd:
		if b1 == 0xcb {
			defn = tab.ddcb[b3]
			if defn == nil {
				return tab.nopDDCB
			}
		} else {
			defn = tab.dd[b1]
			if defn == nil {
				return tab.nopDD
			}
		}
	case 0xfd:
		if b1 == 0xcb {
			defn = tab.fdcb[b3]
			if defn == nil {
				return tab.nopFDCB
			}
		} else {
			defn = tab.fd[b1]
			if defn == nil {
				return tab.nopFD
			}
		}
	case 0xed:
		defn = tab.ed[b1]
		if defn == nil {
			return tab.nopED
		}
	default:
		defn = tab.unprefixed[b0]
	}

	// the CB table and the unprefixed table are complete
	if defn == nil {
		panic(fmt.Sprintf("cpu: no definition for %02x %02x", b0, b1))
	}

	return defn
}

// DecodeMemory returns the definition for the instruction at the address.
// Memory is only read, no other state is changed.
func (tab *InstructionTable) DecodeMemory(mem Reader, address uint16) *Definition {
	b0 := mem.Read(address)
	switch b0 {
	case 0xcb, 0xdd, 0xed, 0xfd:
		b1 := mem.Read(address + 1)
		if b1 == 0xcb && (b0 == 0xdd || b0 == 0xfd) {
			return tab.Decode(b0, b1, mem.Read(address+3))
		}
		return tab.Decode(b0, b1, 0)
	}
	return tab.Decode(b0, 0, 0)
}

// Index returns every definition in the table ordered by signature. The
// returned slice should not be altered.
func (tab *InstructionTable) Index() []*Definition {
	return tab.index
}

// Lookup returns the definition with the mnemonic. The mnemonic must match
// exactly, including operand tokens.
func (tab *InstructionTable) Lookup(mnemonic string) (*Definition, bool) {
	for _, defn := range tab.index {
		if defn.Mnemonic == mnemonic {
			return defn, true
		}
	}
	return nil, false
}
