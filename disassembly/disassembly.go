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
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher80/cmdfile"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/memory"
)

// InvalidLoadFile is returned by FromCMD() when the load file is not valid.
const InvalidLoadFile = "disassembly: invalid load file"

// Disassembly represents the annotated disassembly of Z80 code.
type Disassembly struct {
	tab *cpu.InstructionTable
	mem peek

	// indexed by address
	entries map[uint16]*Entry

	// formatting information for all entries
	fields fields

	// critical sectioning. the debugger updates entries as they are executed
	crit sync.Mutex
}

// NewDisassembly is the preferred method of initialisation for the
// Disassembly type. The disassembly is empty until one of the Linear() or
// Flow() functions is called.
func NewDisassembly(tab *cpu.InstructionTable, mem peek) *Disassembly {
	return &Disassembly{
		tab:     tab,
		mem:     mem,
		entries: make(map[uint16]*Entry),
	}
}

// FromCMD creates a disassembly of a load file. Every data block is decoded
// linearly and then the flow of the program is followed from the transfer
// address.
func FromCMD(tab *cpu.InstructionTable, f *cmdfile.File) (*Disassembly, error) {
	if !f.Valid {
		return nil, curated.Errorf(InvalidLoadFile)
	}

	mem := memory.NewFlat()
	for _, b := range f.Blocks {
		mem.Load(b.Address, b.Data...)
	}

	dsm := NewDisassembly(tab, mem)
	for _, b := range f.Blocks {
		dsm.Linear(b.Address, uint16(b.End()-1))
	}
	if f.HasTransfer {
		dsm.Flow(f.TransferAddress)
	}

	return dsm, nil
}

func (dsm *Disassembly) add(e *Entry) {
	dsm.entries[e.Addr] = e
	dsm.fields.update(e)
}

// Linear decodes the range of addresses (inclusive) as a sequence of
// instructions. Existing entries of a higher level are not replaced.
func (dsm *Disassembly) Linear(start uint16, end uint16) {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	a := int(start)
	for a <= int(end) {
		if e, ok := dsm.entries[uint16(a)]; ok && e.Level > EntryLevelDecoded {
			a += len(e.Bytes)
			continue
		}
		e := Decode(dsm.tab, dsm.mem, uint16(a))
		dsm.add(e)
		a += len(e.Bytes)
	}
}

// Flow follows the program from the entry point and blesses every instruction
// that is reached. Both paths of conditional instructions are followed. The
// targets of indirect jumps (eg. JP (HL)) cannot be known and are not
// followed.
func (dsm *Disassembly) Flow(entry uint16) {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	pending := []uint16{entry}
	for len(pending) > 0 {
		a := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if e, ok := dsm.entries[a]; ok && e.Level > EntryLevelDecoded {
			continue
		}

		e := Decode(dsm.tab, dsm.mem, a)
		e.Level = EntryLevelBlessed
		dsm.add(e)

		pending = append(pending, successors(e)...)
	}
}

// successors returns the addresses that can be reached from the entry.
func successors(e *Entry) []uint16 {
	defn := e.Defn
	size := len(e.Bytes)

	var target uint16
	hasTarget := false

	switch {
	case defn.Category == cpu.Halt:
		return nil
	case defn.Category == cpu.Return:
		if defn.Conditional() {
			return []uint16{e.Next()}
		}
		return nil
	case strings.Contains(defn.Mnemonic, cpu.OperandRelative):
		target = e.Addr + uint16(size) + uint16(int8(e.Bytes[size-1]))
		hasTarget = true
	case defn.Category == cpu.Jump || defn.Category == cpu.Call:
		if strings.Contains(defn.Mnemonic, cpu.OperandWord) {
			target = uint16(e.Bytes[size-2]) | uint16(e.Bytes[size-1])<<8
			hasTarget = true
		} else if strings.HasPrefix(defn.Mnemonic, "RST") {
			target = uint16(e.Bytes[0] & 0x38)
			hasTarget = true
		}
	}

	// unconditional jumps do not continue to the next instruction. indirect
	// jumps have no known target at all
	if defn.Category == cpu.Jump && !defn.Conditional() && !strings.Contains(defn.Mnemonic, ",") {
		if hasTarget {
			return []uint16{target}
		}
		return nil
	}

	if hasTarget {
		return []uint16{e.Next(), target}
	}
	return []uint16{e.Next()}
}

// UpdateEntry records the most recent execution of an instruction.
func (dsm *Disassembly) UpdateEntry(result cpu.Result) {
	if result.Defn == nil {
		return
	}

	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	e, ok := dsm.entries[result.Address]
	if !ok || e.Defn != result.Defn {
		e = Decode(dsm.tab, dsm.mem, result.Address)
		dsm.add(e)
	}
	e.Level = EntryLevelExecuted
}

// GetEntryByAddress returns the entry at the address. If there is no entry
// then the address is decoded but not added to the disassembly.
func (dsm *Disassembly) GetEntryByAddress(address uint16) (*Entry, bool) {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	if e, ok := dsm.entries[address]; ok {
		return e, true
	}
	return Decode(dsm.tab, dsm.mem, address), false
}

// Entries returns every entry of at least the specified level in address
// order.
func (dsm *Disassembly) Entries(level EntryLevel) []*Entry {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	l := make([]*Entry, 0, len(dsm.entries))
	for _, e := range dsm.entries {
		if e.Level >= level {
			l = append(l, e)
		}
	}
	sort.Slice(l, func(i, j int) bool {
		return l[i].Addr < l[j].Addr
	})
	return l
}
