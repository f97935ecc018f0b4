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

// Package cpu emulates the Z80 microprocessor found in the TRS-80 Model III.
//
// Instructions are described by the Definition type. All definitions are
// collected in an InstructionTable, which is created once with
// NewInstructionTable() and shared by every CPU instance. The table is
// immutable once created.
//
// The Z80 has four prefix bytes. The CB, DD, ED and FD bytes each select a
// different table for the byte that follows. The DD CB and FD CB sequences
// select a table that is keyed by the fourth byte of the instruction, the
// third byte being a signed displacement. Decoding never fails. Opcodes that
// have no definition are executed as a no-operation of the correct length for
// the prefix family.
//
// Each call to CPU.Step() executes a single instruction and advances the
// clock by the number of T-states taken. After the instruction the interrupt
// lines are checked and, if necessary, the interrupt is serviced.
//
//	tab := cpu.NewInstructionTable()
//	mc := cpu.NewCPU(tab, mem, ports, clk, ints)
//
//	for {
//		mc.Step()
//	}
//
// The register model is in the registers sub-package. Some of the registers
// used by instructions, such as (HL) and (IX+d), are views onto memory.
package cpu
