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

// Package memory implements the address space of the Model III as seen by the
// CPU.
//
//	0000-37ff	ROM. writes are ignored
//	37e8		printer status. reads 0x30 (printer ready)
//	3800-3bff	keyboard matrix
//	3c00-3fff	video RAM
//	4000-ffff	RAM
//
// The CPU accesses memory through the Memory interface. The debugger uses the
// DebuggerBus interface, which accesses memory without the side effects of
// normal reads and writes.
//
// The keyboard area is a Region. Regions are memory areas that are really
// hardware. The Keyboard type is the default keyboard Region, with every key
// released.
//
// Flat is a simple 64k RAM implementation of the Memory interface, useful for
// testing the CPU.
package memory
