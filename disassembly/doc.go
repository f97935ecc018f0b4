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

// Package disassembly produces disassembled Z80 code. Disassembly works on
// any memory that can be peeked, without touching the state of the CPU.
//
// Entries are created by decoding every address in a range (a linear pass)
// or by following the flow of the program from an entry point (a flow pass).
// Entries found by the flow pass are blessed and are more likely to be real
// instructions. The debugger updates entries as they are executed.
package disassembly
