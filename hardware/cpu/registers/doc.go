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

// Package registers implements the register model of the Z80 CPU.
//
// Registers are either plain registers, with storage of their own, or they are
// views onto other storage. The Indirect8 and Indexed8 types are registers
// that read and write memory at an address held in a 16bit register. The
// Compound16 type combines two 8bit registers and has no storage of its own.
// The DoubleIndirect16 type is a 16bit value in memory at the address held by
// another register. This is the (SP) operand of the EX (SP),HL instruction.
//
// All register types satisfy either the Register8 or the Register16
// interface. Instruction effects can therefore be written once for all
// operand kinds. For example, the INC r instruction is the same for B and for
// (HL):
//
//	r.Inc()
//	zero := r.IsZero()
package registers
