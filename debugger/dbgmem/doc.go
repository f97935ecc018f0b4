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

// Package dbgmem sits between the debugger and the actual Model III memory. In
// the context of the debugger it is more useful to address memory via this
// package rather than using the memory package directly.
//
// Addresses can be given numerically or by register name. In the case of a
// register name the current value of the register is used as the address.
//
// The Peek() and Poke() functions complement the Peek() and Poke() functions
// in the memory package. They never have side effects on the emulation.
package dbgmem
