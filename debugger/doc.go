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

// Package debugger implements an interactive line based debugger for the
// emulated Model III. Commands are entered at a prompt and are case
// insensitive. The HELP command lists the available commands.
//
// Emulation can be stepped one instruction at a time, or run until a
// breakpoint is met or a key is pressed. STEP OVER runs over subroutine calls
// and repeating instructions and STEP OUT runs until the current subroutine
// returns.
//
// Output goes through the terminal.Terminal interface. The plainterm
// implementation is suitable for scripted input and the colorterm
// implementation for interactive use.
package debugger
