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

// Package interrupts models the interrupt lines of the Model III.
//
// Each interrupt source owns a Trigger. A Trigger has two independent inputs,
// latched and enabled. The Trigger fires when both become true, in whichever
// order. Firing is edge triggered: once triggered the Trigger stays triggered
// until it is reset, or, for unlocked triggers, until either input becomes
// false.
//
// The Controller collects the triggers of the Model III and presents them to
// the CPU as two lines, NMI and IRQ, and to software as the interrupt status
// and mask ports.
package interrupts
