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

// Package clocks is the timing substrate of the emulation. It defines the
// constant values that define the speed of the main clock and the Clock type,
// which owns the tick counter and a queue of pending PulseRequests.
//
// The tick counter only moves forward and only by calls to Clock.Advance().
// The CPU advances the clock after every instruction by the number of
// T-states the instruction took, multiplied by TicksPerTState.
//
// Peripherals use PulseRequests to schedule work in the future. For example,
// the real-time clock latches its interrupt thirty times a second and the
// floppy drive turns its motor off two seconds after the last command.
// PulseRequests are one-shot. A periodic event is created by registering the
// pulse again from its own callback.
//
// Every PulseRequest has a name. Pulses are declared to the Clock with
// Declare() so that a saved machine state, which records pending pulses by
// name, can be restored with Restore().
package clocks

// ClockRate is the frequency of the Model III CPU in Hz.
const ClockRate = 2027520

// TicksPerTState is the number of ticks in a single T-state. Ticks are finer
// than T-states so that peripherals with awkward rates can be scheduled
// without accumulating error.
const TicksPerTState = 1000

// TicksPerMillisecond is the number of ticks in one millisecond of emulated
// time.
const TicksPerMillisecond = ClockRate * TicksPerTState / 1000

// TicksPerSecond is the number of ticks in one second of emulated time.
const TicksPerSecond = TicksPerMillisecond * 1000

// MicrosecondsToTicks converts a duration in microseconds to ticks.
func MicrosecondsToTicks(us uint64) uint64 {
	return us * TicksPerMillisecond / 1000
}

// TStates converts ticks to whole T-states.
func TStates(ticks uint64) uint64 {
	return ticks / TicksPerTState
}
