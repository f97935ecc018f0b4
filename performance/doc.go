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

// Package performance contains helper functions relating to the speed of the
// emulation.
//
// Check() runs the emulation unthrottled for a fixed duration and reports the
// effective clock rate. It will optionally generate profiling information.
//
// RunProfiler() can be used to generate the various profile types on its own.
// It will not limit the amount of time the program runs for.
//
// CalcSpeed() converts a number of ticks and a duration into an effective
// clock rate and compares it to the clock rate of the real machine.
package performance
