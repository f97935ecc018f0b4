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

package performance

import "github.com/jetsetilly/gopher80/hardware/clocks"

// CalcSpeed takes the number of ticks and the duration (in seconds) over
// which they were emulated and returns the effective clock rate in MHz and
// the speed of the emulation as a percentage of the real machine.
func CalcSpeed(ticks uint64, duration float64) (mhz float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	tstates := float64(clocks.TStates(ticks))
	mhz = tstates / duration / 1000000
	accuracy = 100 * tstates / (duration * clocks.ClockRate)
	return mhz, accuracy
}
