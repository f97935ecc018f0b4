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

package hardware

import (
	"time"

	"github.com/jetsetilly/gopher80/hardware/clocks"
)

// the emulation must be ahead of the real machine by at least this much
// before the limiter sleeps.
const limiterSlack = time.Millisecond

// limiter keeps the run loop at the speed of the real machine. it compares
// the number of emulated ticks with the wall clock time since the limiter was
// started.
type limiter struct {
	clk *clocks.Clock

	startTime  time.Time
	startTicks uint64
}

func newLimiter(clk *clocks.Clock) *limiter {
	return &limiter{
		clk:        clk,
		startTime:  time.Now(),
		startTicks: clk.Ticks(),
	}
}

// check sleeps for as long as the emulation is ahead of real time.
func (lmtr *limiter) check() {
	secs := float64(lmtr.clk.Ticks()-lmtr.startTicks) / clocks.TicksPerSecond
	emulated := time.Duration(secs * float64(time.Second))
	ahead := emulated - time.Since(lmtr.startTime)
	if ahead > limiterSlack {
		time.Sleep(ahead)
	}
}
