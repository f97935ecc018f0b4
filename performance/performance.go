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

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the emulation is allowed to settle for this long before measurement begins.
const leadTime = 2 * time.Second

// Check the performance of the emulator. The computer should already have
// any media attached. The throttle preference is ignored for the duration of
// the check.
func Check(output io.Writer, profile Profile, comp *hardware.Computer, duration time.Duration) error {
	throttle := comp.Prefs.Throttle.Get().(bool)
	if err := comp.Prefs.Throttle.Set(false); err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer func() {
		_ = comp.Prefs.Throttle.Set(throttle)
	}()

	comp.SetQuiet(true)
	defer comp.SetQuiet(false)

	var startTicks uint64

	runner := func() error {
		// signals false when the lead time has elapsed and true when the
		// measurement period has elapsed
		timerChan := make(chan bool)

		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		// checking the channel on every instruction is measurably expensive
		performanceBrake := 0

		return comp.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				startTicks = comp.Clock.Ticks()
			default:
			}

			return govern.Running, nil
		})
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	ticks := comp.Clock.Ticks() - startTicks
	mhz, accuracy := CalcSpeed(ticks, duration.Seconds())
	fmt.Fprintf(output, "%.3f MHz (%d T-states in %.2f seconds) %.1f%%\n", mhz, ticks/1000, duration.Seconds(), accuracy)

	return nil
}
