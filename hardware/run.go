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
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/govern"
)

// While the continueCheck() function only runs at the end of a CPU
// instruction, it can still be expensive to do a full continue check every
// time.
//
// The PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
//
// The run loops also publish a new Report every PerformanceBrake
// instructions.
const PerformanceBrake = 1000

// Stop the current run loop. The loop stops at the end of the current
// instruction. Stop can be called from any goroutine.
func (c *Computer) Stop() {
	c.stop.Store(true)
}

// Run sets the emulation running. If the throttle preference is set the
// emulation runs at the speed of the real machine, otherwise it runs as
// quickly as possible. The continueCheck
// function is called after every instruction and can be nil. The loop ends
// when continueCheck returns govern.Ending or when Stop() is called.
func (c *Computer) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	c.stop.Store(false)
	defer c.publishReport()

	var err error
	var brake int

	var lmtr *limiter
	if c.Prefs.Throttle.Get().(bool) {
		lmtr = newLimiter(c.Clock)
	}

	state := govern.Running

	for state != govern.Ending && !c.stop.Load() {
		switch state {
		case govern.Running:
			c.CPU.Step()
		case govern.Paused:
		default:
			return curated.Errorf("computer: unsupported emulation state (%s) in Run() function", state)
		}

		brake++
		if brake >= PerformanceBrake {
			brake = 0
			c.publishReport()
			if lmtr != nil {
				lmtr.check()
			}
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForTicks sets the emulation running until the clock has advanced by at
// least the specified number of ticks. The final instruction may take the
// clock past the target. The continueCheck function can be nil.
func (c *Computer) RunForTicks(ticks uint64, continueCheck func() (govern.State, error)) error {
	target := c.Clock.Ticks() + ticks
	return c.Run(func() (govern.State, error) {
		if c.Clock.Ticks() >= target {
			return govern.Ending, nil
		}
		if continueCheck != nil {
			return continueCheck()
		}
		return govern.Running, nil
	})
}
