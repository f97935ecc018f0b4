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

// Package rtc implements the real-time clock of the Model III. The clock
// latches its interrupt trigger thirty times a second. The ROM's interrupt
// handler acknowledges the interrupt by reading port 0xEC, which is handled by
// the interrupt controller.
package rtc

import (
	"fmt"

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/logger"
)

// Frequency of the real-time clock interrupt in Hz.
const Frequency = 30

// PulseName is the name of the pulse used by the RTC.
const PulseName = "rtc"

// RTC is the real-time clock.
type RTC struct {
	clk     *clocks.Clock
	trigger *interrupts.Trigger
	pulse   *clocks.PulseRequest

	// number of times the clock has fired since the last reset
	Count uint64
}

// NewRTC is the preferred method of initialisation for the RTC type. The RTC
// starts immediately.
func NewRTC(clk *clocks.Clock, trigger *interrupts.Trigger) *RTC {
	rtc := &RTC{
		clk:     clk,
		trigger: trigger,
	}
	rtc.pulse = clocks.NewPulse(PulseName, clocks.BasisTicks, clocks.TicksPerSecond/Frequency, rtc.tick)
	rtc.clk.Register(rtc.pulse)
	return rtc
}

func (rtc *RTC) String() string {
	return fmt.Sprintf("rtc: %d ticks (next at %d)", rtc.Count, rtc.pulse.Target())
}

func (rtc *RTC) tick() {
	rtc.Count++
	rtc.trigger.Latch()
	rtc.clk.Register(rtc.pulse)
}

// Reset restarts the clock. The trigger itself is reset by the interrupt
// controller.
func (rtc *RTC) Reset() {
	rtc.Count = 0
	rtc.clk.Register(rtc.pulse)
	logger.Log(logger.Allow, "rtc", "reset")
}
