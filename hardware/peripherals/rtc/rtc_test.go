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

package rtc_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/peripherals/rtc"
	"github.com/jetsetilly/gopher80/test"
)

func TestRTC(t *testing.T) {
	clk := clocks.NewClock()
	ctr := interrupts.NewController()
	r := rtc.NewRTC(clk, ctr.RTC)

	period := uint64(clocks.TicksPerSecond / rtc.Frequency)

	clk.Advance(period - 1)
	test.ExpectEquality(t, r.Count, uint64(0))
	test.ExpectEquality(t, ctr.RTC.Latched(), false)

	clk.Advance(1)
	test.ExpectEquality(t, r.Count, uint64(1))
	test.ExpectEquality(t, ctr.RTC.Latched(), true)

	// the interrupt is masked so the CPU doesn't see it
	test.ExpectEquality(t, ctr.IRQ(), false)

	// reading the RTC port acknowledges the interrupt
	ctr.Read(interrupts.PortRTC)
	test.ExpectEquality(t, ctr.RTC.Latched(), false)

	// one second of ticks
	for i := 0; i < rtc.Frequency; i++ {
		clk.Advance(period)
	}
	test.ExpectEquality(t, r.Count, uint64(rtc.Frequency+1))

	r.Reset()
	test.ExpectEquality(t, r.Count, uint64(0))
	test.ExpectEquality(t, clk.Pending()[0].Name, rtc.PulseName)
}

func TestRTCInterrupt(t *testing.T) {
	clk := clocks.NewClock()
	ctr := interrupts.NewController()
	rtc.NewRTC(clk, ctr.RTC)

	ctr.Write(interrupts.PortMaskable, 0x04)
	clk.Advance(clocks.TicksPerSecond / rtc.Frequency)
	test.ExpectEquality(t, ctr.IRQ(), true)
	test.ExpectEquality(t, ctr.Peek(interrupts.PortMaskable), uint8(0xfb))
}
