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

package interrupts_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/test"
)

type counter struct {
	fired int
	reset int
}

func (c *counter) attach(t *interrupts.Trigger) {
	t.OnFire = func() { c.fired++ }
	t.OnReset = func() { c.reset++ }
}

func TestEdge(t *testing.T) {
	var c counter
	trg := interrupts.NewTrigger("test", false, true)
	c.attach(trg)

	trg.Latch()
	test.ExpectSuccess(t, trg.Latched())
	test.ExpectFailure(t, trg.Triggered())
	test.ExpectEquality(t, c.fired, 0)

	trg.SetEnabled(true)
	test.ExpectSuccess(t, trg.Triggered())
	test.ExpectEquality(t, c.fired, 1)

	// no edge, no fire
	trg.SetEnabled(true)
	trg.Latch()
	test.ExpectEquality(t, c.fired, 1)

	// an unlocked trigger resets when the latch is removed
	trg.Unlatch()
	test.ExpectFailure(t, trg.Triggered())
	test.ExpectEquality(t, c.reset, 1)

	// and fires again on the next edge
	trg.Latch()
	test.ExpectEquality(t, c.fired, 2)
}

func TestCannotLatchBeforeEnabled(t *testing.T) {
	var c counter
	trg := interrupts.NewTrigger("test", false, false)
	c.attach(trg)

	trg.Latch()
	test.ExpectFailure(t, trg.Latched())
	trg.SetEnabled(true)
	test.ExpectEquality(t, c.fired, 0)

	trg.Latch()
	test.ExpectSuccess(t, trg.Triggered())
	test.ExpectEquality(t, c.fired, 1)
}

func TestLocked(t *testing.T) {
	var c counter
	trg := interrupts.NewTrigger("test", true, false)
	c.attach(trg)

	trg.SetEnabled(true)
	trg.Latch()
	test.ExpectEquality(t, c.fired, 1)

	// a locked trigger stays triggered
	trg.Unlatch()
	trg.SetEnabled(false)
	test.ExpectSuccess(t, trg.Triggered())
	test.ExpectEquality(t, c.reset, 0)

	trg.Reset()
	test.ExpectFailure(t, trg.Triggered())
	test.ExpectFailure(t, trg.Latched())
	test.ExpectEquality(t, c.reset, 1)

	// resetting an untriggered trigger doesn't call OnReset
	trg.Reset()
	test.ExpectEquality(t, c.reset, 1)
}

func TestReentrantCallback(t *testing.T) {
	trg := interrupts.NewTrigger("test", false, true)
	other := interrupts.NewTrigger("other", false, true)
	other.SetEnabled(true)

	// firing one trigger latches another
	trg.OnFire = func() { other.Latch() }
	trg.SetEnabled(true)
	trg.Latch()
	test.ExpectSuccess(t, other.Triggered())
}

func TestState(t *testing.T) {
	trg := interrupts.NewTrigger("test", true, true)
	trg.SetEnabled(true)
	trg.Latch()
	s := trg.State()

	fired := false
	r := interrupts.NewTrigger("test", false, false)
	r.OnFire = func() { fired = true }
	r.Restore(s)
	test.ExpectEquality(t, r.State(), s)
	test.ExpectSuccess(t, r.Triggered())
	test.ExpectFailure(t, fired)
}

func TestControllerPorts(t *testing.T) {
	ctr := interrupts.NewController()

	// nothing latched. all bits high
	test.ExpectEquality(t, ctr.Read(0xe0), 0xff)
	test.ExpectEquality(t, ctr.Read(0xe4), 0xff)
	test.ExpectFailure(t, ctr.IRQ())
	test.ExpectFailure(t, ctr.NMI())

	// status is visible while the interrupt is masked
	ctr.RTC.Latch()
	test.ExpectEquality(t, ctr.Read(0xe0), 0xfb)
	test.ExpectFailure(t, ctr.IRQ())

	// enabling the RTC interrupt triggers the IRQ line
	ctr.Write(0xe0, 0x04)
	test.ExpectSuccess(t, ctr.RTC.Enabled())
	test.ExpectSuccess(t, ctr.IRQ())

	// mirrored port address
	test.ExpectEquality(t, ctr.Read(0xe3), 0xfb)

	// reading the RTC port unlatches the RTC interrupt
	test.ExpectEquality(t, ctr.Read(0xec), 0xff)
	test.ExpectFailure(t, ctr.RTC.Latched())
	test.ExpectFailure(t, ctr.IRQ())
	test.ExpectEquality(t, ctr.Read(0xe0), 0xff)

	// non-maskable interrupts
	ctr.MotorOff.Latch()
	test.ExpectEquality(t, ctr.Peek(0xe4), 0xbf)
	test.ExpectFailure(t, ctr.NMI())
	ctr.Write(0xe4, 0xc0)
	test.ExpectSuccess(t, ctr.NMI())
	test.ExpectSuccess(t, ctr.FDC.Enabled())

	// the reset button is always enabled
	ctr.Write(0xe4, 0x00)
	test.ExpectFailure(t, ctr.NMI())
	ctr.ResetButton.Latch()
	test.ExpectSuccess(t, ctr.NMI())
	test.ExpectEquality(t, ctr.Peek(0xe4), 0x9f)
}

func TestClearCassette(t *testing.T) {
	ctr := interrupts.NewController()
	ctr.CassetteRising.Latch()
	ctr.CassetteFalling.Latch()
	test.ExpectEquality(t, ctr.Peek(0xe0), 0xfc)
	ctr.ClearCassette()
	test.ExpectEquality(t, ctr.Peek(0xe0), 0xff)
}

func TestControllerReset(t *testing.T) {
	ctr := interrupts.NewController()
	ctr.Write(0xe0, 0xff)
	ctr.RTC.Latch()
	test.ExpectSuccess(t, ctr.IRQ())

	ctr.Reset()
	test.ExpectFailure(t, ctr.IRQ())
	test.ExpectFailure(t, ctr.RTC.Enabled())
	test.ExpectSuccess(t, ctr.ResetButton.Enabled())
	test.ExpectEquality(t, len(ctr.Triggers()), 10)
}
