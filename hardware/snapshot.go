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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/hardware/peripherals/cassette"
	"github.com/jetsetilly/gopher80/hardware/peripherals/floppy"
)

// UnexpectedTriggers is returned by Plumb() when the number of triggers in the
// state does not match the number of triggers in the computer.
const UnexpectedTriggers = "computer: state has %d triggers, expected %d"

// State stores the state of the computer. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
//
// ROM, disks and cassette recordings are not part of the state.
type State struct {
	CPU cpu.State
	Mem *memory.State

	Ticks   uint64
	Pending []clocks.PulseState

	// in the order returned by interrupts.Controller.Triggers()
	Triggers []interrupts.TriggerState

	RTCCount uint64
	Floppy   floppy.State
	Cassette cassette.State
}

// Snapshot creates a copy of a previously snapshotted State.
func (s *State) Snapshot() *State {
	n := *s
	m := *s.Mem
	n.Mem = &m
	n.Pending = append([]clocks.PulseState(nil), s.Pending...)
	n.Triggers = append([]interrupts.TriggerState(nil), s.Triggers...)
	return &n
}

// Snapshot the state of the computer. Snapshots should only be taken between
// instructions.
func (c *Computer) Snapshot() *State {
	s := &State{
		CPU:      c.CPU.State(),
		Mem:      c.Mem.State(),
		Ticks:    c.Clock.Ticks(),
		Pending:  c.Clock.Pending(),
		RTCCount: c.RTC.Count,
		Floppy:   c.Floppy.State(),
		Cassette: c.Cassette.State(),
	}
	for _, t := range c.Interrupts.Triggers() {
		s.Triggers = append(s.Triggers, t.State())
	}
	return s
}

// Plumb a previously snapshotted state into the computer. The state is copied
// so it can be plumbed more than once.
//
// If an error is returned the computer is unchanged.
func (c *Computer) Plumb(state *State) error {
	if state == nil {
		panic("computer: cannot plumb in a nil state")
	}

	triggers := c.Interrupts.Triggers()
	if len(state.Triggers) != len(triggers) {
		return curated.Errorf(UnexpectedTriggers, len(state.Triggers), len(triggers))
	}

	// restoring the clock is the only part of the process that can fail so
	// it is done first
	if err := c.Clock.Restore(state.Ticks, state.Pending); err != nil {
		return err
	}

	s := state.Snapshot()

	c.CPU.Restore(s.CPU)
	c.Mem.Restore(s.Mem)
	for i, t := range triggers {
		t.Restore(s.Triggers[i])
	}
	c.RTC.Count = s.RTCCount
	c.Floppy.Restore(s.Floppy)
	c.Cassette.Restore(s.Cassette)

	c.publishReport()

	return nil
}

func (s *State) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("ticks: %d\n", s.Ticks))
	b.WriteString(fmt.Sprintf("cpu: PC=%04x SP=%04x AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x\n",
		s.CPU.PC, s.CPU.SP, s.CPU.AF, s.CPU.BC, s.CPU.DE, s.CPU.HL, s.CPU.IX, s.CPU.IY))
	for _, p := range s.Pending {
		b.WriteString(fmt.Sprintf("pulse: %s at %d\n", p.Name, p.Target))
	}
	b.WriteString(fmt.Sprintf("rtc: %d\n", s.RTCCount))
	return b.String()
}
