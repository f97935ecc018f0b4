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

	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/memory"
)

// Report is an immutable summary of the state of the computer. Reports are
// published by the run loops and can be read safely from other goroutines.
type Report struct {
	Ticks uint64
	CPU   cpu.State

	Interrupts string
	Floppy     string
	Cassette   string

	Video memory.Video
}

func (r *Report) String() string {
	return fmt.Sprintf("%d ticks PC=%04x\n%s\n%s\n%s", r.Ticks, r.CPU.PC, r.Interrupts, r.Floppy, r.Cassette)
}

func (c *Computer) publishReport() {
	c.report.Store(&Report{
		Ticks:      c.Clock.Ticks(),
		CPU:        c.CPU.State(),
		Interrupts: c.Interrupts.String(),
		Floppy:     c.Floppy.String(),
		Cassette:   c.Cassette.String(),
		Video:      c.Mem.Video(),
	})
}

// Report returns the most recently published report.
func (c *Computer) Report() *Report {
	return c.report.Load()
}
