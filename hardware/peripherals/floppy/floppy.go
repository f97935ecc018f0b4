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

// Package floppy implements the disk drives of the Model III. The drives hold
// DMK disk images and present the sector interface used by a floppy disk
// controller. The controller's command state machine is not part of this
// package.
//
// Writing to the drive select port turns the drive motors on. The motors stay
// on for two seconds after the most recent write, after which the motor-off
// interrupt is latched.
package floppy

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/diskimage"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/logger"
)

// NumDrives is the number of drives that can be attached.
const NumDrives = 4

// PortSelect is the drive select port.
const PortSelect = 0xf4

// MotorTimeout is the time in microseconds that the motors stay on after the
// drive select port is written to.
const MotorTimeout = 2000000

// PulseName is the name of the motor-off pulse.
const PulseName = "floppy motor off"

// NoDrive is the value of Floppy.Selected when no drive is selected.
const NoDrive = -1

// bits of the drive select port.
const (
	selectSide = 0x10
	selectMask = 0x0f
)

// InvalidDrive is returned when a drive number is out of range.
const InvalidDrive = "floppy: invalid drive (%d)"

// Floppy is the set of disk drives.
type Floppy struct {
	clk     *clocks.Clock
	trigger *interrupts.Trigger

	drives [NumDrives]*diskimage.Disk

	motorOff *clocks.PulseRequest

	// the drive and side selected by the most recent write to the select
	// port
	Selected int
	Side     uint8

	MotorOn bool
}

// NewFloppy is the preferred method of initialisation for the Floppy type. The
// trigger is latched when the motors turn off.
func NewFloppy(clk *clocks.Clock, trigger *interrupts.Trigger) *Floppy {
	f := &Floppy{
		clk:      clk,
		trigger:  trigger,
		Selected: NoDrive,
	}
	f.motorOff = clocks.NewPulse(PulseName, clocks.BasisMicroseconds, MotorTimeout, func() {
		f.MotorOn = false
		f.trigger.Latch()
		logger.Log(logger.Allow, "floppy", "motor off")
	})
	f.clk.Declare(f.motorOff)
	return f
}

func (f *Floppy) String() string {
	s := strings.Builder{}
	if f.Selected == NoDrive {
		s.WriteString("no drive selected")
	} else {
		s.WriteString(fmt.Sprintf("drive %d side %d", f.Selected, f.Side))
	}
	if f.MotorOn {
		s.WriteString(" [motor on]")
	}
	return s.String()
}

// Insert a disk into the drive. Any existing disk is replaced.
func (f *Floppy) Insert(drive int, disk *diskimage.Disk) error {
	if drive < 0 || drive >= NumDrives {
		return curated.Errorf(InvalidDrive, drive)
	}
	f.drives[drive] = disk
	logger.Logf(logger.Allow, "floppy", "inserted disk into drive %d: %s", drive, disk)
	return nil
}

// Eject the disk from the drive.
func (f *Floppy) Eject(drive int) error {
	if drive < 0 || drive >= NumDrives {
		return curated.Errorf(InvalidDrive, drive)
	}
	f.drives[drive] = nil
	return nil
}

// Drive returns the disk in the drive. Returns nil if the drive is empty or
// does not exist.
func (f *Floppy) Drive(drive int) *diskimage.Disk {
	if drive < 0 || drive >= NumDrives {
		return nil
	}
	return f.drives[drive]
}

// Write implements the ports.Writer interface.
func (f *Floppy) Write(port uint8, data uint8) {
	if port&0xfc != PortSelect {
		return
	}

	f.Selected = NoDrive
	for d := 0; d < NumDrives; d++ {
		if data&selectMask&(1<<d) != 0 {
			f.Selected = d
			break
		}
	}

	if data&selectSide == selectSide {
		f.Side = 1
	} else {
		f.Side = 0
	}

	if !f.MotorOn {
		logger.Log(logger.Allow, "floppy", "motor on")
	}
	f.MotorOn = true
	f.trigger.Unlatch()
	f.clk.Register(f.motorOff)
}

// the disk in the selected drive. nil if there is no disk.
func (f *Floppy) selected() *diskimage.Disk {
	if f.Selected == NoDrive {
		return nil
	}
	return f.drives[f.Selected]
}

// GetSector returns the sector from the selected drive and side. The empty
// sector is returned if no disk is selected.
func (f *Floppy) GetSector(track uint8, sector uint8) diskimage.Sector {
	d := f.selected()
	if d == nil {
		return diskimage.Sector{}
	}
	return d.GetSector(track, f.Side, sector)
}

// WriteSector writes to the sector on the selected drive and side. Returns
// false if the write failed.
func (f *Floppy) WriteSector(track uint8, sector uint8, mark uint8, data []uint8) bool {
	d := f.selected()
	if d == nil {
		return false
	}
	return d.WriteSector(track, f.Side, sector, mark, data)
}

// HighestSectorNumber on the track of the selected drive and side.
func (f *Floppy) HighestSectorNumber(track uint8) (uint8, bool) {
	d := f.selected()
	if d == nil {
		return 0, false
	}
	return d.HighestSectorNumber(track, f.Side)
}

// LowestSectorNumber on the track of the selected drive and side.
func (f *Floppy) LowestSectorNumber(track uint8) (uint8, bool) {
	d := f.selected()
	if d == nil {
		return 0, false
	}
	return d.LowestSectorNumber(track, f.Side)
}

// State is the saved state of the drives. Disks are not part of the state.
type State struct {
	Selected int
	Side     uint8
	MotorOn  bool
}

// State returns the current state of the drives.
func (f *Floppy) State() State {
	return State{
		Selected: f.Selected,
		Side:     f.Side,
		MotorOn:  f.MotorOn,
	}
}

// Restore a previously saved state. The motor-off pulse is restored by the
// clock.
func (f *Floppy) Restore(s State) {
	f.Selected = s.Selected
	f.Side = s.Side
	f.MotorOn = s.MotorOn
}

// Reset deselects the drives and turns the motors off. Inserted disks are not
// ejected.
func (f *Floppy) Reset() {
	f.clk.Cancel(f.motorOff)
	f.Selected = NoDrive
	f.Side = 0
	f.MotorOn = false
}
