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

package floppy_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/diskimage"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/peripherals/floppy"
	"github.com/jetsetilly/gopher80/test"
)

func formattedDisk(t *testing.T) *diskimage.Disk {
	t.Helper()
	d := diskimage.NewDisk(2, 2)
	for side := uint8(0); side < 2; side++ {
		sectors := make([]diskimage.Sector, 6)
		for i := range sectors {
			data := make([]uint8, 256)
			for j := range data {
				data[j] = uint8(i) + side*0x10
			}
			sectors[i] = diskimage.Sector{
				Track:         1,
				Side:          side,
				Number:        uint8(i),
				SizeCode:      1,
				DoubleDensity: true,
				Data:          data,
			}
		}
		test.DemandSuccess(t, d.FormatTrack(1, side, sectors))
	}
	return d
}

func TestSelect(t *testing.T) {
	clk := clocks.NewClock()
	ctr := interrupts.NewController()
	f := floppy.NewFloppy(clk, ctr.MotorOff)

	test.ExpectEquality(t, f.Selected, floppy.NoDrive)
	test.ExpectEquality(t, f.GetSector(1, 0).Empty(), true)

	err := f.Insert(floppy.NumDrives, formattedDisk(t))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, floppy.InvalidDrive))

	test.DemandSuccess(t, f.Insert(1, formattedDisk(t)))

	// drive 1, side 1
	f.Write(floppy.PortSelect, 0x12)
	test.ExpectEquality(t, f.Selected, 1)
	test.ExpectEquality(t, f.Side, uint8(1))
	test.ExpectEquality(t, f.MotorOn, true)

	s := f.GetSector(1, 3)
	test.DemandEquality(t, s.Empty(), false)
	test.ExpectEquality(t, s.Data[0], uint8(0x13))

	h, ok := f.HighestSectorNumber(1)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, h, uint8(5))
	l, ok := f.LowestSectorNumber(1)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, uint8(0))

	test.ExpectSuccess(t, f.WriteSector(1, 3, diskimage.MarkData, []uint8{0xaa}))
	test.ExpectEquality(t, f.GetSector(1, 3).Data[0], uint8(0xaa))

	// drive 0 is empty
	f.Write(floppy.PortSelect, 0x01)
	test.ExpectEquality(t, f.Selected, 0)
	test.ExpectEquality(t, f.GetSector(1, 3).Empty(), true)
	test.ExpectFailure(t, f.WriteSector(1, 3, diskimage.MarkData, []uint8{0xaa}))

	test.DemandSuccess(t, f.Eject(1))
	test.ExpectEquality(t, f.Drive(1) == nil, true)
}

func TestMotorTimeout(t *testing.T) {
	clk := clocks.NewClock()
	ctr := interrupts.NewController()
	f := floppy.NewFloppy(clk, ctr.MotorOff)

	ctr.Write(interrupts.PortNonMaskable, 0x40)

	timeout := clocks.MicrosecondsToTicks(floppy.MotorTimeout)

	f.Write(floppy.PortSelect, 0x01)
	clk.Advance(timeout / 2)

	// writing to the port restarts the timer
	f.Write(floppy.PortSelect, 0x01)
	clk.Advance(timeout / 2)
	test.ExpectEquality(t, f.MotorOn, true)
	test.ExpectEquality(t, ctr.NMI(), false)

	clk.Advance(timeout / 2)
	test.ExpectEquality(t, f.MotorOn, false)
	test.ExpectEquality(t, ctr.MotorOff.Latched(), true)
	test.ExpectEquality(t, ctr.NMI(), true)

	// turning the motor on again clears the interrupt
	f.Write(floppy.PortSelect, 0x01)
	test.ExpectEquality(t, ctr.NMI(), false)

	f.Reset()
	test.ExpectEquality(t, f.MotorOn, false)
	test.ExpectEquality(t, len(clk.Pending()), 0)
}
