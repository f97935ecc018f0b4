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
	"sync/atomic"

	"github.com/jetsetilly/gopher80/cmdfile"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/diskimage"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/hardware/peripherals/cassette"
	"github.com/jetsetilly/gopher80/hardware/peripherals/floppy"
	"github.com/jetsetilly/gopher80/hardware/peripherals/rtc"
	"github.com/jetsetilly/gopher80/hardware/ports"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/medialoader"
	"github.com/jetsetilly/gopher80/prefs"
)

// the instruction table is immutable and shared by every Computer
var table = cpu.NewInstructionTable()

// Sentinel error patterns.
const (
	InvalidLoadFile = "computer: invalid load file"
	InvalidDisk     = "computer: invalid disk image (%s)"
	UnsupportedKind = "computer: cannot attach media (%s)"
)

// Computer struct is the main container for the emulated components of the
// Model III.
type Computer struct {
	Prefs *preferences.Preferences

	CPU        *cpu.CPU
	Mem        *memory.Model3
	Keyboard   *memory.Keyboard
	Clock      *clocks.Clock
	Interrupts *interrupts.Controller
	Ports      *ports.Bus

	RTC      *rtc.RTC
	Floppy   *floppy.Floppy
	Cassette *cassette.Cassette

	// cooperative stop flag for the run loops
	stop atomic.Bool

	// log entries made on behalf of the computer are suppressed when quiet
	quiet atomic.Bool

	// the most recently published report
	report atomic.Pointer[Report]
}

// NewComputer creates a new Model III and everything associated with the
// hardware. The prefs argument can be nil, in which case default preferences
// are used and nothing is read from or written to disk.
func NewComputer(p *preferences.Preferences) (*Computer, error) {
	if p == nil {
		p = &preferences.Preferences{}
		p.SetDefaults()
	}

	c := &Computer{
		Prefs:      p,
		Mem:        memory.NewModel3(),
		Keyboard:   memory.NewKeyboard(),
		Clock:      clocks.NewClock(),
		Interrupts: interrupts.NewController(),
		Ports:      ports.NewBus(),
	}

	c.Mem.AttachKeyboard(c.Keyboard)

	c.RTC = rtc.NewRTC(c.Clock, c.Interrupts.RTC)
	c.Floppy = floppy.NewFloppy(c.Clock, c.Interrupts.MotorOff)
	c.Cassette = cassette.NewCassette(c.Clock, c.Interrupts)
	c.Cassette.Threshold = c.Prefs.CassetteThreshold.Get().(float64)
	c.Prefs.CassetteThreshold.SetHookPost(func(v prefs.Value) error {
		c.Cassette.Threshold = v.(float64)
		return nil
	})

	c.Ports.AttachReader(c.Interrupts, ports.Range(0xe0, 0xe7)...)
	c.Ports.AttachWriter(c.Interrupts, ports.Range(0xe0, 0xe7)...)
	c.Ports.AttachReader(c.Interrupts, ports.Range(0xec, 0xef)...)
	c.Ports.AttachWriter(c.Cassette, ports.Range(0xec, 0xef)...)
	c.Ports.AttachReader(c.Cassette, cassette.PortData)
	c.Ports.AttachWriter(c.Floppy, ports.Range(0xf4, 0xf7)...)

	c.CPU = cpu.NewCPU(table, c.Mem, c.Ports, c.Clock, c.Interrupts)

	if rom := c.Prefs.ROM.String(); rom != "" {
		ld := medialoader.NewLoader(rom)
		if err := c.AttachMedia(&ld); err != nil {
			return nil, err
		}
	}

	c.publishReport()

	return c, nil
}

// Reset emulates the reset button. The CPU, the writable memory areas and all
// peripherals are reset. Inserted disks and cassettes are kept.
func (c *Computer) Reset() {
	c.Clock.Reset()
	c.Interrupts.Reset()
	c.Mem.Reset()
	c.Keyboard.ReleaseAll()
	c.CPU.Reset()
	c.RTC.Reset()
	c.Floppy.Reset()
	c.Cassette.Reset()
	c.publishReport()
	logger.Log(c, "computer", "reset")
}

// AllowLogging implements the logger.Permission interface.
func (c *Computer) AllowLogging() bool {
	return !c.quiet.Load()
}

// SetQuiet suppresses log entries made on behalf of the computer.
func (c *Computer) SetQuiet(quiet bool) {
	c.quiet.Store(quiet)
}

// LoadCMD copies the data blocks of the load file into memory. If the file has
// a transfer address then the program counter is set to it.
func (c *Computer) LoadCMD(f *cmdfile.File) error {
	if !f.Valid {
		return curated.Errorf(InvalidLoadFile)
	}

	for _, b := range f.Blocks {
		for i, v := range b.Data {
			c.Mem.Write(b.Address+uint16(i), v)
		}
	}

	if f.HasTransfer {
		c.CPU.PC.Load(f.TransferAddress)
	}

	logger.Logf(c, "computer", "loaded %d bytes (%04x-%04x)", f.Size(), f.LowAddress, f.HighAddress)

	return nil
}

// AttachMedia loads media into the computer. Load files are copied into
// memory, disk images are inserted into the first drive, recordings are
// inserted into the cassette and ROM images replace the ROM.
//
// Attaching a ROM resets the computer.
func (c *Computer) AttachMedia(ld *medialoader.Loader) error {
	if err := ld.Load(); err != nil {
		return err
	}

	switch ld.Kind {
	case medialoader.Program:
		return c.LoadCMD(cmdfile.Parse(ld.Data))

	case medialoader.Disk:
		d, ok := diskimage.Parse(ld.Data)
		if !ok {
			return curated.Errorf(InvalidDisk, ld.ShortName())
		}
		return c.Floppy.Insert(0, d)

	case medialoader.Cassette:
		return c.Cassette.Load(ld.Filename, ld.Data)

	case medialoader.ROM:
		if err := c.Mem.LoadROM(ld.Data); err != nil {
			return err
		}
		c.Reset()
		return nil
	}

	return curated.Errorf(UnsupportedKind, ld.Kind)
}
