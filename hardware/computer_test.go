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

package hardware_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/medialoader"
	"github.com/jetsetilly/gopher80/test"
)

// a ROM that enables the RTC interrupt and then loops forever incrementing
// HL. the interrupt handler increments DE.
func testROM() []uint8 {
	rom := make([]uint8, memory.MemtopROM+1)
	copy(rom, []uint8{
		0x31, 0x00, 0x80, // LD SP,8000
		0xed, 0x56, //       IM 1
		0x3e, 0x04, //       LD A,04
		0xd3, 0xe0, //       OUT (E0),A
		0xfb,       //       EI
		0x23,       //       INC HL
		0x18, 0xfd, //       JR -3
	})
	copy(rom[0x38:], []uint8{
		0xdb, 0xec, // IN A,(EC)
		0x13,       // INC DE
		0xfb,       // EI
		0xed, 0x4d, // RETI
	})
	return rom
}

func newComputer(t *testing.T) *hardware.Computer {
	t.Helper()
	c, err := hardware.NewComputer(nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, c.Mem.LoadROM(testROM()))
	c.Reset()
	return c
}

func TestPortWiring(t *testing.T) {
	c := newComputer(t)

	// nothing is latched
	test.ExpectEquality(t, c.Ports.In(0xe0), uint8(0xff))
	test.ExpectEquality(t, c.Ports.In(0xe4), uint8(0xff))

	// cassette data port
	test.ExpectEquality(t, c.Ports.In(0xff), uint8(0xfe))

	// unmapped port
	test.ExpectEquality(t, c.Ports.In(0x80), uint8(0xff))

	// floppy select port
	c.Ports.Out(0xf4, 0x01)
	test.ExpectEquality(t, c.Floppy.Selected, 0)
	test.ExpectEquality(t, c.Floppy.MotorOn, true)

	// cassette motor
	c.Ports.Out(0xec, 0x02)
	test.ExpectEquality(t, c.Cassette.Motor, true)
}

func TestInterruptLoop(t *testing.T) {
	c := newComputer(t)

	// a little more than three RTC periods
	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/10+clocks.TicksPerMillisecond, nil))

	test.ExpectEquality(t, c.RTC.Count, uint64(3))
	test.ExpectEquality(t, c.CPU.DE.Value(), 0x0002)
	test.ExpectInequality(t, c.CPU.HL.Value(), 0xffff)

	r := c.Report()
	if r == nil {
		t.Fatalf("expected a published report")
	}
	test.ExpectEquality(t, r.Ticks, c.Clock.Ticks())
	test.ExpectEquality(t, r.CPU.DE, 0x0002)
}

func TestStop(t *testing.T) {
	c := newComputer(t)

	n := 0
	err := c.Run(func() (govern.State, error) {
		n++
		if n == 10 {
			c.Stop()
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 10)
}

func TestQuiet(t *testing.T) {
	c := newComputer(t)

	logger.Clear()
	c.SetQuiet(true)
	c.Reset()
	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectFailure(t, strings.Contains(w.String(), "computer: reset"))

	c.SetQuiet(false)
	c.Reset()
	w.Reset()
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "computer: reset"))
}

func TestLoadCMD(t *testing.T) {
	c := newComputer(t)

	data := []uint8{
		0x01, 0x08, 0x00, 0x50, // data block at 5000
		0x3e, 0x42, //             LD A,42
		0x32, 0x00, 0x3c, //       LD (3C00),A
		0x76,                   // HALT
		0x02, 0x02, 0x00, 0x50, // transfer to 5000
	}

	fn := filepath.Join(t.TempDir(), "prog.cmd")
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o600))

	ld := medialoader.NewLoader(fn)
	test.DemandSuccess(t, c.AttachMedia(&ld))
	test.ExpectEquality(t, c.CPU.PC.Value(), 0x5000)

	for i := 0; i < 3; i++ {
		c.Step()
	}
	test.ExpectEquality(t, c.Mem.Video()[0], uint8(0x42))
	test.ExpectEquality(t, c.CPU.Halted, true)

	err := c.AttachMedia(&medialoader.Loader{Filename: fn, Kind: medialoader.Program, Data: []uint8{0x03}})
	test.ExpectSuccess(t, curated.Is(err, hardware.InvalidLoadFile))

	ld = medialoader.NewLoader(filepath.Join(t.TempDir(), "blank.dsk"))
	ld.Data = []uint8{0x00}
	err = c.AttachMedia(&ld)
	test.ExpectSuccess(t, curated.Is(err, hardware.InvalidDisk))
}

func expectSameState(t *testing.T, a *hardware.State, b *hardware.State) {
	t.Helper()
	test.ExpectEquality(t, a.Ticks, b.Ticks)
	test.ExpectEquality(t, a.CPU, b.CPU)
	test.ExpectEquality(t, *a.Mem == *b.Mem, true)
	test.ExpectEquality(t, a.RTCCount, b.RTCCount)
	test.ExpectEquality(t, a.Floppy, b.Floppy)
	test.ExpectEquality(t, a.Cassette, b.Cassette)
	if test.ExpectEquality(t, len(a.Pending), len(b.Pending)) {
		for i := range a.Pending {
			test.ExpectEquality(t, a.Pending[i], b.Pending[i])
		}
	}
	if test.ExpectEquality(t, len(a.Triggers), len(b.Triggers)) {
		for i := range a.Triggers {
			test.ExpectEquality(t, a.Triggers[i], b.Triggers[i])
		}
	}
}

func TestReplayDeterminism(t *testing.T) {
	c := newComputer(t)
	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/20, nil))

	snapshot := c.Snapshot()

	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/7, nil))
	first := c.Snapshot()

	test.DemandSuccess(t, c.Plumb(snapshot))
	expectSameState(t, c.Snapshot(), snapshot)

	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/7, nil))
	expectSameState(t, c.Snapshot(), first)

	// a different computer produces the same result from the same state
	d := newComputer(t)
	test.DemandSuccess(t, d.Plumb(snapshot))
	test.DemandSuccess(t, d.RunForTicks(clocks.TicksPerSecond/7, nil))
	expectSameState(t, d.Snapshot(), first)
}

func TestStateFile(t *testing.T) {
	c := newComputer(t)
	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/10, nil))
	c.Ports.Out(0xf4, 0x12)

	var buf bytes.Buffer
	test.DemandSuccess(t, hardware.WriteState(&buf, c.Snapshot()))

	s, err := hardware.ReadState(bytes.NewReader(buf.Bytes()))
	test.DemandSuccess(t, err)
	expectSameState(t, s, c.Snapshot())

	// corrupt the magic
	b := buf.Bytes()
	b[0] = 'X'
	_, err = hardware.ReadState(bytes.NewReader(b))
	test.ExpectSuccess(t, curated.Is(err, hardware.InvalidStateFile))

	// save and load through a file
	fn := filepath.Join(t.TempDir(), "state.g80")
	test.DemandSuccess(t, c.SaveState(fn))
	want := c.Snapshot()

	test.DemandSuccess(t, c.RunForTicks(clocks.TicksPerSecond/10, nil))
	test.DemandSuccess(t, c.LoadState(fn))
	expectSameState(t, c.Snapshot(), want)

	err = c.LoadState(filepath.Join(t.TempDir(), "missing.g80"))
	test.ExpectSuccess(t, curated.Is(err, curated.HostIO))
}
