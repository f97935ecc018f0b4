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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/diskimage"
	"github.com/jetsetilly/gopher80/test"
)

func writeTemp(t *testing.T, name string, data []uint8) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	return fn
}

// load block of three bytes at 6000h followed by a transfer record
var program = []uint8{0x01, 0x05, 0x00, 0x60, 0x3e, 0x42, 0xc9, 0x02, 0x02, 0x00, 0x60}

func TestVersionMode(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"VERSION"}, w), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Gopher80"))
}

func TestCmdInfoMode(t *testing.T) {
	fn := writeTemp(t, "prog.cmd", program)

	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"CMDINFO", fn}, w), exitOK)
	test.ExpectSuccess(t, strings.Contains(w.String(), "6000"))

	fn = writeTemp(t, "bad.cmd", []uint8{0x01})
	w.Reset()
	test.ExpectEquality(t, launch([]string{"CMDINFO", fn}, w), exitModeError)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"CMDINFO"}, w), exitModeError)
}

func TestDisasmMode(t *testing.T) {
	fn := writeTemp(t, "prog.cmd", program)

	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"DISASM", "-bytecode", fn}, w), exitOK)
	test.ExpectSuccess(t, strings.Contains(w.String(), "3e 42"))
	test.ExpectEquality(t, strings.Count(w.String(), "\n"), 2)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"DISASM", fn, fn}, w), exitModeError)
}

func TestDiskMode(t *testing.T) {
	d := diskimage.NewDisk(2, 1)
	sectors := make([]diskimage.Sector, 3)
	for i := range sectors {
		sectors[i] = diskimage.Sector{Track: 1, Number: uint8(i), SizeCode: 1, DoubleDensity: true}
	}
	test.DemandSuccess(t, d.FormatTrack(1, 0, sectors))
	fn := writeTemp(t, "test.dsk", d.Bytes())

	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"DISK", "-track", "1", fn}, w), exitOK)
	test.ExpectEquality(t, strings.Count(w.String(), " 1/0: "), 3)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"DISK", "-track", "0", fn}, w), exitOK)
	test.ExpectEquality(t, strings.Count(w.String(), " 1/0: "), 0)

	fn = writeTemp(t, "junk.dsk", []uint8{0x00})
	w.Reset()
	test.ExpectEquality(t, launch([]string{"DISK", fn}, w), exitModeError)
}

func TestStateMode(t *testing.T) {
	fn := writeTemp(t, "junk.state", []uint8("not a state file"))

	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"STATE", fn}, w), exitModeError)
}

func TestUnknownFlag(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"RUN", "-nosuchflag"}, w), exitModeError)
}
