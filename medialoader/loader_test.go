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

package medialoader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/medialoader"
	"github.com/jetsetilly/gopher80/test"
)

func TestKind(t *testing.T) {
	test.ExpectEquality(t, medialoader.NewLoader("game.cmd").Kind, medialoader.Program)
	test.ExpectEquality(t, medialoader.NewLoader("LDOS.DSK").Kind, medialoader.Disk)
	test.ExpectEquality(t, medialoader.NewLoader("ldos.Dmk").Kind, medialoader.Disk)
	test.ExpectEquality(t, medialoader.NewLoader("tape.wav").Kind, medialoader.Cassette)
	test.ExpectEquality(t, medialoader.NewLoader("tape.mp3").Kind, medialoader.Cassette)
	test.ExpectEquality(t, medialoader.NewLoader("model3.rom").Kind, medialoader.ROM)
	test.ExpectEquality(t, medialoader.NewLoader("readme.txt").Kind, medialoader.Unknown)
	test.ExpectEquality(t, medialoader.NewLoader("/tmp/game.cmd").ShortName(), "game")
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.cmd")
	test.DemandSuccess(t, os.WriteFile(fn, []uint8("abc"), 0o600))

	ld := medialoader.NewLoader(fn)
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, ld.HasLoaded(), true)
	test.ExpectEquality(t, ld.Hash, "a9993e364706816aba3e25717850c26c9cd0d89d")

	ld = medialoader.NewLoader(fn)
	ld.Hash = "0000"
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, medialoader.UnexpectedHash))
	test.ExpectEquality(t, ld.HasLoaded(), false)

	ld = medialoader.NewLoader(filepath.Join(t.TempDir(), "missing.cmd"))
	err = ld.Load()
	test.ExpectSuccess(t, curated.Is(err, curated.HostIO))

	ld = medialoader.NewLoader("readme.txt")
	test.ExpectSuccess(t, curated.Is(ld.Load(), medialoader.UnknownKind))
}
