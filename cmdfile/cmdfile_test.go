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

package cmdfile_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/cmdfile"
	"github.com/jetsetilly/gopher80/test"
)

func TestSingleBlock(t *testing.T) {
	data := []uint8{
		0x01, 0x06, 0x00, 0x40, 0x3e, 0x01, 0x76, 0x00,
		0x02, 0x02, 0x00, 0x40,
	}

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, f.LowAddress, 0x4000)
	test.ExpectEquality(t, f.HighAddress, 0x4003)
	test.ExpectSuccess(t, f.HasTransfer)
	test.ExpectEquality(t, f.TransferAddress, 0x4000)
	test.DemandEquality(t, len(f.Blocks), 1)
	test.ExpectEquality(t, len(f.Blocks[0].Data), 4)
	test.ExpectEquality(t, f.Blocks[0].Data[2], 0x76)
}

func TestEndWithoutData(t *testing.T) {
	f := cmdfile.Parse([]uint8{0x03})
	test.ExpectFailure(t, f.Valid)

	f = cmdfile.Parse([]uint8{})
	test.ExpectFailure(t, f.Valid)

	f = cmdfile.Parse(nil)
	test.ExpectFailure(t, f.Valid)
}

func TestEndRecord(t *testing.T) {
	data := []uint8{
		0x01, 0x03, 0x00, 0x50, 0xaa,
		0x03,
		// data after the end record is ignored
		0x01, 0x03, 0x00, 0x60, 0xbb,
	}

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectFailure(t, f.HasTransfer)
	test.ExpectEquality(t, len(f.Blocks), 1)
	test.ExpectEquality(t, f.HighAddress, 0x5000)
}

func TestCoalescing(t *testing.T) {
	data := make([]uint8, 0, 64)
	data = append(data, 0x01, 0x12, 0x00, 0x50)
	data = append(data, make([]uint8, 0x10)...)
	data = append(data, 0x01, 0x12, 0x10, 0x50)
	data = append(data, make([]uint8, 0x10)...)
	data = append(data, 0x02, 0x02, 0x00, 0x50)

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.DemandEquality(t, len(f.Blocks), 1)
	test.ExpectEquality(t, f.Blocks[0].Address, 0x5000)
	test.ExpectEquality(t, f.Blocks[0].End(), 0x5020)
	test.ExpectEquality(t, f.Size(), 0x20)
	test.ExpectEquality(t, f.LowAddress, 0x5000)
	test.ExpectEquality(t, f.HighAddress, 0x501f)
}

func TestNonContiguous(t *testing.T) {
	data := []uint8{
		0x01, 0x03, 0x00, 0x60, 0x11,
		0x01, 0x03, 0x00, 0x50, 0x22,
		0x02, 0x02, 0x00, 0x50,
	}

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, len(f.Blocks), 2)
	test.ExpectEquality(t, f.LowAddress, 0x5000)
	test.ExpectEquality(t, f.HighAddress, 0x6000)
}

func TestShortLengths(t *testing.T) {
	// a declared length of 2 is a 256 byte payload
	data := []uint8{0x01, 0x02, 0x00, 0x70}
	data = append(data, make([]uint8, 256)...)
	data = append(data, 0x02, 0x02, 0x00, 0x70)

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, f.Size(), 256)
	test.ExpectEquality(t, f.HighAddress, 0x70ff)

	// a declared length of 0 is a 254 byte payload
	data = []uint8{0x01, 0x00, 0x00, 0x70}
	data = append(data, make([]uint8, 254)...)
	data = append(data, 0x03)

	f = cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, f.Size(), 254)
}

func TestSkippedRecords(t *testing.T) {
	data := []uint8{
		0x05, 0x06, 'L', 'D', 'O', 'S', ' ', ' ',
		0x1f, 0x02, 0xaa, 0xbb,
		0x01, 0x04, 0x00, 0x40, 0x00, 0x00,
		0x02, 0x01, 0x80,
	}

	f := cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, f.Name, "LDOS")
	test.ExpectEquality(t, f.TransferAddress, 0x0080)
	test.ExpectEquality(t, f.Size(), 2)
}

func TestTruncated(t *testing.T) {
	// payload is shorter than declared. the whole file is rejected
	data := []uint8{0x01, 0x06, 0x00, 0x40, 0x3e}
	f := cmdfile.Parse(data)
	test.ExpectFailure(t, f.Valid)
	test.ExpectEquality(t, len(f.Blocks), 0)

	// missing length byte
	f = cmdfile.Parse([]uint8{0x01, 0x03, 0x00, 0x40, 0x00, 0x01})
	test.ExpectFailure(t, f.Valid)
}

// a block that would wrap around the address space makes the whole file
// invalid. a block ending exactly at ffff is fine
func TestBlockPastTopOfMemory(t *testing.T) {
	data := make([]uint8, 0, 64)
	data = append(data, 0x01, 0x22, 0xf0, 0xff)
	data = append(data, make([]uint8, 0x20)...)
	data = append(data, 0x02, 0x02, 0xf0, 0xff)
	f := cmdfile.Parse(data)
	test.ExpectFailure(t, f.Valid)

	data = data[:0]
	data = append(data, 0x01, 0x12, 0xf0, 0xff)
	data = append(data, make([]uint8, 0x10)...)
	data = append(data, 0x02, 0x02, 0xf0, 0xff)
	f = cmdfile.Parse(data)
	test.DemandSuccess(t, f.Valid)
	test.ExpectEquality(t, f.LowAddress, 0xfff0)
	test.ExpectEquality(t, f.HighAddress, 0xffff)
}
