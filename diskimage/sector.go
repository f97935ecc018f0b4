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

package diskimage

import "fmt"

// Data address marks.
const (
	MarkData        = 0xfb
	MarkDeletedData = 0xf8
)

// the ID address mark.
const markID = 0xfe

// the filler written to the data field of a freshly formatted sector.
const formatFiller = 0xe5

// SectorLength returns the length in bytes of a sector with the size code.
// Size codes greater than three are treated as 256 byte sectors.
func SectorLength(sizeCode uint8) int {
	switch sizeCode {
	case 0:
		return 128
	case 1:
		return 256
	case 2:
		return 512
	case 3:
		return 1024
	}
	return 256
}

// Sector describes a single sector found on a track. The zero value is the
// empty sector, returned for sectors that are not present on the disk.
type Sector struct {
	// values from the ID field
	Track    uint8
	Side     uint8
	Number   uint8
	SizeCode uint8

	DoubleDensity bool

	// the data address mark. one of MarkData or MarkDeletedData (0xf9 and
	// 0xfa also exist on some disks)
	DataAddressMark uint8

	// either the ID field or the data field failed the checksum
	CRCError bool

	// nil if the data field could not be found
	Data []uint8

	// true if an ID field was found. false for the empty sector
	formatted bool

	// position of the data address mark in the raw track and the distance
	// between successive bytes
	markOffset int
	stride     int
}

// Empty returns true if the sector is the empty sector.
func (s Sector) Empty() bool {
	return !s.formatted
}

// Length returns the number of data bytes according to the size code.
func (s Sector) Length() int {
	return SectorLength(s.SizeCode)
}

// Deleted returns true if the sector has a deleted data address mark.
func (s Sector) Deleted() bool {
	return s.DataAddressMark == MarkDeletedData
}

// clone returns the sector with its own copy of the data field.
func (s Sector) clone() Sector {
	if s.Data != nil {
		s.Data = append([]uint8(nil), s.Data...)
	}
	return s
}

func (s Sector) String() string {
	if s.Empty() {
		return "empty"
	}

	d := "SD"
	if s.DoubleDensity {
		d = "DD"
	}

	crc := ""
	if s.CRCError {
		crc = " CRC error"
	}
	if s.Data == nil {
		crc = " no data"
	}

	return fmt.Sprintf("T%02d S%d #%02d %s %4d bytes mark=%02x%s", s.Track, s.Side, s.Number, d, s.Length(), s.DataAddressMark, crc)
}
