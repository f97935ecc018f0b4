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

import (
	"fmt"

	"github.com/jetsetilly/gopher80/logger"
)

// HeaderSize is the size of the DMK header in bytes.
const HeaderSize = 16

// header flags.
const (
	flagSingleSided   = 0x10
	flagSingleDensity = 0x40
)

// the value of the write protect byte for a protected disk.
const writeProtected = 0xff

// the largest track length accepted by Parse().
const maxTrackLength = 0x4000

// DefaultTrackLength is the track length used by NewDisk() when creating a
// blank disk.
const DefaultTrackLength = 0x1900

// Disk is a DMK disk image. Sector access is through the GetSector() and
// WriteSector() functions.
type Disk struct {
	WriteProtected bool

	tracks      int
	sides       int
	trackLength int

	// single density bytes are written twice. this is the normal case
	doubled bool

	// raw tracks. index is track*sides+side
	raw [][]uint8

	// decoded tracks. decoded lazily and discarded on write
	decoded [][]Sector
}

// NewDisk creates an unformatted disk.
func NewDisk(tracks int, sides int) *Disk {
	d := &Disk{
		tracks:      tracks,
		sides:       sides,
		trackLength: DefaultTrackLength,
		doubled:     true,
	}
	d.raw = make([][]uint8, tracks*sides)
	for i := range d.raw {
		d.raw[i] = make([]uint8, d.trackLength)
	}
	d.decoded = make([][]Sector, len(d.raw))
	return d
}

// Parse DMK data. Returns false if the data is not a valid DMK image. The
// data is copied and can be reused by the caller.
func Parse(data []uint8) (*Disk, bool) {
	if len(data) < HeaderSize {
		return nil, false
	}

	d := &Disk{
		WriteProtected: data[0] == writeProtected,
		tracks:         int(data[1]),
		trackLength:    int(data[2]) | int(data[3])<<8,
		sides:          2,
		doubled:        data[4]&flagSingleDensity != flagSingleDensity,
	}
	if data[4]&flagSingleSided == flagSingleSided {
		d.sides = 1
	}

	if d.tracks == 0 || d.trackLength <= IDAMTableSize || d.trackLength > maxTrackLength {
		logger.Logf(logger.Allow, "dmk", "bad header: %d tracks of length %#04x", d.tracks, d.trackLength)
		return nil, false
	}

	n := d.tracks * d.sides
	if len(data) < HeaderSize+n*d.trackLength {
		// some images omit the last track of the second side. accept
		// anything with complete tracks
		n = (len(data) - HeaderSize) / d.trackLength
		if n == 0 {
			return nil, false
		}
		logger.Logf(logger.Allow, "dmk", "image is short. %d of %d tracks present", n, d.tracks*d.sides)
	}

	d.raw = make([][]uint8, d.tracks*d.sides)
	for i := range d.raw {
		d.raw[i] = make([]uint8, d.trackLength)
		if i < n {
			o := HeaderSize + i*d.trackLength
			copy(d.raw[i], data[o:o+d.trackLength])
		}
	}
	d.decoded = make([][]Sector, len(d.raw))

	return d, true
}

// Bytes returns the DMK image data.
func (d *Disk) Bytes() []uint8 {
	data := make([]uint8, HeaderSize, HeaderSize+len(d.raw)*d.trackLength)
	if d.WriteProtected {
		data[0] = writeProtected
	}
	data[1] = uint8(d.tracks)
	data[2] = uint8(d.trackLength)
	data[3] = uint8(d.trackLength >> 8)
	if d.sides == 1 {
		data[4] |= flagSingleSided
	}
	if !d.doubled {
		data[4] |= flagSingleDensity
	}
	for _, t := range d.raw {
		data = append(data, t...)
	}
	return data
}

// Tracks returns the number of tracks on each side of the disk.
func (d *Disk) Tracks() int {
	return d.tracks
}

// Sides returns the number of sides of the disk.
func (d *Disk) Sides() int {
	return d.sides
}

func (d *Disk) String() string {
	wp := ""
	if d.WriteProtected {
		wp = " write protected"
	}
	return fmt.Sprintf("%d tracks, %d sides, track length %#04x%s", d.tracks, d.sides, d.trackLength, wp)
}

func (d *Disk) index(track uint8, side uint8) (int, bool) {
	if int(track) >= d.tracks || int(side) >= d.sides {
		return 0, false
	}
	return int(track)*d.sides + int(side), true
}

// the decoded sectors of a track. the returned slice is the cache and must
// not be modified.
func (d *Disk) decode(track uint8, side uint8) []Sector {
	i, ok := d.index(track, side)
	if !ok {
		return nil
	}
	if d.decoded[i] == nil {
		d.decoded[i] = DecodeTrack(d.raw[i], d.doubled)
	}
	return d.decoded[i]
}

// Sectors returns every sector on the track in the order they appear in the
// IDAM table. The sectors are copies and can be modified by the caller
// without affecting the disk.
func (d *Disk) Sectors(track uint8, side uint8) []Sector {
	dec := d.decode(track, side)
	if dec == nil {
		return nil
	}
	sectors := make([]Sector, len(dec))
	for i := range dec {
		sectors[i] = dec[i].clone()
	}
	return sectors
}

// GetSector returns a copy of the first sector on the track with the sector
// number. The empty sector is returned if there is no such sector. Use
// WriteSector() to change the contents of a sector.
func (d *Disk) GetSector(track uint8, side uint8, sector uint8) Sector {
	for _, s := range d.decode(track, side) {
		if s.Number == sector {
			return s.clone()
		}
	}
	return Sector{}
}

// WriteSector replaces the data field of an existing sector. The data is
// padded or truncated to the length of the sector. Returns false if the disk
// is write protected or if the sector does not exist or has no data field.
func (d *Disk) WriteSector(track uint8, side uint8, sector uint8, mark uint8, data []uint8) bool {
	if d.WriteProtected {
		return false
	}

	s := d.GetSector(track, side, sector)
	if s.Empty() || s.Data == nil {
		return false
	}

	i, _ := d.index(track, side)
	rewriteData(d.raw[i], s, mark, data)
	d.decoded[i] = nil

	return true
}

// FormatTrack replaces the track with a newly encoded track containing the
// sectors. Returns false if the disk is write protected, the track doesn't
// exist or the sectors will not fit.
func (d *Disk) FormatTrack(track uint8, side uint8, sectors []Sector) bool {
	if d.WriteProtected {
		return false
	}

	i, ok := d.index(track, side)
	if !ok {
		return false
	}

	raw, ok := EncodeTrack(sectors, d.trackLength, d.doubled)
	if !ok {
		return false
	}

	d.raw[i] = raw
	d.decoded[i] = nil

	return true
}

// HighestSectorNumber returns the highest sector number on the track. Returns
// false if the track has no sectors.
func (d *Disk) HighestSectorNumber(track uint8, side uint8) (uint8, bool) {
	sectors := d.decode(track, side)
	if len(sectors) == 0 {
		return 0, false
	}
	h := sectors[0].Number
	for _, s := range sectors[1:] {
		if s.Number > h {
			h = s.Number
		}
	}
	return h, true
}

// LowestSectorNumber returns the lowest sector number on the track. Returns
// false if the track has no sectors.
func (d *Disk) LowestSectorNumber(track uint8, side uint8) (uint8, bool) {
	sectors := d.decode(track, side)
	if len(sectors) == 0 {
		return 0, false
	}
	l := sectors[0].Number
	for _, s := range sectors[1:] {
		if s.Number < l {
			l = s.Number
		}
	}
	return l, true
}
