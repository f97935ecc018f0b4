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
	"github.com/jetsetilly/gopher80/crc16"
)

// IDAMTableSize is the number of bytes at the start of each track used for
// the ID address mark pointer table.
const IDAMTableSize = 128

// the maximum number of sectors on a track.
const maxSectors = IDAMTableSize / 2

// bits of an IDAM pointer.
const (
	idamDoubleDensity = 0x8000
	idamOffsetMask    = 0x3fff
)

// the sync byte that precedes double density address marks.
const syncA1 = 0xa1

// how far past the end of the ID field a data address mark can be found.
const (
	dataMarkWindowDD = 43
	dataMarkWindowSD = 30
)

// gaps and syncs written by EncodeTrack().
type layout struct {
	filler   uint8
	preamble int
	sync     int
	gap2     int
	gap3     int
}

var (
	layoutDD = layout{filler: 0x4e, preamble: 32, sync: 12, gap2: 22, gap3: 24}
	layoutSD = layout{filler: 0xff, preamble: 16, sync: 6, gap2: 11, gap3: 12}
)

// reader gives access to the bytes of a sector, hiding the difference between
// doubled and undoubled single density bytes.
type reader struct {
	raw    []uint8
	start  int
	stride int
}

func (r reader) ok(k int) bool {
	return r.start+k*r.stride < len(r.raw)
}

func (r reader) at(k int) uint8 {
	return r.raw[r.start+k*r.stride]
}

// DecodeTrack finds the sectors on a raw track. The raw track includes the
// IDAM table. The doubled argument should be true if single density bytes are
// written twice in the image.
//
// Sectors with a bad IDAM pointer are skipped.
func DecodeTrack(raw []uint8, doubled bool) []Sector {
	if len(raw) < IDAMTableSize {
		return nil
	}

	sectors := make([]Sector, 0, 18)

	for i := 0; i < maxSectors; i++ {
		ptr := uint16(raw[i*2]) | uint16(raw[i*2+1])<<8
		if ptr == 0 {
			break // for loop
		}

		dd := ptr&idamDoubleDensity == idamDoubleDensity
		stride := 1
		if !dd && doubled {
			stride = 2
		}

		r := reader{raw: raw, start: int(ptr & idamOffsetMask), stride: stride}
		if s, ok := decodeSector(r, dd); ok {
			sectors = append(sectors, s)
		}
	}

	return sectors
}

func decodeSector(r reader, dd bool) (Sector, bool) {
	// ID field is the mark, four ID bytes and two CRC bytes
	if !r.ok(6) || r.at(0) != markID {
		return Sector{}, false
	}

	s := Sector{
		Track:         r.at(1),
		Side:          r.at(2),
		Number:        r.at(3),
		SizeCode:      r.at(4),
		DoubleDensity: dd,
		formatted:     true,
		stride:        r.stride,
	}

	seed := crc16.Reset
	if dd {
		seed = crc16.Calculate(seed, []uint8{syncA1, syncA1, syncA1})
	}

	crc := seed
	for k := 0; k <= 4; k++ {
		crc = crc16.Update(crc, r.at(k))
	}
	s.CRCError = crc != uint16(r.at(5))<<8|uint16(r.at(6))

	window := dataMarkWindowSD
	if dd {
		window = dataMarkWindowDD
	}

	mark := -1
	for k := 7; k < 7+window && r.ok(k); k++ {
		b := r.at(k)
		if b >= MarkDeletedData && b <= MarkData {
			if !dd || r.at(k-1) == syncA1 {
				mark = k
				break // for loop
			}
		}
	}

	// sector ID is present but the data field isn't
	if mark == -1 {
		return s, true
	}

	n := s.Length()
	if !r.ok(mark + n + 2) {
		return s, true
	}

	s.DataAddressMark = r.at(mark)
	s.markOffset = r.start + mark*r.stride

	crc = crc16.Update(seed, s.DataAddressMark)
	s.Data = make([]uint8, n)
	for k := range s.Data {
		s.Data[k] = r.at(mark + 1 + k)
		crc = crc16.Update(crc, s.Data[k])
	}
	if crc != uint16(r.at(mark+1+n))<<8|uint16(r.at(mark+2+n)) {
		s.CRCError = true
	}

	return s, true
}

// writer builds a raw track for EncodeTrack().
type writer struct {
	raw     []uint8
	pos     int
	doubled bool
}

func (w *writer) put(b uint8, n int, dd bool) bool {
	if !dd && w.doubled {
		n *= 2
	}
	if w.pos+n > len(w.raw) {
		return false
	}
	for i := 0; i < n; i++ {
		w.raw[w.pos] = b
		w.pos++
	}
	return true
}

func (w *writer) putCRC(crc uint16, dd bool) bool {
	return w.put(uint8(crc>>8), 1, dd) && w.put(uint8(crc), 1, dd)
}

// EncodeTrack creates a raw track of the specified length, including the IDAM
// table, containing the sectors. The sectors are written with gaps, syncs,
// address marks and checksums as a floppy disk controller would when
// formatting a track.
//
// Data that is shorter than the length given by the sector's size code is
// padded with the format filler byte. If the sector's DataAddressMark is zero
// then MarkData is used. The CRCError field is ignored.
//
// Returns false if the sectors do not fit in the track.
func EncodeTrack(sectors []Sector, trackLength int, doubled bool) ([]uint8, bool) {
	if trackLength < IDAMTableSize || len(sectors) > maxSectors {
		return nil, false
	}

	w := &writer{
		raw:     make([]uint8, trackLength),
		pos:     IDAMTableSize,
		doubled: doubled,
	}

	// the preamble takes the density of the first sector
	lay := layoutDD
	dd := len(sectors) == 0 || sectors[0].DoubleDensity
	if !dd {
		lay = layoutSD
	}
	if !w.put(lay.filler, lay.preamble, dd) {
		return nil, false
	}

	for i, s := range sectors {
		dd = s.DoubleDensity
		lay = layoutSD
		if dd {
			lay = layoutDD
		}

		seed := crc16.Reset
		if dd {
			seed = crc16.Calculate(seed, []uint8{syncA1, syncA1, syncA1})
		}

		// ID field
		if !w.put(0x00, lay.sync, dd) {
			return nil, false
		}
		if dd && !w.put(syncA1, 3, dd) {
			return nil, false
		}

		ptr := uint16(w.pos)
		if dd {
			ptr |= idamDoubleDensity
		}
		w.raw[i*2] = uint8(ptr)
		w.raw[i*2+1] = uint8(ptr >> 8)

		id := []uint8{markID, s.Track, s.Side, s.Number, s.SizeCode}
		for _, b := range id {
			if !w.put(b, 1, dd) {
				return nil, false
			}
		}
		if !w.putCRC(crc16.Calculate(seed, id), dd) {
			return nil, false
		}

		// data field
		if !w.put(lay.filler, lay.gap2, dd) || !w.put(0x00, lay.sync, dd) {
			return nil, false
		}
		if dd && !w.put(syncA1, 3, dd) {
			return nil, false
		}

		mark := s.DataAddressMark
		if mark == 0 {
			mark = MarkData
		}
		data := make([]uint8, s.Length())
		n := copy(data, s.Data)
		for k := n; k < len(data); k++ {
			data[k] = formatFiller
		}

		crc := crc16.Update(seed, mark)
		if !w.put(mark, 1, dd) {
			return nil, false
		}
		for _, b := range data {
			crc = crc16.Update(crc, b)
			if !w.put(b, 1, dd) {
				return nil, false
			}
		}
		if !w.putCRC(crc, dd) {
			return nil, false
		}

		if !w.put(lay.filler, lay.gap3, dd) {
			return nil, false
		}
	}

	// fill the remainder of the track with gap bytes
	for ; w.pos < len(w.raw); w.pos++ {
		w.raw[w.pos] = lay.filler
	}

	return w.raw, true
}

// rewriteData replaces the data field of a sector in a raw track. The sector
// must have been returned by DecodeTrack() for the same raw track and must
// have a data field.
func rewriteData(raw []uint8, s Sector, mark uint8, data []uint8) {
	seed := crc16.Reset
	if s.DoubleDensity {
		seed = crc16.Calculate(seed, []uint8{syncA1, syncA1, syncA1})
	}

	pos := s.markOffset
	put := func(b uint8) {
		for i := 0; i < s.stride; i++ {
			raw[pos] = b
			pos++
		}
	}

	crc := crc16.Update(seed, mark)
	put(mark)

	for k := 0; k < s.Length(); k++ {
		b := uint8(formatFiller)
		if k < len(data) {
			b = data[k]
		}
		crc = crc16.Update(crc, b)
		put(b)
	}

	put(uint8(crc >> 8))
	put(uint8(crc))
}
