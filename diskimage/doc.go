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

// Package diskimage implements the DMK floppy disk image format.
//
// A DMK image is a sixteen byte header followed by the raw contents of every
// track. The tracks of a double sided image are interleaved, side zero first.
//
//	byte 0		write protect (0xff is protected)
//	byte 1		number of tracks
//	bytes 2-3	track length, little-endian, including the IDAM table
//	byte 4		flags. bit 4 single sided. bit 6 single density bytes
//			are not doubled. bit 7 ignore density
//
// Each track begins with a table of 64 little-endian pointers to the ID
// address marks of the sectors on the track. Bit 15 of a pointer is set for
// double density sectors. The pointer value is the offset of the 0xfe mark
// from the start of the track, including the table itself. A pointer of zero
// ends the table.
//
// Single density bytes are usually written twice in the image so that single
// and double density sectors take the same room on the track.
//
// DecodeTrack() and EncodeTrack() convert between raw tracks and lists of
// Sector. The Disk type gives sector level access to a whole image in the
// form required by a floppy disk controller.
package diskimage
