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

// Package cmdfile decodes the TRS-DOS load file format (commonly given the
// /CMD extension).
//
// A load file is a sequence of tagged records. Each record begins with a tag
// byte and a length byte. A length of zero means 256.
//
//	0x01	data block. two byte little-endian load address then the payload
//	0x02	transfer address. end of file
//	0x03	end of file with no transfer address
//	0x05	load module header. the name of the program
//
// All other tags are informational and skipped. The length byte of a data
// block counts the two address bytes, so the payload is two bytes shorter than
// the declared length. Declared lengths of less than three wrap around, giving
// payloads of 254, 255 and 256 bytes for declared lengths 0, 1 and 2.
//
// Parse() never returns an error. Files that cannot be decoded produce a File
// with the Valid field set to false.
package cmdfile
