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

// Package crc16 implements the CRC-16/CCITT checksum used by the floppy disk
// controller to protect sector identifiers and sector data.
//
// The polynomial is 0x1021 and the checksum is seeded with Reset. Bits are
// processed most significant bit first. A disk controller begins the checksum
// with the sync bytes (0xA1 in double density) and the address mark, so
// checksums of ID fields and data fields begin with those bytes.
package crc16

// Reset is the value the checksum is seeded with.
const Reset uint16 = 0xffff

// Polynomial is the CCITT generator polynomial.
const Polynomial uint16 = 0x1021

// Update clocks a single byte into the checksum.
func Update(crc uint16, b uint8) uint16 {
	crc ^= uint16(b) << 8
	for i := 0; i < 8; i++ {
		if crc&0x8000 == 0x8000 {
			crc = (crc << 1) ^ Polynomial
		} else {
			crc <<= 1
		}
	}
	return crc
}

// Calculate clocks every byte of data into the checksum.
func Calculate(crc uint16, data []uint8) uint16 {
	for _, b := range data {
		crc = Update(crc, b)
	}
	return crc
}

// Checksum of data starting from the Reset value.
func Checksum(data []uint8) uint16 {
	return Calculate(Reset, data)
}
