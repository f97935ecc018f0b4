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

package cmdfile

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher80/logger"
)

// record tags.
const (
	tagData     = 0x01
	tagTransfer = 0x02
	tagEnd      = 0x03
	tagName     = 0x05
)

// Block is a contiguous run of bytes to be loaded into memory.
type Block struct {
	Address uint16
	Data    []uint8
}

// End returns the address one past the last byte of the block. The value is
// an int because a block can end exactly at the top of the address space.
func (b Block) End() int {
	return int(b.Address) + len(b.Data)
}

func (b Block) String() string {
	return fmt.Sprintf("%04x-%04x (%d bytes)", b.Address, b.End()-1, len(b.Data))
}

// File is the result of parsing a load file.
type File struct {
	// the name given in the load module header. empty if there is no header
	Name string

	// data blocks in the order they appear in the file. adjacent blocks that
	// are contiguous in memory have been coalesced
	Blocks []Block

	// the lowest and highest addresses written to by the data blocks
	LowAddress  uint16
	HighAddress uint16

	// the entry point of the program. HasTransfer is false if the file ended
	// with an end record rather than a transfer record, or if the data ran out
	// before either was seen
	TransferAddress uint16
	HasTransfer     bool

	// false if the file could not be parsed. the other fields should be
	// ignored if Valid is false
	Valid bool
}

// Parse load file data. The returned File is never nil.
func Parse(data []uint8) *File {
	f := &File{}

	idx := 0
	done := false

	for !done && idx < len(data) {
		tag := data[idx]
		idx++

		// the end record doesn't need a length byte
		if tag == tagEnd {
			break // for loop
		}

		if idx >= len(data) {
			logger.Logf(logger.Allow, "cmdfile", "record %#02x truncated at offset %d", tag, idx)
			return &File{}
		}

		declared := int(data[idx])
		idx++

		switch tag {
		case tagData:
			n := declared - 2
			if declared < 3 {
				n = declared + 254
			}
			if idx+2+n > len(data) {
				logger.Logf(logger.Allow, "cmdfile", "data block truncated at offset %d", idx)
				return &File{}
			}
			address := uint16(data[idx]) | uint16(data[idx+1])<<8
			if int(address)+n > 0x10000 {
				logger.Logf(logger.Allow, "cmdfile", "data block at %#04x runs past the end of memory", address)
				return &File{}
			}
			payload := make([]uint8, n)
			copy(payload, data[idx+2:idx+2+n])
			f.Blocks = append(f.Blocks, Block{Address: address, Data: payload})
			idx += 2 + n

		case tagTransfer:
			if declared == 0 {
				declared = 256
			}
			if idx+declared > len(data) {
				declared = len(data) - idx
			}
			switch {
			case declared >= 2:
				f.TransferAddress = uint16(data[idx]) | uint16(data[idx+1])<<8
				f.HasTransfer = true
			case declared == 1:
				f.TransferAddress = uint16(data[idx])
				f.HasTransfer = true
			}
			done = true

		default:
			if declared == 0 {
				declared = 256
			}
			if idx+declared > len(data) {
				logger.Logf(logger.Allow, "cmdfile", "record %#02x truncated at offset %d", tag, idx)
				return &File{}
			}
			if tag == tagName {
				f.Name = strings.TrimSpace(string(data[idx : idx+declared]))
			}
			idx += declared
		}
	}

	f.Blocks = coalesce(f.Blocks)

	size := 0
	low := 0x10000
	high := -1
	for _, b := range f.Blocks {
		size += len(b.Data)
		if int(b.Address) < low {
			low = int(b.Address)
		}
		if b.End()-1 > high {
			high = b.End() - 1
		}
	}

	if size == 0 {
		return &File{}
	}

	f.LowAddress = uint16(low)
	f.HighAddress = uint16(high)
	f.Valid = true

	return f
}

// coalesce merges adjacent blocks where the second block begins at the address
// immediately following the first.
func coalesce(blocks []Block) []Block {
	if len(blocks) < 2 {
		return blocks
	}

	merged := []Block{blocks[0]}
	for _, b := range blocks[1:] {
		last := &merged[len(merged)-1]
		if last.End() == int(b.Address) {
			last.Data = append(last.Data, b.Data...)
		} else {
			merged = append(merged, b)
		}
	}

	return merged
}

// Size returns the total number of bytes in all data blocks.
func (f *File) Size() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Data)
	}
	return n
}

func (f *File) String() string {
	if !f.Valid {
		return "invalid load file"
	}

	s := strings.Builder{}
	if f.Name != "" {
		s.WriteString(fmt.Sprintf("name: %s\n", f.Name))
	}
	s.WriteString(fmt.Sprintf("range: %04x-%04x\n", f.LowAddress, f.HighAddress))
	if f.HasTransfer {
		s.WriteString(fmt.Sprintf("transfer: %04x\n", f.TransferAddress))
	} else {
		s.WriteString("transfer: none\n")
	}
	for i, b := range f.Blocks {
		s.WriteString(fmt.Sprintf("block %d: %s\n", i, b))
	}
	return s.String()
}
