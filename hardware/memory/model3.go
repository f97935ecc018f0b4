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

package memory

import (
	"github.com/jetsetilly/gopher80/curated"
)

// ROMTooLarge is returned by LoadROM when the image does not fit in the ROM
// area.
const ROMTooLarge = "memory: ROM image too large (%d bytes)"

// The memory map of the Model III.
const (
	OriginROM      = 0x0000
	MemtopROM      = 0x37ff
	PrinterStatus  = 0x37e8
	OriginKeyboard = 0x3800
	MemtopKeyboard = 0x3bff
	OriginVideo    = 0x3c00
	MemtopVideo    = 0x3fff
	OriginRAM      = 0x4000
	MemtopRAM      = 0xffff
)

// the value read from the printer status address. the printer is selected,
// ready and has paper.
const printerReady = 0x30

// Model3 is the address space of the Model III.
type Model3 struct {
	rom   [MemtopROM + 1]uint8
	video Video
	ram   [MemtopRAM - OriginRAM + 1]uint8

	keyboard Region

	// the most recent address accessed by the CPU. used by the debugger
	LastAddress uint16
	LastWrite   bool
}

// NewModel3 is the preferred method of initialisation for the Model3 type.
func NewModel3() *Model3 {
	m := &Model3{
		keyboard: NewKeyboard(),
	}
	m.video.Clear()
	return m
}

// AttachKeyboard replaces the keyboard region.
func (m *Model3) AttachKeyboard(r Region) {
	m.keyboard = r
}

// Keyboard returns the attached keyboard region.
func (m *Model3) Keyboard() Region {
	return m.keyboard
}

// LoadROM copies the ROM image into the ROM area. Images smaller than the ROM
// area are allowed. The remainder of the area is set to 0xff.
func (m *Model3) LoadROM(data []uint8) error {
	if len(data) > len(m.rom) {
		return curated.Errorf(ROMTooLarge, len(data))
	}
	n := copy(m.rom[:], data)
	for i := n; i < len(m.rom); i++ {
		m.rom[i] = 0xff
	}
	return nil
}

// Area returns the name of the memory area the address is in.
func Area(address uint16) string {
	switch {
	case address == PrinterStatus:
		return "Printer"
	case address <= MemtopROM:
		return "ROM"
	case address <= MemtopKeyboard:
		return "Keyboard"
	case address <= MemtopVideo:
		return "Video"
	}
	return "RAM"
}

func (m *Model3) read(address uint16, peek bool) uint8 {
	switch {
	case address == PrinterStatus:
		return printerReady
	case address <= MemtopROM:
		return m.rom[address]
	case address <= MemtopKeyboard:
		if peek {
			return m.keyboard.Peek(address - OriginKeyboard)
		}
		return m.keyboard.Read(address - OriginKeyboard)
	case address <= MemtopVideo:
		return m.video[address-OriginVideo]
	}
	return m.ram[address-OriginRAM]
}

// Read implements the Memory interface.
func (m *Model3) Read(address uint16) uint8 {
	m.LastAddress = address
	m.LastWrite = false
	return m.read(address, false)
}

// Write implements the Memory interface. Writes to ROM are ignored.
func (m *Model3) Write(address uint16, data uint8) {
	m.LastAddress = address
	m.LastWrite = true

	switch {
	case address <= MemtopROM:
	case address <= MemtopKeyboard:
		m.keyboard.Write(address-OriginKeyboard, data)
	case address <= MemtopVideo:
		m.video[address-OriginVideo] = data
	default:
		m.ram[address-OriginRAM] = data
	}
}

// ReadWord implements the Memory interface.
func (m *Model3) ReadWord(address uint16) uint16 {
	return readWord(m, address)
}

// WriteWord implements the Memory interface.
func (m *Model3) WriteWord(address uint16, data uint16) {
	writeWord(m, address, data)
}

// Peek implements the DebuggerBus interface.
func (m *Model3) Peek(address uint16) uint8 {
	return m.read(address, true)
}

// Poke implements the DebuggerBus interface. Unlike Write(), Poke() can change
// the contents of ROM. Poking the keyboard area does nothing.
func (m *Model3) Poke(address uint16, value uint8) {
	switch {
	case address <= MemtopROM:
		m.rom[address] = value
	case address <= MemtopKeyboard:
	case address <= MemtopVideo:
		m.video[address-OriginVideo] = value
	default:
		m.ram[address-OriginRAM] = value
	}
}

// Video returns a copy of the video RAM.
func (m *Model3) Video() Video {
	return m.video
}

// State is the saved contents of the writable memory areas.
type State struct {
	Video Video
	RAM   [MemtopRAM - OriginRAM + 1]uint8
}

// State returns a copy of the writable memory areas.
func (m *Model3) State() *State {
	return &State{
		Video: m.video,
		RAM:   m.ram,
	}
}

// Restore the writable memory areas.
func (m *Model3) Restore(s *State) {
	m.video = s.Video
	m.ram = s.RAM
}

// Reset clears the writable memory areas. Video RAM is filled with spaces.
// ROM is unchanged.
func (m *Model3) Reset() {
	m.video.Clear()
	m.ram = [len(m.ram)]uint8{}
}
