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

package dbgmem

import (
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/memory"
)

// Sentinel error patterns returned by Peek() and Poke().
const (
	PeekError = "dbgmem: cannot peek address (%v)"
	PokeError = "dbgmem: cannot poke address (%v)"
)

// DbgMem is a front-end to the real Model III memory. it allows addressing by
// register name and uses the AddressInfo type for easier presentation.
type DbgMem struct {
	Comp *hardware.Computer
}

// ParseAddress converts the string to an address. The string can be a
// register name, a number in Go notation, or a hexadecimal number with a
// leading '$' or a trailing 'h'.
func (dbgmem DbgMem) ParseAddress(s string) (uint16, bool) {
	mc := dbgmem.Comp.CPU

	switch strings.ToUpper(s) {
	case "PC":
		return mc.PC.Value(), true
	case "SP":
		return mc.SP.Value(), true
	case "BC":
		return mc.BC.Value(), true
	case "DE":
		return mc.DE.Value(), true
	case "HL":
		return mc.HL.Value(), true
	case "IX":
		return mc.IX.Value(), true
	case "IY":
		return mc.IY.Value(), true
	}

	v, err := ParseValue(s, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// ParseValue converts a numeric string to a value of the given bit size.
func ParseValue(s string, bitSize int) (uint64, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		return strconv.ParseUint(s[1:], 16, bitSize)
	case len(s) > 1 && (s[len(s)-1] == 'h' || s[len(s)-1] == 'H'):
		return strconv.ParseUint(s[:len(s)-1], 16, bitSize)
	}
	return strconv.ParseUint(s, 0, bitSize)
}

// GetAddressInfo returns nil if the address cannot be parsed.
func (dbgmem DbgMem) GetAddressInfo(address any) *AddressInfo {
	ai := &AddressInfo{}

	switch address := address.(type) {
	case uint16:
		ai.Address = address
	case string:
		var ok bool
		ai.Address, ok = dbgmem.ParseAddress(address)
		if !ok {
			return nil
		}
		if _, err := ParseValue(address, 16); err != nil {
			ai.Register = strings.ToUpper(address)
		}
	default:
		return nil
	}

	ai.Area = memory.Area(ai.Address)

	return ai
}

// Peek returns the contents of the memory address, without triggering any side
// effects. The supplied address can be numeric or a register name.
func (dbgmem DbgMem) Peek(address any) (*AddressInfo, error) {
	ai := dbgmem.GetAddressInfo(address)
	if ai == nil {
		return nil, curated.Errorf(PeekError, address)
	}

	ai.Data = dbgmem.Comp.Mem.Peek(ai.Address)
	ai.Peeked = true

	return ai, nil
}

// Poke writes a value at the specified address. The keyboard area can not be
// poked.
func (dbgmem DbgMem) Poke(address any, data uint8) (*AddressInfo, error) {
	ai := dbgmem.GetAddressInfo(address)
	if ai == nil || ai.Area == "Keyboard" {
		return nil, curated.Errorf(PokeError, address)
	}

	dbgmem.Comp.Mem.Poke(ai.Address, data)
	ai.Data = dbgmem.Comp.Mem.Peek(ai.Address)
	ai.Peeked = true

	return ai, nil
}
