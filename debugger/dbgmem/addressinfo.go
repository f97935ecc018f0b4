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
	"fmt"
	"strings"
)

// AddressInfo is returned by dbgmem functions. The String() function provides
// a normalised presentation of the information.
type AddressInfo struct {
	Address uint16
	Area    string

	// the name of the register the address was taken from, if any
	Register string

	// the data at the address. if peeked is false then data mays not be valid
	Peeked bool
	Data   uint8
}

func (ai AddressInfo) String() string {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("%04x", ai.Address))

	if ai.Register != "" {
		s.WriteString(fmt.Sprintf(" (%s)", ai.Register))
	}

	s.WriteString(fmt.Sprintf(" [%s]", ai.Area))

	if ai.Peeked {
		s.WriteString(fmt.Sprintf(" -> %02x", ai.Data))
	}

	return s.String()
}
