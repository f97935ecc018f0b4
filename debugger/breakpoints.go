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

package debugger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
)

// error patterns for breakpoint commands.
const (
	breakExists  = "break exists (%04x)"
	breakMissing = "no break at %04x"
)

// breakpoints halt emulation when the program counter reaches a specific
// address.
type breakpoints struct {
	addresses map[uint16]bool
}

func newBreakpoints() *breakpoints {
	return &breakpoints{
		addresses: make(map[uint16]bool),
	}
}

func (bp *breakpoints) add(address uint16) error {
	if bp.addresses[address] {
		return curated.Errorf(breakExists, address)
	}
	bp.addresses[address] = true
	return nil
}

func (bp *breakpoints) drop(address uint16) error {
	if !bp.addresses[address] {
		return curated.Errorf(breakMissing, address)
	}
	delete(bp.addresses, address)
	return nil
}

func (bp *breakpoints) clear() {
	bp.addresses = make(map[uint16]bool)
}

// check returns true if there is a breakpoint at the address.
func (bp *breakpoints) check(address uint16) bool {
	return bp.addresses[address]
}

func (bp *breakpoints) list() []uint16 {
	l := make([]uint16, 0, len(bp.addresses))
	for a := range bp.addresses {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

func (bp *breakpoints) String() string {
	l := bp.list()
	if len(l) == 0 {
		return "no breakpoints"
	}

	s := strings.Builder{}
	for i, a := range l {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("% 2d: %04x", i, a))
	}
	return s.String()
}
