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

package registers

import (
	"fmt"

	"github.com/jetsetilly/gopher80/hardware/memory"
)

// Register8 is implemented by all 8bit register types.
type Register8 interface {
	Label() string
	Value() uint8
	Load(val uint8)
	Inc()
	Dec()
	IsZero() bool
	IsNonZero() bool
}

// Plain8 is an 8bit register with its own storage.
type Plain8 struct {
	label string
	value uint8
}

// NewPlain8 is the preferred method of initialisation for Plain8.
func NewPlain8(label string) *Plain8 {
	return &Plain8{label: label}
}

func (r *Plain8) String() string {
	return fmt.Sprintf("%s=%02x", r.label, r.value)
}

// Label implements the Register8 interface.
func (r *Plain8) Label() string {
	return r.label
}

// Value implements the Register8 interface.
func (r *Plain8) Value() uint8 {
	return r.value
}

// Load implements the Register8 interface.
func (r *Plain8) Load(val uint8) {
	r.value = val
}

// Inc implements the Register8 interface.
func (r *Plain8) Inc() {
	r.value++
}

// Dec implements the Register8 interface.
func (r *Plain8) Dec() {
	r.value--
}

// IsZero implements the Register8 interface.
func (r *Plain8) IsZero() bool {
	return r.value == 0
}

// IsNonZero implements the Register8 interface.
func (r *Plain8) IsNonZero() bool {
	return r.value != 0
}

// Indirect8 is the byte in memory at the address held in the proxy register.
type Indirect8 struct {
	label string
	proxy Register16
	mem   memory.Memory
}

// NewIndirect8 is the preferred method of initialisation for Indirect8.
func NewIndirect8(proxy Register16, mem memory.Memory) *Indirect8 {
	return &Indirect8{
		label: fmt.Sprintf("(%s)", proxy.Label()),
		proxy: proxy,
		mem:   mem,
	}
}

func (r *Indirect8) String() string {
	return fmt.Sprintf("%s=%02x", r.label, r.Value())
}

// Plumb a new memory implementation into the register.
func (r *Indirect8) Plumb(mem memory.Memory) {
	r.mem = mem
}

// Address returns the effective address of the register.
func (r *Indirect8) Address() uint16 {
	return r.proxy.Value()
}

// Label implements the Register8 interface.
func (r *Indirect8) Label() string {
	return r.label
}

// Value implements the Register8 interface.
func (r *Indirect8) Value() uint8 {
	return r.mem.Read(r.Address())
}

// Load implements the Register8 interface.
func (r *Indirect8) Load(val uint8) {
	r.mem.Write(r.Address(), val)
}

// Inc implements the Register8 interface.
func (r *Indirect8) Inc() {
	a := r.Address()
	r.mem.Write(a, r.mem.Read(a)+1)
}

// Dec implements the Register8 interface.
func (r *Indirect8) Dec() {
	a := r.Address()
	r.mem.Write(a, r.mem.Read(a)-1)
}

// IsZero implements the Register8 interface.
func (r *Indirect8) IsZero() bool {
	return r.Value() == 0
}

// IsNonZero implements the Register8 interface.
func (r *Indirect8) IsNonZero() bool {
	return r.Value() != 0
}

// Indexed8 is the byte in memory at the address held in the proxy register
// offset by a signed displacement. The displacement is held in its own
// register, which the CPU loads from the instruction stream.
type Indexed8 struct {
	label        string
	proxy        Register16
	displacement Register8
	mem          memory.Memory
}

// NewIndexed8 is the preferred method of initialisation for Indexed8.
func NewIndexed8(proxy Register16, displacement Register8, mem memory.Memory) *Indexed8 {
	return &Indexed8{
		label:        fmt.Sprintf("(%s+d)", proxy.Label()),
		proxy:        proxy,
		displacement: displacement,
		mem:          mem,
	}
}

func (r *Indexed8) String() string {
	return fmt.Sprintf("%s=%02x", r.label, r.Value())
}

// Plumb a new memory implementation into the register.
func (r *Indexed8) Plumb(mem memory.Memory) {
	r.mem = mem
}

// Address returns the effective address of the register.
func (r *Indexed8) Address() uint16 {
	return r.proxy.Value() + uint16(int8(r.displacement.Value()))
}

// Label implements the Register8 interface.
func (r *Indexed8) Label() string {
	return r.label
}

// Value implements the Register8 interface.
func (r *Indexed8) Value() uint8 {
	return r.mem.Read(r.Address())
}

// Load implements the Register8 interface.
func (r *Indexed8) Load(val uint8) {
	r.mem.Write(r.Address(), val)
}

// Inc implements the Register8 interface.
func (r *Indexed8) Inc() {
	a := r.Address()
	r.mem.Write(a, r.mem.Read(a)+1)
}

// Dec implements the Register8 interface.
func (r *Indexed8) Dec() {
	a := r.Address()
	r.mem.Write(a, r.mem.Read(a)-1)
}

// IsZero implements the Register8 interface.
func (r *Indexed8) IsZero() bool {
	return r.Value() == 0
}

// IsNonZero implements the Register8 interface.
func (r *Indexed8) IsNonZero() bool {
	return r.Value() != 0
}
