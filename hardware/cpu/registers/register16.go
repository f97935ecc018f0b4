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

// Register16 is implemented by all 16bit register types.
type Register16 interface {
	Label() string
	Value() uint16
	Load(val uint16)
	Inc()
	Dec()
	IsZero() bool
	IsNonZero() bool
}

// Plain16 is a 16bit register with its own storage.
type Plain16 struct {
	label string
	value uint16
}

// NewPlain16 is the preferred method of initialisation for Plain16.
func NewPlain16(label string) *Plain16 {
	return &Plain16{label: label}
}

func (r *Plain16) String() string {
	return fmt.Sprintf("%s=%04x", r.label, r.value)
}

// Label implements the Register16 interface.
func (r *Plain16) Label() string {
	return r.label
}

// Value implements the Register16 interface.
func (r *Plain16) Value() uint16 {
	return r.value
}

// Load implements the Register16 interface.
func (r *Plain16) Load(val uint16) {
	r.value = val
}

// Add a value to the register. Returns true if the value wrapped.
func (r *Plain16) Add(val uint16) bool {
	v := r.value
	r.value += val
	return r.value < v
}

// Inc implements the Register16 interface.
func (r *Plain16) Inc() {
	r.value++
}

// Dec implements the Register16 interface.
func (r *Plain16) Dec() {
	r.value--
}

// IsZero implements the Register16 interface.
func (r *Plain16) IsZero() bool {
	return r.value == 0
}

// IsNonZero implements the Register16 interface.
func (r *Plain16) IsNonZero() bool {
	return r.value != 0
}

// Compound16 is a pair of 8bit registers viewed as a single 16bit register.
// The high byte is the first named register. For example, B is the high byte
// of BC.
type Compound16 struct {
	label string
	high  Register8
	low   Register8
}

// NewCompound16 is the preferred method of initialisation for Compound16.
func NewCompound16(high Register8, low Register8) *Compound16 {
	return &Compound16{
		label: high.Label() + low.Label(),
		high:  high,
		low:   low,
	}
}

func (r *Compound16) String() string {
	return fmt.Sprintf("%s=%04x", r.label, r.Value())
}

// High returns the register holding the high byte.
func (r *Compound16) High() Register8 {
	return r.high
}

// Low returns the register holding the low byte.
func (r *Compound16) Low() Register8 {
	return r.low
}

// Label implements the Register16 interface.
func (r *Compound16) Label() string {
	return r.label
}

// Value implements the Register16 interface.
func (r *Compound16) Value() uint16 {
	return uint16(r.high.Value())<<8 | uint16(r.low.Value())
}

// Load implements the Register16 interface.
func (r *Compound16) Load(val uint16) {
	r.high.Load(uint8(val >> 8))
	r.low.Load(uint8(val))
}

// Inc implements the Register16 interface. The high byte is only changed when
// the low byte wraps.
func (r *Compound16) Inc() {
	r.low.Inc()
	if r.low.IsZero() {
		r.high.Inc()
	}
}

// Dec implements the Register16 interface. The high byte is only changed when
// the low byte wraps.
func (r *Compound16) Dec() {
	if r.low.IsZero() {
		r.high.Dec()
	}
	r.low.Dec()
}

// IsZero implements the Register16 interface.
func (r *Compound16) IsZero() bool {
	return r.high.IsZero() && r.low.IsZero()
}

// IsNonZero implements the Register16 interface.
func (r *Compound16) IsNonZero() bool {
	return !r.IsZero()
}

// DoubleIndirect16 is the little-endian word in memory at the address held in
// the proxy register.
type DoubleIndirect16 struct {
	label string
	proxy Register16
	mem   memory.Memory
}

// NewDoubleIndirect16 is the preferred method of initialisation for
// DoubleIndirect16.
func NewDoubleIndirect16(proxy Register16, mem memory.Memory) *DoubleIndirect16 {
	return &DoubleIndirect16{
		label: fmt.Sprintf("(%s)", proxy.Label()),
		proxy: proxy,
		mem:   mem,
	}
}

func (r *DoubleIndirect16) String() string {
	return fmt.Sprintf("%s=%04x", r.label, r.Value())
}

// Plumb a new memory implementation into the register.
func (r *DoubleIndirect16) Plumb(mem memory.Memory) {
	r.mem = mem
}

// Label implements the Register16 interface.
func (r *DoubleIndirect16) Label() string {
	return r.label
}

// Value implements the Register16 interface.
func (r *DoubleIndirect16) Value() uint16 {
	return r.mem.ReadWord(r.proxy.Value())
}

// Load implements the Register16 interface.
func (r *DoubleIndirect16) Load(val uint16) {
	r.mem.WriteWord(r.proxy.Value(), val)
}

// Inc implements the Register16 interface.
func (r *DoubleIndirect16) Inc() {
	r.Load(r.Value() + 1)
}

// Dec implements the Register16 interface.
func (r *DoubleIndirect16) Dec() {
	r.Load(r.Value() - 1)
}

// IsZero implements the Register16 interface.
func (r *DoubleIndirect16) IsZero() bool {
	return r.Value() == 0
}

// IsNonZero implements the Register16 interface.
func (r *DoubleIndirect16) IsNonZero() bool {
	return r.Value() != 0
}
