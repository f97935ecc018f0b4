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

package clocks

import (
	"fmt"
)

// Basis is the unit of a PulseRequest's delay.
type Basis int

// List of valid Basis values.
const (
	BasisTicks Basis = iota
	BasisMicroseconds
)

func (b Basis) String() string {
	switch b {
	case BasisTicks:
		return "ticks"
	case BasisMicroseconds:
		return "us"
	}
	return "unknown basis"
}

// PulseRequest is a one-shot callback scheduled for some point in the future.
// It is armed with Clock.Register() and fires once when the tick counter
// reaches the target tick. After firing the pulse is inactive until it is
// registered again.
type PulseRequest struct {
	name     string
	callback func()

	// the delay and the unit of the delay
	Delay uint64
	Basis Basis

	// the tick at which the pulse will fire. calculated by Clock.Register()
	target uint64

	active bool

	// popped from the queue by Advance() and waiting for the callback to run
	due bool

	// registration order. pulses with the same target fire in the order they
	// were registered
	seq uint64

	// position in the clock's queue
	index int
}

// NewPulse is the preferred method of initialisation for the PulseRequest
// type. The name should be unique for the Clock the pulse will be used with.
func NewPulse(name string, basis Basis, delay uint64, callback func()) *PulseRequest {
	return &PulseRequest{
		name:     name,
		callback: callback,
		Delay:    delay,
		Basis:    basis,
		index:    -1,
	}
}

// Name returns the name of the pulse.
func (p *PulseRequest) Name() string {
	return p.name
}

// Active returns true if the pulse has been registered and not yet fired or
// cancelled.
func (p *PulseRequest) Active() bool {
	return p.active
}

// Target returns the tick at which the pulse will fire. Only meaningful if the
// pulse is active.
func (p *PulseRequest) Target() uint64 {
	return p.target
}

// Ticks returns the delay of the pulse in ticks.
func (p *PulseRequest) Ticks() uint64 {
	if p.Basis == BasisMicroseconds {
		return MicrosecondsToTicks(p.Delay)
	}
	return p.Delay
}

func (p *PulseRequest) String() string {
	if !p.active {
		return fmt.Sprintf("%s: %d%s inactive", p.name, p.Delay, p.Basis)
	}
	return fmt.Sprintf("%s: %d%s target %d", p.name, p.Delay, p.Basis, p.target)
}
