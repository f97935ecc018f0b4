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
	"container/heap"
	"fmt"
	"sort"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/logger"
)

// UnknownPulse is returned by Restore() when a pulse named in the saved state
// has not been declared.
const UnknownPulse = "clock: unknown pulse %q"

// Clock owns the tick counter and the queue of pending pulses.
type Clock struct {
	ticks uint64

	// the next registration sequence number
	seq uint64

	queue pulseQueue

	// every pulse that has been declared or registered, by name
	declared map[string]*PulseRequest
}

// NewClock is the preferred method of initialisation for the Clock type.
func NewClock() *Clock {
	return &Clock{
		queue:    make(pulseQueue, 0, 16),
		declared: make(map[string]*PulseRequest),
	}
}

func (c *Clock) String() string {
	return fmt.Sprintf("%d ticks (%d pending)", c.ticks, len(c.queue))
}

// Ticks returns the current value of the tick counter.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Declare a pulse to the clock without registering it. Only declared pulses can
// be restored by Restore(). Declaring a different pulse with the same name as
// an existing pulse replaces the earlier declaration.
func (c *Clock) Declare(p *PulseRequest) {
	c.declared[p.name] = p
}

// Register arms the pulse so that it fires after its delay. The delay is
// relative to the current value of the tick counter. A pulse that is already
// active is re-armed with the new target.
//
// A delay of zero fires the pulse on the next call to Advance().
func (c *Clock) Register(p *PulseRequest) {
	c.Declare(p)

	if p.active && p.index >= 0 {
		heap.Remove(&c.queue, p.index)
	}

	p.due = false
	p.target = c.ticks + p.Ticks()
	p.active = true
	p.seq = c.seq
	c.seq++

	heap.Push(&c.queue, p)
}

// Cancel deactivates the pulse without firing it. Cancelling an inactive pulse
// does nothing.
func (c *Clock) Cancel(p *PulseRequest) {
	p.due = false
	if !p.active {
		return
	}
	if p.index >= 0 {
		heap.Remove(&c.queue, p.index)
	}
	p.active = false
}

// Advance the tick counter by n ticks and fire every pulse whose target has
// been reached.
//
// Due pulses are removed from the queue and deactivated before any callback is
// run. The callbacks are then run in target order. Callbacks are free to
// register and cancel pulses. Pulses registered by a callback will not fire
// until the next call to Advance(), even if their target has been reached.
func (c *Clock) Advance(n uint64) {
	c.ticks += n

	if len(c.queue) == 0 || c.queue[0].target > c.ticks {
		return
	}

	var batch []*PulseRequest
	for len(c.queue) > 0 && c.queue[0].target <= c.ticks {
		p := heap.Pop(&c.queue).(*PulseRequest)
		p.active = false
		p.due = true
		batch = append(batch, p)
	}

	for _, p := range batch {
		// a callback earlier in the batch may have re-registered or cancelled
		// this pulse. in both cases the pulse from the batch is not fired
		if !p.due {
			continue
		}
		p.due = false
		if p.callback != nil {
			p.callback()
		}
	}
}

// PulseState is the saved state of a single pulse.
type PulseState struct {
	Name   string
	Delay  uint64
	Basis  Basis
	Target uint64
	Active bool
}

// Pending returns the state of every active pulse in the order they will fire.
func (c *Clock) Pending() []PulseState {
	q := make(pulseQueue, len(c.queue))
	copy(q, c.queue)
	sort.Slice(q, func(i, j int) bool {
		if q[i].target == q[j].target {
			return q[i].seq < q[j].seq
		}
		return q[i].target < q[j].target
	})

	s := make([]PulseState, 0, len(q))
	for _, p := range q {
		s = append(s, PulseState{
			Name:   p.name,
			Delay:  p.Delay,
			Basis:  p.Basis,
			Target: p.target,
			Active: p.active,
		})
	}
	return s
}

// Restore the tick counter and the queue of pending pulses. Every pulse named
// in the list must have been declared. The pending list should be in firing
// order, as returned by Pending().
//
// If an error is returned the clock is unchanged.
func (c *Clock) Restore(ticks uint64, pending []PulseState) error {
	for _, s := range pending {
		if _, ok := c.declared[s.Name]; !ok {
			return curated.Errorf(UnknownPulse, s.Name)
		}
	}

	for _, p := range c.queue {
		p.active = false
		p.index = -1
	}
	c.queue = c.queue[:0]
	c.ticks = ticks
	c.seq = 0

	for _, s := range pending {
		if !s.Active {
			continue
		}
		p := c.declared[s.Name]
		p.Delay = s.Delay
		p.Basis = s.Basis
		p.target = s.Target
		p.active = true
		p.seq = c.seq
		c.seq++
		heap.Push(&c.queue, p)
	}

	logger.Logf(logger.Allow, "clock", "restored at tick %d with %d pending pulses", ticks, len(c.queue))

	return nil
}

// Reset the tick counter to zero and cancel all pending pulses.
func (c *Clock) Reset() {
	for _, p := range c.queue {
		p.active = false
		p.index = -1
	}
	c.queue = c.queue[:0]
	c.ticks = 0
	c.seq = 0
}
