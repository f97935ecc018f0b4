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

package interrupts

import (
	"fmt"
)

// Trigger is a single interrupt source.
type Trigger struct {
	name string

	enabled   bool
	latched   bool
	triggered bool

	// a locked trigger stays triggered until Reset() is called, even if it
	// becomes unlatched or disabled
	lock bool

	// latching is ignored while the trigger is disabled unless this is true
	canLatchBeforeEnabled bool

	// called when the trigger fires and when it stops being triggered. either
	// can be nil
	OnFire  func()
	OnReset func()
}

// NewTrigger is the preferred method of initialisation for the Trigger type.
func NewTrigger(name string, lock bool, canLatchBeforeEnabled bool) *Trigger {
	return &Trigger{
		name:                  name,
		lock:                  lock,
		canLatchBeforeEnabled: canLatchBeforeEnabled,
	}
}

func (t *Trigger) String() string {
	return fmt.Sprintf("%s: enabled=%v latched=%v triggered=%v", t.name, t.enabled, t.latched, t.triggered)
}

// Name of the trigger.
func (t *Trigger) Name() string {
	return t.name
}

// Enabled returns the enabled input.
func (t *Trigger) Enabled() bool {
	return t.enabled
}

// Latched returns the latched input.
func (t *Trigger) Latched() bool {
	return t.latched
}

// Triggered returns true if the trigger has fired and has not been reset.
func (t *Trigger) Triggered() bool {
	return t.triggered
}

// Latch the trigger. Ignored if the trigger is disabled and cannot latch
// before being enabled.
func (t *Trigger) Latch() {
	if !t.enabled && !t.canLatchBeforeEnabled {
		return
	}
	prev := t.active()
	t.latched = true
	t.update(prev)
}

// Unlatch the trigger.
func (t *Trigger) Unlatch() {
	prev := t.active()
	t.latched = false
	t.update(prev)
}

// SetEnabled sets the enabled input of the trigger.
func (t *Trigger) SetEnabled(enabled bool) {
	prev := t.active()
	t.enabled = enabled
	t.update(prev)
}

// Reset unlatches the trigger and clears the triggered state, even for locked
// triggers. The enabled input is not changed.
func (t *Trigger) Reset() {
	t.latched = false
	if t.triggered {
		t.triggered = false
		if t.OnReset != nil {
			t.OnReset()
		}
	}
}

func (t *Trigger) active() bool {
	return t.latched && t.enabled
}

// update the triggered state after one of the inputs has changed. prev is the
// value of active() before the change.
func (t *Trigger) update(prev bool) {
	now := t.active()

	if now && !prev {
		if !t.triggered {
			t.triggered = true
			if t.OnFire != nil {
				t.OnFire()
			}
		}
		return
	}

	if !now && t.triggered && !t.lock {
		t.triggered = false
		if t.OnReset != nil {
			t.OnReset()
		}
	}
}

// TriggerState is the saved state of a Trigger. The fields are in the order
// they are written to a saved state file.
type TriggerState struct {
	Enabled               bool
	Latched               bool
	Locked                bool
	CanLatchBeforeEnabled bool
	Triggered             bool
}

// State returns the current state of the trigger.
func (t *Trigger) State() TriggerState {
	return TriggerState{
		Enabled:               t.enabled,
		Latched:               t.latched,
		Locked:                t.lock,
		CanLatchBeforeEnabled: t.canLatchBeforeEnabled,
		Triggered:             t.triggered,
	}
}

// Restore the state of the trigger. Callbacks are not called.
func (t *Trigger) Restore(s TriggerState) {
	t.enabled = s.Enabled
	t.latched = s.Latched
	t.lock = s.Locked
	t.canLatchBeforeEnabled = s.CanLatchBeforeEnabled
	t.triggered = s.Triggered
}
