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
	"strings"

	"github.com/jetsetilly/gopher80/logger"
)

// Port addresses decoded by the Controller. Each port is mirrored across four
// addresses.
const (
	PortMaskable    = 0xe0
	PortNonMaskable = 0xe4
	PortRTC         = 0xec
)

// bits of the maskable interrupt status and mask ports.
const (
	bitCassetteRising  = 0x01
	bitCassetteFalling = 0x02
	bitRTC             = 0x04
	bitIOBus           = 0x08
	bitRS232Error      = 0x10
	bitRS232Receive    = 0x20
	bitRS232Transmit   = 0x40
)

// bits of the non-maskable interrupt status and mask ports.
const (
	bitResetButton = 0x20
	bitMotorOff    = 0x40
	bitFDC         = 0x80
)

// Controller aggregates the interrupt triggers of the Model III.
type Controller struct {
	// maskable interrupts
	CassetteRising  *Trigger
	CassetteFalling *Trigger
	RTC             *Trigger
	IOBus           *Trigger
	RS232Error      *Trigger
	RS232Receive    *Trigger
	RS232Transmit   *Trigger

	// non-maskable interrupts
	FDC         *Trigger
	MotorOff    *Trigger
	ResetButton *Trigger

	maskable    []maskBit
	nonMaskable []maskBit
}

type maskBit struct {
	trigger *Trigger
	bit     uint8
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController() *Controller {
	ctr := &Controller{
		CassetteRising:  NewTrigger("cassette rising", false, true),
		CassetteFalling: NewTrigger("cassette falling", false, true),
		RTC:             NewTrigger("rtc", false, true),
		IOBus:           NewTrigger("io bus", false, true),
		RS232Error:      NewTrigger("rs232 error", false, true),
		RS232Receive:    NewTrigger("rs232 receive", false, true),
		RS232Transmit:   NewTrigger("rs232 transmit", false, true),
		FDC:             NewTrigger("fdc", false, true),
		MotorOff:        NewTrigger("motor off", false, true),
		ResetButton:     NewTrigger("reset button", false, true),
	}

	ctr.maskable = []maskBit{
		{ctr.CassetteRising, bitCassetteRising},
		{ctr.CassetteFalling, bitCassetteFalling},
		{ctr.RTC, bitRTC},
		{ctr.IOBus, bitIOBus},
		{ctr.RS232Error, bitRS232Error},
		{ctr.RS232Receive, bitRS232Receive},
		{ctr.RS232Transmit, bitRS232Transmit},
	}

	ctr.nonMaskable = []maskBit{
		{ctr.FDC, bitFDC},
		{ctr.MotorOff, bitMotorOff},
		{ctr.ResetButton, bitResetButton},
	}

	ctr.ResetButton.SetEnabled(true)

	for _, t := range ctr.nonMaskable {
		t := t // per-iteration copy for closures (pre go1.22 loop semantics)
		t.trigger.OnFire = func() {
			logger.Logf(logger.Allow, "interrupts", "NMI: %s", t.trigger.name)
		}
	}

	return ctr
}

// Triggers returns every trigger in declaration order. This is the order in
// which triggers are written to a saved state.
func (ctr *Controller) Triggers() []*Trigger {
	t := make([]*Trigger, 0, len(ctr.maskable)+len(ctr.nonMaskable))
	for _, m := range ctr.maskable {
		t = append(t, m.trigger)
	}
	for _, m := range ctr.nonMaskable {
		t = append(t, m.trigger)
	}
	return t
}

// Reset unlatches every trigger and disables every maskable interrupt.
func (ctr *Controller) Reset() {
	for _, t := range ctr.Triggers() {
		t.Reset()
		t.SetEnabled(false)
	}
	ctr.ResetButton.SetEnabled(true)
}

// NMI returns true if any non-maskable interrupt has been triggered.
func (ctr *Controller) NMI() bool {
	for _, m := range ctr.nonMaskable {
		if m.trigger.triggered {
			return true
		}
	}
	return false
}

// IRQ returns true if any maskable interrupt has been triggered.
func (ctr *Controller) IRQ() bool {
	for _, m := range ctr.maskable {
		if m.trigger.triggered {
			return true
		}
	}
	return false
}

// ClearCassette unlatches both cassette edge triggers. Called by the cassette
// when its data port is read.
func (ctr *Controller) ClearCassette() {
	ctr.CassetteRising.Unlatch()
	ctr.CassetteFalling.Unlatch()
}

// status returns the active-low status byte for the list of triggers.
func status(bits []maskBit) uint8 {
	v := uint8(0xff)
	for _, m := range bits {
		if m.trigger.latched {
			v &^= m.bit
		}
	}
	return v
}

// Peek implements the ports.Peeker interface.
func (ctr *Controller) Peek(port uint8) uint8 {
	switch port & 0xfc {
	case PortMaskable:
		return status(ctr.maskable)
	case PortNonMaskable:
		return status(ctr.nonMaskable)
	}
	return 0xff
}

// Read implements the ports.Reader interface.
//
// Reading the RTC port unlatches the RTC interrupt.
func (ctr *Controller) Read(port uint8) uint8 {
	if port&0xfc == PortRTC {
		ctr.RTC.Unlatch()
		return 0xff
	}
	return ctr.Peek(port)
}

// Write implements the ports.Writer interface. Each bit of the written value
// enables (1) or disables (0) the corresponding interrupt.
func (ctr *Controller) Write(port uint8, data uint8) {
	var bits []maskBit
	switch port & 0xfc {
	case PortMaskable:
		bits = ctr.maskable
	case PortNonMaskable:
		bits = ctr.nonMaskable
	default:
		return
	}
	for _, m := range bits {
		if m.trigger == ctr.ResetButton {
			continue
		}
		m.trigger.SetEnabled(data&m.bit == m.bit)
	}
}

func (ctr *Controller) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("E0=%02x E4=%02x", status(ctr.maskable), status(ctr.nonMaskable)))
	for _, t := range ctr.Triggers() {
		if t.triggered {
			s.WriteString(fmt.Sprintf(" [%s]", t.name))
		}
	}
	return s.String()
}
