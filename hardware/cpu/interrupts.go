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

package cpu

// Interrupt vectors.
const (
	VectorNMI = 0x0066
	VectorIRQ = 0x0038
)

// the value on the data bus during an interrupt acknowledge. the Model III
// does not drive the bus so the pull-up resistors result in 0xff, which is
// the RST 38 instruction in mode 0
const dataBus = 0xff

// serviceInterrupts checks the interrupt lines and services the NMI or the
// maskable interrupt as appropriate. Interrupts are edge triggered. A line
// that has been serviced must be deasserted before it will be serviced again.
func (mc *CPU) serviceInterrupts() {
	if mc.ints == nil {
		return
	}

	nmi := mc.ints.NMI()
	if !nmi {
		mc.nmiServiced = false
	}

	irq := mc.ints.IRQ()
	if !irq {
		mc.irqServiced = false
	}

	if nmi && !mc.nmiServiced {
		mc.nmiServiced = true
		mc.acknowledge()
		mc.IFF1 = false
		mc.push(mc.PC.Value())
		mc.PC.Load(VectorNMI)
		mc.LastResult.Interrupt = NMI
		mc.LastResult.InterruptCycles = 11
		mc.advance(11)
		return
	}

	if irq && !mc.irqServiced && mc.IFF1 && !mc.eiDelay {
		mc.irqServiced = true
		mc.acknowledge()
		mc.IFF1 = false
		mc.IFF2 = false
		mc.push(mc.PC.Value())

		cycles := 13
		switch mc.IM {
		case 2:
			mc.PC.Load(mc.mem.ReadWord(uint16(mc.I.Value())<<8 | dataBus))
			cycles = 19
		default:
			mc.PC.Load(VectorIRQ)
		}

		mc.LastResult.Interrupt = IRQ
		mc.LastResult.InterruptCycles = cycles
		mc.advance(cycles)
	}
}

// acknowledge is the part of interrupt servicing common to both interrupt
// types.
func (mc *CPU) acknowledge() {
	// the return address of an interrupt during HALT is the instruction after
	// the HALT
	if mc.Halted {
		mc.Halted = false
		mc.PC.Inc()
	}
	mc.refresh(1)
}
