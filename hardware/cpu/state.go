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

// State is a copy of the CPU's registers and internal flags. It is used to
// save and restore the state of the CPU.
type State struct {
	PC    uint16
	SP    uint16
	AF    uint16
	BC    uint16
	DE    uint16
	HL    uint16
	IX    uint16
	IY    uint16
	AltAF uint16
	AltBC uint16
	AltDE uint16
	AltHL uint16
	I     uint8
	R     uint8
	IFF1  bool
	IFF2  bool
	IM    uint8

	Halted      bool
	EIDelay     bool
	NMIServiced bool
	IRQServiced bool
}

// State returns a copy of the current CPU state.
func (mc *CPU) State() State {
	return State{
		PC:          mc.PC.Value(),
		SP:          mc.SP.Value(),
		AF:          mc.AF.Value(),
		BC:          mc.BC.Value(),
		DE:          mc.DE.Value(),
		HL:          mc.HL.Value(),
		IX:          mc.IX.Value(),
		IY:          mc.IY.Value(),
		AltAF:       mc.AltAF.Value(),
		AltBC:       mc.AltBC.Value(),
		AltDE:       mc.AltDE.Value(),
		AltHL:       mc.AltHL.Value(),
		I:           mc.I.Value(),
		R:           mc.R.Value(),
		IFF1:        mc.IFF1,
		IFF2:        mc.IFF2,
		IM:          mc.IM,
		Halted:      mc.Halted,
		EIDelay:     mc.eiDelay,
		NMIServiced: mc.nmiServiced,
		IRQServiced: mc.irqServiced,
	}
}

// Restore the CPU to a previously saved state.
func (mc *CPU) Restore(s State) {
	mc.PC.Load(s.PC)
	mc.SP.Load(s.SP)
	mc.AF.Load(s.AF)
	mc.BC.Load(s.BC)
	mc.DE.Load(s.DE)
	mc.HL.Load(s.HL)
	mc.IX.Load(s.IX)
	mc.IY.Load(s.IY)
	mc.AltAF.Load(s.AltAF)
	mc.AltBC.Load(s.AltBC)
	mc.AltDE.Load(s.AltDE)
	mc.AltHL.Load(s.AltHL)
	mc.I.Load(s.I)
	mc.R.Load(s.R)
	mc.IFF1 = s.IFF1
	mc.IFF2 = s.IFF2
	mc.IM = s.IM
	mc.Halted = s.Halted
	mc.eiDelay = s.EIDelay
	mc.nmiServiced = s.NMIServiced
	mc.irqServiced = s.IRQServiced
	mc.LastResult = Result{}
}
