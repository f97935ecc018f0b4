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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/memory"
)

// the table is shared by all tests
var table = cpu.NewInstructionTable()

type mockIO struct {
	in       map[uint8]uint8
	lastPort uint8
	lastData uint8
}

func (io *mockIO) In(port uint8) uint8 {
	if v, ok := io.in[port]; ok {
		return v
	}
	return 0xff
}

func (io *mockIO) Out(port uint8, data uint8) {
	io.lastPort = port
	io.lastData = data
}

type mockInterrupts struct {
	nmi bool
	irq bool
}

func (ints *mockInterrupts) NMI() bool {
	return ints.nmi
}

func (ints *mockInterrupts) IRQ() bool {
	return ints.irq
}

type harness struct {
	mc   *cpu.CPU
	mem  *memory.Flat
	clk  *clocks.Clock
	io   *mockIO
	ints *mockInterrupts
}

// newHarness creates a CPU with the program loaded at address zero. The stack
// pointer is set to 0x8000.
func newHarness(program ...uint8) *harness {
	h := &harness{
		mem:  memory.NewFlat(),
		clk:  clocks.NewClock(),
		io:   &mockIO{in: make(map[uint8]uint8)},
		ints: &mockInterrupts{},
	}
	h.mc = cpu.NewCPU(table, h.mem, h.io, h.clk, h.ints)
	h.mc.SP.Load(0x8000)
	h.mem.Load(0x0000, program...)
	return h
}

// step executes n instructions and returns the total number of T-states
// taken.
func (h *harness) step(n int) int {
	start := h.clk.Ticks()
	for i := 0; i < n; i++ {
		h.mc.Step()
	}
	return int(clocks.TStates(h.clk.Ticks() - start))
}

func (h *harness) flags(t *testing.T, set uint8, clear uint8) {
	t.Helper()
	f := h.mc.F.Value()
	if f&set != set {
		t.Errorf("expected flags %s to be set: %s", cpu.FlagsString(set), cpu.FlagsString(f))
	}
	if f&clear != 0 {
		t.Errorf("expected flags %s to be clear: %s", cpu.FlagsString(clear), cpu.FlagsString(f))
	}
}
