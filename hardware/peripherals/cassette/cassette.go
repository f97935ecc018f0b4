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

// Package cassette implements the cassette interface of the Model III. A
// recording is converted to a list of signal edges when it is loaded. While
// the cassette motor is on each edge is scheduled as a pulse that latches the
// rising or falling edge interrupt.
//
// Recordings can be loaded from WAV or MP3 files, or directly from PCM
// samples with LoadPCM().
package cassette

import (
	"fmt"

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/logger"
)

// Port addresses used by the cassette.
const (
	PortMotor = 0xec
	PortData  = 0xff
)

// bit of the motor port that turns the motor on.
const motorBit = 0x02

// PulseName is the name of the edge pulse.
const PulseName = "cassette edge"

// DefaultThreshold is the sample level that must be crossed for a change of
// signal level to be recognised. Samples are in the range -1.0 to 1.0.
const DefaultThreshold = 0.1

// Edge is a change in the level of the cassette signal.
type Edge struct {
	// time of the edge in ticks from the start of the recording
	At     uint64
	Rising bool
}

// Cassette is the cassette interface.
type Cassette struct {
	clk *clocks.Clock
	ctr *interrupts.Controller

	edges []Edge
	pulse *clocks.PulseRequest

	// index of the next edge
	Position int

	// current level of the signal. zero or one
	Level uint8

	Motor bool

	// the level that must be crossed before an edge is recognised
	Threshold float64
}

// NewCassette is the preferred method of initialisation for the Cassette type.
func NewCassette(clk *clocks.Clock, ctr *interrupts.Controller) *Cassette {
	cas := &Cassette{
		clk:       clk,
		ctr:       ctr,
		Threshold: DefaultThreshold,
	}
	cas.pulse = clocks.NewPulse(PulseName, clocks.BasisTicks, 0, cas.edge)
	cas.clk.Declare(cas.pulse)
	return cas
}

func (cas *Cassette) String() string {
	m := "off"
	if cas.Motor {
		m = "on"
	}
	return fmt.Sprintf("cassette: edge %d of %d, level %d, motor %s", cas.Position, len(cas.edges), cas.Level, m)
}

// Edges returns the number of edges in the loaded recording.
func (cas *Cassette) Edges() int {
	return len(cas.edges)
}

// LoadEdges replaces the recording with the list of edges. The edges must be
// in time order.
func (cas *Cassette) LoadEdges(edges []Edge) {
	cas.edges = edges
	cas.Rewind()
}

// LoadPCM replaces the recording with the edges found in the samples.
func (cas *Cassette) LoadPCM(samples []float32, sampleRate float64) {
	cas.LoadEdges(FindEdges(samples, sampleRate, cas.Threshold))
	logger.Logf(logger.Allow, "cassette", "%d edges in %.02fs of recording",
		len(cas.edges), float64(len(samples))/sampleRate)
}

// FindEdges converts PCM samples to a list of edges. The signal must cross the
// threshold in the opposite direction to the previous edge for a new edge to
// be found.
func FindEdges(samples []float32, sampleRate float64, threshold float64) []Edge {
	var edges []Edge

	high := false
	known := false

	for i, s := range samples {
		var rising bool
		switch {
		case float64(s) > threshold:
			rising = true
		case float64(s) < -threshold:
			rising = false
		default:
			continue
		}

		if known && rising == high {
			continue
		}

		// the first crossing only establishes the starting level
		if known {
			at := uint64(float64(i) * clocks.TicksPerSecond / sampleRate)
			edges = append(edges, Edge{At: at, Rising: rising})
		}

		high = rising
		known = true
	}

	return edges
}

// Rewind the recording to the start.
func (cas *Cassette) Rewind() {
	cas.Position = 0
	cas.Level = 0
	if cas.Motor {
		cas.schedule()
	}
}

// schedule the next edge. the delay is the time between the previous edge and
// the next edge.
func (cas *Cassette) schedule() {
	if cas.Position >= len(cas.edges) {
		cas.clk.Cancel(cas.pulse)
		return
	}

	next := cas.edges[cas.Position].At
	if cas.Position > 0 {
		next -= cas.edges[cas.Position-1].At
	}
	cas.pulse.Delay = next
	cas.clk.Register(cas.pulse)
}

func (cas *Cassette) edge() {
	// a restored state may refer to a recording that is no longer loaded
	if cas.Position >= len(cas.edges) {
		return
	}

	e := cas.edges[cas.Position]
	cas.Position++

	if e.Rising {
		cas.Level = 1
		cas.ctr.CassetteRising.Latch()
	} else {
		cas.Level = 0
		cas.ctr.CassetteFalling.Latch()
	}

	if cas.Position == len(cas.edges) {
		logger.Log(logger.Allow, "cassette", "end of recording")
	}

	cas.schedule()
}

// Write implements the ports.Writer interface.
func (cas *Cassette) Write(port uint8, data uint8) {
	if port&0xfc != PortMotor {
		return
	}

	motor := data&motorBit == motorBit
	if motor == cas.Motor {
		return
	}
	cas.Motor = motor

	if cas.Motor {
		logger.Log(logger.Allow, "cassette", "motor on")
		cas.schedule()
	} else {
		logger.Log(logger.Allow, "cassette", "motor off")
		cas.clk.Cancel(cas.pulse)
	}
}

// Read implements the ports.Reader interface. The level of the signal is in
// bit 0. Reading the port clears both edge interrupts.
func (cas *Cassette) Read(port uint8) uint8 {
	v := cas.Peek(port)
	cas.ctr.ClearCassette()
	return v
}

// Peek implements the ports.Peeker interface.
func (cas *Cassette) Peek(port uint8) uint8 {
	return 0xfe | cas.Level
}

// State is the saved state of the cassette. The recording is not part of the
// state.
type State struct {
	Position int
	Level    uint8
	Motor    bool
}

// State returns the current state of the cassette.
func (cas *Cassette) State() State {
	return State{
		Position: cas.Position,
		Level:    cas.Level,
		Motor:    cas.Motor,
	}
}

// Restore a previously saved state. The edge pulse is restored by the clock.
func (cas *Cassette) Restore(s State) {
	cas.Position = s.Position
	cas.Level = s.Level
	cas.Motor = s.Motor
}

// Reset turns the motor off and rewinds the recording.
func (cas *Cassette) Reset() {
	cas.clk.Cancel(cas.pulse)
	cas.Motor = false
	cas.Rewind()
}
