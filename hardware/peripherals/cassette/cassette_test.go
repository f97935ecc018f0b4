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

package cassette_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/peripherals/cassette"
	"github.com/jetsetilly/gopher80/test"
)

// square wave with the given number of samples per half cycle
func squareWave(halfCycles int, length int) []float32 {
	s := make([]float32, length)
	for i := range s {
		if (i/halfCycles)%2 == 0 {
			s[i] = 0.5
		} else {
			s[i] = -0.5
		}
	}
	return s
}

func TestFindEdges(t *testing.T) {
	edges := cassette.FindEdges(squareWave(4, 12), 1000, cassette.DefaultThreshold)
	test.DemandEquality(t, len(edges), 2)
	test.ExpectEquality(t, edges[0], cassette.Edge{At: 4 * clocks.TicksPerSecond / 1000, Rising: false})
	test.ExpectEquality(t, edges[1], cassette.Edge{At: 8 * clocks.TicksPerSecond / 1000, Rising: true})

	// noise below the threshold is ignored
	noise := []float32{0.5, 0.05, -0.05, 0.05, 0.5, -0.5}
	edges = cassette.FindEdges(noise, 1000, cassette.DefaultThreshold)
	test.DemandEquality(t, len(edges), 1)
	test.ExpectEquality(t, edges[0].Rising, false)
}

func TestPlayback(t *testing.T) {
	clk := clocks.NewClock()
	ctr := interrupts.NewController()
	cas := cassette.NewCassette(clk, ctr)

	cas.LoadEdges([]cassette.Edge{
		{At: 100, Rising: true},
		{At: 250, Rising: false},
		{At: 400, Rising: true},
	})

	// nothing happens while the motor is off
	clk.Advance(1000)
	test.ExpectEquality(t, cas.Position, 0)

	cas.Write(cassette.PortMotor, 0x02)
	test.ExpectEquality(t, cas.Motor, true)

	clk.Advance(99)
	test.ExpectEquality(t, ctr.CassetteRising.Latched(), false)
	clk.Advance(1)
	test.ExpectEquality(t, ctr.CassetteRising.Latched(), true)
	test.ExpectEquality(t, cas.Level, uint8(1))

	// reading the data port clears the edge latches
	test.ExpectEquality(t, cas.Read(cassette.PortData), uint8(0xff))
	test.ExpectEquality(t, ctr.CassetteRising.Latched(), false)

	clk.Advance(150)
	test.ExpectEquality(t, ctr.CassetteFalling.Latched(), true)
	test.ExpectEquality(t, cas.Read(cassette.PortData), uint8(0xfe))

	// the motor stops the tape
	cas.Write(cassette.PortMotor, 0x00)
	clk.Advance(1000)
	test.ExpectEquality(t, cas.Position, 2)
	test.ExpectEquality(t, len(clk.Pending()), 0)

	cas.Write(cassette.PortMotor, 0x02)
	clk.Advance(150)
	test.ExpectEquality(t, cas.Position, 3)
	test.ExpectEquality(t, len(clk.Pending()), 0)

	cas.Reset()
	test.ExpectEquality(t, cas.Position, 0)
	test.ExpectEquality(t, cas.Motor, false)
}

// writeWAV encodes 16bit samples as a WAV file and returns the file data.
// samples are interleaved if there is more than one channel.
func writeWAV(t *testing.T, channels int, data []int) []uint8 {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "tape.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	enc := wav.NewEncoder(f, 22050, 16, channels, 1)
	test.DemandSuccess(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 22050},
		Data:           data,
		SourceBitDepth: 16,
	}))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	return b
}

func TestLoadWAV(t *testing.T) {
	samples := squareWave(10, 1000)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767)
	}
	b := writeWAV(t, 1, data)

	cas := cassette.NewCassette(clocks.NewClock(), interrupts.NewController())
	test.DemandSuccess(t, cas.Load("tape.wav", b))
	test.ExpectEquality(t, cas.Edges(), 99)

	err := cas.Load("tape.cas", b)
	test.ExpectSuccess(t, curated.Is(err, cassette.UnsupportedFormat))

	err = cas.Load("tape.wav", []uint8{0x00, 0x01, 0x02})
	test.ExpectSuccess(t, curated.Is(err, cassette.DecodeError))
}

// a quiet stereo recording with the signal on the left channel only.
// the edges are found because samples are in the range -1.0 to 1.0
func TestLoadWAVStereo(t *testing.T) {
	samples := squareWave(10, 1000)
	data := make([]int, 0, len(samples)*2)
	for _, s := range samples {
		data = append(data, int(s*16384), 0)
	}
	b := writeWAV(t, 2, data)

	cas := cassette.NewCassette(clocks.NewClock(), interrupts.NewController())
	test.DemandSuccess(t, cas.Load("tape.wav", b))
	test.ExpectEquality(t, cas.Edges(), 99)
}
