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

package hardware

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/interrupts"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/logger"
)

// InvalidStateFile is returned when a state file cannot be read.
const InvalidStateFile = "computer: invalid state file (%v)"

// identifies a state file
const stateMagic = "G80S"

// StateVersion is the version of the state file format. State files with a
// different version cannot be loaded.
const StateVersion = 1

// the byte order of all multi-byte values in a state file
var stateOrder = binary.LittleEndian

// the uncompressed header of a state file. everything after the header is
// compressed with snappy.
type stateHeader struct {
	Magic   string `struc:"[4]byte"`
	Version uint16
	Ticks   uint64
}

type pulseRecord struct {
	NameLen int `struc:"uint8,sizeof=Name"`
	Name    string
	Delay   uint64
	Basis   uint8
	Target  uint64
	Active  bool
}

type peripheralsRecord struct {
	RTCCount         uint64
	FloppySelected   int8
	FloppySide       uint8
	FloppyMotor      bool
	CassettePosition uint32
	CassetteLevel    uint8
	CassetteMotor    bool
}

// WriteState writes the state to w in the state file format.
func WriteState(w io.Writer, s *State) error {
	hdr := stateHeader{
		Magic:   stateMagic,
		Version: StateVersion,
		Ticks:   s.Ticks,
	}
	if err := struc.PackWithOrder(w, &hdr, stateOrder); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}

	zw := snappy.NewBufferedWriter(w)

	if err := struc.PackWithOrder(zw, &s.CPU, stateOrder); err != nil {
		return errors.Wrap(err, "failed to pack cpu")
	}

	if err := binary.Write(zw, stateOrder, uint8(len(s.Triggers))); err != nil {
		return errors.Wrap(err, "failed to pack triggers")
	}
	for i := range s.Triggers {
		if err := struc.PackWithOrder(zw, &s.Triggers[i], stateOrder); err != nil {
			return errors.Wrap(err, "failed to pack triggers")
		}
	}

	if err := binary.Write(zw, stateOrder, uint16(len(s.Pending))); err != nil {
		return errors.Wrap(err, "failed to pack pulses")
	}
	for _, p := range s.Pending {
		rec := pulseRecord{
			Name:   p.Name,
			Delay:  p.Delay,
			Basis:  uint8(p.Basis),
			Target: p.Target,
			Active: p.Active,
		}
		if err := struc.PackWithOrder(zw, &rec, stateOrder); err != nil {
			return errors.Wrap(err, "failed to pack pulses")
		}
	}

	if _, err := zw.Write(s.Mem.Video[:]); err != nil {
		return errors.Wrap(err, "failed to pack video")
	}
	if _, err := zw.Write(s.Mem.RAM[:]); err != nil {
		return errors.Wrap(err, "failed to pack ram")
	}

	per := peripheralsRecord{
		RTCCount:         s.RTCCount,
		FloppySelected:   int8(s.Floppy.Selected),
		FloppySide:       s.Floppy.Side,
		FloppyMotor:      s.Floppy.MotorOn,
		CassettePosition: uint32(s.Cassette.Position),
		CassetteLevel:    s.Cassette.Level,
		CassetteMotor:    s.Cassette.Motor,
	}
	if err := struc.PackWithOrder(zw, &per, stateOrder); err != nil {
		return errors.Wrap(err, "failed to pack peripherals")
	}

	return zw.Close()
}

// ReadState reads a state in the state file format from r.
func ReadState(r io.Reader) (*State, error) {
	var hdr stateHeader
	if err := struc.UnpackWithOrder(r, &hdr, stateOrder); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack header"))
	}
	if hdr.Magic != stateMagic {
		return nil, curated.Errorf(InvalidStateFile, "invalid magic")
	}
	if hdr.Version != StateVersion {
		return nil, curated.Errorf(InvalidStateFile, "unsupported version")
	}

	s := &State{
		Ticks: hdr.Ticks,
		Mem:   &memory.State{},
	}

	zr := snappy.NewReader(r)

	if err := struc.UnpackWithOrder(zr, &s.CPU, stateOrder); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack cpu"))
	}

	var numTriggers uint8
	if err := binary.Read(zr, stateOrder, &numTriggers); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack triggers"))
	}
	s.Triggers = make([]interrupts.TriggerState, numTriggers)
	for i := range s.Triggers {
		if err := struc.UnpackWithOrder(zr, &s.Triggers[i], stateOrder); err != nil {
			return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack triggers"))
		}
	}

	var numPulses uint16
	if err := binary.Read(zr, stateOrder, &numPulses); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack pulses"))
	}
	for i := 0; i < int(numPulses); i++ {
		var rec pulseRecord
		if err := struc.UnpackWithOrder(zr, &rec, stateOrder); err != nil {
			return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack pulses"))
		}
		s.Pending = append(s.Pending, clocks.PulseState{
			Name:   rec.Name,
			Delay:  rec.Delay,
			Basis:  clocks.Basis(rec.Basis),
			Target: rec.Target,
			Active: rec.Active,
		})
	}

	if _, err := io.ReadFull(zr, s.Mem.Video[:]); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack video"))
	}
	if _, err := io.ReadFull(zr, s.Mem.RAM[:]); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack ram"))
	}

	var per peripheralsRecord
	if err := struc.UnpackWithOrder(zr, &per, stateOrder); err != nil {
		return nil, curated.Errorf(InvalidStateFile, errors.Wrap(err, "failed to unpack peripherals"))
	}
	s.RTCCount = per.RTCCount
	s.Floppy.Selected = int(per.FloppySelected)
	s.Floppy.Side = per.FloppySide
	s.Floppy.MotorOn = per.FloppyMotor
	s.Cassette.Position = int(per.CassettePosition)
	s.Cassette.Level = per.CassetteLevel
	s.Cassette.Motor = per.CassetteMotor

	return s, nil
}

// SaveState writes a snapshot of the computer to a file.
func (c *Computer) SaveState(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(curated.HostIO, errors.Wrap(err, "computer"))
	}
	defer f.Close()

	if err := WriteState(f, c.Snapshot()); err != nil {
		return curated.Errorf(curated.HostIO, errors.Wrap(err, "computer"))
	}

	logger.Logf(c, "snapshot", "saved state to %s", filename)

	return nil
}

// LoadStateFile reads a state file without plumbing it into a computer.
func LoadStateFile(filename string) (*State, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(curated.HostIO, errors.Wrap(err, "computer"))
	}
	defer f.Close()

	return ReadState(f)
}

// LoadState reads a state file and plumbs it into the computer.
func (c *Computer) LoadState(filename string) error {
	s, err := LoadStateFile(filename)
	if err != nil {
		return err
	}

	if err := c.Plumb(s); err != nil {
		return err
	}

	logger.Logf(c, "snapshot", "loaded state from %s", filename)

	return nil
}
