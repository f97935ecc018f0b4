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

package cassette

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/logger"
)

// Sentinel error patterns returned by Load().
const (
	UnsupportedFormat = "cassette: unsupported format (%s)"
	DecodeError       = "cassette: %v"
)

// Load a recording from the data of a WAV or MP3 file. The format is chosen by
// the extension of the filename.
func (cas *Cassette) Load(filename string, data []uint8) error {
	var samples []float32
	var sampleRate float64
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav":
		samples, sampleRate, err = decodeWAV(data)
	case ".mp3":
		samples, sampleRate, err = decodeMP3(data)
	default:
		return curated.Errorf(UnsupportedFormat, ext)
	}

	if err != nil {
		return curated.Errorf(DecodeError, err)
	}

	logger.Logf(logger.Allow, "cassette", "loaded %s (%.0fHz)", filepath.Base(filename), sampleRate)
	cas.LoadPCM(samples, sampleRate)

	return nil
}

func decodeWAV(data []uint8) ([]float32, float64, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrap(err, "wav")
	}

	return mono(buf.AsFloat32Buffer(), int(dec.NumChans)), float64(dec.SampleRate), nil
}

// mono returns the first channel of the buffer. AsFloat32Buffer() has
// already scaled the samples to the range -1.0 to 1.0.
func mono(buf *audio.Float32Buffer, channels int) []float32 {
	if channels < 1 {
		channels = 1
	}

	samples := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, buf.Data[i])
	}
	return samples
}

func decodeMP3(data []uint8) ([]float32, float64, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, errors.Wrap(err, "mp3")
	}

	// the decoded stream is always 16bit little-endian stereo. only the left
	// channel is used
	var samples []float32
	chunk := make([]uint8, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			samples = append(samples, float32(v)/32768.0)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "mp3")
		}
	}

	return samples, float64(dec.SampleRate()), nil
}
