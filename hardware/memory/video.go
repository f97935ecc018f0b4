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

package memory

import (
	"strings"
)

// dimensions of the text screen.
const (
	VideoColumns = 64
	VideoRows    = 16
)

// Video is the contents of the video RAM.
type Video [VideoColumns * VideoRows]uint8

// Lines returns the screen as lines of text with trailing spaces removed.
// Character codes that are not printable ASCII, including the graphics
// characters, are shown as a full stop.
func (v Video) Lines() []string {
	lines := make([]string, VideoRows)
	for r := range lines {
		b := strings.Builder{}
		for _, c := range v[r*VideoColumns : (r+1)*VideoColumns] {
			// the Model III character generator shows 0x00-0x1f as upper case
			// letters when the video is in the default mode
			if c < 0x20 {
				c += 0x40
			}
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// Clear fills the video RAM with spaces.
func (v *Video) Clear() {
	for i := range v {
		v[i] = ' '
	}
}

func (v Video) String() string {
	return strings.Join(v.Lines(), "\n")
}
