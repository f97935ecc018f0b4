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

package logger

import (
	"io"
	"strings"

	"github.com/mgutz/ansi"
)

// the colour used for continuation lines
var continuation = ansi.ColorCode("red")

// Colorizer applies basic coloring rules to logging output. The first line of
// each write is output normally and any subsequent lines are coloured.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	m, err := io.WriteString(c.out, l[0]+"\n")
	n += m
	if err != nil || len(l) == 1 {
		return n, err
	}

	m, err = io.WriteString(c.out, continuation)
	n += m
	if err != nil {
		return n, err
	}
	defer io.WriteString(c.out, ansi.Reset)

	for _, s := range l[1:] {
		m, err := io.WriteString(c.out, s+"\n")
		n += m
		if err != nil {
			return n, err
		}
	}

	return n, nil
}
