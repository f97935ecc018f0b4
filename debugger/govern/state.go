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

package govern

// State indicates what the emulation is doing or is being asked to do.
type State int

// List of possible emulation states. Only Running, Paused and Ending are
// meaningful to the run loops. The other values describe the debugger.
//
// EmulatorStart is the zero value and is never returned to once the debugger
// has been started.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Stepping
	Running
	Ending
)

var stateNames = [...]string{
	EmulatorStart: "EmulatorStart",
	Initialising:  "Initialising",
	Paused:        "Paused",
	Stepping:      "Stepping",
	Running:       "Running",
	Ending:        "Ending",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return ""
	}
	return stateNames[s]
}
