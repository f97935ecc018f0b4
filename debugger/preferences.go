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

package debugger

import (
	"github.com/jetsetilly/gopher80/paths"
	"github.com/jetsetilly/gopher80/prefs"
)

// Preferences defines and collates all the preference values used by the
// debugger.
type Preferences struct {
	dsk *prefs.Disk

	// use the color terminal if the input is a real terminal
	Colour prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource path.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with an explicit
// path to the preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	_ = p.Colour.Set(true)

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("debugger.colour", &p.Colour)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Load debugger preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save debugger preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
