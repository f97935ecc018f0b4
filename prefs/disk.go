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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/pkg/errors"
)

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand while the emulator is running ***"

// DefaultPrefsFile is the name of the preferences file in the resource path.
const DefaultPrefsFile = "preferences"

// the separator between key and value in the preferences file.
const separator = " :: "

// Disk represents preference values as stored on disk. Values are added to
// the Disk with the Add() function.
//
// Entries in the preferences file that have not been added to the Disk
// instance are preserved when the Disk is saved. This means that more than one
// Disk instance can share a preferences file.
type Disk struct {
	path    string
	entries map[string]pref

	// keys given a value on the command line. these are not changed by Load()
	pinned map[string]bool
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
		pinned:  make(map[string]bool),
	}, nil
}

func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

// Add preference value to the Disk instance. If the key is present in the
// current command line group then the value is set immediately.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if strings.Contains(key, separator) {
		return fmt.Errorf("prefs: illegal key name %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %q already added", key)
	}

	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		dsk.pinned[key] = true
		return p.Set(v)
	}

	return nil
}

// Reset all preference values added to the Disk to their default value.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// read the preferences file into a map of raw strings. a missing file is not
// an error and results in an empty map.
func (dsk *Disk) read() (map[string]string, error) {
	raw := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, nil
		}
		return nil, curated.Errorf(curated.HostIO, errors.Wrap(err, "prefs"))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line is the boilerplate and is ignored
	if scanner.Scan() && scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: %s is not a preferences file", dsk.path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		raw[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(curated.HostIO, errors.Wrap(err, "prefs"))
	}

	return raw, nil
}

// Save current preference values to disk. Entries in the file that have not
// been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	raw, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		raw[k] = p.String()
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, raw[k]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return curated.Errorf(curated.HostIO, errors.Wrap(err, "prefs"))
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true then the current
// values are saved to disk when the file does not exist.
func (dsk *Disk) Load(saveOnFail bool) error {
	if _, err := os.Stat(dsk.path); os.IsNotExist(err) {
		if saveOnFail {
			return dsk.Save()
		}
		return nil
	}

	raw, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range raw {
		if p, ok := dsk.entries[k]; ok && !dsk.pinned[k] {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}
