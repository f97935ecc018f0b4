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
	"fmt"
	"sort"
	"strings"
)

// a group of preference values specified on the command line. values are
// removed from the group as they are consumed by Disk.Add()
type commandLineGroup map[string]Value

// the command line groups form a stack. only the top of the stack is consulted
var commandLineStack []commandLineGroup

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a preferences string and adds it as a new group.
// The string is a list of key/value pairs separated by semi-colons:
//
//	emulation.throttle::false; cassette.threshold::0.1
//
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	grp := make(commandLineGroup)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if ok {
			grp[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	commandLineStack = append(commandLineStack, grp)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the unconsumed preferences of the group
// sorted by key, in the same format as accepted by PushCommandLineStack().
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	grp := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(grp))
	for k := range grp {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s::%v", k, grp[k]))
	}

	return strings.Join(pairs, "; ")
}

// GetCommandLinePref value from the current group. The value is removed from
// the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	grp := commandLineStack[len(commandLineStack)-1]
	v, ok := grp[key]
	if ok {
		delete(grp, key)
	}
	return ok, v
}
