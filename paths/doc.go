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

// Package paths contains functions to prepare paths to gopher80 resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the preferences file.
//
//	d, err := paths.ResourcePath("", "preferences")
//
// The policy of ResourcePath() is simple: if the base resource path, currently
// defined to be ".gopher80", is present in the program's current directory
// then that is the base path that will used. If it is not present then the
// user's config directory, as reported by github.com/shibukawa/configdir, is
// used. The directory is created if it does not exist.
//
// HistoryPath() is similar but returns a file in the user's cache directory.
// It is used by the debugger to store command line history.
package paths
