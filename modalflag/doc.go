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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse(). Flags for
// the current mode are added before the call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DEBUG", "DISASM")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// After parsing, Mode() returns the selected sub-mode. The first sub-mode is
// the default and is selected if the first non-flag argument does not name a
// sub-mode. Sub-mode comparisons are case insensitive.
//
// Calling NewMode() starts a new layer of flags and sub-modes. The arguments
// that remain after the previous Parse() are processed by the next call to
// Parse(). Path() returns every mode selected so far, separated by a slash.
package modalflag
