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

// Package medialoader is used to specify the media file to load into the
// emulation. Media files are load files (TRS-DOS /CMD), DMK disk images,
// cassette recordings and ROM images.
//
// The kind of media is decided by the file extension. The data is loaded with
// the Load() function, which also generates a SHA1 hash of the data. If the
// Hash field is set before loading then the loaded data must match it.
package medialoader
