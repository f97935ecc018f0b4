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

package paths_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/paths"
	"github.com/jetsetilly/gopher80/test"
)

func TestPaths(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	test.DemandSuccess(t, os.Mkdir(".gopher80", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher80/foo/bar/baz")

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher80/foo/bar")

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher80/baz")

	// directory part of the resource has been created
	_, err = os.Stat(".gopher80/foo/bar")
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, paths.HistoryPath("history"), ".gopher80/history")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("snapshot", "LDOS")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "snapshot_LDOS_"))

	fn = paths.UniqueFilename("snapshot", "  ")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "snapshot_2"))
}
