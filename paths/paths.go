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

package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

// the base path for all resources when running from a development directory.
const baseResourcePath = ".gopher80"

const vendorName = "jetsetilly"
const applicationName = "gopher80"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The directory
// part of the path is created if necessary. The file itself is not created.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", err
	}

	pth := filepath.Join(base, subPth)
	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", curated.Errorf(curated.HostIO, errors.Wrap(err, "paths"))
	}

	return filepath.Join(pth, file), nil
}

// HistoryPath returns the path of a file in the user's cache folder. An empty
// string is returned if the cache folder cannot be created.
func HistoryPath(file string) string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return filepath.Join(baseResourcePath, file)
	}

	cache := configdir.New(vendorName, applicationName).QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cache.Path, file)
}

// getBasePath returns baseResourcePath if it exists in the current directory.
// Otherwise the global config folder for the application is returned.
func getBasePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	folders := configdir.New(vendorName, applicationName).QueryFolders(configdir.Global)
	if len(folders) == 0 {
		return baseResourcePath, nil
	}

	return folders[0].Path, nil
}
