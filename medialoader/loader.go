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

package medialoader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/jetsetilly/gopher80/curated"
)

// Kind is the type of media.
type Kind int

// List of valid Kind values.
const (
	Unknown Kind = iota
	Program
	Disk
	Cassette
	ROM
)

func (k Kind) String() string {
	switch k {
	case Program:
		return "program"
	case Disk:
		return "disk"
	case Cassette:
		return "cassette"
	case ROM:
		return "rom"
	}
	return "unknown"
}

// Sentinel error patterns.
const (
	UnexpectedHash    = "medialoader: unexpected hash value (%s)"
	UnsupportedScheme = "medialoader: unsupported URL scheme (%s)"
	UnknownKind       = "medialoader: unrecognised media (%s)"
)

// FileExtensions is the list of file extensions that are recognised by the
// medialoader package.
var FileExtensions = [...]string{".CMD", ".DSK", ".DMK", ".WAV", ".MP3", ".ROM", ".BIN"}

// Loader is used to specify the media to load.
type Loader struct {
	// filename of the media to load
	Filename string

	Kind Kind

	// expected hash of the loaded media. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []uint8
}

// NewLoader is the preferred method of initialisation for the Loader type. The
// kind of media is decided by the filename extension. Alphabetic characters in
// file extensions can be in upper or lower case or a mixture of both.
func NewLoader(filename string) Loader {
	ld := Loader{
		Filename: filename,
	}

	switch strings.ToUpper(filepath.Ext(filename)) {
	case ".CMD":
		ld.Kind = Program
	case ".DSK", ".DMK":
		ld.Kind = Disk
	case ".WAV", ".MP3":
		ld.Kind = Cassette
	case ".ROM", ".BIN":
		ld.Kind = ROM
	}

	return ld
}

func (ld Loader) String() string {
	return fmt.Sprintf("%s (%s)", ld.ShortName(), ld.Kind)
}

// ShortName returns a shortened version of the filename.
func (ld Loader) ShortName() string {
	s := filepath.Base(ld.Filename)
	return strings.TrimSuffix(s, filepath.Ext(s))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the media data. Filenames with a URL scheme will use that method to
// load the data. Currently supported schemes are HTTP and local files.
func (ld *Loader) Load() error {
	if ld.Kind == Unknown {
		return curated.Errorf(UnknownKind, ld.Filename)
	}

	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(ld.Filename); err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}

	var data []uint8
	var err error

	switch scheme {
	case "http", "https":
		var resp *http.Response
		resp, err = http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(curated.HostIO, errors.Wrap(err, "medialoader"))
		}
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)

	case "file":
		data, err = os.ReadFile(ld.Filename)

	default:
		return curated.Errorf(UnsupportedScheme, scheme)
	}

	if err != nil {
		return curated.Errorf(curated.HostIO, errors.Wrap(err, "medialoader"))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(UnexpectedHash, hash)
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}
