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

// Package statsview is an optional package that is only built when the
// statsview build tag is present:
//
//	go build -tags statsview
//
// It provides an HTTP server running locally offering runtime statistics.
// Underlying functionality is provided by "github.com/go-echarts/statsview".
// After launch, graphical statistics are viewable at:
//
//	localhost:12800/debug/statsview
//
// And standard Go pprof statistics are available at:
//
//	localhost:12800/debug/pprof/
//
// Without the build tag Launch() does nothing and Available() returns false.
package statsview
