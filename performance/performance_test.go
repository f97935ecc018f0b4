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

package performance_test

import (
	"testing"

	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/performance"
	"github.com/jetsetilly/gopher80/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, Trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfile("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfile("gpu")
	test.ExpectFailure(t, err)
}

func TestCalcSpeed(t *testing.T) {
	mhz, accuracy := performance.CalcSpeed(clocks.TicksPerSecond*2, 2.0)
	test.ExpectApproximate(t, mhz, 2.02752, 0.0001)
	test.ExpectApproximate(t, accuracy, 100.0, 0.0001)

	mhz, accuracy = performance.CalcSpeed(clocks.TicksPerSecond, 0)
	test.ExpectEquality(t, mhz, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)
}

func TestRunProfiler(t *testing.T) {
	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)
}
