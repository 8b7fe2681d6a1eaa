// This file is part of Spindle.
//
// Spindle is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Spindle is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Spindle.  If not, see <https://www.gnu.org/licenses/>.

package pins_test

import (
	"testing"

	"github.com/quietbike/spindle/hardware/pins"
	"github.com/quietbike/spindle/test"
)

func TestSyncLatency(t *testing.T) {
	sy := pins.NewSync(false)

	// raw transition at tick T is not observed until tick T+2
	test.ExpectEquality(t, sy.Tick(true), false) // T
	test.ExpectEquality(t, sy.Tick(true), false) // T+1
	test.ExpectEquality(t, sy.Tick(true), true)  // T+2
	test.ExpectEquality(t, sy.Tick(true), true)

	// and the same when falling
	test.ExpectEquality(t, sy.Tick(false), true)
	test.ExpectEquality(t, sy.Tick(false), true)
	test.ExpectEquality(t, sy.Tick(false), false)
}

func TestSyncGlitch(t *testing.T) {
	sy := pins.NewSync(false)

	// a one-tick pulse is delayed but not lost or stretched
	test.ExpectEquality(t, sy.Tick(true), false)
	test.ExpectEquality(t, sy.Tick(false), false)
	test.ExpectEquality(t, sy.Tick(false), true)
	test.ExpectEquality(t, sy.Tick(false), false)
	test.ExpectEquality(t, sy.Tick(false), false)
}

func TestSyncResetValue(t *testing.T) {
	// a synchronizer initialised high stays high until told otherwise
	sy := pins.NewSync(true)
	test.ExpectEquality(t, sy.Tick(true), true)
	test.ExpectEquality(t, sy.Tick(true), true)
}

func TestTraceEdges(t *testing.T) {
	tr := pins.NewTrace("test", false)

	// no edge on a freshly initialised trace
	test.ExpectEquality(t, tr.Rising(), false)
	test.ExpectEquality(t, tr.Falling(), false)

	tr.Tick(true)
	test.ExpectEquality(t, tr.Rising(), true)
	test.ExpectEquality(t, tr.Hi(), true)

	// rising is true for exactly one tick
	tr.Tick(true)
	test.ExpectEquality(t, tr.Rising(), false)
	test.ExpectEquality(t, tr.Hi(), true)

	tr.Tick(false)
	test.ExpectEquality(t, tr.Falling(), true)
	test.ExpectEquality(t, tr.Lo(), true)

	tr.Tick(false)
	test.ExpectEquality(t, tr.Falling(), false)
}

func TestLine(t *testing.T) {
	// a Line carries the two-tick synchronizer delay into the trace
	ln := pins.NewLine("test", false)

	ln.Tick(true)
	test.ExpectEquality(t, ln.Trace.Rising(), false)
	ln.Tick(true)
	test.ExpectEquality(t, ln.Trace.Rising(), false)
	ln.Tick(true)
	test.ExpectEquality(t, ln.Trace.Rising(), true)
	ln.Tick(true)
	test.ExpectEquality(t, ln.Trace.Rising(), false)
	test.ExpectEquality(t, ln.Trace.Hi(), true)
}
