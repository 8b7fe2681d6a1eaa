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

// Package pins represents the external input lines of the peripheral and the
// machinery that carries them into the internal clock domain.
//
// The three lines (chip select, serial data, serial clock) live in a
// different time domain to the internal clock. They may change at any
// real-time instant. The Sync type is the sole boundary-crossing mechanism:
// nothing downstream of this package ever reads a raw line directly.
package pins

// Pins is the raw state of the three external input lines. The host side
// (the driver package, the monitor, etc.) changes these fields at will; the
// decoder only ever sees them through a Line.
type Pins struct {
	// chip select. active low: false means a frame is in progress
	NCS bool

	// serial data in
	SDI bool

	// serial clock
	SCLK bool
}

// NewPins returns raw lines in the idle state: deselected, data and clock low.
func NewPins() *Pins {
	return &Pins{NCS: true}
}

// Line couples a two-stage synchronizer with a trace of the settled signal.
// Tick() samples the raw line once per internal tick; the Trace field is what
// downstream logic reads.
type Line struct {
	Sync  Sync
	Trace Trace
}

// NewLine initialises both the synchronizer stages and the trace history to
// the given value, so that no spurious edge is observed out of reset.
func NewLine(label string, v bool) Line {
	return Line{
		Sync:  NewSync(v),
		Trace: NewTrace(label, v),
	}
}

// Tick samples the raw line value and advances the settled trace.
func (ln *Line) Tick(raw bool) {
	ln.Trace.Tick(ln.Sync.Tick(raw))
}

// Snapshot returns a copy of the line with its own trace history.
func (ln Line) Snapshot() Line {
	ln.Trace.Activity = append([]bool(nil), ln.Trace.Activity...)
	return ln
}
