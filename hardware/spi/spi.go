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

// Package spi implements the serial command decoder. Bits on the SDI line are
// sampled on the rising edge of the settled serial clock while the chip
// select line is asserted; deassertion of chip select is the frame boundary,
// at which a complete and well-formed frame is committed to the register
// file.
//
// The decoder never reads a raw input line. All three lines pass through the
// two-stage synchronizers in the pins package, so everything the decoder sees
// is two ticks stale and free of metastable values. Edge detection happens on
// the settled serial clock, which is what bounds the maximum supported serial
// clock rate (clocks.MaxSerialClock).
package spi

import (
	"fmt"
	"strings"

	"github.com/quietbike/spindle/hardware/pins"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/logger"
)

// DecoderState records how incoming signals to the decoder will be
// interpreted.
type DecoderState int

// List of valid DecoderState values. The boundary between frames is not a
// persistent state: it is processed entirely within the tick on which the
// settled chip select line deasserts, which is how the at-most-one-commit
// invariant is kept. Two boundary events can never be in flight at once.
const (
	DecoderIdle DecoderState = iota
	DecoderReceiving
)

// Decoder is the serial command decoder.
type Decoder struct {
	raw  *pins.Pins
	regs *registers.File

	// the settled view of the three external lines
	NCS  pins.Line
	SDI  pins.Line
	SCLK pins.Line

	State DecoderState
	Frame Frame
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(raw *pins.Pins, regs *registers.File) *Decoder {
	dec := &Decoder{
		raw:  raw,
		regs: regs,
	}
	dec.Reset()
	return dec
}

// Reset puts the decoder into its power-on state: deselected, idle, empty
// frame buffer. The synchronizer stages for the chip select line initialise
// to the deselected (high) state so that no spurious frame boundary is seen
// coming out of reset.
func (dec *Decoder) Reset() {
	dec.NCS = pins.NewLine("ncs", true)
	dec.SDI = pins.NewLine("sdi", false)
	dec.SCLK = pins.NewLine("sclk", false)
	dec.State = DecoderIdle
	dec.Frame.reset()
}

// Snapshot returns a copy of the decoder in its current state.
func (dec *Decoder) Snapshot() *Decoder {
	cp := *dec
	cp.NCS = dec.NCS.Snapshot()
	cp.SDI = dec.SDI.Snapshot()
	cp.SCLK = dec.SCLK.Snapshot()
	return &cp
}

// Plumb the decoder into a different raw pin block and register file.
func (dec *Decoder) Plumb(raw *pins.Pins, regs *registers.File) {
	dec.raw = raw
	dec.regs = regs
}

func (dec *Decoder) String() string {
	s := strings.Builder{}
	s.WriteString("spi: ")
	switch dec.State {
	case DecoderIdle:
		s.WriteString("idle")
	case DecoderReceiving:
		s.WriteString(fmt.Sprintf("receiving (%s)", dec.Frame.String()))
	}
	return s.String()
}

// Step advances the decoder by one tick of the internal clock. Within the
// tick, synchronization of the raw lines happens before edge detection, which
// happens before frame assembly, which happens before boundary evaluation. A
// boundary detected on tick T therefore sees the frame buffer as of tick T.
func (dec *Decoder) Step() {
	dec.NCS.Tick(dec.raw.NCS)
	dec.SDI.Tick(dec.raw.SDI)
	dec.SCLK.Tick(dec.raw.SCLK)

	// chip select is active low
	selected := dec.NCS.Trace.Lo()

	if selected {
		if dec.State == DecoderIdle {
			// a fresh assertion always starts a fresh frame. a frame aborted
			// by premature deselection is never resumed
			dec.Frame.reset()
			dec.State = DecoderReceiving
			logger.Log("spi", "selected")
		}

		if dec.SCLK.Trace.Rising() {
			dec.Frame.push(dec.SDI.Trace.Hi())
		}

		return
	}

	if dec.State == DecoderReceiving {
		dec.boundary()
		dec.State = DecoderIdle
	}
}

// boundary evaluates the just-completed frame. it is called on the tick the
// settled chip select line deasserts and commits to the register file on that
// same tick.
func (dec *Decoder) boundary() {
	// the next frame starts clean whatever happens below
	defer dec.Frame.reset()

	if !dec.Frame.Complete() {
		logger.Logf("spi", "dropped short frame (%d bits)", dec.Frame.BitCount)
		return
	}

	if !dec.Frame.WriteFlag() {
		logger.Logf("spi", "no-op frame (address %#02x)", dec.Frame.Address())
		return
	}

	if !dec.regs.Write(dec.Frame.Address(), dec.Frame.Data()) {
		logger.Logf("spi", "write to unmapped address %#02x", dec.Frame.Address())
		return
	}

	logger.Logf("spi", "committed %s", dec.Frame.String())
}
