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

package spi_test

import (
	"testing"

	"github.com/quietbike/spindle/hardware/pins"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/hardware/spi"
	"github.com/quietbike/spindle/test"
)

// number of ticks per half period of the serial clock. comfortably more than
// the synchronizer latency.
const halfClock = 8

type harness struct {
	raw  *pins.Pins
	regs *registers.File
	dec  *spi.Decoder
}

func newHarness() *harness {
	hn := &harness{
		raw:  pins.NewPins(),
		regs: registers.NewFile(),
	}
	hn.dec = spi.NewDecoder(hn.raw, hn.regs)
	return hn
}

func (hn *harness) run(ticks int) {
	for i := 0; i < ticks; i++ {
		hn.dec.Step()
	}
}

func (hn *harness) select_() {
	hn.raw.NCS = false
	hn.raw.SCLK = false
	hn.raw.SDI = false
	hn.run(halfClock)
}

func (hn *harness) deselect() {
	hn.raw.SCLK = false
	hn.raw.NCS = true
	hn.run(halfClock)
}

func (hn *harness) clockBit(v bool) {
	hn.raw.SCLK = false
	hn.raw.SDI = v
	hn.run(halfClock)
	hn.raw.SCLK = true
	hn.run(halfClock)
}

func (hn *harness) sendBits(bits uint16, n int) {
	for i := n - 1; i >= 0; i-- {
		hn.clockBit((bits>>i)&0x01 == 0x01)
	}
}

func TestCommit(t *testing.T) {
	hn := newHarness()

	hn.select_()
	hn.sendBits(0x84a5, 16) // write 0xa5 to address 0x04
	hn.deselect()

	test.ExpectEquality(t, hn.regs.Value(registers.Duty), 0xa5)
	test.ExpectEquality(t, hn.dec.State, spi.DecoderIdle)

	// frame buffer is clean after the boundary
	test.ExpectEquality(t, hn.dec.Frame.BitCount, 0)
}

func TestEdgeCount(t *testing.T) {
	hn := newHarness()

	// exactly N rising edges while selected means exactly min(N, 16) bits
	hn.select_()
	hn.sendBits(0x03ff, 10)
	test.ExpectEquality(t, hn.dec.Frame.BitCount, 10)

	// a further 10 edges saturates the counter at 16
	hn.sendBits(0x03ff, 10)
	test.ExpectEquality(t, hn.dec.Frame.BitCount, 16)

	hn.deselect()
}

func TestShortFrame(t *testing.T) {
	hn := newHarness()

	// 10 bits of what would have been a valid write to address 0x00
	hn.select_()
	hn.sendBits(0x0200, 10)
	hn.deselect()

	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		test.ExpectEquality(t, hn.regs.Value(reg), 0x00)
	}
}

func TestNoOpFrame(t *testing.T) {
	hn := newHarness()

	// complete frame but with the write flag clear
	hn.select_()
	hn.sendBits(0x04ff, 16)
	hn.deselect()

	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		test.ExpectEquality(t, hn.regs.Value(reg), 0x00)
	}
}

func TestUnmappedAddress(t *testing.T) {
	hn := newHarness()

	// write flag set, address 0x10, data 0xff
	hn.select_()
	hn.sendBits(0x90ff, 16)
	hn.deselect()

	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		test.ExpectEquality(t, hn.regs.Value(reg), 0x00)
	}
}

func TestOverlongFrame(t *testing.T) {
	hn := newHarness()

	// the first 16 bits are the frame. the 8 extra edges are ignored
	hn.select_()
	hn.sendBits(0x84a5, 16)
	hn.sendBits(0x00ff, 8)
	hn.deselect()

	test.ExpectEquality(t, hn.regs.Value(registers.Duty), 0xa5)
}

func TestAbortedFrameNotResumed(t *testing.T) {
	hn := newHarness()

	// deselection mid-frame aborts; the next selection starts from bit 0
	hn.select_()
	hn.sendBits(0x84, 8)
	hn.deselect()

	hn.select_()
	test.ExpectEquality(t, hn.dec.Frame.BitCount, 0)
	hn.sendBits(0x84a5, 16)
	hn.deselect()

	test.ExpectEquality(t, hn.regs.Value(registers.Duty), 0xa5)
}

func TestRepeatedFrame(t *testing.T) {
	hn := newHarness()

	hn.select_()
	hn.sendBits(0x81cc, 16) // write 0xcc to address 0x01
	hn.deselect()
	hn.select_()
	hn.sendBits(0x81cc, 16)
	hn.deselect()

	test.ExpectEquality(t, hn.regs.Value(registers.OutputEnableB), 0xcc)
}

func TestDecoderReset(t *testing.T) {
	hn := newHarness()

	// reset mid-frame
	hn.select_()
	hn.sendBits(0x84, 8)
	hn.dec.Reset()

	test.ExpectEquality(t, hn.dec.State, spi.DecoderIdle)
	test.ExpectEquality(t, hn.dec.Frame.BitCount, 0)

	// a subsequent complete frame is processed from a clean state. the raw
	// chip select line is still asserted so the decoder re-enters the
	// receiving state as soon as the settled value catches up
	hn.deselect()
	hn.select_()
	hn.sendBits(0x84a5, 16)
	hn.deselect()

	test.ExpectEquality(t, hn.regs.Value(registers.Duty), 0xa5)
}
