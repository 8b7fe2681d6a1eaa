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

// Package driver bit-bangs the raw input lines of the peripheral, playing the
// part of the controller on the far side of the serial link. It is the only
// package that changes the raw pin state.
//
// The driver is deliberately dumb: it toggles lines and steps the peripheral,
// nothing more. There is no feedback path from the peripheral to the driver
// because the protocol has none.
package driver

import (
	"fmt"

	"github.com/quietbike/spindle/hardware"
)

// number of ticks per half period of the serial clock if nothing else is
// specified. the serial clock period must span enough internal ticks for the
// synchronizers and the edge detector (see clocks.MaxSerialClock); four ticks
// per half period is the practical floor and this default is comfortably
// above it.
const defaultHalfClock = 8

// Driver drives the raw input lines of a peripheral.
type Driver struct {
	per *hardware.Periph

	// HalfClock is the number of internal ticks the driver holds each level
	// of the serial clock
	HalfClock int

	// OnTick is called after every internal tick the driver causes. used to
	// tap the output lines, for WAV capture and the like. may be nil.
	OnTick func()
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(per *hardware.Periph) *Driver {
	return &Driver{
		per:       per,
		HalfClock: defaultHalfClock,
	}
}

func (drv *Driver) run(ticks int) {
	if drv.OnTick == nil {
		drv.per.Run(ticks)
		return
	}
	for i := 0; i < ticks; i++ {
		drv.per.Step()
		drv.OnTick()
	}
}

// Idle steps the peripheral with the lines deselected and quiet.
func (drv *Driver) Idle(ticks int) {
	drv.per.Pins.NCS = true
	drv.per.Pins.SCLK = false
	drv.per.Pins.SDI = false
	drv.run(ticks)
}

// Select asserts the chip select line and waits for the peripheral to settle.
func (drv *Driver) Select() {
	drv.per.Pins.NCS = false
	drv.per.Pins.SCLK = false
	drv.per.Pins.SDI = false
	drv.run(drv.HalfClock)
}

// Deselect deasserts the chip select line and waits long enough for the
// frame boundary to be observed through the synchronizers.
func (drv *Driver) Deselect() {
	drv.per.Pins.SCLK = false
	drv.per.Pins.NCS = true
	drv.run(drv.HalfClock)
}

// ClockBit presents the bit on the data line during the low half of the
// serial clock and raises the clock for the second half. The peripheral
// samples on the rising edge.
func (drv *Driver) ClockBit(v bool) {
	drv.per.Pins.SCLK = false
	drv.per.Pins.SDI = v
	drv.run(drv.HalfClock)
	drv.per.Pins.SCLK = true
	drv.run(drv.HalfClock)
}

// SendBits clocks the low n bits of the value, most significant first.
func (drv *Driver) SendBits(bits uint16, n int) {
	for i := n - 1; i >= 0; i-- {
		drv.ClockBit((bits>>i)&0x01 == 0x01)
	}
}

// Transaction sends one complete 16-bit command frame: the write flag, the
// 7-bit address and the 8-bit data value, then deselects. The address must
// fit in 7 bits.
func (drv *Driver) Transaction(write bool, address uint8, data uint8) error {
	if address > 0x7f {
		return fmt.Errorf("driver: address %#02x is not a 7-bit value", address)
	}

	var frame uint16
	if write {
		frame |= 0x8000
	}
	frame |= uint16(address) << 8
	frame |= uint16(data)

	drv.Select()
	drv.SendBits(frame, 16)
	drv.Deselect()

	return nil
}
