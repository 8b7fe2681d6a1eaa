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

package spi

import "fmt"

// number of bits in a command frame: write flag + 7-bit address + 8-bit data.
const frameBits = 16

// masks into the completed frame value.
const (
	maskWriteFlag = 0x8000
	maskAddress   = 0x7f00
	maskData      = 0x00ff
)

// Frame is the assembly buffer for the command currently being received.
// Bits arrive MSB first: the first bit received ends up in the top bit of the
// final value.
type Frame struct {
	// the bits received so far, most recent in the least significant position
	Bits uint16

	// the number of bits accepted into the buffer for the current frame.
	// saturates at frameBits: an over-long select period cannot corrupt the
	// buffer
	BitCount int
}

// push the sampled bit into the buffer. bits arriving after the buffer is
// full are ignored.
func (fr *Frame) push(v bool) {
	if fr.BitCount >= frameBits {
		return
	}
	fr.Bits <<= 1
	if v {
		fr.Bits |= 0x01
	}
	fr.BitCount++
}

// reset the buffer ready for a new frame.
func (fr *Frame) reset() {
	fr.Bits = 0
	fr.BitCount = 0
}

// Complete is true if a full frame has been received.
func (fr Frame) Complete() bool {
	return fr.BitCount == frameBits
}

// WriteFlag is the value of bit 15 of the frame. A frame with the write flag
// clear is decoded but never committed.
func (fr Frame) WriteFlag() bool {
	return fr.Bits&maskWriteFlag == maskWriteFlag
}

// Address is the 7-bit register address in bits 14 to 8 of the frame.
func (fr Frame) Address() uint8 {
	return uint8((fr.Bits & maskAddress) >> 8)
}

// Data is the 8-bit value in the low byte of the frame.
func (fr Frame) Data() uint8 {
	return uint8(fr.Bits & maskData)
}

func (fr Frame) String() string {
	if !fr.Complete() {
		return fmt.Sprintf("%d bits of %#04x", fr.BitCount, fr.Bits)
	}
	w := "no-op"
	if fr.WriteFlag() {
		w = "write"
	}
	return fmt.Sprintf("%s %#02x to address %#02x", w, fr.Data(), fr.Address())
}
