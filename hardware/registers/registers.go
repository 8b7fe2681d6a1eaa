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

// Package registers implements the file of five 8-bit registers that the
// serial decoder commits to and that the output drivers read from.
//
// The file has a single writer (the decoder's commit step) and any number of
// readers. A register changes value at most once per completed, well-formed
// frame and the change is a whole byte: no reader ever sees a partial write.
package registers

import (
	"fmt"
	"strings"
)

// File is the register file. The zero value is ready to use, with every
// register at its reset value of 0x00.
type File struct {
	values [NumRegisters]uint8
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile() *File {
	return &File{}
}

// Snapshot returns a copy of the file.
func (fl *File) Snapshot() *File {
	cp := *fl
	return &cp
}

// Reset returns every register to its reset value of 0x00.
func (fl *File) Reset() {
	for i := range fl.values {
		fl.values[i] = 0x00
	}
}

// Write the value to the register at the given wire address. Returns false if
// the address maps to no register, in which case the write is a no-op. The
// protocol has no error channel so an unmapped write is not an error.
func (fl *File) Write(address uint8, data uint8) bool {
	if address >= uint8(NumRegisters) {
		return false
	}
	fl.values[address] = data
	return true
}

// Value returns the current value of the named register: the last committed
// value, or the reset value of 0x00 if the register has never been written.
func (fl *File) Value(reg Register) uint8 {
	return fl.values[reg]
}

func (fl *File) String() string {
	s := strings.Builder{}
	for reg := Register(0); reg < NumRegisters; reg++ {
		s.WriteString(fmt.Sprintf("%s=%#02x ", reg, fl.values[reg]))
	}
	return strings.TrimSpace(s.String())
}
