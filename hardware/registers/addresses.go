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

package registers

// Register names one of the five storage cells in the file. The set is
// closed: the device's address space is 7 bits wide but only these five
// addresses map to anything.
type Register int

// List of valid Register values.
const (
	OutputEnableA Register = iota
	OutputEnableB
	PWMEnableA
	PWMEnableB
	Duty

	// NumRegisters is the number of registers in the file
	NumRegisters
)

func (reg Register) String() string {
	switch reg {
	case OutputEnableA:
		return "ENAA"
	case OutputEnableB:
		return "ENAB"
	case PWMEnableA:
		return "PWMA"
	case PWMEnableB:
		return "PWMB"
	case Duty:
		return "DUTY"
	}
	panic("unknown register")
}

// Wire addresses of the registers, as they appear in the address field of a
// command frame. Addresses from 0x05 up to 0x7f are syntactically valid but
// map to no register.
const (
	AddrOutputEnableA uint8 = 0x00
	AddrOutputEnableB uint8 = 0x01
	AddrPWMEnableA    uint8 = 0x02
	AddrPWMEnableB    uint8 = 0x03
	AddrDuty          uint8 = 0x04
)
