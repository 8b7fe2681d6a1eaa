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

// Package outputs implements the driver for the sixteen output lines of the
// peripheral. Like the pwm package it is a read-only consumer of the register
// file.
//
// Each line is gated by its bit in the output-enable registers. A line with
// its pwm-enable bit set follows the waveform generator; a line with the bit
// clear drives constantly high while enabled.
package outputs

import (
	"fmt"

	"github.com/quietbike/spindle/hardware/pwm"
	"github.com/quietbike/spindle/hardware/registers"
)

// Outputs drives the two 8-bit banks of output lines.
type Outputs struct {
	regs *registers.File
	pwm  *pwm.PWM

	// the sixteen output lines. bank A is lines 7:0, bank B is lines 15:8
	BankA uint8
	BankB uint8
}

// NewOutputs is the preferred method of initialisation for the Outputs type.
func NewOutputs(regs *registers.File, pm *pwm.PWM) *Outputs {
	out := &Outputs{
		regs: regs,
		pwm:  pm,
	}
	return out
}

// Reset drives all lines low.
func (out *Outputs) Reset() {
	out.BankA = 0x00
	out.BankB = 0x00
}

// Plumb the driver into a different register file and waveform generator.
func (out *Outputs) Plumb(regs *registers.File, pm *pwm.PWM) {
	out.regs = regs
	out.pwm = pm
}

// Step advances the driver by one tick of the internal clock. It must be
// stepped after the decoder and waveform generator so that a register
// committed on tick T is visible on the lines no later than tick T+1.
func (out *Outputs) Step() {
	var wave uint8
	if out.pwm.Output() {
		wave = 0xff
	}

	out.BankA = out.regs.Value(registers.OutputEnableA) & (^out.regs.Value(registers.PWMEnableA) | wave)
	out.BankB = out.regs.Value(registers.OutputEnableB) & (^out.regs.Value(registers.PWMEnableB) | wave)
}

func (out *Outputs) String() string {
	return fmt.Sprintf("out: bankA=%#02x bankB=%#02x", out.BankA, out.BankB)
}
