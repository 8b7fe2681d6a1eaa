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

// Package pwm implements the duty-cycle waveform generator. It is a consumer
// of the register file: the generator reads the DUTY register and drives a
// single output line. It never writes to the register file.
package pwm

import (
	"fmt"

	"github.com/quietbike/spindle/hardware/clocks"
	"github.com/quietbike/spindle/hardware/registers"
)

// Prescale divides the internal tick before it reaches the 8-bit period
// counter. With the reference 10MHz internal clock this gives a waveform
// frequency of clocks.Internal / (Prescale * 256), close to the 3kHz of the
// real device.
const Prescale = 13

// Freq is the frequency of the generated waveform in Hz.
const Freq = clocks.Internal / (Prescale * 256)

// PWM is the duty-cycle waveform generator.
type PWM struct {
	regs *registers.File

	// prescale phase. the period counter advances when this wraps
	phase int

	// 8-bit period counter. wraps naturally
	counter uint8

	out bool
}

// NewPWM is the preferred method of initialisation for the PWM type.
func NewPWM(regs *registers.File) *PWM {
	pm := &PWM{regs: regs}
	pm.Reset()
	return pm
}

// Reset the generator to its power-on state: counter at zero, output low.
func (pm *PWM) Reset() {
	pm.phase = 0
	pm.counter = 0
	pm.out = false
}

// Snapshot returns a copy of the generator in its current state.
func (pm *PWM) Snapshot() *PWM {
	cp := *pm
	return &cp
}

// Plumb the generator into a different register file.
func (pm *PWM) Plumb(regs *registers.File) {
	pm.regs = regs
}

// Step advances the generator by one tick of the internal clock.
func (pm *PWM) Step() {
	pm.phase++
	if pm.phase < Prescale {
		return
	}
	pm.phase = 0

	duty := pm.regs.Value(registers.Duty)

	// 0xff means 100%: the line never drops. without the special case the
	// counter comparison would leave the line low for one count in 256
	pm.out = duty == 0xff || pm.counter < duty

	pm.counter++
}

// Output is the current state of the generated line.
func (pm *PWM) Output() bool {
	return pm.out
}

func (pm *PWM) String() string {
	duty := pm.regs.Value(registers.Duty)
	return fmt.Sprintf("pwm: duty=%#02x (%.1f%%) freq=%dHz", duty, float64(duty)/255*100, Freq)
}
