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

package hardware

import (
	"fmt"
	"strings"

	"github.com/quietbike/spindle/hardware/outputs"
	"github.com/quietbike/spindle/hardware/pins"
	"github.com/quietbike/spindle/hardware/pwm"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/hardware/spi"
)

// Periph is the main container for the emulated components of the peripheral.
type Periph struct {
	// the raw input lines. the host side of the link changes these at will
	Pins *pins.Pins

	SPI  *spi.Decoder
	Regs *registers.File
	PWM  *pwm.PWM
	Out  *outputs.Outputs

	// number of ticks since power-on or the last reset
	Tick uint64
}

// NewPeriph creates the peripheral and everything associated with it, in its
// power-on state.
func NewPeriph() *Periph {
	per := &Periph{
		Pins: pins.NewPins(),
		Regs: registers.NewFile(),
	}
	per.SPI = spi.NewDecoder(per.Pins, per.Regs)
	per.PWM = pwm.NewPWM(per.Regs)
	per.Out = outputs.NewOutputs(per.Regs, per.PWM)
	return per
}

// Step advances the peripheral by one tick of the internal clock.
//
// Ordering within the tick matters: the decoder synchronizes, samples and
// evaluates the frame boundary before the register consumers run, so a value
// committed on tick T is visible on the output lines no later than tick T+1.
func (per *Periph) Step() {
	per.SPI.Step()
	per.PWM.Step()
	per.Out.Step()
	per.Tick++
}

// Run the peripheral for the given number of ticks.
func (per *Periph) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		per.Step()
	}
}

// Reset emulates the system-wide reset line. All internal state (synchronizer
// stages, frame buffer, bit counter) and all five registers return to their
// zero/idle defaults. Normal operation resumes on the next Step().
func (per *Periph) Reset() {
	per.SPI.Reset()
	per.Regs.Reset()
	per.PWM.Reset()
	per.Out.Reset()
	per.Tick = 0
}

func (per *Periph) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("tick %d\n", per.Tick))
	s.WriteString(per.SPI.String())
	s.WriteString("\n")
	s.WriteString(per.Regs.String())
	s.WriteString("\n")
	s.WriteString(per.PWM.String())
	s.WriteString("\n")
	s.WriteString(per.Out.String())
	return s.String()
}
