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

package hardware_test

import (
	"testing"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/hardware/pwm"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/test"
)

func TestRoundTrip(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	test.DemandSuccess(t, drv.Transaction(true, 0x04, 0xa5))

	test.ExpectEquality(t, per.Regs.Value(registers.Duty), 0xa5)
	test.ExpectEquality(t, per.Regs.Value(registers.OutputEnableA), 0x00)
	test.ExpectEquality(t, per.Regs.Value(registers.OutputEnableB), 0x00)
	test.ExpectEquality(t, per.Regs.Value(registers.PWMEnableA), 0x00)
	test.ExpectEquality(t, per.Regs.Value(registers.PWMEnableB), 0x00)
}

func TestOutputLines(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	test.DemandSuccess(t, drv.Transaction(true, 0x00, 0xf0))
	test.ExpectEquality(t, per.Out.BankA, 0xf0)

	test.DemandSuccess(t, drv.Transaction(true, 0x01, 0xcc))
	test.ExpectEquality(t, per.Out.BankB, 0xcc)
}

func TestIdempotentRepeat(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	test.DemandSuccess(t, drv.Transaction(true, 0x02, 0x3c))
	once := per.Regs.Value(registers.PWMEnableA)

	test.DemandSuccess(t, drv.Transaction(true, 0x02, 0x3c))
	test.ExpectEquality(t, per.Regs.Value(registers.PWMEnableA), once)
	test.ExpectEquality(t, once, 0x3c)
}

func TestPWMThroughDevice(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	// enable line 0 for output and pwm, then set a full duty cycle
	test.DemandSuccess(t, drv.Transaction(true, 0x00, 0x01))
	test.DemandSuccess(t, drv.Transaction(true, 0x02, 0x01))
	test.DemandSuccess(t, drv.Transaction(true, 0x04, 0xff))

	// after a full waveform period the line is high and stays high
	per.Run(pwm.Prescale * 256)
	test.ExpectEquality(t, per.Out.BankA, 0x01)

	// duty of zero takes the line low again
	test.DemandSuccess(t, drv.Transaction(true, 0x04, 0x00))
	per.Run(pwm.Prescale * 256)
	test.ExpectEquality(t, per.Out.BankA, 0x00)
}

func TestResetDominance(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	test.DemandSuccess(t, drv.Transaction(true, 0x03, 0xff))

	// reset mid-frame
	drv.Select()
	drv.SendBits(0x84, 8)
	per.Reset()

	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		test.ExpectEquality(t, per.Regs.Value(reg), 0x00)
	}
	test.ExpectEquality(t, per.SPI.Frame.BitCount, 0)
	test.ExpectEquality(t, per.Tick, 0)

	// and a subsequent frame is processed correctly from the clean state
	drv.Deselect()
	test.DemandSuccess(t, drv.Transaction(true, 0x04, 0x5a))
	test.ExpectEquality(t, per.Regs.Value(registers.Duty), 0x5a)
}

func TestBadAddress(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	// the driver refuses addresses that don't fit in 7 bits
	test.ExpectFailure(t, drv.Transaction(true, 0x80, 0x00))

	// a syntactically valid but unmapped address goes over the wire and is
	// silently dropped by the device
	test.DemandSuccess(t, drv.Transaction(true, 0x10, 0xff))
	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		test.ExpectEquality(t, per.Regs.Value(reg), 0x00)
	}
}
