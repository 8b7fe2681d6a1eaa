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

package rewind_test

import (
	"testing"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/rewind"
	"github.com/quietbike/spindle/test"
)

func TestGotoState(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)
	rw := rewind.NewRewind(per)

	test.DemandSuccess(t, drv.Transaction(true, registers.AddrDuty, 0x40))
	idx := rw.Append()
	tick := per.Tick

	test.DemandSuccess(t, drv.Transaction(true, registers.AddrDuty, 0xc0))
	test.ExpectEquality(t, per.Regs.Value(registers.Duty), 0xc0)

	test.ExpectSuccess(t, rw.GotoState(idx))
	test.ExpectEquality(t, per.Regs.Value(registers.Duty), 0x40)
	test.ExpectEquality(t, per.Tick, tick)
}

func TestRestoredStateRuns(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)
	rw := rewind.NewRewind(per)

	rw.Append()
	test.DemandSuccess(t, rw.GotoLast())

	// the restored peripheral must decode frames as normal
	test.DemandSuccess(t, drv.Transaction(true, registers.AddrOutputEnableA, 0xaa))
	test.ExpectEquality(t, per.Regs.Value(registers.OutputEnableA), 0xaa)
}

func TestHistoryIsImmutable(t *testing.T) {
	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)
	rw := rewind.NewRewind(per)

	test.DemandSuccess(t, drv.Transaction(true, registers.AddrDuty, 0x40))
	idx := rw.Append()

	// restore twice with a run in between. the second restore must see the
	// value as stored, not as mutated by the run.
	test.DemandSuccess(t, rw.GotoState(idx))
	test.DemandSuccess(t, drv.Transaction(true, registers.AddrDuty, 0xff))
	test.DemandSuccess(t, rw.GotoState(idx))
	test.ExpectEquality(t, per.Regs.Value(registers.Duty), 0x40)
}

func TestBounds(t *testing.T) {
	per := hardware.NewPeriph()
	rw := rewind.NewRewind(per)

	test.ExpectFailure(t, rw.GotoLast())
	test.ExpectFailure(t, rw.GotoState(0))

	rw.Append()
	test.ExpectSuccess(t, rw.GotoState(0))
	test.ExpectFailure(t, rw.GotoState(1))

	rw.Reset()
	test.ExpectEquality(t, rw.NumStates(), 0)
}
