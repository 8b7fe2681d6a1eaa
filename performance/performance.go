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

// Package performance measures the throughput of the emulated peripheral. The
// peripheral is run flat out for a wall-clock duration while a stream of
// write transactions is pushed through the decoder, and the resulting tick
// rate is compared to the reference device's 10MHz clock.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/hardware/clocks"
)

// number of transactions between checks of the timer channel. checking the
// channel is expensive relative to a transaction.
const checkBrake = 100

// Check the performance of the emulation.
//
// The emulation is run for the specified duration. CPU and memory profiles
// are written as requested by the profile argument.
func Check(output io.Writer, profile Profile, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	runner := func() error {
		timesUp := make(chan bool)
		time.AfterFunc(dur, func() {
			timesUp <- true
		})

		// cycle writes around the five registers. data value is arbitrary
		// but changing, so commits actually change register state
		var address uint8
		var data uint8

		brake := 0
		done := false
		for !done {
			err := drv.Transaction(true, address, data)
			if err != nil {
				return err
			}

			address = (address + 1) % 5
			data++

			brake++
			if brake >= checkBrake {
				brake = 0
				select {
				case <-timesUp:
					done = true
				default:
				}
			}
		}

		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	ticksPerSecond := float64(per.Tick) / dur.Seconds()
	fmt.Fprintf(output, "%.0f ticks/s (%.1fx the reference %dMHz device)\n",
		ticksPerSecond, ticksPerSecond/clocks.Internal, clocks.Internal/1_000_000)

	return nil
}
