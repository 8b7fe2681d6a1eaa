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

// Package hardware ties the emulated components of the peripheral together:
// the raw input pins, the serial command decoder, the register file, the
// waveform generator and the output driver.
//
// Everything advances in lock-step on a single logical clock tick. There is
// no parallelism anywhere in the emulated device: all work for a tick
// completes before the next tick is considered. The only concession to the
// real device's two clock domains is the synchronizer in the pins package.
package hardware
