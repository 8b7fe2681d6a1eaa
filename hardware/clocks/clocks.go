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

// Package clocks defines the clock rates of the reference device.
package clocks

// Internal is the internal tick rate of the device in Hz. Every component
// advances once per tick.
const Internal = 10_000_000

// MaxSerialClock is the fastest external serial clock the decoder can track,
// in Hz. The limit follows from edge detection happening on the settled
// signal: a serial clock period must span enough internal ticks for the
// two-stage synchronizer and the edge detector to observe both halves of the
// cycle.
const MaxSerialClock = Internal / 8
