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

package pins

// Sync is a two-stage synchronizer. The value returned by Tick() is always
// exactly two ticks stale relative to the raw line. In the real silicon the
// two stages are what stops a metastable sample propagating into the decoder;
// here the delay is reproduced so that timing-sensitive behaviour (when a
// frame boundary is observed, for instance) matches the device.
type Sync struct {
	ff1 bool
	ff2 bool
}

// NewSync initialises both stages to the given value.
func NewSync(v bool) Sync {
	return Sync{ff1: v, ff2: v}
}

// Tick samples the raw value and returns the settled value for this tick. A
// raw transition at tick T is returned at tick T+2, never earlier and never
// later.
func (sy *Sync) Tick(raw bool) bool {
	settled := sy.ff2
	sy.ff2 = sy.ff1
	sy.ff1 = raw
	return settled
}
