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

// Package rewind keeps a history of peripheral states. A state can be
// snapshotted at any tick boundary and the peripheral returned to it later.
//
// Restoring never hands out the stored components themselves. The stored
// state is copied and the copies plumbed into the live peripheral, so a
// history entry can be returned to any number of times.
package rewind

import (
	"fmt"

	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/hardware/pwm"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/hardware/spi"
)

// State contains snapshots of the stateful areas of the peripheral. They can
// be read for reference.
type State struct {
	SPI  *spi.Decoder
	Regs *registers.File
	PWM  *pwm.PWM
	Tick uint64
}

func (s *State) String() string {
	return fmt.Sprintf("tick %d", s.Tick)
}

// the maximum number of entries to store before the earliest entries are
// forgotten.
const maxEntries = 200

// Rewind contains a history of peripheral states.
type Rewind struct {
	per     *hardware.Periph
	entries []*State
}

// NewRewind is the preferred method of initialisation for the Rewind type.
func NewRewind(per *hardware.Periph) *Rewind {
	return &Rewind{
		per:     per,
		entries: make([]*State, 0, maxEntries),
	}
}

// Reset the rewind system, forgetting all history.
func (r *Rewind) Reset() {
	r.entries = r.entries[:0]
}

// Append the current state of the peripheral to the history. Returns the
// index of the new entry.
func (r *Rewind) Append() int {
	s := &State{
		SPI:  r.per.SPI.Snapshot(),
		Regs: r.per.Regs.Snapshot(),
		PWM:  r.per.PWM.Snapshot(),
		Tick: r.per.Tick,
	}

	if len(r.entries) >= maxEntries {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:maxEntries-1]
	}
	r.entries = append(r.entries, s)

	return len(r.entries) - 1
}

// NumStates returns the number of entries in the history.
func (r *Rewind) NumStates() int {
	return len(r.entries)
}

// Peek at the entry at the given index.
func (r *Rewind) Peek(idx int) (*State, error) {
	if idx < 0 || idx >= len(r.entries) {
		return nil, fmt.Errorf("rewind: no state %d (%d states stored)", idx, len(r.entries))
	}
	return r.entries[idx], nil
}

// GotoState returns the peripheral to the state at the given index.
func (r *Rewind) GotoState(idx int) error {
	s, err := r.Peek(idx)
	if err != nil {
		return err
	}
	r.plumb(s)
	return nil
}

// GotoLast returns the peripheral to the most recently stored state.
func (r *Rewind) GotoLast() error {
	return r.GotoState(len(r.entries) - 1)
}

func (r *Rewind) plumb(s *State) {
	// copies keep the stored entry untouchable by the running peripheral
	r.per.Regs = s.Regs.Snapshot()
	r.per.SPI = s.SPI.Snapshot()
	r.per.PWM = s.PWM.Snapshot()

	r.per.SPI.Plumb(r.per.Pins, r.per.Regs)
	r.per.PWM.Plumb(r.per.Regs)
	r.per.Out.Plumb(r.per.Regs, r.per.PWM)

	r.per.Tick = s.Tick
}
