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

// Package wavwriter records the pwm output line to disk as a WAV file, one
// sample per advance of the waveform generator's period counter. The file can
// then be thrown at any audio tool to inspect the duty cycle and frequency of
// the generated waveform. Note that sample data is buffered in memory in its
// entirety and written to disk on End(); it is only suitable for short
// captures.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/quietbike/spindle/hardware/clocks"
	"github.com/quietbike/spindle/hardware/pwm"
	"github.com/quietbike/spindle/logger"
)

// one sample per advance of the pwm period counter.
const sampleFreq = clocks.Internal / pwm.Prescale

// WavWriter records the state of the pwm line.
type WavWriter struct {
	filename string
	data     []int

	// prescale phase, mirroring the one in the waveform generator
	phase int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) *WavWriter {
	return &WavWriter{
		filename: filename,
		data:     make([]int, 0),
	}
}

// Step the recorder by one tick of the internal clock. Call once per
// peripheral tick, after the peripheral's own Step().
func (aw *WavWriter) Step(line bool) {
	aw.phase++
	if aw.phase < pwm.Prescale {
		return
	}
	aw.phase = 0

	v := 0
	if line {
		v = 255
	}
	aw.data = append(aw.data, v)
}

// End writes the buffered samples to disk.
func (aw *WavWriter) End() error {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	enc := wav.NewEncoder(f, sampleFreq, 8, 1, 1)

	buf := audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleFreq,
		},
		Data:           aw.data,
		SourceBitDepth: 8,
	}

	err = enc.Write(&buf)
	if err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("wavwriter: %w", err)
	}

	err = enc.Close()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("wavwriter: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	logger.Logf("wavwriter", "%d samples written to %s", len(aw.data), aw.filename)

	return nil
}
