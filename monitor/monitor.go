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

// Package monitor implements an interactive terminal for poking at a live
// peripheral. It supports color output and command history.
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/bradleyjkemp/memviz"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/logger"
	"github.com/quietbike/spindle/monitor/easyterm"
	"github.com/quietbike/spindle/monitor/easyterm/ansi"
	"github.com/quietbike/spindle/rewind"
	"github.com/quietbike/spindle/wavwriter"
)

const maxInputLen = 255

// Monitor is an interactive session with a peripheral. all stimulus goes
// through the line driver so timing is always realistic.
type Monitor struct {
	easyterm.Terminal

	per *hardware.Periph
	drv *driver.Driver
	rew *rewind.Rewind

	reader  *bufio.Reader
	history []string

	running bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(per *hardware.Periph, drv *driver.Driver) (*Monitor, error) {
	mon := &Monitor{
		per: per,
		drv: drv,
		rew: rewind.NewRewind(per),
	}

	err := mon.Terminal.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}

	mon.reader = bufio.NewReader(os.Stdin)
	mon.history = make([]string, 0)

	return mon, nil
}

// Run is the monitor's main loop. it returns when the user quits the session
// or when input reaches EOF.
func (mon *Monitor) Run() error {
	defer mon.Terminal.CleanUp()

	mon.running = true
	for mon.running {
		input, err := mon.readLine()
		if err != nil {
			if err == io.EOF {
				mon.TermPrint("\n")
				return nil
			}
			return err
		}

		if err := mon.dispatch(input); err != nil {
			mon.TermPrint("%s%v%s\n", ansi.Pens["red"], err, ansi.NormalPen)
		}
	}

	return nil
}

// readLine reads a single command in raw mode. supports backspace and
// history recall with the cursor keys.
func (mon *Monitor) readLine() (string, error) {
	mon.RawMode()
	defer mon.CanonicalMode()

	prompt := fmt.Sprintf("%s[%d] >>%s ", ansi.PenStyles["bold"], mon.per.Tick, ansi.NormalPen)

	input := make([]rune, 0, maxInputLen)
	history := len(mon.history)

	for {
		mon.TermPrint("\r%s%s%s", ansi.ClearLine, prompt, string(input))

		r, _, err := mon.reader.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyInterrupt:
			mon.TermPrint("\n")
			return "", io.EOF

		case easyterm.KeyCarriageReturn:
			mon.TermPrint("\n")
			s := strings.TrimSpace(string(input))
			if s != "" && (len(mon.history) == 0 || mon.history[len(mon.history)-1] != s) {
				mon.history = append(mon.history, s)
			}
			return s, nil

		case easyterm.KeyBackspace, easyterm.KeyDelete:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}

		case easyterm.KeyEsc:
			r, _, err := mon.reader.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				continue
			}
			r, _, err = mon.reader.ReadRune()
			if err != nil {
				return "", err
			}
			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					history--
					input = append(input[:0], []rune(mon.history[history])...)
				}
			case easyterm.CursorDown:
				if history < len(mon.history)-1 {
					history++
					input = append(input[:0], []rune(mon.history[history])...)
				} else {
					history = len(mon.history)
					input = input[:0]
				}
			}

		default:
			if unicode.IsPrint(r) && len(input) < maxInputLen {
				input = append(input, r)
			}
		}
	}
}

func (mon *Monitor) dispatch(input string) error {
	tok := strings.Fields(input)
	if len(tok) == 0 {
		return nil
	}

	switch strings.ToUpper(tok[0]) {
	case "STEP":
		ticks := 1
		if len(tok) > 1 {
			var err error
			ticks, err = strconv.Atoi(tok[1])
			if err != nil || ticks < 1 {
				return fmt.Errorf("STEP: not a tick count: %s", tok[1])
			}
		}
		mon.drv.Idle(ticks)
		mon.TermPrint("%s\n", mon.per.String())

	case "WRITE":
		return mon.transaction(true, tok)

	case "NOOP":
		return mon.transaction(false, tok)

	case "REGS":
		mon.TermPrint("%s\n", mon.per.Regs.String())

	case "SPI":
		mon.TermPrint("%s\n", mon.per.SPI.String())

	case "PWM":
		mon.TermPrint("%s\n", mon.per.PWM.String())

	case "OUT":
		mon.TermPrint("%s\n", mon.per.Out.String())

	case "RESET":
		mon.per.Reset()
		mon.TermPrint("%speripheral reset%s\n", ansi.Pens["yellow"], ansi.NormalPen)

	case "SNAP":
		idx := mon.rew.Append()
		mon.TermPrint("state %d stored (tick %d)\n", idx, mon.per.Tick)

	case "BACK":
		if len(tok) > 2 {
			return fmt.Errorf("BACK: takes at most one state index")
		}
		if len(tok) == 2 {
			idx, err := strconv.Atoi(tok[1])
			if err != nil {
				return fmt.Errorf("BACK: not a state index: %s", tok[1])
			}
			if err := mon.rew.GotoState(idx); err != nil {
				return err
			}
		} else {
			if err := mon.rew.GotoLast(); err != nil {
				return err
			}
		}
		mon.TermPrint("%s\n", mon.per.String())

	case "WAV":
		if len(tok) != 3 {
			return fmt.Errorf("WAV: requires a filename and a tick count")
		}
		ticks, err := strconv.Atoi(tok[2])
		if err != nil || ticks < 1 {
			return fmt.Errorf("WAV: not a tick count: %s", tok[2])
		}
		return mon.capture(tok[1], ticks)

	case "VIZ":
		if len(tok) != 2 {
			return fmt.Errorf("VIZ: requires a filename")
		}
		return mon.visualise(tok[1])

	case "LOG":
		logger.Tail(os.Stdout, 10)

	case "HELP":
		mon.TermPrint("%s", helpText)

	case "QUIT":
		mon.running = false

	default:
		return fmt.Errorf("unrecognised command: %s", tok[0])
	}

	return nil
}

// transaction parses the address and data arguments common to the WRITE and
// NOOP commands and drives the frame onto the serial lines.
func (mon *Monitor) transaction(write bool, tok []string) error {
	if len(tok) != 3 {
		return fmt.Errorf("%s: requires an address and a data value", tok[0])
	}

	address, err := strconv.ParseUint(tok[1], 0, 8)
	if err != nil {
		return fmt.Errorf("%s: not an address: %s", tok[0], tok[1])
	}
	data, err := strconv.ParseUint(tok[2], 0, 8)
	if err != nil {
		return fmt.Errorf("%s: not a data value: %s", tok[0], tok[2])
	}

	if err := mon.drv.Transaction(write, uint8(address), uint8(data)); err != nil {
		return err
	}

	mon.TermPrint("%s\n", mon.per.Regs.String())
	return nil
}

// capture runs the peripheral for the specified number of ticks, recording
// the PWM line to a WAV file.
func (mon *Monitor) capture(filename string, ticks int) error {
	aw := wavwriter.New(filename)
	for i := 0; i < ticks; i++ {
		mon.per.Step()
		aw.Step(mon.per.PWM.Output())
	}
	if err := aw.End(); err != nil {
		return err
	}
	mon.TermPrint("%d ticks captured to %s\n", ticks, filename)
	return nil
}

// visualise writes a graphviz dot rendering of the peripheral's internal
// state to the specified file.
func (mon *Monitor) visualise(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("VIZ: %w", err)
	}
	defer f.Close()

	memviz.Map(f, mon.per)
	mon.TermPrint("peripheral state written to %s\n", filename)
	return nil
}

const helpText = `STEP [n]          run the peripheral for n ticks (default 1)
WRITE addr data   drive a write frame onto the serial lines
NOOP addr data    drive a frame with the write flag clear
REGS              print the register file
SPI               print the decoder state
PWM               print the waveform generator state
OUT               print the output banks
RESET             reset the peripheral
SNAP              store the current peripheral state
BACK [n]          return to the last stored state, or to state n
WAV file n        run for n ticks, capturing the PWM line to a WAV file
VIZ file          write a graphviz dot rendering of peripheral state
LOG               print the most recent log entries
HELP              print this help
QUIT              end the session
`
