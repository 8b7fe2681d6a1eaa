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

// Package macro runs a script of instructions against the peripheral. Macro
// scripts are useful for reproducing a sequence of transactions without
// typing them into the monitor, and for capturing the pwm line over a
// scripted scenario.
//
// The file format is line based. The first line must be the header
// "spindlemacro" and the second line the version of the format. After that,
// one instruction per line:
//
//	write <address> <data>    send a write frame (hex arguments)
//	noop <address> <data>     send a frame with the write flag clear
//	tick <n>                  advance the peripheral n ticks (decimal)
//	halfclock <n>             change the serial clock half period
//	reset                     assert the system reset line
//	assert <reg> <data>       fail unless the register holds the value
//
// Blank lines and lines beginning with # are ignored.
package macro

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/hardware/registers"
	"github.com/quietbike/spindle/logger"
)

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "spindlemacro"

var supportedVersions = []string{"v1"}

// Macro is a sequence of instructions to run against a peripheral.
type Macro struct {
	per *hardware.Periph
	drv *driver.Driver

	filename     string
	instructions []string
}

// NewMacro is the preferred method of initialisation for the Macro type.
func NewMacro(filename string, per *hardware.Periph, drv *driver.Driver) (*Macro, error) {
	mcr := &Macro{
		per:      per,
		drv:      drv,
		filename: filename,
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("macro: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < headerNumLines {
		return nil, fmt.Errorf("macro: %s: not a macro file", filename)
	}

	if strings.TrimSpace(lines[headerLineID]) != headerID {
		return nil, fmt.Errorf("macro: %s: not a macro file", filename)
	}

	version := strings.TrimSpace(lines[headerLineVersion])
	ok := false
	for _, v := range supportedVersions {
		if version == v {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("macro: %s: unsupported version (%s)", filename, version)
	}

	mcr.instructions = lines[headerNumLines:]

	return mcr, nil
}

// Run the macro to completion.
func (mcr *Macro) Run() error {
	logger.Logf("macro", "running %s", mcr.filename)

	for i, ins := range mcr.instructions {
		// line numbering is 1-based and includes the header
		ln := i + headerNumLines + 1

		err := mcr.runInstruction(ins)
		if err != nil {
			return fmt.Errorf("macro: %s: line %d: %w", mcr.filename, ln, err)
		}
	}

	return nil
}

func (mcr *Macro) runInstruction(ins string) error {
	toks := strings.Fields(ins)
	if len(toks) == 0 || strings.HasPrefix(toks[0], "#") {
		return nil
	}

	switch strings.ToLower(toks[0]) {
	case "write":
		address, data, err := frameArgs(toks[1:])
		if err != nil {
			return err
		}
		return mcr.drv.Transaction(true, address, data)

	case "noop":
		address, data, err := frameArgs(toks[1:])
		if err != nil {
			return err
		}
		return mcr.drv.Transaction(false, address, data)

	case "tick":
		if len(toks) != 2 {
			return fmt.Errorf("tick requires one argument")
		}
		n, err := strconv.Atoi(toks[1])
		if err != nil || n < 1 {
			return fmt.Errorf("unusable tick count (%s)", toks[1])
		}
		mcr.drv.Idle(n)

	case "halfclock":
		if len(toks) != 2 {
			return fmt.Errorf("halfclock requires one argument")
		}
		n, err := strconv.Atoi(toks[1])
		if err != nil || n < 4 {
			return fmt.Errorf("unusable halfclock value (%s)", toks[1])
		}
		mcr.drv.HalfClock = n

	case "reset":
		if len(toks) != 1 {
			return fmt.Errorf("reset takes no arguments")
		}
		mcr.per.Reset()

	case "assert":
		if len(toks) != 3 {
			return fmt.Errorf("assert requires a register and a data value")
		}
		reg, err := parseRegister(toks[1])
		if err != nil {
			return err
		}
		data, err := strconv.ParseUint(strings.TrimPrefix(toks[2], "0x"), 16, 8)
		if err != nil {
			return fmt.Errorf("unusable data value (%s)", toks[2])
		}
		if v := mcr.per.Regs.Value(reg); v != uint8(data) {
			return fmt.Errorf("assert failed: %s is 0x%02x, expected 0x%02x", reg, v, data)
		}

	default:
		return fmt.Errorf("unrecognised instruction (%s)", toks[0])
	}

	return nil
}

// parseRegister accepts either a register name, as printed by the monitor,
// or a hexadecimal wire address.
func parseRegister(tok string) (registers.Register, error) {
	for reg := registers.Register(0); reg < registers.NumRegisters; reg++ {
		if strings.EqualFold(tok, reg.String()) {
			return reg, nil
		}
	}

	address, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 8)
	if err != nil || address >= uint64(registers.NumRegisters) {
		return 0, fmt.Errorf("unusable register (%s)", tok)
	}
	return registers.Register(address), nil
}

// frameArgs parses the two hexadecimal arguments of the write and noop
// instructions.
func frameArgs(toks []string) (uint8, uint8, error) {
	if len(toks) != 2 {
		return 0, 0, fmt.Errorf("expected address and data arguments")
	}

	address, err := strconv.ParseUint(strings.TrimPrefix(toks[0], "0x"), 16, 8)
	if err != nil || address > 0x7f {
		return 0, 0, fmt.Errorf("unusable address (%s)", toks[0])
	}

	data, err := strconv.ParseUint(strings.TrimPrefix(toks[1], "0x"), 16, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("unusable data value (%s)", toks[1])
	}

	return uint8(address), uint8(data), nil
}
