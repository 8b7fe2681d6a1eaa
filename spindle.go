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

package main

import (
	"fmt"
	"os"

	"github.com/quietbike/spindle/driver"
	"github.com/quietbike/spindle/hardware"
	"github.com/quietbike/spindle/logger"
	"github.com/quietbike/spindle/macro"
	"github.com/quietbike/spindle/modalflag"
	"github.com/quietbike/spindle/monitor"
	"github.com/quietbike/spindle/performance"
	"github.com/quietbike/spindle/statsview"
	"github.com/quietbike/spindle/version"
	"github.com/quietbike/spindle/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = monitorMode(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")
	wav := md.AddString("wav", "", "record PWM output to wav file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("macro script required for %s mode", md)
	case 1:
		per := hardware.NewPeriph()
		drv := driver.NewDriver(per)

		// add wavwriter tap if wav argument has been specified
		if *wav != "" {
			aw := wavwriter.New(*wav)
			drv.OnTick = func() {
				aw.Step(per.PWM.Output())
			}
			defer func() {
				if err := aw.End(); err != nil {
					fmt.Printf("* error writing wav file: %s\n", err)
				}
			}()
		}

		mcr, err := macro.NewMacro(md.GetArg(0), per, drv)
		if err != nil {
			return err
		}

		if err := mcr.Run(); err != nil {
			return err
		}

		fmt.Println(per.String())

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	per := hardware.NewPeriph()
	drv := driver.NewDriver(per)

	mon, err := monitor.NewMonitor(per, drv)
	if err != nil {
		return err
	}

	return mon.Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run through profiler: command separated CPU, MEM or ALL")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview support not compiled into this binary")
		}
		statsview.Launch(md.Output)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, *duration)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	vrs, rev, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, vrs)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
