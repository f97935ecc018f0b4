// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jetsetilly/gopher80/cmdfile"
	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopher80/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/diskimage"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/clocks"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/medialoader"
	"github.com/jetsetilly/gopher80/modalflag"
	"github.com/jetsetilly/gopher80/paths"
	"github.com/jetsetilly/gopher80/performance"
	"github.com/jetsetilly/gopher80/prefs"
	"github.com/jetsetilly/gopher80/statsview"
	"github.com/jetsetilly/gopher80/version"
	"golang.org/x/term"
)

const defaultInitScript = "debuggerInit"

// exit values.
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch the program with the command line arguments. the return value is the
// exit value for the process.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DISASM", "CMDINFO", "DISK", "STATE", "PERFORMANCE", "VERSION")

	cmdlinePrefs := md.AddString("prefs", "", "preference overrides (eg. \"emulation.throttle::false; debugger.colour::false\")")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if *cmdlinePrefs != "" {
		prefs.PushCommandLineStack(*cmdlinePrefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Fprintf(output, "! unused preferences: %s\n", unused)
			}
		}()
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md, output)
	case "CMDINFO":
		err = cmdInfo(md, output)
	case "DISK":
		err = disk(md, output)
	case "STATE":
		err = state(md, output)
	case "PERFORMANCE":
		err = perform(md, output)
	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitModeError
	}

	return exitOK
}

// newComputer creates a computer with the preferences found on disk. if rom
// is not empty it replaces the ROM preference for this session.
func newComputer(rom string, throttle bool) (*hardware.Computer, error) {
	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}
	if rom != "" {
		if err := p.ROM.Set(rom); err != nil {
			return nil, err
		}
	}
	if err := p.Throttle.Set(throttle); err != nil {
		return nil, err
	}
	return hardware.NewComputer(p)
}

// attach every remaining argument to the computer.
func attachMedia(comp *hardware.Computer, md *modalflag.Modes) error {
	for _, fn := range md.RemainingArgs() {
		ld := medialoader.NewLoader(fn)
		if err := comp.AttachMedia(&ld); err != nil {
			return err
		}
	}
	return nil
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Media files (CMD, DSK, WAV, MP3, ROM) are attached in the order given.")

	rom := md.AddString("rom", "", "ROM file (overrides the emulation.rom preference)")
	duration := md.AddDuration("duration", 0, "amount of emulated time to run for (0 runs until interrupted)")
	throttle := md.AddBool("throttle", true, "run at the speed of the real machine")
	save := md.AddString("save", "", "save machine state to file at end of run")
	load := md.AddString("load", "", "load machine state from file before running")
	screen := md.AddBool("screen", false, "print the contents of video memory at end of run")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(output), false)
	}

	comp, err := newComputer(*rom, *throttle)
	if err != nil {
		return err
	}

	if err := attachMedia(comp, md); err != nil {
		return err
	}

	if *load != "" {
		if err := comp.LoadState(*load); err != nil {
			return err
		}
	}

	// ctrl-c stops the emulation gracefully so that the state can be saved
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		if _, ok := <-intChan; ok {
			comp.Stop()
		}
	}()

	if *duration > 0 {
		ticks := clocks.MicrosecondsToTicks(uint64(duration.Microseconds()))
		err = comp.RunForTicks(ticks, nil)
	} else {
		err = comp.Run(nil)
	}
	if err != nil {
		return err
	}

	if *screen {
		for _, l := range comp.Report().Video.Lines() {
			fmt.Fprintf(output, "|%s\n", l)
		}
	}

	if *save != "" {
		return comp.SaveState(*save)
	}

	return nil
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	rom := md.AddString("rom", "", "ROM file (overrides the emulation.rom preference)")
	duration := md.AddDuration("duration", 5*time.Second, "run duration (not including a two second lead time)")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma separated)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(output), false)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	comp, err := newComputer(*rom, false)
	if err != nil {
		return err
	}

	if err := attachMedia(comp, md); err != nil {
		return err
	}

	return performance.Check(output, prf, comp, *duration)
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	defInitScript, err := paths.ResourcePath("", defaultInitScript)
	if err != nil {
		return err
	}

	rom := md.AddString("rom", "", "ROM file (overrides the emulation.rom preference)")
	termType := md.AddString("term", "AUTO", "terminal type to use in debug mode: AUTO, COLOR, PLAIN")
	initScript := md.AddString("initscript", defInitScript, "script to run on debugger start")
	throttle := md.AddBool("throttle", false, "run at the speed of the real machine")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbgPrefs, err := debugger.NewPreferences()
	if err != nil {
		return err
	}

	var trm terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to AUTO\n", *termType)
		fallthrough
	case "AUTO":
		if dbgPrefs.Colour.Get().(bool) && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			trm = colorterm.NewColorTerminal(debugger.Commands)
		} else {
			trm = plainterm.NewPlainTerminal(nil, nil)
		}
	case "COLOR":
		trm = colorterm.NewColorTerminal(debugger.Commands)
	case "PLAIN":
		trm = plainterm.NewPlainTerminal(nil, nil)
	}

	comp, err := newComputer(*rom, *throttle)
	if err != nil {
		return err
	}

	if err := attachMedia(comp, md); err != nil {
		return err
	}

	dbg, err := debugger.NewDebugger(comp, trm, dbgPrefs)
	if err != nil {
		return err
	}

	return dbg.Start(*initScript)
}

func disasm(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("With no load file the instruction set is listed.")

	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	cycles := md.AddBool("cycles", false, "include T-states in disassembly")
	all := md.AddBool("all", false, "include instructions not reachable from the transfer address")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return disassembly.WriteIndex(output, cpu.NewInstructionTable())
	case 1:
		ld := medialoader.NewLoader(md.GetArg(0))
		if err := ld.Load(); err != nil {
			return err
		}

		dsm, err := disassembly.FromCMD(cpu.NewInstructionTable(), cmdfile.Parse(ld.Data))
		if err != nil {
			return err
		}

		attr := disassembly.WriteAttr{
			ByteCode: *bytecode,
			Cycles:   *cycles,
			Level:    disassembly.EntryLevelBlessed,
		}
		if *all {
			attr.Level = disassembly.EntryLevelDecoded
		}

		return dsm.Write(output, attr)
	}

	return curated.Errorf("too many arguments for %s mode", md)
}

func cmdInfo(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("load file required for %s mode", md)
	}

	ld := medialoader.NewLoader(md.GetArg(0))
	if err := ld.Load(); err != nil {
		return err
	}

	f := cmdfile.Parse(ld.Data)
	if !f.Valid {
		return curated.Errorf(hardware.InvalidLoadFile)
	}

	fmt.Fprint(output, f.String())

	return nil
}

func disk(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	track := md.AddInt("track", -1, "list sectors of this track only")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("disk image required for %s mode", md)
	}

	ld := medialoader.NewLoader(md.GetArg(0))
	if err := ld.Load(); err != nil {
		return err
	}

	d, ok := diskimage.Parse(ld.Data)
	if !ok {
		return curated.Errorf(hardware.InvalidDisk, ld.ShortName())
	}

	fmt.Fprintln(output, d)
	for t := 0; t < d.Tracks(); t++ {
		if *track >= 0 && t != *track {
			continue
		}
		for sd := 0; sd < d.Sides(); sd++ {
			for _, s := range d.Sectors(uint8(t), uint8(sd)) {
				fmt.Fprintf(output, "%2d/%d: %s\n", t, sd, s)
			}
		}
	}

	return nil
}

func state(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("state file required for %s mode", md)
	}

	s, err := hardware.LoadStateFile(md.GetArg(0))
	if err != nil {
		return err
	}

	fmt.Fprintln(output, s)

	return nil
}
