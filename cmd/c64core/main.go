// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Command c64core is a headless runner that wires every chip into a
// Synchronization Loop, runs it for a fixed cycle budget, and dumps the
// final contents of screen RAM - enough to drive a C64 from power-on
// through a LOAD/RUN of an attached disk or an injected PRG without a GUI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gocbm/c64core/emulation"
	"github.com/gocbm/c64core/errors"
	"github.com/gocbm/c64core/hardware/cia"
	"github.com/gocbm/c64core/hardware/clocks"
	"github.com/gocbm/c64core/hardware/cpu"
	"github.com/gocbm/c64core/hardware/drive"
	"github.com/gocbm/c64core/hardware/iec"
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
	"github.com/gocbm/c64core/hardware/memory/bus"
	"github.com/gocbm/c64core/hardware/memory/cpubus"
	"github.com/gocbm/c64core/hardware/vicii"
	"github.com/gocbm/c64core/logger"
	"github.com/gocbm/c64core/media"
	"github.com/gocbm/c64core/petscii"
	"github.com/gocbm/c64core/prefs"
)

// driveUnit is the surface cmd/c64core needs from any of D1541/D1571/D1581
// to attach it to the IEC bus and mount media on it. The drive packages
// themselves never depend on this - it exists only so this composition
// root can treat all three interchangeably.
type driveUnit interface {
	emulation.Drive
	iec.Peripheral
	LoadROM(data []byte) error
	CanMount(format string) bool
	InsertDisk(raw []byte) error
	SetBusOutput(f func(clkLow, dataLow, srqAsserted bool))
	Reset()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "c64core:", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPrefsFile, err := prefs.DefaultFilename()
	if err != nil {
		return errors.Errorf(errors.Prefs, err)
	}

	var (
		basicPath  = flag.String("basic", "", "path to the BASIC ROM image")
		kernalPath = flag.String("kernal", "", "path to the KERNAL ROM image")
		charPath   = flag.String("char", "", "path to the character ROM image")
		prefsFile  = flag.String("prefs", defaultPrefsFile, "preferences file to load ROM paths from and save them to (pass \"\" to disable persistence)")

		driveType = flag.String("drive", "1541", "drive model to attach: 1541, 1571 or 1581")
		driveROM  = flag.String("drive-rom", "", "path to the drive's DOS ROM image (required if -disk is given)")
		device    = flag.Int("device", 8, "IEC device number the drive responds to")
		diskPath  = flag.String("disk", "", "path to a D64/D71/D81 disk image to mount")

		prgPath = flag.String("prg", "", "path to a PRG or T64 file to inject directly into RAM, instead of mounting a disk")

		ntsc   = flag.Bool("ntsc", false, "use NTSC timing instead of PAL")
		cycles = flag.Int("cycles", 2_000_000, "number of CPU cycles to run before stopping")
		seed   = flag.Int64("seed", 0, "random seed for the emulated instance")
	)
	flag.Parse()

	ins, err := instance.NewInstance(*prefsFile, *seed)
	if err != nil {
		return errors.Errorf(errors.Prefs, err)
	}

	if *basicPath == "" {
		*basicPath = ins.Prefs.BasicROM()
	}
	if *kernalPath == "" {
		*kernalPath = ins.Prefs.KernalROM()
	}
	if *charPath == "" {
		*charPath = ins.Prefs.CharacterROM()
	}
	if *basicPath == "" || *kernalPath == "" || *charPath == "" {
		return errors.Errorf(errors.ROMLoadFailureMsg, "basic, kernal and character ROM paths are all required")
	}
	ins.Prefs.SetROMPaths(*kernalPath, *basicPath, *charPath)
	if err := ins.Prefs.Save(); err != nil {
		ins.Log.Logf(logger.Allow, "c64core", "prefs not saved: %v", err)
	}

	basicData, err := loadROM(*basicPath)
	if err != nil {
		return errors.Errorf(errors.ROMLoadFailureMsg, err)
	}
	kernalData, err := loadROM(*kernalPath)
	if err != nil {
		return errors.Errorf(errors.ROMLoadFailureMsg, err)
	}
	charData, err := loadROM(*charPath)
	if err != nil {
		return errors.Errorf(errors.ROMLoadFailureMsg, err)
	}

	mem := bus.NewBus()
	mem.LoadBasic(basicData)
	mem.LoadKernal(kernalData)
	mem.LoadCharacter(charData)

	irqLine := &irq.Line{}
	nmiLine := &irq.Line{}

	cyclesPerTenth := clocks.TODIncrementThreshold(*ntsc)
	cia1 := cia.NewCIA1(irqLine, [5]irq.Source{
		irq.CIA1TimerA, irq.CIA1TimerB, irq.CIA1TODAlarm, irq.CIA1SerialPort, irq.CIA1FlagLine,
	}, cyclesPerTenth)
	cia2 := cia.NewCIA2(nmiLine, [5]irq.Source{
		irq.CIA2TimerA, irq.CIA2TimerB, irq.CIA2TODAlarm, irq.CIA2SerialPort, irq.CIA2FlagLine,
	}, cyclesPerTenth)

	iecBus := iec.NewBus()
	cia2.IEC = iecBus

	mem.CIA1 = cia1
	mem.CIA2 = cia2

	cpuChip := cpu.NewCPU(ins, mem)
	vicChip := vicii.NewChip(*ntsc, mem, cpuChip, irqLine)
	vicChip.CurrentBank = cia2.VICBankBase
	mem.VIC = vicChip

	loop := &emulation.Loop{
		CPU:    cpuChip,
		VIC:    vicChip,
		CIA1:   cia1,
		CIA2:   cia2,
		IEC:    iecBus,
		IRQ:    irqLine,
		NMI:    nmiLine,
		Frames: vicChip,
	}

	var attached driveUnit
	if *diskPath != "" {
		if *driveROM == "" {
			return errors.Errorf(errors.DriveError, "a -drive-rom is required to mount -disk")
		}

		attached, err = newDrive(*driveType, *device, ins)
		if err != nil {
			return errors.Errorf(errors.DriveError, err)
		}

		romData, err := loadROM(*driveROM)
		if err != nil {
			return errors.Errorf(errors.ROMLoadFailureMsg, err)
		}
		if err := attached.LoadROM(romData); err != nil {
			return errors.Errorf(errors.ROMLoadFailureMsg, err)
		}

		diskData, err := loadDiskImage(*diskPath)
		if err != nil {
			return errors.Errorf(errors.DiskImageInvalidMsg, err)
		}
		if err := attached.InsertDisk(diskData); err != nil {
			return errors.Errorf(errors.DiskImageInvalidMsg, err)
		}

		attached.Reset()
		iecBus.Attach(attached)
		attached.SetBusOutput(func(clkLow, dataLow, srqAsserted bool) {
			iecBus.PeripheralControlCLK(*device, clkLow)
			iecBus.PeripheralControlDATA(*device, dataLow)
			iecBus.PeripheralControlSRQ(*device, srqAsserted)
		})
		loop.Drives = []emulation.Drive{attached}

		ins.Log.Logf(logger.Allow, "c64core", "mounted %s as device %d from %s", *driveType, *device, *diskPath)
	}

	cpuChip.Reset()
	if err := cpuChip.LoadPCIndirect(cpubus.Reset); err != nil {
		return errors.Errorf(errors.CPUJammedMsg, err)
	}

	if *prgPath != "" {
		if err := injectPRG(mem, *prgPath); err != nil {
			return errors.Errorf(errors.MediaLoaderError, err)
		}
		ins.Log.Logf(logger.Allow, "c64core", "injected %s", *prgPath)
	}

	ctx := context.Background()
	ran := 0
	for ran < *cycles {
		delta, err := loop.Step(ctx)
		if err != nil {
			ins.Log.Tail(os.Stderr, 20)
			return err
		}
		ran += delta
	}

	dumpScreen(os.Stdout, mem)

	return nil
}

// newDrive constructs a drive of the requested model, each attached to a
// fresh IRQ line of its own - the host C64's IRQ/NMI lines are driven only
// by CIA1/CIA2 and the VIC-II, never directly by an attached drive's
// internal 6502.
func newDrive(model string, device int, ins *instance.Instance) (driveUnit, error) {
	switch model {
	case "1541":
		return drive.NewD1541(device, ins, &irq.Line{})
	case "1571":
		return drive.NewD1571(device, ins, &irq.Line{})
	case "1581":
		return drive.NewD1581(device, ins, &irq.Line{})
	default:
		return nil, fmt.Errorf("unknown drive model %q", model)
	}
}

// loadROM reads a whole ROM image from path via the media package's
// filesystem indirection, rather than os.ReadFile directly, so tests
// elsewhere in the module can swap media.Fs for an in-memory one.
func loadROM(path string) ([]byte, error) {
	ld, err := media.NewLoaderFromFilename(path, media.KindAuto)
	if err != nil {
		return nil, err
	}
	if err := ld.Open(); err != nil {
		return nil, err
	}
	defer ld.Close()
	return *ld.Data, nil
}

// loadDiskImage reads a D64/D71/D81 image in full. Loader streams disk
// kinds rather than loading them eagerly (so a running drive can write
// back to the host file); a one-shot headless run just wants the bytes.
func loadDiskImage(path string) ([]byte, error) {
	ld, err := media.NewLoaderFromFilename(path, media.KindAuto)
	if err != nil {
		return nil, err
	}
	if err := ld.Open(); err != nil {
		return nil, err
	}
	defer ld.Close()
	return io.ReadAll(&ld)
}

// injectPRG loads a PRG or T64 file and pokes it directly into RAM, without
// going through a drive or disk image at all - the fast path for a headless
// run that just wants a single program loaded and auto-started.
func injectPRG(mem cpubus.Memory, path string) error {
	ld, err := media.NewLoaderFromFilename(path, media.KindAuto)
	if err != nil {
		return err
	}
	if err := ld.Open(); err != nil {
		return err
	}
	defer ld.Close()

	if ld.Kind == media.KindT64 {
		return media.InjectT64(mem, *ld.Data)
	}
	return media.InjectPRG(mem, *ld.Data)
}

// dumpScreen renders the default 1000-byte screen RAM window ($0400-$07E7)
// as text, using Peek so the read has no side effects on any I/O register
// the default bank happens to alias.
func dumpScreen(w io.Writer, mem *bus.Bus) {
	const (
		screenBase = 0x0400
		columns    = 40
		rows       = 25
	)

	line := make([]byte, columns)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			v, err := mem.Peek(uint16(screenBase + row*columns + col))
			if err != nil {
				v = 0x20
			}
			line[col] = petscii.ToASCII(petscii.FromScreenCode(v))
		}
		fmt.Fprintln(w, string(line))
	}
}
