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

package emulation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gocbm/c64core/hardware/cpu"
	"github.com/gocbm/c64core/hardware/irq"
)

// Ticker is implemented by every subsystem that needs to be told how many
// cycles just elapsed on the CPU: VIC-II, the two CIAs, the SID boundary and
// the IEC bus.
type Ticker interface {
	Tick(cycles int) error
}

// Drive is a Ticker that additionally knows its own clock multiplier - the
// 1581's FDC runs at twice the 1541/1571's rate.
type Drive interface {
	Ticker
	ClockMultiplier() float64
}

// FrameSink receives completed frames and reports when one is ready. The
// concrete VIC-II implements this.
type FrameSink interface {
	FrameComplete() bool
	Framebuffer() []byte
}

// Loop drives a wired-up machine one CPU step at a time, in the order real
// C64 hardware imposes it: CPU, then VIC-II (which may have stolen bus
// cycles), then CIA1/CIA2, then SID, then the IEC bus, then every attached
// drive - each drive is independent of its siblings within a step, so they
// tick concurrently via an errgroup. The IRQ/NMI lines are sampled last and
// pushed onto the CPU's pins ready for the next step.
type Loop struct {
	CPU *cpu.CPU

	VIC        Ticker
	CIA1, CIA2 Ticker
	SID        Ticker
	IEC        Ticker
	Drives     []Drive

	IRQ *irq.Line
	NMI *irq.Line

	Frames  FrameSink
	Display Display

	snapshot singleflight.Group
}

// Step advances the machine by exactly one CPU instruction and routes the
// elapsed cycles to every other subsystem. It returns the number of cycles
// the CPU instruction took.
func (l *Loop) Step(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := l.CPU.ExecuteInstruction(nil); err != nil {
		return 0, fmt.Errorf("emulation: cpu step: %w", err)
	}
	delta := l.CPU.LastResult.Cycles

	if l.VIC != nil {
		if err := l.VIC.Tick(delta); err != nil {
			return delta, fmt.Errorf("emulation: vic tick: %w", err)
		}
	}

	if l.CIA1 != nil {
		if err := l.CIA1.Tick(delta); err != nil {
			return delta, fmt.Errorf("emulation: cia1 tick: %w", err)
		}
	}
	if l.CIA2 != nil {
		if err := l.CIA2.Tick(delta); err != nil {
			return delta, fmt.Errorf("emulation: cia2 tick: %w", err)
		}
	}

	if l.SID != nil {
		if err := l.SID.Tick(delta); err != nil {
			return delta, fmt.Errorf("emulation: sid tick: %w", err)
		}
	}

	if l.IEC != nil {
		if err := l.IEC.Tick(delta); err != nil {
			return delta, fmt.Errorf("emulation: iec tick: %w", err)
		}
	}

	if len(l.Drives) > 0 {
		group, _ := errgroup.WithContext(ctx)
		for _, drive := range l.Drives {
			drive := drive
			group.Go(func() error {
				driveCycles := int(float64(delta) * drive.ClockMultiplier())
				return drive.Tick(driveCycles)
			})
		}
		if err := group.Wait(); err != nil {
			return delta, fmt.Errorf("emulation: drive tick: %w", err)
		}
	}

	if l.IRQ != nil {
		l.CPU.SetIRQLine(l.IRQ.Active())
	}
	if l.NMI != nil && l.NMI.Active() {
		l.CPU.RequestNMI()
		l.NMI.Reset()
	}

	if l.Frames != nil && l.Frames.FrameComplete() && l.Display != nil {
		l.Display.Present(l.Frames.Framebuffer())
	}

	return delta, nil
}

// Run steps the machine until ctx is cancelled or a Step returns an error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if _, err := l.Step(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Snapshotter performs a save-state capture, returning the encoded file.
// No type in this module implements it; the savestate package supplies only
// the file format's Writer and Reader.
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// SaveState runs s.Snapshot(), coalescing concurrent callers under the same
// key so a second request arriving mid-snapshot joins the in-flight one
// rather than racing it against the emulation thread.
func (l *Loop) SaveState(key string, s Snapshotter) ([]byte, error) {
	v, err, _ := l.snapshot.Do(key, func() (interface{}, error) {
		return s.Snapshot()
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
