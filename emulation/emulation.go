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

// Package emulation drives the machine one logical CPU step at a time,
// routing the elapsed cycles to every subsystem in the order real hardware
// would see them: CPU, then VIC-II (which may bus-steal), then the two CIAs,
// then SID, then the IEC bus and any attached drives, before the IRQ/NMI
// lines are sampled for the next step.
package emulation

import (
	"context"
)

// State indicates the emulation's state.
type State int

// List of possible emulation states.
const (
	Initialising State = iota
	Running
	Paused
	Stepping
	Rewinding
	Ending
)

// Display is a minimal abstraction of the host video sink. Exists to avoid a
// circular import back to whatever package owns the real display/window.
type Display interface {
	// Present is called once per completed frame with the just-finished
	// framebuffer. The Loop never touches the slice again after calling
	// Present, so implementations may hold onto it without copying.
	Present(frame []byte)
}

// Machine is a minimal abstraction of the C64 hardware tree. The only
// likely implementation is a concrete C64 machine type that
// owns the CPU, PLA-backed bus, VIC-II, CIAs, SID boundary, IEC bus and
// attached drives.
type Machine interface {
	// Step advances the CPU by exactly one instruction and routes the
	// elapsed cycles to every other subsystem in hardware order, as
	// described in the Loop type's documentation. It returns the number of
	// cycles the CPU instruction took, or an error if execution faulted.
	Step(ctx context.Context) (cycles int, err error)

	// Reset walks every owned component calling its own reset, synchronously.
	Reset()

	// FrameComplete reports whether the most recent Step finished a frame -
	// the Loop presents the framebuffer to the Display when this is true.
	FrameComplete() bool

	// Framebuffer returns the just-completed frame. Only meaningful
	// immediately after a Step for which FrameComplete returned true.
	Framebuffer() []byte
}

// Debugger is a minimal abstraction of a machine-code monitor/debugger.
// Exists to avoid a circular import back to whatever package implements it.
type Debugger interface {
	// Break reports whether the debugger wants the Loop to stop before the
	// next Step - e.g. a breakpoint or watchpoint was hit.
	Break() bool
}

// Emulation defines the public surface a host (GUI, headless runner, or
// debugger) uses to drive and observe the underlying Loop.
type Emulation interface {
	Machine() Machine
	Display() Display
	Debugger() Debugger
	State() State
	Pause(set bool)
}

// Event describes an event that might occur in the emulation which is
// outside of the scope of the machine itself - e.g. when the emulation is
// paused an EventPause can be sent to the host.
type Event int

// List of currently defined events.
const (
	EventPause Event = iota
	EventRun
	EventRewindBack
	EventRewindForward
	EventRewindAtStart
	EventRewindAtEnd
)
