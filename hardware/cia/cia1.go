package cia

import "github.com/gocbm/c64core/hardware/irq"

// CIA1 wires the shared CIA core to the keyboard matrix and the two
// joystick ports, and raises its interrupt bits onto the machine's IRQ
// line.
type CIA1 struct {
	*CIA

	Keyboard Matrix

	// Joystick1/Joystick2 are active-low direction/fire bitmasks (bit0=up,
	// bit1=down, bit2=left, bit3=right, bit4=fire; 1=released), matching
	// the port's wiring directly onto PRA (port 2) and PRB (port 1).
	Joystick1, Joystick2 uint8
}

// NewCIA1 constructs a CIA1 that raises IRQ line's bits via sources.
func NewCIA1(line *irq.Line, sources [5]irq.Source, cyclesPerTenth int) *CIA1 {
	c1 := &CIA1{
		CIA:       NewCIA("CIA1", line, sources, cyclesPerTenth),
		Joystick1: 0xff,
		Joystick2: 0xff,
	}
	c1.ReadPortA = c1.readPortA
	c1.ReadPortB = c1.readPortB
	return c1
}

// readPortA reads back whatever PRA is currently driving (the row select
// strobe), ANDed with joystick 2's switches (port A is shared with
// joystick port 2).
func (c1 *CIA1) readPortA(latch, ddr uint8) uint8 {
	driven := latch | ^ddr // undriven (input) bits float high
	return driven & c1.Joystick2
}

// readPortB returns the keyboard column scan for the row(s) currently
// selected on PRA, ANDed with joystick 1's switches (port B is shared with
// joystick port 1).
func (c1 *CIA1) readPortB(latch, ddr uint8) uint8 {
	driven := latch | ^ddr
	cols := c1.Keyboard.ReadColumns(c1.portA | ^c1.ddrA)
	return driven & cols & c1.Joystick1
}
