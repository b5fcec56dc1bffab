// Package cpubus defines the memory bus concept seen from the 6502 CPU: the
// interface every address-space component implements, the vector addresses
// the CPU reads on reset/IRQ/NMI/BRK, and the sentinel error used to signal
// an inaccessible address without resorting to typed errors.
package cpubus

import (
	goerrors "errors"
)

// Memory defines the operations the CPU performs against the address space.
// The PLA-backed address decoder implements this; the CPU itself never
// knows or cares which chip a given address maps to.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DebuggerBus defines meta-operations available to a monitor or debugger -
// reads and writes that must never trigger the side effects a normal Read or
// Write would (e.g. reading a CIA's interrupt-status register clears it;
// Peek must not).
type DebuggerBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}

// Vector addresses are fixed by the 6502. Each holds the little-endian
// 16-bit address execution resumes at for the corresponding condition. BRK
// shares the IRQ vector on NMOS 6502, distinguished only by the Break flag
// pushed alongside the status register.
const (
	NMI   uint16 = 0xfffa
	Reset uint16 = 0xfffc
	IRQ   uint16 = 0xfffe
	BRK   uint16 = 0xfffe
)

// AddressError is returned (wrapped) by a Memory implementation when the
// address is outside of any mapped range. Production code treats this as
// open-bus (the last value left on the bus is returned) rather than a hard
// failure; tests and the debugger can still distinguish the condition with
// errors.Is.
var AddressError = goerrors.New("cpubus: address error")
