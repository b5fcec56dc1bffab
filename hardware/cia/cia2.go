package cia

import "github.com/gocbm/c64core/hardware/irq"

// IECLines is the subset of the IEC serial bus CIA2 drives and samples: the
// three handshake lines, wired onto port A bits 3-7.
type IECLines interface {
	SetATN(asserted bool)
	SetCLK(asserted bool)
	SetDATA(asserted bool)
	CLK() bool
	DATA() bool
}

const (
	maskVICBank0 = 0x01
	maskVICBank1 = 0x02
	maskATNOut   = 0x08
	maskCLKOut   = 0x10
	maskDATAOut  = 0x20
	maskCLKIn    = 0x40
	maskDATAIn   = 0x80
)

// CIA2 wires the shared CIA core to the VIC-II bank select (port A bits
// 0-1) and the IEC serial bus (port A bits 3-7), and raises its interrupt
// bits onto the machine's NMI line rather than IRQ.
type CIA2 struct {
	*CIA

	IEC IECLines

	// RawIECOverlay selects the conservative DDR-gated port A read (false,
	// the default: an output-configured CLK/DATA bit reads back the latch
	// you wrote, not the bus) versus a raw overlay that always shows the
	// live bus level regardless of data direction - some diagnostic ROMs
	// and fastloaders expect this, others break under it.
	RawIECOverlay bool

	onBankChange func(bankBase uint16)
}

// NewCIA2 constructs a CIA2 that raises sources' bits on line (normally the
// machine's NMI aggregator, not its IRQ one).
func NewCIA2(line *irq.Line, sources [5]irq.Source, cyclesPerTenth int) *CIA2 {
	c2 := &CIA2{
		CIA: NewCIA("CIA2", line, sources, cyclesPerTenth),
	}
	c2.ReadPortA = c2.readPortA
	c2.OnWritePortA = c2.onWritePortA
	return c2
}

// SetVICBankCallback registers f to be called with the 16KiB VIC-II bank
// base address whenever port A's bank-select bits change.
func (c2 *CIA2) SetVICBankCallback(f func(bankBase uint16)) {
	c2.onBankChange = f
}

// VICBankBase returns the 16KiB VIC-II bank base address currently
// selected by port A bits 0-1 (inverted: 00 selects the highest bank).
func (c2 *CIA2) VICBankBase() uint16 {
	bank := ^c2.PortA() & 0x03
	return uint16(bank) * 0x4000
}

func (c2 *CIA2) readPortA(latch, ddr uint8) uint8 {
	driven := latch | ^ddr
	if c2.IEC == nil {
		return driven
	}
	if c2.RawIECOverlay || ddr&maskCLKIn == 0 {
		driven = setBit(driven, maskCLKIn, c2.IEC.CLK())
	}
	if c2.RawIECOverlay || ddr&maskDATAIn == 0 {
		driven = setBit(driven, maskDATAIn, c2.IEC.DATA())
	}
	return driven
}

func (c2 *CIA2) onWritePortA(value uint8) {
	if c2.onBankChange != nil {
		bank := ^value & 0x03
		c2.onBankChange(uint16(bank) * 0x4000)
	}
	if c2.IEC != nil {
		c2.IEC.SetATN(value&maskATNOut != 0)
		c2.IEC.SetCLK(value&maskCLKOut != 0)
		c2.IEC.SetDATA(value&maskDATAOut != 0)
	}
}

func setBit(v, mask uint8, set bool) uint8 {
	if set {
		return v | mask
	}
	return v &^ mask
}
