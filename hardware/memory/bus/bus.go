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

// Package bus implements the PLA-backed CPU-visible address space: 64KiB of
// RAM overlaid with BASIC/KERNAL/character ROM, color RAM, an I/O aperture,
// and up to 16KiB of cartridge ROM, banked per the 32-row pla.Mode table
// selected by the processor port and cartridge lines.
package bus

import (
	"github.com/gocbm/c64core/hardware/pla"
)

// IODevice is implemented by every chip mapped into the $D000-$DFFF I/O
// aperture: the VIC-II register file, SID, CIA1, CIA2 and the cartridge I/O
// area.
type IODevice interface {
	ReadRegister(offset uint16) uint8
	WriteRegister(offset uint16, value uint8)
}

// Cartridge is implemented by an inserted CRT image. A machine with no
// cartridge inserted uses nilCartridge, which reports EXROM/GAME both high
// (no cartridge present) and answers every read as open bus.
type Cartridge interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, value uint8)
	EXROM() bool
	GAME() bool
}

type nilCartridge struct{}

func (nilCartridge) Read(uint16) (uint8, bool) { return 0, false }
func (nilCartridge) Write(uint16, uint8)        {}
func (nilCartridge) EXROM() bool                { return true }
func (nilCartridge) GAME() bool                 { return true }

// Bus is the PLA-backed address space. The zero value is not usable; use
// NewBus.
type Bus struct {
	ram      [0x10000]uint8
	colorRAM [0x0400]uint8

	basic     [0x2000]uint8
	kernal    [0x2000]uint8
	character [0x1000]uint8

	cart Cartridge

	VIC  IODevice
	SID  IODevice
	CIA1 IODevice
	CIA2 IODevice

	// lastTrace records the bank/offset of the most recent access, for
	// describeAddress/monitor support.
	lastTrace Trace
}

// Trace describes which bank and offset an address resolved to - the PLA's
// own diagnostic output for a monitor/debugger.
type Trace struct {
	Address uint16
	Bank    pla.Bank
	Offset  uint16
}

// NewBus constructs a Bus with no cartridge inserted and every ROM image
// zeroed; load ROM images with LoadBasic/LoadKernal/LoadCharacter before use.
func NewBus() *Bus {
	b := &Bus{cart: nilCartridge{}}
	// processor port defaults: DDR $2F and port $37, the values the KERNAL
	// itself writes, which select mode 31 when no cartridge is inserted
	b.ram[0x0000] = 0x2f
	b.ram[0x0001] = 0x37
	return b
}

// LoadBasic, LoadKernal and LoadCharacter install a ROM image. Images are
// truncated or zero-padded to the correct size.
func (b *Bus) LoadBasic(data []byte)     { copy(b.basic[:], data) }
func (b *Bus) LoadKernal(data []byte)    { copy(b.kernal[:], data) }
func (b *Bus) LoadCharacter(data []byte) { copy(b.character[:], data) }

// InsertCartridge wires a cartridge into the bus's $8000-$9FFF/$A000-$BFFF/
// $E000-$FFFF windows, via the PLA mode table's EXROM/GAME-dependent rows.
// Pass nil to eject.
func (b *Bus) InsertCartridge(c Cartridge) {
	if c == nil {
		c = nilCartridge{}
	}
	b.cart = c
}

// processorPort returns the five PLA selector bits (LORAM, HIRAM, CHAREN)
// from $0001, plus (GAME, EXROM) from the inserted cartridge.
func (b *Bus) processorPort() (loram, hiram, charen, game, exrom bool) {
	ddr := b.ram[0x0000]
	port := b.ram[0x0001]

	// a DDR bit of 0 means the corresponding port pin is an input - floats
	// high due to the pull-up resistors on the real board
	loram = ddr&0x01 == 0 || port&0x01 != 0
	hiram = ddr&0x02 == 0 || port&0x02 != 0
	charen = ddr&0x04 == 0 || port&0x04 != 0

	game = b.cart.GAME()
	exrom = b.cart.EXROM()
	return
}

func (b *Bus) mode() pla.Mode {
	loram, hiram, charen, game, exrom := b.processorPort()
	return pla.Lookup(loram, hiram, charen, game, exrom)
}

// Read implements cpubus.Memory.
func (b *Bus) Read(address uint16) (uint8, error) {
	if address == 0x0000 || address == 0x0001 {
		return b.ram[address], nil
	}

	region := b.mode().RegionFor(address)
	b.lastTrace = Trace{Address: address, Bank: region.Bank, Offset: region.Offset(address)}

	switch region.Bank {
	case pla.RAM:
		return b.ram[address], nil
	case pla.BasicROM:
		return b.basic[region.Offset(address)%uint16(len(b.basic))], nil
	case pla.KernalROM:
		return b.readKernal(address, region)
	case pla.CharacterROM:
		return b.character[region.Offset(address)%uint16(len(b.character))], nil
	case pla.CartridgeLo, pla.CartridgeHi:
		if v, ok := b.cart.Read(address); ok {
			return v, nil
		}
		return 0xff, nil
	case pla.IO:
		return b.readIO(address), nil
	default: // Unmapped
		return 0xff, nil
	}
}

// readKernal applies the NMI/IRQ vector RAM-zero fallback: if the vector
// bytes in KERNAL ROM space are all zero (as they would be if a partial
// custom KERNAL hasn't populated them), the indirect RAM vectors at
// $0318/$0319 (NMI) or $0314/$0315 (IRQ) are used instead.
func (b *Bus) readKernal(address uint16, region pla.Region) (uint8, error) {
	switch address {
	case 0xfffa, 0xfffb:
		if b.kernal[0x1ffa] == 0 && b.kernal[0x1ffb] == 0 {
			return b.ram[0x0318+(address-0xfffa)], nil
		}
	case 0xfffe, 0xffff:
		if b.kernal[0x1ffe] == 0 && b.kernal[0x1fff] == 0 {
			return b.ram[0x0314+(address-0xfffe)], nil
		}
	}
	return b.kernal[region.Offset(address)%uint16(len(b.kernal))], nil
}

// Write implements cpubus.Memory. Writes always land in RAM, even when the
// address is currently overlaid by ROM - the PLA wires writes straight
// through regardless of the read-side bank.
func (b *Bus) Write(address uint16, value uint8) error {
	if address == 0x0000 || address == 0x0001 {
		b.ram[address] = value
		return nil
	}

	region := b.mode().RegionFor(address)

	switch region.Bank {
	case pla.IO:
		b.writeIO(address, value)
		return nil
	case pla.CartridgeLo, pla.CartridgeHi:
		b.cart.Write(address, value)
		return nil
	default:
		b.ram[address] = value
		return nil
	}
}

// Peek and Poke implement cpubus.DebuggerBus: they read/write exactly like
// Read/Write but must never trigger a chip's read-clears-status or
// write-triggers-action side effects. Since this Bus's own state (RAM, ROM
// images, color RAM) has no such side effects, Peek/Poke only need to avoid
// routing through IODevice/Cartridge, which might.
func (b *Bus) Peek(address uint16) (uint8, error) {
	if address >= 0xd800 && address <= 0xdbff {
		return pla.MaskColorRAM(b.colorRAM[address-0xd800]), nil
	}
	region := b.mode().RegionFor(address)
	switch region.Bank {
	case pla.BasicROM:
		return b.basic[region.Offset(address)%uint16(len(b.basic))], nil
	case pla.KernalROM:
		return b.kernal[region.Offset(address)%uint16(len(b.kernal))], nil
	case pla.CharacterROM:
		return b.character[region.Offset(address)%uint16(len(b.character))], nil
	case pla.IO:
		return 0, nil
	default:
		return b.ram[address], nil
	}
}

// Poke writes directly to RAM or color RAM without triggering any chip's
// write-side effects.
func (b *Bus) Poke(address uint16, value uint8) error {
	if address >= 0xd800 && address <= 0xdbff {
		b.colorRAM[address-0xd800] = pla.MaskColorRAM(value)
		return nil
	}
	b.ram[address] = value
	return nil
}

// readIO decodes the $D000-$DFFF aperture.
func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address >= 0xd000 && address <= 0xd3ff:
		if b.VIC == nil {
			return 0xff
		}
		return b.VIC.ReadRegister((address - 0xd000) % 64)
	case address >= 0xd400 && address <= 0xd7ff:
		if b.SID == nil {
			return 0xff
		}
		return b.SID.ReadRegister((address - 0xd400) % 32)
	case address >= 0xd800 && address <= 0xdbff:
		return pla.MaskColorRAM(b.colorRAM[address-0xd800]) | 0xf0
	case address >= 0xdc00 && address <= 0xdcff:
		if b.CIA1 == nil {
			return 0xff
		}
		return b.CIA1.ReadRegister(address - 0xdc00)
	case address >= 0xdd00 && address <= 0xddff:
		if b.CIA2 == nil {
			return 0xff
		}
		return b.CIA2.ReadRegister(address - 0xdd00)
	default: // $DE00-$DFFF cartridge I/O
		if v, ok := b.cart.Read(address); ok {
			return v
		}
		return 0xff
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address >= 0xd000 && address <= 0xd3ff:
		if b.VIC != nil {
			b.VIC.WriteRegister((address-0xd000)%64, value)
		}
	case address >= 0xd400 && address <= 0xd7ff:
		if b.SID != nil {
			b.SID.WriteRegister((address-0xd400)%32, value)
		}
	case address >= 0xd800 && address <= 0xdbff:
		b.colorRAM[address-0xd800] = pla.MaskColorRAM(value)
	case address >= 0xdc00 && address <= 0xdcff:
		if b.CIA1 != nil {
			b.CIA1.WriteRegister(address-0xdc00, value)
		}
	case address >= 0xdd00 && address <= 0xddff:
		if b.CIA2 != nil {
			b.CIA2.WriteRegister(address-0xdd00, value)
		}
	default:
		b.cart.Write(address, value)
	}
}

// DescribeAddress returns the bank and offset a monitor should display for
// address, without performing a live read (it reflects the mode the PLA
// would currently select).
func (b *Bus) DescribeAddress(address uint16) Trace {
	region := b.mode().RegionFor(address)
	return Trace{Address: address, Bank: region.Bank, Offset: region.Offset(address)}
}

// LastTrace returns the Trace recorded by the most recent Read call.
func (b *Bus) LastTrace() Trace {
	return b.lastTrace
}

// VICRead answers a VIC-II bus-master read: the VIC addresses only 14 bits
// (address, masked to $0000-$3FFF) relative to the 16KiB bank selected by
// CIA2's port A, and - unlike the CPU - sees character ROM shadowed into
// both $1000-$1FFF and $9000-$9FFF of every bank, regardless of the
// processor port's CHAREN bit.
func (b *Bus) VICRead(bankBase uint16, address uint16) uint8 {
	effective := bankBase + address&0x3fff
	rel := effective & 0x3fff
	if rel >= 0x1000 && rel <= 0x1fff {
		return b.character[rel-0x1000]
	}
	return b.ram[effective]
}

// ColorNibble reads the low nibble of color RAM at screen offset (0-1023).
// The VIC reads color RAM directly; it is never banked or masked by the
// PLA the way CPU accesses to $D800-$DBFF are.
func (b *Bus) ColorNibble(offset uint16) uint8 {
	return pla.MaskColorRAM(b.colorRAM[offset&0x3ff])
}

// VICBankBase returns the 16KiB VIC-II bank base address selected by CIA2's
// port A bits 0-1 (inverted: 00 selects the highest bank). The VIC-II uses
// this, not the PLA mode table, to address its own 14-bit address space.
func VICBankBase(ciaPortA uint8) uint16 {
	bank := ^ciaPortA & 0x03
	return uint16(bank) * 0x4000
}
