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

package drive

import (
	"github.com/gocbm/c64core/hardware/cia"
	"github.com/gocbm/c64core/hardware/drive/fdc"
	"github.com/gocbm/c64core/hardware/drive/via"
)

// d1571Memory is the 1571's CPU-visible address space: 2KiB RAM, VIA1/VIA2
// (IEC + stepper, 1541-compatible), a 6526 CIA for burst serial mode and a
// WD1770 FDC for MFM access, and 32KiB of DOS ROM.
type d1571Memory struct {
	ram  [0x0800]uint8
	rom  [0x8000]uint8
	via1 *via.VIA
	via2 *via.VIA
	cia  *cia.CIA
	fdc  *fdc.FDC177x
}

func newD1571Memory(via1, via2 *via.VIA, c *cia.CIA, f *fdc.FDC177x) *d1571Memory {
	return &d1571Memory{via1: via1, via2: via2, cia: c, fdc: f}
}

func (m *d1571Memory) LoadROM(data []byte) {
	copy(m.rom[:], data)
}

func (m *d1571Memory) Read(address uint16) (uint8, error) {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		return m.via1.ReadRegister(address & 0xf), nil
	case address >= 0x1c00 && address < 0x2000:
		return m.via2.ReadRegister(address & 0xf), nil
	case address >= 0x4000 && address < 0x4010:
		return m.cia.ReadRegister(address & 0xf), nil
	case address >= 0x6000 && address < 0x6004:
		return m.fdc.ReadRegister(address & 0x3), nil
	case address < 0x2000:
		return m.ram[address&0x07ff], nil
	case address >= 0x8000:
		return m.rom[address-0x8000], nil
	default:
		return 0xff, nil
	}
}

func (m *d1571Memory) Write(address uint16, value uint8) error {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		m.via1.WriteRegister(address&0xf, value)
	case address >= 0x1c00 && address < 0x2000:
		m.via2.WriteRegister(address&0xf, value)
	case address >= 0x4000 && address < 0x4010:
		m.cia.WriteRegister(address&0xf, value)
	case address >= 0x6000 && address < 0x6004:
		m.fdc.WriteRegister(address&0x3, value)
	case address < 0x2000:
		m.ram[address&0x07ff] = value
	}
	return nil
}
