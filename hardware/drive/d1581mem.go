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
)

// d1581Memory is the 1581's CPU-visible address space: no VIAs at all (its
// IEC handling and burst serial both run through its CIA), a WD1770 FDC,
// 8KiB RAM and 32KiB ROM.
type d1581Memory struct {
	ram [0x2000]uint8
	rom [0x8000]uint8
	cia *cia.CIA
	fdc *fdc.FDC177x
}

func newD1581Memory(c *cia.CIA, f *fdc.FDC177x) *d1581Memory {
	return &d1581Memory{cia: c, fdc: f}
}

func (m *d1581Memory) LoadROM(data []byte) {
	copy(m.rom[:], data)
}

func (m *d1581Memory) Read(address uint16) (uint8, error) {
	switch {
	case address >= 0x4000 && address < 0x4010:
		return m.cia.ReadRegister(address & 0xf), nil
	case address >= 0x6000 && address < 0x6004:
		return m.fdc.ReadRegister(address & 0x3), nil
	case address < 0x2000:
		return m.ram[address], nil
	case address >= 0x8000:
		return m.rom[address-0x8000], nil
	default:
		return 0xff, nil
	}
}

func (m *d1581Memory) Write(address uint16, value uint8) error {
	switch {
	case address >= 0x4000 && address < 0x4010:
		m.cia.WriteRegister(address&0xf, value)
	case address >= 0x6000 && address < 0x6004:
		m.fdc.WriteRegister(address&0x3, value)
	case address < 0x2000:
		m.ram[address] = value
	}
	return nil
}
