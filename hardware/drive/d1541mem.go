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

import "github.com/gocbm/c64core/hardware/drive/via"

// d1541Memory is the 1541's own 6502 address space: 2KiB of RAM at $0000,
// mirrored at $0800 and $1000, VIA1 (IEC data handling) and VIA2 (disk
// mechanics) each mirrored across their 1KiB windows, and 16KiB of DOS ROM
// filling $C000-$FFFF.
type d1541Memory struct {
	ram  [0x0800]uint8
	rom  [0x4000]uint8
	via1 *via.VIA
	via2 *via.VIA
}

func newD1541Memory(via1, via2 *via.VIA) *d1541Memory {
	return &d1541Memory{via1: via1, via2: via2}
}

func (m *d1541Memory) LoadROM(data []byte) {
	copy(m.rom[:], data)
}

func (m *d1541Memory) Read(address uint16) (uint8, error) {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		return m.via1.ReadRegister(address & 0xf), nil
	case address >= 0x1c00 && address < 0x2000:
		return m.via2.ReadRegister(address & 0xf), nil
	case address < 0x2000:
		return m.ram[address&0x07ff], nil
	case address >= 0xc000:
		return m.rom[address-0xc000], nil
	default:
		return 0xff, nil
	}
}

func (m *d1541Memory) Write(address uint16, value uint8) error {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		m.via1.WriteRegister(address&0xf, value)
	case address >= 0x1c00 && address < 0x2000:
		m.via2.WriteRegister(address&0xf, value)
	case address < 0x2000:
		m.ram[address&0x07ff] = value
	}
	return nil
}
