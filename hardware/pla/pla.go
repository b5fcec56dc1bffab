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

// Package pla implements the C64's memory-banking PLA (the logic that
// decides, for any given CPU address, which physical chip answers: RAM,
// KERNAL/BASIC/character ROM, cartridge ROM, the I/O area, or nothing at
// all). The decision is a pure function of five inputs: the processor port
// bits LORAM/HIRAM/CHAREN, and the cartridge lines EXROM/GAME - 32
// combinations, each mapping the seven address regions independently.
package pla

// Bank identifies which physical chip answers a given address region.
type Bank int

const (
	RAM Bank = iota
	KernalROM
	BasicROM
	CharacterROM
	CartridgeLo
	CartridgeHi
	IO
	Unmapped
)

// Region describes one contiguous slice of address space mapped to a single
// Bank for a given mode. OffsetBase is subtracted from the CPU address to
// get the offset into the target bank's own storage.
type Region struct {
	Start, End uint16
	Bank       Bank
	OffsetBase uint16
}

// Mode is one of the 32 PLA configurations, selected by LORAM/HIRAM/CHAREN/
// EXROM/GAME. Regions always cover the full 16-bit address space and never
// overlap.
type Mode struct {
	Regions [7]Region
}

// Modes holds the 32-entry PLA truth table, indexed by a 5-bit selector
// built from EXROM<<4 | GAME<<3 | CHAREN<<2 | HIRAM<<1 | LORAM. This is
// reproduced verbatim from the C64's memory map documentation: every row's
// region list, bank and offset base is transcribed unchanged.
var Modes = [32]Mode{
	// Mode 0: (exROM=0, game=0, charen=0, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, RAM, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 1: (exROM=0, game=0, charen=0, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, RAM, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 2: (exROM=0, game=0, charen=0, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 3: (exROM=0, game=0, charen=0, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 4: (exROM=0, game=0, charen=1, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 5: (exROM=0, game=0, charen=1, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 6: (exROM=0, game=0, charen=1, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 7: (exROM=0, game=0, charen=1, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, CartridgeHi, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 8: (exROM=0, game=1, charen=0, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, RAM, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 9: (exROM=0, game=1, charen=0, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, RAM, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 10: (exROM=0, game=1, charen=0, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 11: (exROM=0, game=1, charen=0, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 12: (exROM=0, game=1, charen=1, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 13: (exROM=0, game=1, charen=1, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 14: (exROM=0, game=1, charen=1, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 15: (exROM=0, game=1, charen=1, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 16: (exROM=1, game=0, charen=0, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 17: (exROM=1, game=0, charen=0, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 18: (exROM=1, game=0, charen=0, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 19: (exROM=1, game=0, charen=0, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 20: (exROM=1, game=0, charen=1, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 21: (exROM=1, game=0, charen=1, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 22: (exROM=1, game=0, charen=1, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 23: (exROM=1, game=0, charen=1, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, Unmapped, 0},
		{0x8000, 0x9FFF, CartridgeLo, 0x8000},
		{0xA000, 0xBFFF, Unmapped, 0},
		{0xC000, 0xCFFF, Unmapped, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, CartridgeHi, 0xE000},
	}},
	// Mode 24: (exROM=1, game=1, charen=0, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, RAM, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 25: (exROM=1, game=1, charen=0, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, BasicROM, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 26: (exROM=1, game=1, charen=0, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 27: (exROM=1, game=1, charen=0, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, BasicROM, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, CharacterROM, 0xD000},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 28: (exROM=1, game=1, charen=1, hiram=0, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 29: (exROM=1, game=1, charen=1, hiram=0, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, RAM, 0},
	}},
	// Mode 30: (exROM=1, game=1, charen=1, hiram=1, loram=0)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, RAM, 0},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
	// Mode 31: (exROM=1, game=1, charen=1, hiram=1, loram=1)
	{[7]Region{
		{0x0000, 0x0FFF, RAM, 0},
		{0x1000, 0x7FFF, RAM, 0},
		{0x8000, 0x9FFF, RAM, 0},
		{0xA000, 0xBFFF, BasicROM, 0xA000},
		{0xC000, 0xCFFF, RAM, 0},
		{0xD000, 0xDFFF, IO, 0},
		{0xE000, 0xFFFF, KernalROM, 0xE000},
	}},
}

// Selector builds the 5-bit mode index from the processor port bits and the
// cartridge lines.
func Selector(loram, hiram, charen, game, exrom bool) int {
	s := 0
	if loram {
		s |= 1
	}
	if hiram {
		s |= 2
	}
	if charen {
		s |= 4
	}
	if game {
		s |= 8
	}
	if exrom {
		s |= 16
	}
	return s
}

// Lookup returns the Mode for the given processor port/cartridge line state.
func Lookup(loram, hiram, charen, game, exrom bool) Mode {
	return Modes[Selector(loram, hiram, charen, game, exrom)]
}

// RegionFor returns the Region of m that contains address.
func (m Mode) RegionFor(address uint16) Region {
	for _, r := range m.Regions {
		if address >= r.Start && address <= r.End {
			return r
		}
	}
	return Region{0, 0xFFFF, Unmapped, 0}
}

// Offset returns the index into the target bank's own storage for address,
// given the region it resolved to.
func (r Region) Offset(address uint16) uint16 {
	return address - r.OffsetBase
}

// colorRAMMask is applied to every byte written to or read from color RAM:
// only the low nibble is wired to real memory cells, the high nibble reads
// back as whatever was last driven on the data bus (open bus in practice).
// The mask clears the high nibble; the bus's CPU read of $D800-$DBFF then
// sets it to all 1s.
const colorRAMMask = 0x0f

// MaskColorRAM applies the 4-bit color RAM cell mask to a raw byte value.
func MaskColorRAM(value uint8) uint8 {
	return value & colorRAMMask
}
