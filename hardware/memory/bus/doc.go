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

// Package bus holds the C64's PLA-banked address space. The CPU reads and
// writes through Read/Write, which the PLA mode table routes to RAM, ROM,
// color RAM, the I/O chips or a cartridge; the VIC-II reads through the
// separate VICRead/ColorNibble path.
//
// The DebugBus is for the exclusive use of debuggers and exposes a Peek() and
// Poke() function.
package bus
