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

// Package cia implements the MOS 6526 Complex Interface Adapter shared by
// CIA1 (keyboard matrix and joystick ports, raises IRQ) and CIA2 (VIC-II
// bank select and IEC serial port, raises NMI).
package cia

// Register offsets within a CIA's 16-byte page, mirrored every 16 bytes
// across its $DC00-$DCFF or $DD00-$DDFF aperture.
const (
	RegPRA  = 0x0 // data port A
	RegPRB  = 0x1 // data port B
	RegDDRA = 0x2 // data direction port A
	RegDDRB = 0x3 // data direction port B
	RegTALO = 0x4 // timer A low byte
	RegTAHI = 0x5 // timer A high byte
	RegTBLO = 0x6 // timer B low byte
	RegTBHI = 0x7 // timer B high byte
	RegTODT = 0x8 // TOD tenths of a second
	RegTODS = 0x9 // TOD seconds
	RegTODM = 0xA // TOD minutes
	RegTODH = 0xB // TOD hours (bit 7: AM/PM)
	RegSDR  = 0xC // serial data register
	RegICR  = 0xD // interrupt control register
	RegCRA  = 0xE // control register A
	RegCRB  = 0xF // control register B
)

// InterruptBit identifies one source latched into the ICR. Matches the MOS
// 6526 datasheet's bit assignment exactly, so ICR reads/writes need no
// translation.
type InterruptBit uint8

const (
	InterruptTimerA  InterruptBit = 0x01
	InterruptTimerB  InterruptBit = 0x02
	InterruptTODAlarm InterruptBit = 0x04
	InterruptSerial  InterruptBit = 0x08
	InterruptFlag    InterruptBit = 0x10
	interruptIRQBit  uint8        = 0x80 // bit 7 of an ICR read: "an interrupt occurred"
)

// control register A/B bits relevant to timer operation.
const (
	crStart       = 0x01
	crPBOn        = 0x02 // timer output appears on PB6/PB7 (unimplemented: no PB passthrough)
	crOutMode     = 0x04
	crRunMode     = 0x08 // 1 = one-shot
	crForceLoad   = 0x10
	craInMode     = 0x20 // CRA: 0 = count phi2, 1 = count CNT pulses
	crbInModeMask = 0x60 // CRB: 00=phi2, 01=CNT, 10=timer A underflow, 11=timer A underflow while CNT high
	crTODIn50Hz   = 0x80 // CRA bit 7: TOD clock input is 60Hz (0) or 50Hz (1); stored only, the TOD rate comes from cyclesPerTenth
	crbAlarm      = 0x80 // CRB bit 7: TOD register writes set the alarm (1) or the clock (0)
)
