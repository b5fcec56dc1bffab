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

package instructions

import "fmt"

func def(opcode uint8, operator Operator, mode AddressingMode, bytes, cycles int, pageSensitive bool, effect EffectCategory) *Definition {
	formatted := fmt.Sprintf("%d", cycles)
	if pageSensitive || (mode == Relative && effect == Flow) {
		formatted += "*"
	}
	return &Definition{
		OpCode:         opcode,
		Mnemonic:       operator.String(),
		Operator:       operator,
		Bytes:          bytes,
		Cycles:         Cycles{Value: cycles, Formatted: formatted},
		AddressingMode: mode,
		PageSensitive:  pageSensitive,
		Effect:         effect,
	}
}

// GetDefinitions returns the full 256 entry NMOS 6502 opcode table, including
// the full set of undocumented/illegal opcodes required for software
// compatibility. The table is indexed by opcode value.
func GetDefinitions() []*Definition {
	t := make([]*Definition, 256)

	// $0x
	t[0x00] = def(0x00, Brk, Implied, 1, 7, false, Interrupt)
	t[0x01] = def(0x01, Ora, IndexedIndirect, 2, 6, false, Read)
	t[0x02] = def(0x02, KIL, Implied, 1, 2, false, Read)
	t[0x03] = def(0x03, SLO, IndexedIndirect, 2, 8, false, RMW)
	t[0x04] = def(0x04, NOP, ZeroPage, 2, 3, false, Read)
	t[0x05] = def(0x05, Ora, ZeroPage, 2, 3, false, Read)
	t[0x06] = def(0x06, Asl, ZeroPage, 2, 5, false, RMW)
	t[0x07] = def(0x07, SLO, ZeroPage, 2, 5, false, RMW)
	t[0x08] = def(0x08, Php, Implied, 1, 3, false, Read)
	t[0x09] = def(0x09, Ora, Immediate, 2, 2, false, Read)
	t[0x0A] = def(0x0A, Asl, Implied, 1, 2, false, Read)
	t[0x0B] = def(0x0B, ANC, Immediate, 2, 2, false, Read)
	t[0x0C] = def(0x0C, NOP, Absolute, 3, 4, false, Read)
	t[0x0D] = def(0x0D, Ora, Absolute, 3, 4, false, Read)
	t[0x0E] = def(0x0E, Asl, Absolute, 3, 6, false, RMW)
	t[0x0F] = def(0x0F, SLO, Absolute, 3, 6, false, RMW)

	// $1x
	t[0x10] = def(0x10, Bpl, Relative, 2, 2, false, Flow)
	t[0x11] = def(0x11, Ora, IndirectIndexed, 2, 5, true, Read)
	t[0x12] = def(0x12, KIL, Implied, 1, 2, false, Read)
	t[0x13] = def(0x13, SLO, IndirectIndexed, 2, 8, false, RMW)
	t[0x14] = def(0x14, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x15] = def(0x15, Ora, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x16] = def(0x16, Asl, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x17] = def(0x17, SLO, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x18] = def(0x18, Clc, Implied, 1, 2, false, Read)
	t[0x19] = def(0x19, Ora, AbsoluteIndexedY, 3, 4, true, Read)
	t[0x1A] = def(0x1A, NOP, Implied, 1, 2, false, Read)
	t[0x1B] = def(0x1B, SLO, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0x1C] = def(0x1C, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x1D] = def(0x1D, Ora, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x1E] = def(0x1E, Asl, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0x1F] = def(0x1F, SLO, AbsoluteIndexedX, 3, 7, false, RMW)

	// $2x
	t[0x20] = def(0x20, Jsr, Absolute, 3, 6, false, Subroutine)
	t[0x21] = def(0x21, And, IndexedIndirect, 2, 6, false, Read)
	t[0x22] = def(0x22, KIL, Implied, 1, 2, false, Read)
	t[0x23] = def(0x23, RLA, IndexedIndirect, 2, 8, false, RMW)
	t[0x24] = def(0x24, Bit, ZeroPage, 2, 3, false, Read)
	t[0x25] = def(0x25, And, ZeroPage, 2, 3, false, Read)
	t[0x26] = def(0x26, Rol, ZeroPage, 2, 5, false, RMW)
	t[0x27] = def(0x27, RLA, ZeroPage, 2, 5, false, RMW)
	t[0x28] = def(0x28, Plp, Implied, 1, 4, false, Read)
	t[0x29] = def(0x29, And, Immediate, 2, 2, false, Read)
	t[0x2A] = def(0x2A, Rol, Implied, 1, 2, false, Read)
	t[0x2B] = def(0x2B, ANC, Immediate, 2, 2, false, Read)
	t[0x2C] = def(0x2C, Bit, Absolute, 3, 4, false, Read)
	t[0x2D] = def(0x2D, And, Absolute, 3, 4, false, Read)
	t[0x2E] = def(0x2E, Rol, Absolute, 3, 6, false, RMW)
	t[0x2F] = def(0x2F, RLA, Absolute, 3, 6, false, RMW)

	// $3x
	t[0x30] = def(0x30, Bmi, Relative, 2, 2, false, Flow)
	t[0x31] = def(0x31, And, IndirectIndexed, 2, 5, true, Read)
	t[0x32] = def(0x32, KIL, Implied, 1, 2, false, Read)
	t[0x33] = def(0x33, RLA, IndirectIndexed, 2, 8, false, RMW)
	t[0x34] = def(0x34, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x35] = def(0x35, And, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x36] = def(0x36, Rol, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x37] = def(0x37, RLA, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x38] = def(0x38, Sec, Implied, 1, 2, false, Read)
	t[0x39] = def(0x39, And, AbsoluteIndexedY, 3, 4, true, Read)
	t[0x3A] = def(0x3A, NOP, Implied, 1, 2, false, Read)
	t[0x3B] = def(0x3B, RLA, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0x3C] = def(0x3C, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x3D] = def(0x3D, And, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x3E] = def(0x3E, Rol, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0x3F] = def(0x3F, RLA, AbsoluteIndexedX, 3, 7, false, RMW)

	// $4x
	t[0x40] = def(0x40, Rti, Implied, 1, 6, false, Interrupt)
	t[0x41] = def(0x41, Eor, IndexedIndirect, 2, 6, false, Read)
	t[0x42] = def(0x42, KIL, Implied, 1, 2, false, Read)
	t[0x43] = def(0x43, SRE, IndexedIndirect, 2, 8, false, RMW)
	t[0x44] = def(0x44, NOP, ZeroPage, 2, 3, false, Read)
	t[0x45] = def(0x45, Eor, ZeroPage, 2, 3, false, Read)
	t[0x46] = def(0x46, Lsr, ZeroPage, 2, 5, false, RMW)
	t[0x47] = def(0x47, SRE, ZeroPage, 2, 5, false, RMW)
	t[0x48] = def(0x48, Pha, Implied, 1, 3, false, Read)
	t[0x49] = def(0x49, Eor, Immediate, 2, 2, false, Read)
	t[0x4A] = def(0x4A, Lsr, Implied, 1, 2, false, Read)
	t[0x4B] = def(0x4B, ASR, Immediate, 2, 2, false, Read)
	t[0x4C] = def(0x4C, Jmp, Absolute, 3, 3, false, Flow)
	t[0x4D] = def(0x4D, Eor, Absolute, 3, 4, false, Read)
	t[0x4E] = def(0x4E, Lsr, Absolute, 3, 6, false, RMW)
	t[0x4F] = def(0x4F, SRE, Absolute, 3, 6, false, RMW)

	// $5x
	t[0x50] = def(0x50, Bvc, Relative, 2, 2, false, Flow)
	t[0x51] = def(0x51, Eor, IndirectIndexed, 2, 5, true, Read)
	t[0x52] = def(0x52, KIL, Implied, 1, 2, false, Read)
	t[0x53] = def(0x53, SRE, IndirectIndexed, 2, 8, false, RMW)
	t[0x54] = def(0x54, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x55] = def(0x55, Eor, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x56] = def(0x56, Lsr, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x57] = def(0x57, SRE, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x58] = def(0x58, Cli, Implied, 1, 2, false, Read)
	t[0x59] = def(0x59, Eor, AbsoluteIndexedY, 3, 4, true, Read)
	t[0x5A] = def(0x5A, NOP, Implied, 1, 2, false, Read)
	t[0x5B] = def(0x5B, SRE, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0x5C] = def(0x5C, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x5D] = def(0x5D, Eor, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x5E] = def(0x5E, Lsr, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0x5F] = def(0x5F, SRE, AbsoluteIndexedX, 3, 7, false, RMW)

	// $6x
	t[0x60] = def(0x60, Rts, Implied, 1, 6, false, Subroutine)
	t[0x61] = def(0x61, Adc, IndexedIndirect, 2, 6, false, Read)
	t[0x62] = def(0x62, KIL, Implied, 1, 2, false, Read)
	t[0x63] = def(0x63, RRA, IndexedIndirect, 2, 8, false, RMW)
	t[0x64] = def(0x64, NOP, ZeroPage, 2, 3, false, Read)
	t[0x65] = def(0x65, Adc, ZeroPage, 2, 3, false, Read)
	t[0x66] = def(0x66, Ror, ZeroPage, 2, 5, false, RMW)
	t[0x67] = def(0x67, RRA, ZeroPage, 2, 5, false, RMW)
	t[0x68] = def(0x68, Pla, Implied, 1, 4, false, Read)
	t[0x69] = def(0x69, Adc, Immediate, 2, 2, false, Read)
	t[0x6A] = def(0x6A, Ror, Implied, 1, 2, false, Read)
	t[0x6B] = def(0x6B, ARR, Immediate, 2, 2, false, Read)
	t[0x6C] = def(0x6C, Jmp, Indirect, 3, 5, false, Flow)
	t[0x6D] = def(0x6D, Adc, Absolute, 3, 4, false, Read)
	t[0x6E] = def(0x6E, Ror, Absolute, 3, 6, false, RMW)
	t[0x6F] = def(0x6F, RRA, Absolute, 3, 6, false, RMW)

	// $7x
	t[0x70] = def(0x70, Bvs, Relative, 2, 2, false, Flow)
	t[0x71] = def(0x71, Adc, IndirectIndexed, 2, 5, true, Read)
	t[0x72] = def(0x72, KIL, Implied, 1, 2, false, Read)
	t[0x73] = def(0x73, RRA, IndirectIndexed, 2, 8, false, RMW)
	t[0x74] = def(0x74, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x75] = def(0x75, Adc, ZeroPageIndexedX, 2, 4, false, Read)
	t[0x76] = def(0x76, Ror, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x77] = def(0x77, RRA, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0x78] = def(0x78, Sei, Implied, 1, 2, false, Read)
	t[0x79] = def(0x79, Adc, AbsoluteIndexedY, 3, 4, true, Read)
	t[0x7A] = def(0x7A, NOP, Implied, 1, 2, false, Read)
	t[0x7B] = def(0x7B, RRA, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0x7C] = def(0x7C, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x7D] = def(0x7D, Adc, AbsoluteIndexedX, 3, 4, true, Read)
	t[0x7E] = def(0x7E, Ror, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0x7F] = def(0x7F, RRA, AbsoluteIndexedX, 3, 7, false, RMW)

	// $8x
	t[0x80] = def(0x80, NOP, Immediate, 2, 2, false, Read)
	t[0x81] = def(0x81, Sta, IndexedIndirect, 2, 6, false, Write)
	t[0x82] = def(0x82, NOP, Immediate, 2, 2, false, Read)
	t[0x83] = def(0x83, SAX, IndexedIndirect, 2, 6, false, Write)
	t[0x84] = def(0x84, Sty, ZeroPage, 2, 3, false, Write)
	t[0x85] = def(0x85, Sta, ZeroPage, 2, 3, false, Write)
	t[0x86] = def(0x86, Stx, ZeroPage, 2, 3, false, Write)
	t[0x87] = def(0x87, SAX, ZeroPage, 2, 3, false, Write)
	t[0x88] = def(0x88, Dey, Implied, 1, 2, false, Read)
	t[0x89] = def(0x89, NOP, Immediate, 2, 2, false, Read)
	t[0x8A] = def(0x8A, Txa, Implied, 1, 2, false, Read)
	t[0x8B] = def(0x8B, XAA, Immediate, 2, 2, false, Read)
	t[0x8C] = def(0x8C, Sty, Absolute, 3, 4, false, Write)
	t[0x8D] = def(0x8D, Sta, Absolute, 3, 4, false, Write)
	t[0x8E] = def(0x8E, Stx, Absolute, 3, 4, false, Write)
	t[0x8F] = def(0x8F, SAX, Absolute, 3, 4, false, Write)

	// $9x
	t[0x90] = def(0x90, Bcc, Relative, 2, 2, false, Flow)
	t[0x91] = def(0x91, Sta, IndirectIndexed, 2, 6, false, Write)
	t[0x92] = def(0x92, KIL, Implied, 1, 2, false, Read)
	t[0x93] = def(0x93, AHX, IndirectIndexed, 2, 6, false, Write)
	t[0x94] = def(0x94, Sty, ZeroPageIndexedX, 2, 4, false, Write)
	t[0x95] = def(0x95, Sta, ZeroPageIndexedX, 2, 4, false, Write)
	t[0x96] = def(0x96, Stx, ZeroPageIndexedY, 2, 4, false, Write)
	t[0x97] = def(0x97, SAX, ZeroPageIndexedY, 2, 4, false, Write)
	t[0x98] = def(0x98, Tya, Implied, 1, 2, false, Read)
	t[0x99] = def(0x99, Sta, AbsoluteIndexedY, 3, 5, false, Write)
	t[0x9A] = def(0x9A, Txs, Implied, 1, 2, false, Read)
	t[0x9B] = def(0x9B, TAS, AbsoluteIndexedY, 3, 5, false, Write)
	t[0x9C] = def(0x9C, SHY, AbsoluteIndexedX, 3, 5, false, Write)
	t[0x9D] = def(0x9D, Sta, AbsoluteIndexedX, 3, 5, false, Write)
	t[0x9E] = def(0x9E, SHX, AbsoluteIndexedY, 3, 5, false, Write)
	t[0x9F] = def(0x9F, AHX, AbsoluteIndexedY, 3, 5, false, Write)

	// $Ax
	t[0xA0] = def(0xA0, Ldy, Immediate, 2, 2, false, Read)
	t[0xA1] = def(0xA1, Lda, IndexedIndirect, 2, 6, false, Read)
	t[0xA2] = def(0xA2, Ldx, Immediate, 2, 2, false, Read)
	t[0xA3] = def(0xA3, LAX, IndexedIndirect, 2, 6, false, Read)
	t[0xA4] = def(0xA4, Ldy, ZeroPage, 2, 3, false, Read)
	t[0xA5] = def(0xA5, Lda, ZeroPage, 2, 3, false, Read)
	t[0xA6] = def(0xA6, Ldx, ZeroPage, 2, 3, false, Read)
	t[0xA7] = def(0xA7, LAX, ZeroPage, 2, 3, false, Read)
	t[0xA8] = def(0xA8, Tay, Implied, 1, 2, false, Read)
	t[0xA9] = def(0xA9, Lda, Immediate, 2, 2, false, Read)
	t[0xAA] = def(0xAA, Tax, Implied, 1, 2, false, Read)
	t[0xAB] = def(0xAB, LAX, Immediate, 2, 2, false, Read)
	t[0xAC] = def(0xAC, Ldy, Absolute, 3, 4, false, Read)
	t[0xAD] = def(0xAD, Lda, Absolute, 3, 4, false, Read)
	t[0xAE] = def(0xAE, Ldx, Absolute, 3, 4, false, Read)
	t[0xAF] = def(0xAF, LAX, Absolute, 3, 4, false, Read)

	// $Bx
	t[0xB0] = def(0xB0, Bcs, Relative, 2, 2, false, Flow)
	t[0xB1] = def(0xB1, Lda, IndirectIndexed, 2, 5, true, Read)
	t[0xB2] = def(0xB2, KIL, Implied, 1, 2, false, Read)
	t[0xB3] = def(0xB3, LAX, IndirectIndexed, 2, 5, true, Read)
	t[0xB4] = def(0xB4, Ldy, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xB5] = def(0xB5, Lda, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xB6] = def(0xB6, Ldx, ZeroPageIndexedY, 2, 4, false, Read)
	t[0xB7] = def(0xB7, LAX, ZeroPageIndexedY, 2, 4, false, Read)
	t[0xB8] = def(0xB8, Clv, Implied, 1, 2, false, Read)
	t[0xB9] = def(0xB9, Lda, AbsoluteIndexedY, 3, 4, true, Read)
	t[0xBA] = def(0xBA, Tsx, Implied, 1, 2, false, Read)
	t[0xBB] = def(0xBB, LAS, AbsoluteIndexedY, 3, 4, true, Read)
	t[0xBC] = def(0xBC, Ldy, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xBD] = def(0xBD, Lda, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xBE] = def(0xBE, Ldx, AbsoluteIndexedY, 3, 4, true, Read)
	t[0xBF] = def(0xBF, LAX, AbsoluteIndexedY, 3, 4, true, Read)

	// $Cx
	t[0xC0] = def(0xC0, Cpy, Immediate, 2, 2, false, Read)
	t[0xC1] = def(0xC1, Cmp, IndexedIndirect, 2, 6, false, Read)
	t[0xC2] = def(0xC2, NOP, Immediate, 2, 2, false, Read)
	t[0xC3] = def(0xC3, DCP, IndexedIndirect, 2, 8, false, RMW)
	t[0xC4] = def(0xC4, Cpy, ZeroPage, 2, 3, false, Read)
	t[0xC5] = def(0xC5, Cmp, ZeroPage, 2, 3, false, Read)
	t[0xC6] = def(0xC6, Dec, ZeroPage, 2, 5, false, RMW)
	t[0xC7] = def(0xC7, DCP, ZeroPage, 2, 5, false, RMW)
	t[0xC8] = def(0xC8, Iny, Implied, 1, 2, false, Read)
	t[0xC9] = def(0xC9, Cmp, Immediate, 2, 2, false, Read)
	t[0xCA] = def(0xCA, Dex, Implied, 1, 2, false, Read)
	t[0xCB] = def(0xCB, AXS, Immediate, 2, 2, false, Read)
	t[0xCC] = def(0xCC, Cpy, Absolute, 3, 4, false, Read)
	t[0xCD] = def(0xCD, Cmp, Absolute, 3, 4, false, Read)
	t[0xCE] = def(0xCE, Dec, Absolute, 3, 6, false, RMW)
	t[0xCF] = def(0xCF, DCP, Absolute, 3, 6, false, RMW)

	// $Dx
	t[0xD0] = def(0xD0, Bne, Relative, 2, 2, false, Flow)
	t[0xD1] = def(0xD1, Cmp, IndirectIndexed, 2, 5, true, Read)
	t[0xD2] = def(0xD2, KIL, Implied, 1, 2, false, Read)
	t[0xD3] = def(0xD3, DCP, IndirectIndexed, 2, 8, false, RMW)
	t[0xD4] = def(0xD4, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xD5] = def(0xD5, Cmp, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xD6] = def(0xD6, Dec, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0xD7] = def(0xD7, DCP, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0xD8] = def(0xD8, Cld, Implied, 1, 2, false, Read)
	t[0xD9] = def(0xD9, Cmp, AbsoluteIndexedY, 3, 4, true, Read)
	t[0xDA] = def(0xDA, NOP, Implied, 1, 2, false, Read)
	t[0xDB] = def(0xDB, DCP, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0xDC] = def(0xDC, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xDD] = def(0xDD, Cmp, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xDE] = def(0xDE, Dec, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0xDF] = def(0xDF, DCP, AbsoluteIndexedX, 3, 7, false, RMW)

	// $Ex
	t[0xE0] = def(0xE0, Cpx, Immediate, 2, 2, false, Read)
	t[0xE1] = def(0xE1, Sbc, IndexedIndirect, 2, 6, false, Read)
	t[0xE2] = def(0xE2, NOP, Immediate, 2, 2, false, Read)
	t[0xE3] = def(0xE3, ISC, IndexedIndirect, 2, 8, false, RMW)
	t[0xE4] = def(0xE4, Cpx, ZeroPage, 2, 3, false, Read)
	t[0xE5] = def(0xE5, Sbc, ZeroPage, 2, 3, false, Read)
	t[0xE6] = def(0xE6, Inc, ZeroPage, 2, 5, false, RMW)
	t[0xE7] = def(0xE7, ISC, ZeroPage, 2, 5, false, RMW)
	t[0xE8] = def(0xE8, Inx, Implied, 1, 2, false, Read)
	t[0xE9] = def(0xE9, Sbc, Immediate, 2, 2, false, Read)
	t[0xEA] = def(0xEA, Nop, Implied, 1, 2, false, Read)
	t[0xEB] = def(0xEB, SBC, Immediate, 2, 2, false, Read)
	t[0xEC] = def(0xEC, Cpx, Absolute, 3, 4, false, Read)
	t[0xED] = def(0xED, Sbc, Absolute, 3, 4, false, Read)
	t[0xEE] = def(0xEE, Inc, Absolute, 3, 6, false, RMW)
	t[0xEF] = def(0xEF, ISC, Absolute, 3, 6, false, RMW)

	// $Fx
	t[0xF0] = def(0xF0, Beq, Relative, 2, 2, false, Flow)
	t[0xF1] = def(0xF1, Sbc, IndirectIndexed, 2, 5, true, Read)
	t[0xF2] = def(0xF2, KIL, Implied, 1, 2, false, Read)
	t[0xF3] = def(0xF3, ISC, IndirectIndexed, 2, 8, false, RMW)
	t[0xF4] = def(0xF4, NOP, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xF5] = def(0xF5, Sbc, ZeroPageIndexedX, 2, 4, false, Read)
	t[0xF6] = def(0xF6, Inc, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0xF7] = def(0xF7, ISC, ZeroPageIndexedX, 2, 6, false, RMW)
	t[0xF8] = def(0xF8, Sed, Implied, 1, 2, false, Read)
	t[0xF9] = def(0xF9, Sbc, AbsoluteIndexedY, 3, 4, true, Read)
	t[0xFA] = def(0xFA, NOP, Implied, 1, 2, false, Read)
	t[0xFB] = def(0xFB, ISC, AbsoluteIndexedY, 3, 7, false, RMW)
	t[0xFC] = def(0xFC, NOP, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xFD] = def(0xFD, Sbc, AbsoluteIndexedX, 3, 4, true, Read)
	t[0xFE] = def(0xFE, Inc, AbsoluteIndexedX, 3, 7, false, RMW)
	t[0xFF] = def(0xFF, ISC, AbsoluteIndexedX, 3, 7, false, RMW)

	return t
}
