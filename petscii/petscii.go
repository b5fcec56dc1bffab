// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

// Package petscii converts between ASCII, PETSCII (the encoding disk
// directory entries, filenames, and BASIC text use) and VIC-II screen
// codes (what character ROM glyph a screen RAM byte selects).
package petscii

// PadByte is the trailing padding byte disk directory entries and BAM
// filename fields use: $A0, shifted space.
const PadByte = 0xa0

// FromASCII converts a single ASCII character to its uppercase-mode
// PETSCII encoding: uppercase letters and digits map directly, space and a
// handful of common punctuation marks map directly, and lowercase letters
// map to their uppercase code plus $80 (e.g. 'a' $61 -> $C1). Anything else
// falls back to space.
func FromASCII(c byte) uint8 {
	switch {
	case c >= 'A' && c <= 'Z':
		return c
	case c >= '0' && c <= '9':
		return c
	case c >= 'a' && c <= 'z':
		return (c - 0x20) | 0x80
	}

	switch c {
	case ' ', '.', '"', '*', ',', ':', ';', '/', '-', '+', '(', ')', '$', '%', '=', '!', '?':
		return c
	}

	return ' '
}

// FromASCIIString converts an entire ASCII string to PETSCII bytes.
func FromASCIIString(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = FromASCII(s[i])
	}
	return out
}

// ToASCII is FromASCII's inverse for display purposes: uppercase-mode
// PETSCII codes ($41-$5A) and digits/punctuation map back directly,
// shifted-lowercase codes ($C1-$DA) map back to lowercase ASCII. Anything
// else (control codes, graphics characters) renders as a space, since
// there is no faithful ASCII equivalent.
func ToASCII(p uint8) byte {
	switch {
	case p >= 0xc1 && p <= 0xda:
		return (p & 0x7f) + 0x20
	case p >= 'A' && p <= 'Z':
		return p
	case p >= '0' && p <= '9':
		return p
	}

	switch p {
	case ' ', '.', '"', '*', ',', ':', ';', '/', '-', '+', '(', ')', '$', '%', '=', '!', '?':
		return p
	}

	return ' '
}

// ToScreenCode converts a PETSCII byte to the VIC-II screen code that,
// written into screen RAM, selects the matching glyph from character ROM.
// The mapping is not identity: $20-$3F and $80-$9F pass through unchanged,
// $40-$5F and $A0-$BF drop by $40, $60-$7F drops by $20, $C0-$FF drop by
// $80, and the control codes $00-$1F move up by $80. $A0-$BF and $E0-$FE
// therefore land on the same glyphs ($60-$7F), as do $60-$7F and $C0-$DF
// ($40-$5F): PETSCII's code space reuses ranges for shifted variants.
func ToScreenCode(p uint8) uint8 {
	switch {
	case p < 0x20:
		return p + 0x80
	case p < 0x40:
		return p
	case p < 0x60:
		return p - 0x40
	case p < 0x80:
		return p - 0x20
	case p < 0xa0:
		return p
	case p < 0xc0:
		return p - 0x40
	case p < 0xe0:
		return p - 0x80
	default:
		return p - 0x80
	}
}

// FromScreenCode converts a VIC-II screen code back to its most common
// PETSCII preimage, for display/debugging dumps of screen RAM. ToScreenCode
// is not injective - several PETSCII ranges (shifted, reversed, graphics)
// collapse onto the same 64 glyphs the character ROM's unshifted charset
// provides - so this only reconstructs the @, A-Z, digit and punctuation
// range faithfully; every other screen code (graphics and reverse-video
// glyphs) has no ASCII equivalent and renders as a space.
func FromScreenCode(code uint8) uint8 {
	switch {
	case code < 0x20:
		return code + 0x40
	case code < 0x40:
		return code
	default:
		return ' '
	}
}

// TrimPadding strips trailing padding from a fixed-width PETSCII field such
// as a directory filename or disk/tape name. Disk BAM entries pad with $A0
// (shifted space); T64 tape directory entries pad with plain $20; some
// tools leave trailing zero bytes instead. All three are stripped.
func TrimPadding(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == PadByte || b[end-1] == 0x00 || b[end-1] == 0x20) {
		end--
	}
	return string(b[:end])
}

// PadTo returns name encoded as PETSCII and padded to width bytes with
// PadByte, truncating if it's already longer than width - the layout a
// directory entry or BAM disk-name field expects.
func PadTo(name string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = PadByte
	}
	encoded := FromASCIIString(name)
	n := len(encoded)
	if n > width {
		n = width
	}
	copy(out, encoded[:n])
	return out
}
