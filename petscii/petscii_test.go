package petscii_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/petscii"
)

func TestFromASCIIUppercaseAndDigitsMapDirectly(t *testing.T) {
	assert.Equal(t, uint8('A'), petscii.FromASCII('A'))
	assert.Equal(t, uint8('Z'), petscii.FromASCII('Z'))
	assert.Equal(t, uint8('5'), petscii.FromASCII('5'))
}

func TestFromASCIILowercaseShiftsUp(t *testing.T) {
	assert.Equal(t, uint8(0xc1), petscii.FromASCII('a'))
	assert.Equal(t, uint8(0xda), petscii.FromASCII('z'))
}

func TestFromASCIIUnknownFallsBackToSpace(t *testing.T) {
	assert.Equal(t, uint8(' '), petscii.FromASCII('\t'))
}

func TestToASCIIIsFromASCIIsInverseForLettersAndDigits(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		assert.Equal(t, c, petscii.ToASCII(petscii.FromASCII(c)))
	}
	for c := byte('a'); c <= 'z'; c++ {
		assert.Equal(t, c, petscii.ToASCII(petscii.FromASCII(c)))
	}
	for c := byte('0'); c <= '9'; c++ {
		assert.Equal(t, c, petscii.ToASCII(petscii.FromASCII(c)))
	}
}

func TestTrimPaddingStripsA0SpaceAndZero(t *testing.T) {
	assert.Equal(t, "HELLO", petscii.TrimPadding([]byte{'H', 'E', 'L', 'L', 'O', 0xa0, 0xa0, 0xa0}))
	assert.Equal(t, "HELLO", petscii.TrimPadding([]byte{'H', 'E', 'L', 'L', 'O', 0x20, 0x20}))
	assert.Equal(t, "HELLO", petscii.TrimPadding([]byte{'H', 'E', 'L', 'L', 'O', 0x00, 0x00}))
}

func TestPadToEncodesAndPads(t *testing.T) {
	out := petscii.PadTo("hi", 5)
	assert.Equal(t, []byte{0xc8, 0xc9, 0xa0, 0xa0, 0xa0}, out)
}

func TestPadToTruncatesOverlongNames(t *testing.T) {
	out := petscii.PadTo("TOOLONGNAME", 4)
	assert.Len(t, out, 4)
	assert.Equal(t, []byte("TOOL"), out)
}

func TestToScreenCodeUppercaseRangeMapsBelow40(t *testing.T) {
	// PETSCII 'A' ($41) -> screen code 1 (the character ROM stores
	// uppercase glyphs starting from screen code 1, not 'A's ASCII value).
	assert.Equal(t, uint8(0x01), petscii.ToScreenCode('A'))
}

func TestToScreenCodeDigitsAreUnchanged(t *testing.T) {
	assert.Equal(t, uint8('5'), petscii.ToScreenCode('5'))
}

func TestFromScreenCodeIsToScreenCodesInverseForLettersAndDigits(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		assert.Equal(t, c, petscii.FromScreenCode(petscii.ToScreenCode(c)))
	}
	for c := byte('0'); c <= '9'; c++ {
		assert.Equal(t, c, petscii.FromScreenCode(petscii.ToScreenCode(c)))
	}
}

func TestFromScreenCodeGraphicsRangeFallsBackToSpace(t *testing.T) {
	assert.Equal(t, uint8(' '), petscii.FromScreenCode(0x60))
	assert.Equal(t, uint8(' '), petscii.FromScreenCode(0xff))
}
