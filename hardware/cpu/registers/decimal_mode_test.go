package registers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/cpu/registers"
)

func TestDecimalModeCarry(t *testing.T) {
	var rcarry bool

	r8 := registers.NewRegister(0, "test")

	rcarry, _, _, _ = r8.AddDecimal(1, false)
	assert.Equal(t, uint8(0x01), r8.Value())
	assert.False(t, rcarry)

	rcarry, _, _, _ = r8.AddDecimal(1, true)
	assert.Equal(t, uint8(0x03), r8.Value())
	assert.False(t, rcarry)

	r8.Load(9)
	assert.Equal(t, uint8(0x09), r8.Value())
	r8.SubtractDecimal(1, true)
	assert.Equal(t, uint8(0x08), r8.Value())

	r8.SubtractDecimal(1, false)
	assert.Equal(t, uint8(0x06), r8.Value())

	r8.Load(9)
	assert.Equal(t, uint8(0x09), r8.Value())
	r8.AddDecimal(1, false)
	assert.Equal(t, uint8(0x10), r8.Value())

	r8.SubtractDecimal(1, true)
	assert.Equal(t, uint8(0x09), r8.Value())

	r8.Load(0x99)
	assert.Equal(t, uint8(0x99), r8.Value())
	rcarry, _, _, _ = r8.AddDecimal(1, false)
	assert.Equal(t, uint8(0x00), r8.Value())
	assert.True(t, rcarry)

	r8.SubtractDecimal(1, true)
	assert.Equal(t, uint8(0x99), r8.Value())
}

func TestDecimalModeZero(t *testing.T) {
	var zero bool

	r8 := registers.NewRegister(0, "test")

	r8.Load(0x02)
	_, zero, _, _ = r8.SubtractDecimal(1, true)
	assert.False(t, zero)
	_, zero, _, _ = r8.SubtractDecimal(1, true)
	assert.True(t, zero)
}

func TestDecimalModeInvalid(t *testing.T) {
	r8 := registers.NewRegister(0x99, "test")
	rcarry, rzero, _, _ := r8.AddDecimal(1, false)
	assert.Equal(t, uint8(0x00), r8.Value())
	assert.True(t, rcarry)
	assert.False(t, rzero)
}
