package registers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/cpu/registers"
)

func TestRegisterArithmetic(t *testing.T) {
	r := registers.NewRegister(0xff, "A")

	carry, overflow := r.Add(1, false)
	assert.True(t, carry)
	assert.False(t, overflow)
	assert.Equal(t, uint8(0), r.Value())
	assert.True(t, r.IsZero())

	r.Load(0x7f)
	carry, overflow = r.Add(1, false)
	assert.False(t, carry)
	assert.True(t, overflow)
	assert.True(t, r.IsNegative())
}

func TestRegisterShifts(t *testing.T) {
	r := registers.NewRegister(0x81, "A")
	carry := r.ASL()
	assert.True(t, carry)
	assert.Equal(t, uint8(0x02), r.Value())

	r.Load(0x01)
	carry = r.LSR()
	assert.True(t, carry)
	assert.Equal(t, uint8(0x00), r.Value())
}

func TestStackPointerAddress(t *testing.T) {
	sp := registers.NewStackPointer(0xfd)
	assert.Equal(t, uint16(0x01fd), sp.Address())
}
