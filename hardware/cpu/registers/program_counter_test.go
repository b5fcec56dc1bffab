package registers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/cpu/registers"
)

func TestProgramCounter(t *testing.T) {
	pc := registers.NewProgramCounter(0)
	assert.Equal(t, uint16(0), pc.Address())

	pc.Load(127)
	assert.Equal(t, uint16(127), pc.Value())

	pc.Add(2)
	assert.Equal(t, uint16(129), pc.Value())
}

func TestProgramCounterWrap(t *testing.T) {
	pc := registers.NewProgramCounter(0xffff)
	carry, _ := pc.Add(1)
	assert.True(t, carry)
	assert.Equal(t, uint16(0), pc.Value())
}
