package irq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/irq"
)

func TestLine(t *testing.T) {
	var l irq.Line
	assert.False(t, l.Active())

	l.Raise(irq.CIA1TimerA)
	assert.True(t, l.Active())
	assert.Equal(t, irq.CIA1TimerA, l.Sources())

	l.Raise(irq.VICRaster)
	assert.True(t, l.Active())
	assert.Equal(t, irq.CIA1TimerA|irq.VICRaster, l.Sources())

	l.Clear(irq.CIA1TimerA)
	assert.True(t, l.Active(), "VICRaster source still set")

	l.Clear(irq.VICRaster)
	assert.False(t, l.Active())
}

func TestReset(t *testing.T) {
	var l irq.Line
	l.Raise(irq.Drive1541)
	l.Reset()
	assert.False(t, l.Active())
}
