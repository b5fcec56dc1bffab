package via_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/drive/via"
)

func TestTimer1ContinuousReloadsAndInterrupts(t *testing.T) {
	var v via.VIA
	v.WriteRegister(via.RegACR, 0x40) // continuous mode
	v.WriteRegister(via.RegIER, 0x80|via.IFRTimer1)
	v.WriteRegister(via.RegT1LL, 0x02)
	v.WriteRegister(via.RegT1CH, 0x00) // latching high byte also loads the counter and starts it

	_ = v.Tick(2)
	assert.NotZero(t, v.ReadRegister(via.RegIFR)&via.IFRTimer1)
	assert.True(t, v.Active())

	// reloaded from latch (2) and still running
	assert.Equal(t, uint8(2), v.ReadRegister(via.RegT1CL))
}

func TestTimer1OneShotStops(t *testing.T) {
	var v via.VIA
	v.WriteRegister(via.RegACR, 0x00) // one-shot
	v.WriteRegister(via.RegT1LL, 0x01)
	v.WriteRegister(via.RegT1CH, 0x00)

	_ = v.Tick(1)
	assert.NotZero(t, v.ReadRegister(via.RegIFR)&via.IFRTimer1)

	before := v.ReadRegister(via.RegT1CL)
	_ = v.Tick(5)
	assert.Equal(t, before, v.ReadRegister(via.RegT1CL), "one-shot timer should have stopped")
}

func TestPortAWriteHookFires(t *testing.T) {
	var v via.VIA
	var seen uint8
	v.OnWritePortA = func(value uint8) { seen = value }

	v.WriteRegister(via.RegDDRA, 0xff)
	v.WriteRegister(via.RegPortA, 0x55)
	assert.Equal(t, uint8(0x55), seen)
}

func TestIERSetClearMaskDirection(t *testing.T) {
	var v via.VIA
	v.WriteRegister(via.RegIER, 0x80|via.IFRTimer1|via.IFRTimer2)
	assert.Equal(t, via.IFRTimer1|via.IFRTimer2|0x80, v.ReadRegister(via.RegIER))

	v.WriteRegister(via.RegIER, via.IFRTimer2) // bit 7 clear: clear this mask
	ier := v.ReadRegister(via.RegIER) &^ 0x80
	assert.Equal(t, via.IFRTimer1, ier)
}
