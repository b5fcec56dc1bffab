package cia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/cia"
	"github.com/gocbm/c64core/hardware/irq"
)

func newTestCIA() (*cia.CIA, *irq.Line) {
	var line irq.Line
	sources := [5]irq.Source{
		irq.CIA1TimerA, irq.CIA1TimerB, irq.CIA1TODAlarm, irq.CIA1SerialPort, irq.CIA1FlagLine,
	}
	return cia.NewCIA("test", &line, sources, 1000), &line
}

func TestTimerALoadsLatchAndStartsOnCRAStart(t *testing.T) {
	c, line := newTestCIA()

	c.WriteRegister(cia.RegTALO, 0x05)
	c.WriteRegister(cia.RegTAHI, 0x00)
	assert.Equal(t, uint8(0x05), c.ReadRegister(cia.RegTALO))

	c.WriteRegister(cia.RegICR, 0x81) // enable timer A IRQ
	c.WriteRegister(cia.RegCRA, 0x01) // start, phi2-driven

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Tick(1))
	}
	assert.False(t, line.Active(), "timer hasn't underflowed yet")

	require.NoError(t, c.Tick(1))
	assert.True(t, line.Active())

	icr := c.ReadRegister(cia.RegICR)
	assert.Equal(t, uint8(0x81), icr&0x81, "IRQ occurred bit and timer A bit both set")
	assert.False(t, line.Active(), "reading ICR acknowledges the interrupt")
}

func TestTimerAOneShotStops(t *testing.T) {
	c, _ := newTestCIA()
	c.WriteRegister(cia.RegTALO, 0x01)
	c.WriteRegister(cia.RegTAHI, 0x00)
	c.WriteRegister(cia.RegCRA, 0x01|0x08) // start, one-shot

	require.NoError(t, c.Tick(2)) // one tick to reach zero, one more to underflow+reload+stop
	assert.Equal(t, uint8(0x00), c.ReadRegister(cia.RegCRA)&0x01, "one-shot timer should have stopped")
}

func TestTimerBCascadeFromTimerAUnderflow(t *testing.T) {
	c, _ := newTestCIA()
	c.WriteRegister(cia.RegTALO, 0x01)
	c.WriteRegister(cia.RegTAHI, 0x00)
	c.WriteRegister(cia.RegCRA, 0x01)

	c.WriteRegister(cia.RegTBLO, 0x02)
	c.WriteRegister(cia.RegTBHI, 0x00)
	c.WriteRegister(cia.RegCRB, 0x01|0x40) // start, count timer A underflows

	require.NoError(t, c.Tick(2)) // timer A underflows once
	tbLo := c.ReadRegister(cia.RegTBLO)
	assert.Equal(t, uint8(0x01), tbLo)
}

func TestTODAlarmFires(t *testing.T) {
	c, line := newTestCIA()
	c.WriteRegister(cia.RegICR, 0x84) // enable TOD alarm

	// alarm set mode via CRB bit 7
	c.WriteRegister(cia.RegCRB, 0x80)
	c.WriteRegister(cia.RegTODT, 0x01)
	c.WriteRegister(cia.RegCRB, 0x00) // back to clock-set mode
	c.WriteRegister(cia.RegTODT, 0x00)

	require.NoError(t, c.Tick(1000)) // one tenth of a second
	assert.True(t, line.Active())
}

func TestTODLatchFreezesUntilTenthsRead(t *testing.T) {
	c, _ := newTestCIA()
	c.WriteRegister(cia.RegTODT, 0x00)
	c.WriteRegister(cia.RegTODS, 0x00)

	require.NoError(t, c.Tick(1000))
	_ = c.ReadRegister(cia.RegTODH) // latches
	before := c.ReadRegister(cia.RegTODS)

	require.NoError(t, c.Tick(10000))
	frozen := c.ReadRegister(cia.RegTODS)
	assert.Equal(t, before, frozen, "seconds latched, shouldn't have advanced")

	c.ReadRegister(cia.RegTODT) // unlatches
	after := c.ReadRegister(cia.RegTODS)
	assert.NotEqual(t, before, after)
}

func TestICRMaskControlsWhichBitsAssertLine(t *testing.T) {
	c, line := newTestCIA()
	c.WriteRegister(cia.RegTALO, 0x01)
	c.WriteRegister(cia.RegTAHI, 0x00)
	c.WriteRegister(cia.RegCRA, 0x01)
	require.NoError(t, c.Tick(2))
	assert.False(t, line.Active(), "timer A bit latched but not enabled")
	assert.NotZero(t, c.IFR()&0x01)
}
