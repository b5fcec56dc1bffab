package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/cia"
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
)

func newWhiteboxD1571(t *testing.T) *D1571 {
	t.Helper()
	ins, err := instance.NewInstance("", 1)
	require.NoError(t, err)
	d, err := NewD1571(8, ins, &irq.Line{})
	require.NoError(t, err)
	return d
}

// enableAutoAtnAck configures the CIA's port B ciaPRBAtnAck bit as an
// output driven high, the hardware configuration the handshake checks.
func enableAutoAtnAck(d *D1571) {
	d.ciaChip.WriteRegister(cia.RegDDRB, ciaPRBAtnAck)
	d.ciaChip.WriteRegister(cia.RegPRB, ciaPRBAtnAck)
}

func TestAutoAtnAckAssertsImmediatelyWhenCLKAlreadyLow(t *testing.T) {
	d := newWhiteboxD1571(t)
	enableAutoAtnAck(d)

	var sawDataLow bool
	d.SetBusOutput(func(clkLow, dataLow, srqAsserted bool) {
		sawDataLow = dataLow
	})

	d.CLKChanged(true)
	d.ATNChanged(true)

	assert.True(t, d.ackArmed)
	assert.True(t, d.extDataLow)
	assert.True(t, sawDataLow)
}

func TestAutoAtnAckWaitsForCLKEdgeWhenNotAlreadyLow(t *testing.T) {
	d := newWhiteboxD1571(t)
	enableAutoAtnAck(d)

	d.ATNChanged(true)

	assert.True(t, d.ackArmed)
	assert.False(t, d.extDataLow)
}

func TestAutoAtnAckCancelsImmediatelyWhenATNRises(t *testing.T) {
	d := newWhiteboxD1571(t)
	enableAutoAtnAck(d)

	var lastDataLow bool
	d.SetBusOutput(func(clkLow, dataLow, srqAsserted bool) {
		lastDataLow = dataLow
	})

	d.CLKChanged(true)
	d.ATNChanged(true)
	require.True(t, d.extDataLow)

	d.ATNChanged(false)

	assert.False(t, d.ackArmed)
	assert.False(t, d.extDataLow)
	assert.False(t, lastDataLow)
}

func TestAutoAtnAckReleasesOnlyAfterHoldAndFullCLKPhase(t *testing.T) {
	d := newWhiteboxD1571(t)
	enableAutoAtnAck(d)

	d.CLKChanged(true)
	d.ATNChanged(true)
	require.True(t, d.extDataLow)

	// Hold past the minimum, but CLK never goes high again: must stay
	// asserted since the "saw low then high" phase was never completed.
	d.tickAutoAtnAck(minAckHoldCycles + 10)
	assert.True(t, d.extDataLow)

	// CLK returns high: now the full phase is observed and, combined with
	// the hold time already elapsed, the latch releases.
	d.CLKChanged(false)
	d.tickAutoAtnAck(1)

	assert.False(t, d.ackArmed)
	assert.False(t, d.extDataLow)
}

func TestAutoAtnAckDoesNothingWhenNotConfigured(t *testing.T) {
	d := newWhiteboxD1571(t)

	d.CLKChanged(true)
	d.ATNChanged(true)

	assert.False(t, d.ackArmed)
	assert.False(t, d.extDataLow)
}

func TestReadCIAPortBOverlaysATNAndCLKWhenInput(t *testing.T) {
	d := newWhiteboxD1571(t)

	d.atnLow = true
	d.clkLow = false
	v := d.readCIAPortB(0, 0)
	assert.Equal(t, uint8(ciaPRBAtnIn), v&(ciaPRBAtnIn|ciaPRBClkIn))

	d.atnLow = false
	d.clkLow = true
	v = d.readCIAPortB(0, 0)
	assert.Equal(t, uint8(ciaPRBClkIn), v&(ciaPRBAtnIn|ciaPRBClkIn))
}
