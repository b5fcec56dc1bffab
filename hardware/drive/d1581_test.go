package drive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/drive"
	"github.com/gocbm/c64core/hardware/irq"
)

func TestD1581MountsOnlyD81(t *testing.T) {
	d, err := drive.NewD1581(10, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)

	assert.False(t, d.CanMount("D64"))
	assert.False(t, d.CanMount("D71"))
	assert.True(t, d.CanMount("D81"))
	assert.Equal(t, 2.0, d.ClockMultiplier())
}

func TestD1581TickRunsWithoutError(t *testing.T) {
	d, err := drive.NewD1581(10, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)
	require.NoError(t, d.LoadROM(make([]byte, 0x8000)))
	require.NoError(t, d.InsertDisk(make([]byte, 819200)))

	assert.NoError(t, d.Tick(1000))
}
