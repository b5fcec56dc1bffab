package drive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/drive"
	"github.com/gocbm/c64core/hardware/irq"
)

func TestD1571MountsBothD64AndD71(t *testing.T) {
	d, err := drive.NewD1571(9, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)

	assert.True(t, d.CanMount("D64"))
	assert.True(t, d.CanMount("D71"))
	assert.False(t, d.CanMount("D81"))

	require.NoError(t, d.LoadROM(make([]byte, 0x8000)))
	require.NoError(t, d.InsertDisk(make([]byte, 174848)))
	assert.Equal(t, drive.StatusReady, d.Status())

	require.NoError(t, d.InsertDisk(make([]byte, 349696)))
	assert.Equal(t, drive.StatusReady, d.Status())
}

func TestD1571TickRunsWithoutError(t *testing.T) {
	d, err := drive.NewD1571(9, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)
	require.NoError(t, d.LoadROM(make([]byte, 0x8000)))
	require.NoError(t, d.InsertDisk(make([]byte, 174848)))

	assert.NoError(t, d.Tick(1000))
}
