package drive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/drive"
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
)

func newTestInstance(t *testing.T) *instance.Instance {
	t.Helper()
	ins, err := instance.NewInstance("", 1)
	require.NoError(t, err)
	return ins
}

func TestNewD1541DeviceNumberAndMount(t *testing.T) {
	line := &irq.Line{}
	d, err := drive.NewD1541(8, newTestInstance(t), line)
	require.NoError(t, err)

	assert.Equal(t, 8, d.DeviceNumber())
	assert.True(t, d.CanMount("D64"))
	assert.False(t, d.CanMount("D71"))
	assert.False(t, d.CanMount("D81"))
	assert.Equal(t, 1.0, d.ClockMultiplier())
}

func TestD1541LoadROMRejectsWrongSize(t *testing.T) {
	d, err := drive.NewD1541(8, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)
	assert.Error(t, d.LoadROM(make([]byte, 100)))
	assert.NoError(t, d.LoadROM(make([]byte, 0x4000)))
}

func TestD1541InsertAndUnloadDisk(t *testing.T) {
	d, err := drive.NewD1541(8, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)

	require.NoError(t, d.InsertDisk(make([]byte, 174848)))
	assert.Equal(t, drive.StatusReady, d.Status())
	assert.Equal(t, drive.ErrNone, d.LastError())

	d.UnloadDisk()
	assert.Equal(t, drive.StatusIdle, d.Status())
}

func TestD1541InsertDiskRejectsBadSize(t *testing.T) {
	d, err := drive.NewD1541(8, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)
	assert.Error(t, d.InsertDisk(make([]byte, 42)))
	assert.Equal(t, drive.ErrNoDisk, d.LastError())
}

func TestD1541TickRunsWithoutError(t *testing.T) {
	d, err := drive.NewD1541(8, newTestInstance(t), &irq.Line{})
	require.NoError(t, err)
	require.NoError(t, d.LoadROM(make([]byte, 0x4000)))
	require.NoError(t, d.InsertDisk(make([]byte, 174848)))

	assert.NoError(t, d.Tick(1000))
	assert.Equal(t, 18, d.CurrentTrack())
}
