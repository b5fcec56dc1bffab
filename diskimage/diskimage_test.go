package diskimage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/diskimage"
)

func TestD64ReadWriteSectorRoundtrip(t *testing.T) {
	raw := make([]byte, 174848)
	d, err := diskimage.NewD64(raw)
	require.NoError(t, err)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, d.WriteSector(1, 0, data))

	got, err := d.ReadSector(1, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestD64SectorsPerTrackZones(t *testing.T) {
	raw := make([]byte, 174848)
	d, err := diskimage.NewD64(raw)
	require.NoError(t, err)
	assert.Equal(t, 21, d.SectorsOnTrack(1))
	assert.Equal(t, 17, d.SectorsOnTrack(35))
}

func TestD64RejectsUnknownSize(t *testing.T) {
	_, err := diskimage.NewD64(make([]byte, 123))
	assert.Error(t, err)
}

func TestD71SideSelectionOffsetsTrackNumbering(t *testing.T) {
	raw := make([]byte, 349696)
	d, err := diskimage.NewD71(raw)
	require.NoError(t, err)
	assert.Equal(t, 70, d.Tracks())

	data := make([]byte, 256)
	data[0] = 0xaa
	require.NoError(t, d.WriteSector(36, 0, data)) // side 1, track 1 (36 = 1+35)

	got, err := d.ReadSector(36, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	other, err := d.ReadSector(1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, got, other)
}

func TestD81ReadWriteSectorRoundtrip(t *testing.T) {
	raw := make([]byte, 819200)
	d, err := diskimage.NewD81(raw)
	require.NoError(t, err)
	assert.Equal(t, 512, d.SectorSize())

	data := make([]byte, 512)
	for i := range data {
		data[i] = byte(i % 7)
	}
	require.NoError(t, d.WriteSector(0, 0, 0, data))
	got, err := d.ReadSector(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, d.WriteSector(79, 9, 1, data))
	got, err = d.ReadSector(79, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestD81RejectsWrongSize(t *testing.T) {
	_, err := diskimage.NewD81(make([]byte, 1000))
	assert.Error(t, err)
}
