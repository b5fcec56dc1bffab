package fdc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/drive/fdc"
)

// fakeHost is a minimal in-memory fdc.Host backed by a flat byte slice
// addressed track/sector/side, enough to exercise the FDC's command
// handling without pulling in a real disk image format.
type fakeHost struct {
	sectors       map[[3]int][]byte
	sectorSize    int
	writeProtect  bool
	missingErrors bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{sectors: make(map[[3]int][]byte), sectorSize: 256}
}

func (h *fakeHost) ReadSector(track, sector, side int) ([]byte, error) {
	key := [3]int{track, sector, side}
	if buf, ok := h.sectors[key]; ok {
		return buf, nil
	}
	if h.missingErrors {
		return nil, fmt.Errorf("fdc_test: no such sector %v", key)
	}
	return make([]byte, h.sectorSize), nil
}

func (h *fakeHost) WriteSector(track, sector, side int, data []byte) error {
	if h.writeProtect {
		return fmt.Errorf("fdc_test: write protected")
	}
	key := [3]int{track, sector, side}
	buf := make([]byte, len(data))
	copy(buf, data)
	h.sectors[key] = buf
	return nil
}

func (h *fakeHost) SectorSize() int { return h.sectorSize }

func (h *fakeHost) WriteProtected() bool { return h.writeProtect }

func TestFDCRestoreSeeksToTrackZero(t *testing.T) {
	f := &fdc.FDC177x{Host: newFakeHost()}
	f.WriteRegister(fdc.RegTrack, 5)
	f.WriteRegister(fdc.RegStatusCommand, 0x00) // Restore

	assert.Equal(t, uint8(0), f.CurrentTrack())
}

func TestFDCSeekMovesToDataRegisterTrack(t *testing.T) {
	f := &fdc.FDC177x{Host: newFakeHost()}
	f.WriteRegister(fdc.RegData, 42)
	f.WriteRegister(fdc.RegStatusCommand, 0x10) // Seek

	assert.Equal(t, uint8(42), f.CurrentTrack())
}

func TestFDCStepInAdvancesTrack(t *testing.T) {
	f := &fdc.FDC177x{Host: newFakeHost()}
	f.WriteRegister(fdc.RegStatusCommand, 0x00)
	f.WriteRegister(fdc.RegStatusCommand, 0x40) // Step In

	assert.Equal(t, uint8(1), f.CurrentTrack())
}

func TestFDCReadSectorRaisesDRQThenIRQOnCompletion(t *testing.T) {
	host := newFakeHost()
	host.sectors[[3]int{0, 1, 0}] = []byte{1, 2, 3, 4}
	host.sectorSize = 4
	f := &fdc.FDC177x{Host: host}

	f.WriteRegister(fdc.RegSector, 1)
	f.WriteRegister(fdc.RegStatusCommand, 0x80) // Read Sector
	assert.True(t, f.CheckDRQActive())
	assert.False(t, f.CheckIRQActive())

	var got []byte
	for i := 0; i < 4; i++ {
		got = append(got, f.ReadRegister(fdc.RegData))
	}
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	f.Tick(4 * 32)
	assert.False(t, f.CheckDRQActive())
	assert.True(t, f.CheckIRQActive())
}

func TestFDCWriteSectorStoresDataOnCompletion(t *testing.T) {
	host := newFakeHost()
	host.sectorSize = 3
	f := &fdc.FDC177x{Host: host}

	f.WriteRegister(fdc.RegSector, 2)
	f.WriteRegister(fdc.RegStatusCommand, 0xa0) // Write Sector
	f.WriteRegister(fdc.RegData, 0x11)
	f.WriteRegister(fdc.RegData, 0x22)
	f.WriteRegister(fdc.RegData, 0x33)

	f.Tick(3 * 32)

	assert.Equal(t, []byte{0x11, 0x22, 0x33}, host.sectors[[3]int{0, 2, 0}])
	assert.True(t, f.CheckIRQActive())
}

func TestFDCWriteSectorRejectedWhenWriteProtected(t *testing.T) {
	host := newFakeHost()
	host.writeProtect = true
	f := &fdc.FDC177x{Host: host}

	f.WriteRegister(fdc.RegStatusCommand, 0xa0) // Write Sector
	status := f.ReadRegister(fdc.RegStatusCommand)
	assert.NotZero(t, status&fdc.StatusWriteProtect)
}

func TestFDCReadSectorNotFoundSetsStatus(t *testing.T) {
	host := newFakeHost()
	host.missingErrors = true
	f := &fdc.FDC177x{Host: host}

	f.WriteRegister(fdc.RegStatusCommand, 0x80) // Read Sector
	status := f.ReadRegister(fdc.RegStatusCommand)
	assert.NotZero(t, status&fdc.StatusRecordNotFound)
}

func TestFDCForceInterruptClearsPendingOperation(t *testing.T) {
	host := newFakeHost()
	host.sectorSize = 4
	f := &fdc.FDC177x{Host: host}

	f.WriteRegister(fdc.RegStatusCommand, 0x80) // Read Sector
	assert.True(t, f.CheckDRQActive())

	f.WriteRegister(fdc.RegStatusCommand, 0xd1) // Force Interrupt
	assert.False(t, f.CheckDRQActive())
	assert.True(t, f.CheckIRQActive())
}
