// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package fdc implements a WDC1770/1772-compatible floppy disk controller,
// the MFM-side chip the 1571 (optionally) and 1581 (always) use instead of
// the 1541's GCR read head. It knows nothing about disk image formats
// itself - sector data comes from a Host the owning drive supplies.
package fdc

// Host is how the FDC reaches the mounted disk image: seek/read/write in
// terms of physical track/sector/side, leaving image-format specifics
// (D71 side offset, D81 512-byte sectors) to the drive that implements it.
type Host interface {
	ReadSector(track, sector, side int) ([]byte, error)
	WriteSector(track, sector, side int, data []byte) error
	SectorSize() int
	WriteProtected() bool
}

// Status register bits.
const (
	StatusBusy            uint8 = 0x01
	StatusDataRequest     uint8 = 0x02
	StatusLostDataOrNotT0 uint8 = 0x04
	StatusCRCError        uint8 = 0x08
	StatusRecordNotFound  uint8 = 0x10
	StatusSpinUpOrDelData uint8 = 0x20
	StatusWriteProtect    uint8 = 0x40
	StatusMotorOn         uint8 = 0x80
)

// Register offsets within the FDC's 4-register aperture.
const (
	RegStatusCommand = 0
	RegTrack         = 1
	RegSector        = 2
	RegData          = 3
)

// commandType classifies a command byte's high nibble into one of the
// WD177x's four command families.
type commandType int

const (
	typeNone commandType = iota
	typeI                // Restore/Seek/Step/StepIn/StepOut
	typeII               // ReadSector/WriteSector
	typeIII              // ReadAddress/ReadTrack/WriteTrack
	typeIV               // Force Interrupt
)

func decodeCommandType(cmd uint8) commandType {
	switch cmd & 0xf0 {
	case 0x00, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70:
		return typeI
	case 0x80, 0x90, 0xa0, 0xb0:
		return typeII
	case 0xc0, 0xe0, 0xf0:
		return typeIII
	case 0xd0:
		return typeIV
	default:
		return typeNone
	}
}

// FDC177x is a WD1770/1772-compatible controller.
type FDC177x struct {
	Host Host
	Side int // current side selection; set by the owning drive

	status  uint8
	command uint8
	track   uint8
	sector  uint8
	data    uint8

	drq, intrq bool

	sectorBuf                        []byte
	dataIndex                        int
	readInProgress, writeInProgress  bool
	cyclesUntilEvent                 int
}

// Reset clears every register and pending operation.
func (f *FDC177x) Reset() {
	*f = FDC177x{Host: f.Host, Side: f.Side}
}

// Tick advances any in-flight command by cycles, completing it once its
// event countdown reaches zero.
func (f *FDC177x) Tick(cycles int) {
	if f.cyclesUntilEvent <= 0 {
		return
	}
	f.cyclesUntilEvent -= cycles
	if f.cyclesUntilEvent > 0 {
		return
	}

	switch {
	case f.readInProgress:
		f.completeRead()
	case f.writeInProgress:
		f.completeWrite()
	default:
		f.setBusy(false)
		f.setINTRQ(true)
	}
}

// ReadRegister implements the FDC's CPU/drive-processor-visible register
// file.
func (f *FDC177x) ReadRegister(offset uint16) uint8 {
	switch offset & 0x3 {
	case RegStatusCommand:
		f.setINTRQ(false)
		return f.status
	case RegTrack:
		return f.track
	case RegSector:
		return f.sector
	case RegData:
		v := f.data
		if f.readInProgress && f.dataIndex < len(f.sectorBuf) {
			f.data = f.sectorBuf[f.dataIndex]
			f.dataIndex++
			if f.dataIndex >= len(f.sectorBuf) {
				f.readInProgress = false
				f.setDRQ(false)
				f.setBusy(false)
				f.setINTRQ(true)
			}
			return f.data
		}
		f.setDRQ(false)
		return v
	default:
		return 0xff
	}
}

// WriteRegister implements the FDC's register file.
func (f *FDC177x) WriteRegister(offset uint16, value uint8) {
	switch offset & 0x3 {
	case RegStatusCommand:
		f.command = value
		f.startCommand(value)
	case RegTrack:
		f.track = value
	case RegSector:
		f.sector = value
	case RegData:
		f.data = value
		if f.writeInProgress && f.dataIndex < len(f.sectorBuf) {
			f.sectorBuf[f.dataIndex] = value
			f.dataIndex++
			if f.dataIndex >= len(f.sectorBuf) {
				f.setDRQ(false)
			}
		}
	}
}

// startCommand decodes and begins execution of a newly-written command
// byte.
func (f *FDC177x) startCommand(cmd uint8) {
	f.setBusy(true)
	f.setINTRQ(false)

	switch decodeCommandType(cmd) {
	case typeI:
		f.startTypeI(cmd)
	case typeII:
		f.startTypeII(cmd)
	case typeIII:
		f.startTypeIII(cmd)
	case typeIV:
		f.readInProgress = false
		f.writeInProgress = false
		f.setDRQ(false)
		f.setBusy(false)
		if cmd&0x0f != 0 {
			f.setINTRQ(true)
		}
	}
}

func (f *FDC177x) startTypeI(cmd uint8) {
	switch cmd & 0xf0 {
	case 0x00: // Restore
		f.track = 0
	case 0x10: // Seek: data register holds target track
		f.track = f.data
	case 0x20, 0x30: // Step: no step direction is kept, so the track register is left unchanged
	case 0x40, 0x50: // Step In
		if f.track < 0xff {
			f.track++
		}
	case 0x60, 0x70: // Step Out
		if f.track > 0 {
			f.track--
		}
	}
	f.status &^= StatusSpinUpOrDelData | StatusCRCError
	if f.track == 0 {
		f.status |= StatusLostDataOrNotT0
	} else {
		f.status &^= StatusLostDataOrNotT0
	}
	f.cyclesUntilEvent = 16
}

func (f *FDC177x) startTypeII(cmd uint8) {
	if f.Host != nil && f.Host.WriteProtected() && cmd&0xf0 >= 0xa0 {
		f.status |= StatusWriteProtect
		f.setBusy(false)
		f.setINTRQ(true)
		return
	}

	size := 256
	if f.Host != nil {
		size = f.Host.SectorSize()
	}
	f.dataIndex = 0

	if cmd&0xf0 == 0x80 || cmd&0xf0 == 0x90 { // ReadSector
		f.readInProgress = true
		f.writeInProgress = false
		if f.Host != nil {
			buf, err := f.Host.ReadSector(int(f.track), int(f.sector), f.Side)
			if err != nil {
				f.status |= StatusRecordNotFound
				f.readInProgress = false
				f.setBusy(false)
				f.setINTRQ(true)
				return
			}
			f.sectorBuf = buf
		} else {
			f.sectorBuf = make([]byte, size)
		}
		f.setDRQ(true)
		f.cyclesUntilEvent = len(f.sectorBuf) * 32
	} else { // WriteSector
		f.writeInProgress = true
		f.readInProgress = false
		f.sectorBuf = make([]byte, size)
		f.setDRQ(true)
		f.cyclesUntilEvent = size * 32
	}
}

func (f *FDC177x) startTypeIII(cmd uint8) {
	switch cmd & 0xf0 {
	case 0xc0: // Read Address
		f.cyclesUntilEvent = 16
	case 0xe0: // Read Track
		f.startTypeII(0x80)
	case 0xf0: // Write Track
		f.startTypeII(0xa0)
	}
}

func (f *FDC177x) completeRead() {
	f.readInProgress = false
	f.setDRQ(false)
	f.setBusy(false)
	f.setINTRQ(true)
}

func (f *FDC177x) completeWrite() {
	f.writeInProgress = false
	f.setDRQ(false)
	if f.Host != nil {
		if err := f.Host.WriteSector(int(f.track), int(f.sector), f.Side, f.sectorBuf); err != nil {
			f.status |= StatusRecordNotFound
		}
	}
	f.setBusy(false)
	f.setINTRQ(true)
}

func (f *FDC177x) setDRQ(on bool) {
	f.drq = on
	if on {
		f.status |= StatusDataRequest
	} else {
		f.status &^= StatusDataRequest
	}
}

func (f *FDC177x) setBusy(on bool) {
	if on {
		f.status |= StatusBusy
	} else {
		f.status &^= StatusBusy
	}
}

func (f *FDC177x) setINTRQ(on bool) {
	f.intrq = on
}

// CheckDRQActive and CheckIRQActive report the FDC's DRQ/INTRQ lines, which
// the owning drive routes into its own IRQ aggregator.
func (f *FDC177x) CheckDRQActive() bool { return f.drq }
func (f *FDC177x) CheckIRQActive() bool { return f.intrq }

// CurrentTrack returns the FDC's track register, the head's current
// physical cylinder.
func (f *FDC177x) CurrentTrack() uint8 { return f.track }
