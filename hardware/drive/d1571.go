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

package drive

import (
	"fmt"

	"github.com/gocbm/c64core/diskimage"
	"github.com/gocbm/c64core/hardware/cia"
	"github.com/gocbm/c64core/hardware/cpu"
	"github.com/gocbm/c64core/hardware/drive/fdc"
	"github.com/gocbm/c64core/hardware/drive/gcr"
	"github.com/gocbm/c64core/hardware/drive/via"
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
)

// mediaPath is which read/write pipeline a mounted image uses: the 1541-
// compatible GCR head, or the FDC's MFM path (the only option a D71's
// second side has, since the GCR pipeline here only ever rebuilds a single-
// sided stream).
type mediaPath int

const (
	mediaPathGCR1541 mediaPath = iota
	mediaPathFDCMFM
)

// d1571DiskHost adapts a mounted D64 or D71 image to fdc.Host, folding the
// FDC's (track, sector, side) addressing into each format's own sector
// indexing - D71's side selection is the +35 linear-track shift spec.md
// describes.
type d1571DiskHost struct {
	d64          *diskimage.D64
	d71          *diskimage.D71
	writeProtect bool
}

func (h *d1571DiskHost) ReadSector(track, sector, side int) ([]byte, error) {
	if h.d71 != nil {
		if side != 0 {
			track += 35
		}
		return h.d71.ReadSector(track, sector)
	}
	if h.d64 != nil {
		return h.d64.ReadSector(track, sector)
	}
	return nil, fmt.Errorf("drive: no disk mounted")
}

func (h *d1571DiskHost) WriteSector(track, sector, side int, data []byte) error {
	if h.d71 != nil {
		if side != 0 {
			track += 35
		}
		return h.d71.WriteSector(track, sector, data)
	}
	if h.d64 != nil {
		return h.d64.WriteSector(track, sector, data)
	}
	return fmt.Errorf("drive: no disk mounted")
}

func (h *d1571DiskHost) SectorSize() int     { return 256 }
func (h *d1571DiskHost) WriteProtected() bool { return h.writeProtect }

// D1571 is a 1541-compatible GCR drive that can also run a WD1770 FDC for
// MFM double-sided access, and carries a 6526 CIA for burst (fast) serial
// mode - a superset of D1541, built the same way: its own CPU runs real DOS
// ROM code and drives the peripheral chips, this package never decodes the
// IEC protocol itself.
type D1571 struct {
	device int

	mem        *d1571Memory
	driveCPU   *cpu.CPU
	via1, via2 *via.VIA
	ciaChip    *cia.CIA
	fdcChip    *fdc.FDC177x
	irqLine    *irq.Line

	host   *d1571DiskHost
	path   mediaPath
	status Status
	lastErr Error

	motorOn      bool
	halfTrackPos int
	currentSide  bool

	atnLow, clkLow, dataLow, srqAsserted bool
	gcrByte                              uint8

	gcrTrack    []byte
	gcrPos      int
	gcrTrackNum int
	gcrDirty    bool
	byteBudget  int

	// Auto ATN-acknowledge hand-shake: the burst-mode CIA can be configured
	// (port B bit ciaPRBAtnAck driven high) to pull DATA low itself once
	// ATN falls - at once if CLK is already low, otherwise on CLK's next
	// falling edge - rather than waiting for DOS ROM code to notice.
	// It only releases DATA again after a full CLK low-then-high phase from
	// the controller, held at least minAckHoldCycles ticks. The exact
	// intent behind the hold-cycle minimum is undocumented; this reproduces
	// the observed sequence for compatibility.
	ackArmed                          bool
	extDataLow                        bool
	atnAckHoldCycles                  int
	atnAckSawClkLow, atnAckSawClkHigh bool
	lastClkLowForAck                  bool

	onBusOutput func(clkLow, dataLow, srqAsserted bool)
}

// minAckHoldCycles is the minimum number of system-clock ticks the auto
// ATN-ack latch holds DATA low before it's eligible to release.
const minAckHoldCycles = 300

// CIA port B bits used by the auto ATN-ack hand-shake: ciaPRBAtnIn and
// ciaPRBClkIn read back as set when the corresponding IEC line is LOW,
// ciaPRBAtnAck is the configuration bit enabling the hardware assist.
const (
	ciaPRBClkIn  = 1 << 2
	ciaPRBAtnAck = 1 << 4
	ciaPRBAtnIn  = 1 << 7
)

// NewD1571 constructs a 1571 at the given IEC device number.
func NewD1571(device int, ins *instance.Instance, irqLine *irq.Line) (*D1571, error) {
	d := &D1571{device: device, irqLine: irqLine, status: StatusIdle}

	d.via1 = &via.VIA{}
	d.via2 = &via.VIA{}
	d.via1.ReadPortB = d.readVIA1PortB
	d.via1.OnWritePortB = d.writeVIA1PortB
	d.via2.ReadPortA = d.readVIA2PortA
	d.via2.OnWritePortA = d.writeVIA2PortA
	d.via2.OnWritePortB = d.writeVIA2PortB

	// A drive-internal IRQ line: the CIA's burst-serial interrupts and the
	// FDC's INTRQ both aggregate here, same as the VIAs feed the CPU's IRQ
	// input in D1541 - the drive's own chips never reach the C64's IRQ line
	// directly, only its bus activity does.
	internalIRQ := &irq.Line{}
	d.ciaChip = cia.NewCIA("1571-CIA", internalIRQ, [5]irq.Source{1 << 20, 1 << 21, 1 << 22, 1 << 23, 1 << 24}, 98500)
	d.ciaChip.ReadPortB = d.readCIAPortB
	d.fdcChip = &fdc.FDC177x{}
	d.host = &d1571DiskHost{}
	d.fdcChip.Host = d.host

	d.mem = newD1571Memory(d.via1, d.via2, d.ciaChip, d.fdcChip)
	d.driveCPU = cpu.NewCPU(ins, d.mem)

	d.halfTrackPos = 17 * 2
	d.gcrTrackNum = -1

	return d, nil
}

// LoadROM installs the 1571 DOS ROM image (32768 bytes).
func (d *D1571) LoadROM(data []byte) error {
	if len(data) != 0x8000 {
		return fmt.Errorf("drive: 1571 ROM must be 32768 bytes, got %d", len(data))
	}
	d.mem.LoadROM(data)
	return nil
}

// DeviceNumber implements iec.Peripheral.
func (d *D1571) DeviceNumber() int { return d.device }

// Reset restores the drive's CPU and chips to power-on state.
func (d *D1571) Reset() {
	d.driveCPU.Reset()
	d.via1.Reset()
	d.via1.ReadPortB = d.readVIA1PortB
	d.via1.OnWritePortB = d.writeVIA1PortB
	d.via2.Reset()
	d.via2.ReadPortA = d.readVIA2PortA
	d.via2.OnWritePortA = d.writeVIA2PortA
	d.via2.OnWritePortB = d.writeVIA2PortB
	d.ciaChip.Reset()
	d.ciaChip.ReadPortB = d.readCIAPortB
	d.fdcChip.Reset()
	d.fdcChip.Host = d.host
	d.ackArmed = false
	d.extDataLow = false
	d.atnAckHoldCycles = 0
	d.atnAckSawClkLow, d.atnAckSawClkHigh = false, false
	d.lastClkLowForAck = false
	d.status = StatusIdle
}

// CanMount reports the 1571's D64-or-D71 compatibility.
func (d *D1571) CanMount(format string) bool {
	return format == "D64" || format == "D71"
}

// InsertDisk mounts raw image bytes, auto-detecting D64 vs D71 by size and
// selecting GCR or FDC-MFM path: a D64 always takes the 1541-compatible
// GCR path, a D71 takes the FDC path since this model's GCR rebuild only
// ever covers a single side.
func (d *D1571) InsertDisk(raw []byte) error {
	if d71, err := diskimage.NewD71(raw); err == nil {
		d.host.d71 = d71
		d.host.d64 = nil
		d.path = mediaPathFDCMFM
		d.status = StatusReady
		d.lastErr = ErrNone
		return nil
	}
	d64, err := diskimage.NewD64(raw)
	if err != nil {
		d.lastErr = ErrNoDisk
		return err
	}
	d.host.d64 = d64
	d.host.d71 = nil
	d.path = mediaPathGCR1541
	d.gcrTrackNum = -1
	d.gcrDirty = true
	d.status = StatusReady
	d.lastErr = ErrNone
	return nil
}

// UnloadDisk removes any mounted disk image.
func (d *D1571) UnloadDisk() {
	d.host.d64 = nil
	d.host.d71 = nil
	d.gcrTrack = nil
	d.gcrTrackNum = -1
	d.status = StatusIdle
}

func (d *D1571) startMotor() { d.motorOn = true }
func (d *D1571) stopMotor()  { d.motorOn = false; d.status = StatusReady }

// IsMotorOn reports the spindle motor's state.
func (d *D1571) IsMotorOn() bool { return d.motorOn }

// CurrentTrack returns the 1-based track the head sits over.
func (d *D1571) CurrentTrack() int { return d.halfTrackPos/2 + 1 }

// SetHeadSide switches which side of a double-sided disk the head reads.
// Only the FDC path uses the side (a D71's +35 track shift); the GCR
// stream is marked for a rebuild, but that rebuild reads a D64 and ignores
// the side.
func (d *D1571) SetHeadSide(side bool) {
	d.currentSide = side
	d.gcrDirty = true
	if side {
		d.fdcChip.Side = 1
	} else {
		d.fdcChip.Side = 0
	}
}

// Status and LastError expose drive activity for a monitor.
func (d *D1571) Status() Status   { return d.status }
func (d *D1571) LastError() Error { return d.lastErr }

// ClockMultiplier implements emulation.Drive: the 1571 runs at the C64's
// own rate; its burst-serial speedup is a CIA shift-register timing detail,
// not a change to how often this drive's CPU itself steps.
func (d *D1571) ClockMultiplier() float64 { return 1.0 }

// Tick advances the drive CPU, both VIAs, the CIA and the FDC by the cycle
// budget handed to it, same idiom as D1541.Tick.
func (d *D1571) Tick(cycles int) error {
	spent := 0
	for spent < cycles {
		if err := d.driveCPU.ExecuteInstruction(nil); err != nil {
			return err
		}
		delta := d.driveCPU.LastResult.Cycles
		if delta == 0 {
			delta = 1
		}
		if err := d.via1.Tick(delta); err != nil {
			return err
		}
		if err := d.via2.Tick(delta); err != nil {
			return err
		}
		if err := d.ciaChip.Tick(delta); err != nil {
			return err
		}
		d.fdcChip.Tick(delta)
		d.driveCPU.SetIRQLine(d.via1.Active() || d.via2.Active() || d.ciaChip.Active() || d.fdcChip.CheckIRQActive())
		d.tickAutoAtnAck(delta)
		if d.path == mediaPathGCR1541 {
			d.tickGCRHead571(delta)
		}
		spent += delta
	}
	return nil
}

func (d *D1571) tickGCRHead571(cycles int) {
	if !d.motorOn || d.host.d64 == nil {
		return
	}
	if d.gcrDirty || d.gcrTrackNum != d.CurrentTrack() {
		d.rebuildGCRTrackStream571()
	}
	if len(d.gcrTrack) == 0 {
		return
	}
	perByte := cyclesPerByte1541(d.CurrentTrack())
	d.byteBudget -= cycles
	for d.byteBudget <= 0 {
		d.byteBudget += perByte
		b := d.gcrTrack[d.gcrPos]
		d.gcrPos = (d.gcrPos + 1) % len(d.gcrTrack)
		d.gcrByte = b
		d.via2.SignalCA1()
	}
}

// rebuildGCRTrackStream571 is the same layout as D1541's, just sourced from
// this drive's own disk host.
func (d *D1571) rebuildGCRTrackStream571() {
	d.gcrDirty = false
	d.gcrTrackNum = d.CurrentTrack()
	d.gcrPos = 0
	d.gcrTrack = nil

	if d.host.d64 == nil {
		return
	}
	track := d.gcrTrackNum
	n := gcr.SectorsPerTrack1541(track)

	var stream []byte
	for s := 0; s < n; s++ {
		stream = append(stream, syncBytes(10)...)
		header := [8]byte{0x08, 0, uint8(s), uint8(track), 0x30, 0x30, 0x0f, 0x0f}
		header[1] = header[0] ^ header[2] ^ header[3] ^ header[4] ^ header[5] ^ header[6] ^ header[7]
		stream = append(stream, gcr.EncodeBytes(header[:])...)
		stream = append(stream, gapBytes(9)...)

		stream = append(stream, syncBytes(10)...)
		sector, err := d.host.d64.ReadSector(track, s)
		if err != nil {
			sector = make([]byte, 256)
		}
		data := make([]byte, 260)
		data[0] = 0x07
		copy(data[1:257], sector)
		checksum := uint8(0)
		for _, b := range sector {
			checksum ^= b
		}
		data[257] = checksum
		stream = append(stream, gcr.EncodeBytes(data)...)
		stream = append(stream, gapBytes(8)...)
	}
	d.gcrTrack = stream
}

func (d *D1571) readVIA1PortB(latch, ddr uint8) uint8 {
	v := latch | ^ddr
	v &^= 0xc0
	if !d.clkLow {
		v |= 0x40
	}
	if !d.dataLow {
		v |= 0x80
	}
	return v
}

func (d *D1571) writeVIA1PortB(value uint8) {
	d.clkLow = value&0x40 == 0
	d.dataLow = value&0x80 == 0
	d.driveBusOutputs()
}

// driveBusOutputs notifies the bus of this drive's combined CLK/DATA/SRQ
// output: DATA is the OR of the VIA-driven line and the auto ATN-ack
// latch's own assertion, since either can pull it low independently.
func (d *D1571) driveBusOutputs() {
	if d.onBusOutput != nil {
		d.onBusOutput(d.clkLow, d.dataLow || d.extDataLow, d.srqAsserted)
	}
}

// readCIAPortB overlays the live ATN/CLK bus state onto the burst-mode
// CIA's port B input bits, gated by DDR per spec.md's conservative reading
// of the undocumented overlay-vs-DDR question.
func (d *D1571) readCIAPortB(latch, ddr uint8) uint8 {
	v := latch | ^ddr
	if ddr&ciaPRBAtnIn == 0 {
		v &^= ciaPRBAtnIn
		if d.atnLow {
			v |= ciaPRBAtnIn
		}
	}
	if ddr&ciaPRBClkIn == 0 {
		v &^= ciaPRBClkIn
		if d.clkLow {
			v |= ciaPRBClkIn
		}
	}
	return v
}

// autoAtnAckEnabled reports whether the CIA's hardware ATN-ack assist is
// currently configured: port B's ciaPRBAtnAck bit driven as an output, high.
func (d *D1571) autoAtnAckEnabled() bool {
	return d.ciaChip.DDRB()&ciaPRBAtnAck != 0 && d.ciaChip.PortB()&ciaPRBAtnAck != 0
}

// updateAutoAtnAck arms or cancels the ATN-ack latch on an ATN edge. Arming
// latches onto CLK's state immediately - if CLK is already low when ATN
// falls, DATA asserts right away rather than waiting for a later edge.
func (d *D1571) updateAutoAtnAck(wasLow, isLow bool) {
	if !d.autoAtnAckEnabled() {
		return
	}
	switch {
	case !wasLow && isLow: // ATN falling
		d.ackArmed = true
		d.atnAckSawClkLow = d.clkLow
		d.atnAckSawClkHigh = false
		d.lastClkLowForAck = d.clkLow
		d.atnAckHoldCycles = 0
		d.extDataLow = d.atnAckSawClkLow
		d.driveBusOutputs()
	case wasLow && !isLow: // ATN rising: cancel immediately
		d.ackArmed = false
		d.extDataLow = false
		d.driveBusOutputs()
	}
}

// tickAutoAtnAck asserts DATA on a CLK falling edge if it is not asserted
// yet, advances the ATN-ack hold timer and watches for the controller's CLK
// low-then-high phase that, combined with the minimum hold time, releases
// the latch.
func (d *D1571) tickAutoAtnAck(cycles int) {
	if !d.ackArmed || !d.autoAtnAckEnabled() {
		return
	}
	if !d.atnLow {
		d.ackArmed = false
		d.extDataLow = false
		d.atnAckHoldCycles = 0
		d.atnAckSawClkLow, d.atnAckSawClkHigh = false, false
		d.driveBusOutputs()
		return
	}

	if !d.lastClkLowForAck && d.clkLow {
		d.atnAckSawClkLow = true
		if !d.extDataLow {
			d.extDataLow = true
			d.driveBusOutputs()
		}
	}
	if d.lastClkLowForAck && !d.clkLow && d.atnAckSawClkLow {
		d.atnAckSawClkHigh = true
	}
	d.lastClkLowForAck = d.clkLow

	if d.extDataLow {
		d.atnAckHoldCycles += cycles
	}
	if d.atnAckHoldCycles >= minAckHoldCycles && d.atnAckSawClkLow && d.atnAckSawClkHigh {
		d.ackArmed = false
		d.extDataLow = false
		d.driveBusOutputs()
	}
}

func (d *D1571) readVIA2PortA(latch, ddr uint8) uint8 {
	v := (latch & ddr) | (d.gcrByte &^ ddr)
	v &^= 0x0c
	if !d.atnLow {
		v |= 0x08
	}
	if !d.srqAsserted {
		v |= 0x04
	}
	return v
}

func (d *D1571) writeVIA2PortA(value uint8) {
	d.atnLow = value&0x08 == 0
	d.srqAsserted = value&0x04 == 0
	d.driveBusOutputs()
}

func (d *D1571) writeVIA2PortB(value uint8) {
	newPhase := value & 0x03
	oldIndex := (d.halfTrackPos * 2) & 0x07
	newIndex := stepIndex(newPhase)
	delta := (newIndex - oldIndex + 8) % 8
	switch delta {
	case 2:
		if d.halfTrackPos < 68 {
			d.halfTrackPos++
			d.gcrDirty = true
			d.status = StatusSeeking
		}
	case 6:
		if d.halfTrackPos > 0 {
			d.halfTrackPos--
			d.gcrDirty = true
			d.status = StatusSeeking
		}
	}
	if value&0x04 != 0 {
		d.startMotor()
		d.status = StatusReading
	} else {
		d.stopMotor()
	}
}

// ATNChanged, CLKChanged, DATAChanged and SRQChanged implement
// iec.Peripheral, identically to D1541: only live bus state is cached here,
// the DOS ROM running on driveCPU does the protocol work - except ATN also
// feeds the auto ATN-ack latch, since that hand-shake runs independently of
// any DOS ROM code.
func (d *D1571) ATNChanged(asserted bool) {
	wasLow := d.atnLow
	d.atnLow = asserted
	d.updateAutoAtnAck(wasLow, asserted)
}
func (d *D1571) CLKChanged(asserted bool)  { d.clkLow = asserted }
func (d *D1571) DATAChanged(asserted bool) { d.dataLow = asserted }
func (d *D1571) SRQChanged(asserted bool)  { d.srqAsserted = asserted }

func (d *D1571) OnListen()                        {}
func (d *D1571) OnUnlisten()                      {}
func (d *D1571) OnTalk()                          {}
func (d *D1571) OnUntalk()                        {}
func (d *D1571) OnSecondaryAddress(channel uint8) {}

// SetBusOutput registers the callback invoked whenever this drive changes
// what it drives onto the shared IEC bus.
func (d *D1571) SetBusOutput(f func(clkLow, dataLow, srqAsserted bool)) {
	d.onBusOutput = f
}
