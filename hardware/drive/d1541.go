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

// Package drive implements the IEC-attached disk drives: the 1541 (GCR,
// single density, its own 6502 running stock DOS ROM code), the 1571
// (1541-compatible GCR plus an MFM FDC for double-sided disks and CIA-based
// fast serial) and the 1581 (FDC only, double-sided/double-density, no GCR
// layer at all). Each owns its own CPU, its own memory map, and runs
// entirely from the cycle budget the synchronisation loop hands it -
// exactly as if it were a second, smaller computer wired to the C64's
// serial port.
package drive

import (
	"fmt"

	"github.com/gocbm/c64core/diskimage"
	"github.com/gocbm/c64core/hardware/cpu"
	"github.com/gocbm/c64core/hardware/drive/gcr"
	"github.com/gocbm/c64core/hardware/drive/via"
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
)

// Status is the drive's current high-level activity, surfaced to a UI or
// monitor.
type Status int

const (
	StatusIdle Status = iota
	StatusReady
	StatusReading
	StatusWriting
	StatusSeeking
)

// Error classifies why the last operation on the drive failed.
type Error int

const (
	ErrNone Error = iota
	ErrNoDisk
	ErrBadSector
	ErrReadError
	ErrWriteError
)

// cyclesPerByte1541 is the 1541's density-code-selected byte rate: track
// speed zone 1 (outer, tracks 1-17) takes 32 drive cycles/byte, stepping
// down by 2 per zone to 26 for zone 4 (inner, tracks 31-35).
func cyclesPerByte1541(track1based int) int {
	switch {
	case track1based <= 17:
		return 32
	case track1based <= 24:
		return 30
	case track1based <= 30:
		return 28
	default:
		return 26
	}
}

// stepIndex maps a 2-bit VIA1 stepper phase (bits 1:0 of port B) onto a
// quarter-track index in [0,6], matching the 1541's 4-phase stepper motor.
func stepIndex(phase uint8) int {
	return int(phase&0x03) * 2
}

// D1541 is a single-density, GCR-only drive built around its own 6502
// running the stock 1541 DOS ROM: all of LISTEN/TALK, byte handshaking and
// GCR framing happen in that ROM's machine code manipulating VIA1/VIA2,
// exactly as on real hardware. This package supplies the hardware the ROM
// drives, not a reimplementation of the protocol it runs.
type D1541 struct {
	device int

	mem        *d1541Memory
	driveCPU   *cpu.CPU
	via1, via2 *via.VIA
	irqLine    *irq.Line

	disk   *diskimage.D64
	status Status
	lastErr Error

	motorOn      bool
	halfTrackPos int // 0-68; track = halfTrackPos/2 + 1

	// gcrByte is the most recent byte the read head delivered, the value
	// VIA2 port A's input bits report while its DDR leaves them configured
	// as inputs (as the DOS ROM does while reading).
	gcrByte uint8

	// live IEC bus levels as last reported by the shared bus, sensed by
	// VIA1/VIA2 port hooks and driven back out the same way.
	atnLow, clkLow, dataLow, srqAsserted bool

	// GCR read head: the currently-rebuilt track bitstream and the drive
	// cycle budget remaining before advancing to the next byte.
	gcrTrack    []byte
	gcrPos      int
	gcrTrackNum int
	gcrDirty    bool
	byteBudget  int

	// onBusOutput, if set, is called whenever this drive changes what it's
	// driving onto the shared IEC bus (CLK/DATA/SRQ), letting the bus's
	// owner propagate the new line levels to every other listener the way
	// iec.Bus does for the C64 side.
	onBusOutput func(clkLow, dataLow, srqAsserted bool)
}

// NewD1541 constructs a drive at the given IEC device number (traditionally
// 8-11), sharing an Instance with the machine it's attached to for
// consistent logging/randomness. irqLine is stored but never driven: the
// drive's VIAs interrupt the drive's own CPU only, and the drive reaches the
// C64 solely through its serial bus activity.
func NewD1541(device int, ins *instance.Instance, irqLine *irq.Line) (*D1541, error) {
	d := &D1541{
		device:  device,
		irqLine: irqLine,
		status:  StatusIdle,
	}

	d.via1 = &via.VIA{}
	d.via2 = &via.VIA{}
	d.via1.ReadPortB = d.readVIA1PortB
	d.via1.OnWritePortB = d.writeVIA1PortB
	d.via2.ReadPortA = d.readVIA2PortA
	d.via2.OnWritePortA = d.writeVIA2PortA
	d.via2.OnWritePortB = d.writeVIA2PortB

	d.mem = newD1541Memory(d.via1, d.via2)
	d.driveCPU = cpu.NewCPU(ins, d.mem)

	d.gcrTrackNum = -1
	d.halfTrackPos = 17 * 2 // power-on head position; the DOS ROM recalibrates on first access regardless

	return d, nil
}

// LoadROM installs the 1541 DOS ROM image (16384 bytes) the user supplied;
// the drive cannot run without it, precisely as on real hardware.
func (d *D1541) LoadROM(data []byte) error {
	if len(data) != 0x4000 {
		return fmt.Errorf("drive: 1541 ROM must be 16384 bytes, got %d", len(data))
	}
	d.mem.LoadROM(data)
	return nil
}

// DeviceNumber implements iec.Peripheral.
func (d *D1541) DeviceNumber() int { return d.device }

// Reset reinitialises the drive's CPU and VIAs to their power-on state,
// leaving any mounted disk and its GCR cache untouched.
func (d *D1541) Reset() {
	d.driveCPU.Reset()
	d.via1.Reset()
	d.via1.ReadPortB = d.readVIA1PortB
	d.via1.OnWritePortB = d.writeVIA1PortB
	d.via2.Reset()
	d.via2.ReadPortA = d.readVIA2PortA
	d.via2.OnWritePortA = d.writeVIA2PortA
	d.via2.OnWritePortB = d.writeVIA2PortB
	d.status = StatusIdle
}

// CanMount reports whether this drive can accept a disk image of the given
// format. The 1541 is GCR-only and single-sided: D64 only.
func (d *D1541) CanMount(format string) bool {
	return format == "D64"
}

// InsertDisk mounts raw D64 image bytes, invalidating any previously-cached
// GCR track stream.
func (d *D1541) InsertDisk(raw []byte) error {
	img, err := diskimage.NewD64(raw)
	if err != nil {
		d.lastErr = ErrNoDisk
		return err
	}
	d.disk = img
	d.gcrTrackNum = -1
	d.gcrDirty = true
	d.lastErr = ErrNone
	d.status = StatusReady
	return nil
}

// UnloadDisk removes any mounted disk image.
func (d *D1541) UnloadDisk() {
	d.disk = nil
	d.gcrTrack = nil
	d.gcrTrackNum = -1
	d.status = StatusIdle
}

// startMotor and stopMotor model the 1541's spindle motor, switched by VIA2
// port B bit 2 under DOS ROM control.
func (d *D1541) startMotor() { d.motorOn = true }
func (d *D1541) stopMotor()  { d.motorOn = false; d.status = StatusReady }

// IsMotorOn reports the spindle motor's current state.
func (d *D1541) IsMotorOn() bool { return d.motorOn }

// CurrentTrack returns the 1-based track number the head currently sits
// over.
func (d *D1541) CurrentTrack() int { return d.halfTrackPos/2 + 1 }

// Status and LastError expose the drive's current activity for a monitor
// or status-line display.
func (d *D1541) Status() Status  { return d.status }
func (d *D1541) LastError() Error { return d.lastErr }

// ClockMultiplier implements emulation.Drive: the 1541 runs at the C64's
// own clock rate (unlike the 1581, which doubles it for its FDC).
func (d *D1541) ClockMultiplier() float64 { return 1.0 }

// Tick advances the drive's own CPU and VIAs by its share of the system's
// cycle budget (already clock-multiplier-scaled by the caller), mirroring
// Loop.Step's CPU-step idiom (ExecuteInstruction then route its reported
// cycle cost) but applied to the drive's internal CPU rather than the
// C64's.
func (d *D1541) Tick(cycles int) error {
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
		d.driveCPU.SetIRQLine(d.via1.Active() || d.via2.Active())
		d.tickGCRHead(delta)
		spent += delta
	}
	return nil
}

// tickGCRHead advances the read head through the current track's GCR
// bitstream, delivering one byte to VIA2 (on its port A input latch, with a
// CA1 "byte ready" edge modelled as an IFR bit) every cyclesPerByte drive
// cycles.
func (d *D1541) tickGCRHead(cycles int) {
	if !d.motorOn || d.disk == nil {
		return
	}
	if d.gcrDirty || d.gcrTrackNum != d.CurrentTrack() {
		d.rebuildGCRTrackStream()
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
		d.deliverGCRByte(b)
	}
}

// deliverGCRByte presents the next GCR byte on VIA2 port A's input latch and
// raises CA1, the DOS ROM's byte-ready signal; the byte is read back through
// readVIA2PortA's overlay rather than driven through the CPU-write path,
// since the ROM leaves port A's data-carrying bits configured as inputs
// while reading.
func (d *D1541) deliverGCRByte(b byte) {
	d.gcrByte = b
	d.via2.SignalCA1()
}

// rebuildGCRTrackStream re-encodes the current track's sectors into a
// single contiguous GCR bitstream: per sector, ten sync bytes, a GCR-encoded
// header block, a short gap, ten more sync bytes, a GCR-encoded data block,
// and a closing gap - matching the layout a real 1541-formatted track
// carries.
func (d *D1541) rebuildGCRTrackStream() {
	d.gcrDirty = false
	d.gcrTrackNum = d.CurrentTrack()
	d.gcrPos = 0
	d.gcrTrack = nil

	if d.disk == nil {
		return
	}
	track := d.gcrTrackNum
	n := d.disk.SectorsOnTrack(track)

	diskID := [2]byte{0x30, 0x30}
	if bam, err := d.disk.ReadBAM(); err == nil && len(bam.DiskID) >= 2 {
		diskID[0], diskID[1] = bam.DiskID[0], bam.DiskID[1]
	}

	var stream []byte
	for s := 0; s < n; s++ {
		stream = append(stream, syncBytes(10)...)

		header := [8]byte{0x08, 0, uint8(s), uint8(track), diskID[1], diskID[0], 0x0f, 0x0f}
		header[1] = header[0] ^ header[2] ^ header[3] ^ header[4] ^ header[5] ^ header[6] ^ header[7]
		stream = append(stream, gcr.EncodeBytes(header[:])...)
		stream = append(stream, gapBytes(9)...)

		stream = append(stream, syncBytes(10)...)

		sector, err := d.disk.ReadSector(track, s)
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

func syncBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xff
	}
	return b
}

func gapBytes(n int) []byte {
	return make([]byte, n)
}

// readVIA1PortB overlays live IEC CLK (bit 6) and DATA (bit 7) bus levels
// onto VIA1 port B reads, the same overlay D1541VIA's real register 0 read
// applies: the DOS ROM polls this register to sense the bus without any
// protocol help from this package.
func (d *D1541) readVIA1PortB(latch, ddr uint8) uint8 {
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

// writeVIA1PortB drives the IEC bus's CLK/DATA lines out from whatever the
// DOS ROM wrote to port B bits 6/7 (active low, so a written 0 asserts the
// line).
func (d *D1541) writeVIA1PortB(value uint8) {
	d.clkLow = value&0x40 == 0
	d.dataLow = value&0x80 == 0
	if d.onBusOutput != nil {
		d.onBusOutput(d.clkLow, d.dataLow, d.srqAsserted)
	}
}

// readVIA2PortA reports driven-output bits from the latch as normal, but any
// bit left configured as an input reads the most recently delivered GCR byte
// instead of floating high - matching the DOS ROM's use of this port to read
// disk data with DDRA left clear - then overlays live ATN (bit 3) and SRQ
// (bit 2) sensing on top, the same bits the DOS ROM polls between sectors.
func (d *D1541) readVIA2PortA(latch, ddr uint8) uint8 {
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

// writeVIA2PortA drives the ATN (bit 3) and SRQ (bit 2) lines out onto the
// shared bus from whatever the DOS ROM wrote there.
func (d *D1541) writeVIA2PortA(value uint8) {
	d.atnLow = value&0x08 == 0
	d.srqAsserted = value&0x04 == 0
	if d.onBusOutput != nil {
		d.onBusOutput(d.clkLow, d.dataLow, d.srqAsserted)
	}
}

// writeVIA2PortB applies stepper-motor phase changes (bits 1:0) and switches
// the spindle motor (bit 2) under DOS ROM control - the conventional 1541
// wiring of VIA2's port B, alongside the ATN/SRQ overlay this model keeps on
// port A.
func (d *D1541) writeVIA2PortB(value uint8) {
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
// iec.Peripheral: they update the cached live bus levels VIA1/VIA2's port
// reads report. All protocol decisions (LISTEN/TALK, secondary address
// dispatch, byte handshaking) happen in the DOS ROM running on driveCPU,
// which is why OnListen/OnTalk/etc below are no-ops - unlike a simple fixed-
// function peripheral, this drive has its own CPU to do that work.
func (d *D1541) ATNChanged(asserted bool)  { d.atnLow = asserted }
func (d *D1541) CLKChanged(asserted bool)  { d.clkLow = asserted }
func (d *D1541) DATAChanged(asserted bool) { d.dataLow = asserted }
func (d *D1541) SRQChanged(asserted bool)  { d.srqAsserted = asserted }

// OnListen, OnUnlisten, OnTalk, OnUntalk and OnSecondaryAddress are no-ops:
// this drive's own ROM-executing CPU decodes LISTEN/TALK/secondary-address
// bytes itself by reading the data line bit-by-bit through VIA1, the same
// as real hardware. A bus implementation that pre-decodes these for simpler
// fixed-function peripherals has nothing useful to tell a CPU-backed drive.
func (d *D1541) OnListen()                       {}
func (d *D1541) OnUnlisten()                     {}
func (d *D1541) OnTalk()                         {}
func (d *D1541) OnUntalk()                       {}
func (d *D1541) OnSecondaryAddress(channel uint8) {}

// onBusOutput is the callback set by whatever wires this drive onto the
// shared bus.
func (d *D1541) SetBusOutput(f func(clkLow, dataLow, srqAsserted bool)) {
	d.onBusOutput = f
}
