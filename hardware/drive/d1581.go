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
	"github.com/gocbm/c64core/hardware/instance"
	"github.com/gocbm/c64core/hardware/irq"
)

// d1581DiskHost adapts a mounted D81 image to fdc.Host: cylinder and side
// map directly, since D81 has no 1541-style speed zones to fold in.
type d1581DiskHost struct {
	disk *diskimage.D81
}

func (h *d1581DiskHost) ReadSector(cylinder, sector, side int) ([]byte, error) {
	if h.disk == nil {
		return nil, fmt.Errorf("drive: no disk mounted")
	}
	return h.disk.ReadSector(cylinder, sector, side)
}

func (h *d1581DiskHost) WriteSector(cylinder, sector, side int, data []byte) error {
	if h.disk == nil {
		return fmt.Errorf("drive: no disk mounted")
	}
	return h.disk.WriteSector(cylinder, sector, side, data)
}

func (h *d1581DiskHost) SectorSize() int {
	if h.disk == nil {
		return 512
	}
	return h.disk.SectorSize()
}

func (h *d1581DiskHost) WriteProtected() bool {
	return h.disk != nil && h.disk.WriteProtected()
}

// D1581 is an FDC-only drive: no GCR layer, double-sided double-density
// 80-cylinder MFM, its CIA providing both parallel burst serial and (where
// the DOS ROM configures it) the regular bit-banged IEC protocol. Runs at
// twice the system clock rate, the only drive in this family that does.
type D1581 struct {
	device int

	mem      *d1581Memory
	driveCPU *cpu.CPU
	ciaChip  *cia.CIA
	fdcChip  *fdc.FDC177x
	irqLine  *irq.Line

	host    *d1581DiskHost
	status  Status
	lastErr Error

	motorOn     bool
	currentSide uint8

	atnLow, clkLow, dataLow, srqAsserted bool

	onBusOutput func(clkLow, dataLow, srqAsserted bool)
}

// NewD1581 constructs an 1581 at the given IEC device number.
func NewD1581(device int, ins *instance.Instance, irqLine *irq.Line) (*D1581, error) {
	d := &D1581{device: device, irqLine: irqLine, status: StatusIdle}

	internalIRQ := &irq.Line{}
	d.ciaChip = cia.NewCIA("1581-CIA", internalIRQ, [5]irq.Source{1 << 20, 1 << 21, 1 << 22, 1 << 23, 1 << 24}, 98500)
	d.ciaChip.ReadPortA = d.readCIAPortA
	d.ciaChip.OnWritePortA = d.writeCIAPortA
	d.ciaChip.OnWritePortB = d.writeCIAPortB

	d.fdcChip = &fdc.FDC177x{}
	d.host = &d1581DiskHost{}
	d.fdcChip.Host = d.host

	d.mem = newD1581Memory(d.ciaChip, d.fdcChip)
	d.driveCPU = cpu.NewCPU(ins, d.mem)

	return d, nil
}

// LoadROM installs the 1581 DOS ROM image (32768 bytes).
func (d *D1581) LoadROM(data []byte) error {
	if len(data) != 0x8000 {
		return fmt.Errorf("drive: 1581 ROM must be 32768 bytes, got %d", len(data))
	}
	d.mem.LoadROM(data)
	return nil
}

// DeviceNumber implements iec.Peripheral.
func (d *D1581) DeviceNumber() int { return d.device }

// Reset restores the drive's CPU and chips to power-on state.
func (d *D1581) Reset() {
	d.driveCPU.Reset()
	d.ciaChip.Reset()
	d.ciaChip.ReadPortA = d.readCIAPortA
	d.ciaChip.OnWritePortA = d.writeCIAPortA
	d.ciaChip.OnWritePortB = d.writeCIAPortB
	d.fdcChip.Reset()
	d.fdcChip.Host = d.host
	d.status = StatusIdle
}

// CanMount reports the 1581's D81-only compatibility.
func (d *D1581) CanMount(format string) bool { return format == "D81" }

// InsertDisk mounts raw D81 image bytes.
func (d *D1581) InsertDisk(raw []byte) error {
	img, err := diskimage.NewD81(raw)
	if err != nil {
		d.lastErr = ErrNoDisk
		return err
	}
	d.host.disk = img
	d.status = StatusReady
	d.lastErr = ErrNone
	return nil
}

// UnloadDisk removes any mounted disk image.
func (d *D1581) UnloadDisk() {
	d.host.disk = nil
	d.status = StatusIdle
}

// IsMotorOn reports the spindle motor's state.
func (d *D1581) IsMotorOn() bool { return d.motorOn }

// SetCurrentSide selects which side of the double-sided disk the FDC reads.
func (d *D1581) SetCurrentSide(side uint8) {
	d.currentSide = side
	d.fdcChip.Side = int(side)
}

// CurrentTrack returns the FDC's current cylinder (0-based, unlike the GCR
// drives' 1-based track numbering - there's no 1541-style mapping to keep
// consistent with here).
func (d *D1581) CurrentTrack() int { return int(d.fdcChip.CurrentTrack()) }

// Status and LastError expose drive activity for a monitor.
func (d *D1581) Status() Status   { return d.status }
func (d *D1581) LastError() Error { return d.lastErr }

// ClockMultiplier implements emulation.Drive: the 1581 runs at twice the
// system clock, to keep its FDC's MFM bit rate correct.
func (d *D1581) ClockMultiplier() float64 { return 2.0 }

// Tick advances the drive CPU, CIA and FDC by the cycle budget handed to
// it (already doubled by the caller via ClockMultiplier).
func (d *D1581) Tick(cycles int) error {
	spent := 0
	for spent < cycles {
		if err := d.driveCPU.ExecuteInstruction(nil); err != nil {
			return err
		}
		delta := d.driveCPU.LastResult.Cycles
		if delta == 0 {
			delta = 1
		}
		if err := d.ciaChip.Tick(delta); err != nil {
			return err
		}
		d.fdcChip.Tick(delta)
		d.driveCPU.SetIRQLine(d.ciaChip.Active() || d.fdcChip.CheckIRQActive())
		spent += delta
	}
	return nil
}

// readCIAPortA overlays live ATN (bit 3), CLK (bit 4) and DATA (bit 5)
// sensing - the 1581 has no VIA1/VIA2 pair, so its single CIA carries all
// of the IEC line sensing the other drives split across two chips.
func (d *D1581) readCIAPortA(latch, ddr uint8) uint8 {
	v := latch | ^ddr
	v &^= 0x38
	if !d.atnLow {
		v |= 0x08
	}
	if !d.clkLow {
		v |= 0x10
	}
	if !d.dataLow {
		v |= 0x20
	}
	return v
}

// writeCIAPortA drives ATN/CLK/DATA out from whatever the DOS ROM wrote to
// port A bits 3/4/5.
func (d *D1581) writeCIAPortA(value uint8) {
	d.atnLow = value&0x08 == 0
	d.clkLow = value&0x10 == 0
	d.dataLow = value&0x20 == 0
	if d.onBusOutput != nil {
		d.onBusOutput(d.clkLow, d.dataLow, d.srqAsserted)
	}
}

// writeCIAPortB drives the spindle motor (bit 2) and head side select (bit
// 0), the 1581's own conventional wiring of its CIA's second port.
func (d *D1581) writeCIAPortB(value uint8) {
	if value&0x04 != 0 {
		d.motorOn = true
		d.status = StatusReading
	} else {
		d.motorOn = false
		d.status = StatusReady
	}
	d.SetCurrentSide(value & 0x01)
}

// ATNChanged, CLKChanged, DATAChanged and SRQChanged implement
// iec.Peripheral: only live bus state is cached, the DOS ROM does the rest.
func (d *D1581) ATNChanged(asserted bool)  { d.atnLow = asserted }
func (d *D1581) CLKChanged(asserted bool)  { d.clkLow = asserted }
func (d *D1581) DATAChanged(asserted bool) { d.dataLow = asserted }
func (d *D1581) SRQChanged(asserted bool)  { d.srqAsserted = asserted }

func (d *D1581) OnListen()                        {}
func (d *D1581) OnUnlisten()                      {}
func (d *D1581) OnTalk()                          {}
func (d *D1581) OnUntalk()                        {}
func (d *D1581) OnSecondaryAddress(channel uint8) {}

// SetBusOutput registers the callback invoked whenever this drive changes
// what it drives onto the shared IEC bus.
func (d *D1581) SetBusOutput(f func(clkLow, dataLow, srqAsserted bool)) {
	d.onBusOutput = f
}
