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

package diskimage

import (
	"fmt"

	"github.com/gocbm/c64core/petscii"
)

const (
	d81Size           = 819200
	d81Cylinders      = 80
	d81Sides          = 2
	d81SectorsPerTrack = 10
	d81SectorSize     = 512
)

// D81 is an 80-cylinder, double-sided, double-density MFM image: uniform
// geometry throughout (no speed zones, unlike D64/D71), addressed by the
// FDC in terms of cylinder+side rather than a single linear track number.
type D81 struct {
	raw          []byte
	writeProtect bool
}

// NewD81 wraps raw sector data (exactly 819200 bytes: 80*2*10*512).
func NewD81(raw []byte) (*D81, error) {
	if len(raw) != d81Size {
		return nil, fmt.Errorf("diskimage: unrecognised D81 size %d bytes", len(raw))
	}
	return &D81{raw: raw}, nil
}

// trackNumber folds a (cylinder, side) pair into the single-linear track
// number spec.md defines: side*80 + cylinder + 1.
func trackNumber(cylinder, side int) int {
	return side*d81Cylinders + cylinder + 1
}

func sectorOffset(cylinder, side, sector int) int {
	track := trackNumber(cylinder, side) - 1
	return track*d81SectorsPerTrack*d81SectorSize + sector*d81SectorSize
}

// ReadSector reads a 512-byte sector addressed by cylinder (0-79), side
// (0-1) and sector (0-9).
func (d *D81) ReadSector(cylinder, sector, side int) ([]byte, error) {
	if cylinder < 0 || cylinder >= d81Cylinders {
		return nil, fmt.Errorf("diskimage: cylinder %d out of range", cylinder)
	}
	if side < 0 || side >= d81Sides {
		return nil, fmt.Errorf("diskimage: side %d out of range", side)
	}
	if sector < 0 || sector >= d81SectorsPerTrack {
		return nil, fmt.Errorf("diskimage: sector %d out of range", sector)
	}
	off := sectorOffset(cylinder, side, sector)
	return d.raw[off : off+d81SectorSize], nil
}

// WriteSector overwrites a 512-byte sector.
func (d *D81) WriteSector(cylinder, sector, side int, data []byte) error {
	if len(data) != d81SectorSize {
		return fmt.Errorf("diskimage: sector write must be %d bytes, got %d", d81SectorSize, len(data))
	}
	if cylinder < 0 || cylinder >= d81Cylinders {
		return fmt.Errorf("diskimage: cylinder %d out of range", cylinder)
	}
	if side < 0 || side >= d81Sides {
		return fmt.Errorf("diskimage: side %d out of range", side)
	}
	if sector < 0 || sector >= d81SectorsPerTrack {
		return fmt.Errorf("diskimage: sector %d out of range", sector)
	}
	off := sectorOffset(cylinder, side, sector)
	copy(d.raw[off:off+d81SectorSize], data)
	return nil
}

// SectorSize returns the D81's fixed 512-byte sector size, satisfying
// hardware/drive/fdc.Host.
func (d *D81) SectorSize() int { return d81SectorSize }

// WriteProtected implements hardware/drive/fdc.Host.
func (d *D81) WriteProtected() bool     { return d.writeProtect }
func (d *D81) SetWriteProtected(v bool) { d.writeProtect = v }

// Raw returns the image's complete backing byte slice.
func (d *D81) Raw() []byte { return d.raw }

// ReadBAM reads the header sector (40,0) carrying the disk name/ID; D81's
// BAM proper lives at (40,1) and (40,2) as two 256-entry-per-side tables,
// summarised here only as a free-block count since nothing else in this
// module needs per-track detail for an 80-track FDC-only image.
type D81BAM struct {
	DiskName     string
	DiskID       string
	BlocksFree   int
}

// ReadBAM parses the D81 header and both BAM sectors: all three live on
// track 40 (cylinder 39, side 0) - header at sector 0, the BAM pair at
// sectors 1 and 2, directory starting at sector 3.
func (d *D81) ReadBAM() (*D81BAM, error) {
	const bamCylinder = 39
	const bamSide = 0

	header, err := d.ReadSector(bamCylinder, 0, bamSide)
	if err != nil {
		return nil, err
	}
	bam := &D81BAM{
		DiskName: petscii.TrimPadding(header[4:20]),
		DiskID:   petscii.TrimPadding(header[22:24]),
	}

	for _, sectorInTrack := range []int{1, 2} {
		sec, err := d.ReadSector(bamCylinder, sectorInTrack, bamSide)
		if err != nil {
			continue
		}
		for track := 0; track < 40; track++ {
			bam.BlocksFree += int(sec[track*6+10])
		}
	}
	return bam, nil
}
