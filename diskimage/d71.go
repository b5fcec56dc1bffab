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

// D71 is a double-sided 1571 image: two D64-shaped 35-track sides back to
// back, side 1 addressed as tracks 36-70 (a +35 offset from side 0's own
// track numbering).
type D71 struct {
	raw          []byte
	tracksPerSide int
	trackOffsets []int
	writeProtect bool
}

// NewD71 wraps raw sector data (349696 for 70 tracks, or 393216 for the
// rarer 80-track extension).
func NewD71(raw []byte) (*D71, error) {
	const size70 = 349696
	const size80 = 393216

	tracksPerSide := 35
	switch len(raw) {
	case size70:
		tracksPerSide = 35
	case size80:
		tracksPerSide = 40
	default:
		return nil, fmt.Errorf("diskimage: unrecognised D71 size %d bytes", len(raw))
	}

	d := &D71{raw: raw, tracksPerSide: tracksPerSide}
	offset := 0
	for t := 1; t <= tracksPerSide*2; t++ {
		d.trackOffsets = append(d.trackOffsets, offset)
		sideTrack := t
		if sideTrack > tracksPerSide {
			sideTrack -= tracksPerSide
		}
		offset += SectorsPerTrack1541(sideTrack) * 256
	}
	return d, nil
}

// Tracks returns the total addressable track count across both sides
// (twice the per-side count).
func (d *D71) Tracks() int { return d.tracksPerSide * 2 }

// SectorsOnTrack returns how many sectors a (side-combined, 1-based) track
// number holds - each side reuses the 1541's own zoned table.
func (d *D71) SectorsOnTrack(track int) int {
	sideTrack := track
	if sideTrack > d.tracksPerSide {
		sideTrack -= d.tracksPerSide
	}
	return SectorsPerTrack1541(sideTrack)
}

// ReadSector reads a 256-byte sector. track is 1-based across both sides
// (1-35 side 0, 36-70 side 1 - the +35 shift spec.md describes for 1571
// side selection).
func (d *D71) ReadSector(track, sector int) ([]byte, error) {
	if track < 1 || track > d.tracksPerSide*2 {
		return nil, fmt.Errorf("diskimage: track %d out of range", track)
	}
	n := d.SectorsOnTrack(track)
	if sector < 0 || sector >= n {
		return nil, fmt.Errorf("diskimage: sector %d out of range on track %d", sector, track)
	}
	off := d.trackOffsets[track-1] + sector*256
	return d.raw[off : off+256], nil
}

// WriteSector overwrites a 256-byte sector.
func (d *D71) WriteSector(track, sector int, data []byte) error {
	if len(data) != 256 {
		return fmt.Errorf("diskimage: sector write must be 256 bytes, got %d", len(data))
	}
	if track < 1 || track > d.tracksPerSide*2 {
		return fmt.Errorf("diskimage: track %d out of range", track)
	}
	n := d.SectorsOnTrack(track)
	if sector < 0 || sector >= n {
		return fmt.Errorf("diskimage: sector %d out of range on track %d", sector, track)
	}
	off := d.trackOffsets[track-1] + sector*256
	copy(d.raw[off:off+256], data)
	return nil
}

// WriteProtected and SetWriteProtected mirror D64's write-protect flag.
func (d *D71) WriteProtected() bool     { return d.writeProtect }
func (d *D71) SetWriteProtected(v bool) { d.writeProtect = v }

// Raw returns the image's complete backing byte slice.
func (d *D71) Raw() []byte { return d.raw }

// ReadBAM reads side 0's BAM (track 18 sector 0); side 1's BAM at (53,0)
// extends it with a second set of free-sector counts, not modelled here
// since directory listings only ever report the combined totals DOS
// computes from both.
func (d *D71) ReadBAM() (*BAM, error) {
	sec, err := d.ReadSector(18, 0)
	if err != nil {
		return nil, err
	}
	bam := &BAM{}
	for t := 1; t <= 35; t++ {
		bam.FreeSectors[t-1] = sec[4*t]
	}
	bam.DiskName = petscii.TrimPadding(sec[0x90:0xa0])
	bam.DiskID = petscii.TrimPadding(sec[0xa2:0xa4])
	return bam, nil
}
