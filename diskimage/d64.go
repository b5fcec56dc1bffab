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

// Package diskimage implements the D64/D71/D81 disk image formats: their
// track/sector geometry, the BAM (block availability map) and directory
// structures the drive's DOS reads to answer LOAD/directory requests, and
// raw sector read/write used by a drive's GCR (1541/1571) or FDC (1571/
// 1581) layer to serve bytes off the mounted image.
package diskimage

import (
	"fmt"

	"github.com/gocbm/c64core/petscii"
)

// SectorsPerTrack1541 gives the 1541's zoned sector count for a 1-based
// track number (1-35): more sectors on the physically longer outer tracks.
func SectorsPerTrack1541(track1based int) int {
	switch {
	case track1based <= 17:
		return 21
	case track1based <= 24:
		return 19
	case track1based <= 30:
		return 18
	default:
		return 17
	}
}

// D64 is a raw, unencoded 35 (or 40, with speed-zone extension) track
// sector image: exactly what a 1541 DOS sees once the GCR layer has been
// stripped away.
type D64 struct {
	raw           []byte
	tracks        int
	trackOffsets  []int // byte offset of track t (1-based index via trackOffsets[t-1])
	writeProtect  bool
}

// NewD64 wraps raw sector data as a 35-track image (174848 or 175531 bytes)
// or a 40-track image (196608 or 197376 bytes); the larger size of each
// pair carries a trailing per-sector error-info byte this package ignores.
func NewD64(raw []byte) (*D64, error) {
	const size35 = 174848
	const size35WithErrors = 175531
	const size40 = 196608
	const size40WithErrors = 197376

	tracks := 35
	switch len(raw) {
	case size35, size35WithErrors:
		tracks = 35
	case size40, size40WithErrors:
		tracks = 40
	default:
		return nil, fmt.Errorf("diskimage: unrecognised D64 size %d bytes", len(raw))
	}

	d := &D64{raw: raw, tracks: tracks}
	offset := 0
	for t := 1; t <= tracks; t++ {
		d.trackOffsets = append(d.trackOffsets, offset)
		offset += SectorsPerTrack1541(t) * 256
	}
	return d, nil
}

// Tracks returns the image's track count (35 or 40).
func (d *D64) Tracks() int { return d.tracks }

// SectorsOnTrack returns how many 256-byte sectors track (1-based) holds.
func (d *D64) SectorsOnTrack(track int) int {
	return SectorsPerTrack1541(track)
}

// ReadSector returns the 256 raw bytes of track (1-based)/sector
// (0-based).
func (d *D64) ReadSector(track, sector int) ([]byte, error) {
	if track < 1 || track > d.tracks {
		return nil, fmt.Errorf("diskimage: track %d out of range", track)
	}
	n := SectorsPerTrack1541(track)
	if sector < 0 || sector >= n {
		return nil, fmt.Errorf("diskimage: sector %d out of range on track %d", sector, track)
	}
	off := d.trackOffsets[track-1] + sector*256
	return d.raw[off : off+256], nil
}

// WriteSector overwrites the 256 raw bytes of track/sector with data
// (which must be exactly 256 bytes long).
func (d *D64) WriteSector(track, sector int, data []byte) error {
	if len(data) != 256 {
		return fmt.Errorf("diskimage: sector write must be 256 bytes, got %d", len(data))
	}
	if track < 1 || track > d.tracks {
		return fmt.Errorf("diskimage: track %d out of range", track)
	}
	n := SectorsPerTrack1541(track)
	if sector < 0 || sector >= n {
		return fmt.Errorf("diskimage: sector %d out of range on track %d", sector, track)
	}
	off := d.trackOffsets[track-1] + sector*256
	copy(d.raw[off:off+256], data)
	return nil
}

// WriteProtected reports whether the image should refuse WriteSector calls
// from a drive - this package never enforces it itself, leaving that
// decision to the drive (which surfaces DiskWriteProtected as a status).
func (d *D64) WriteProtected() bool { return d.writeProtect }

// SetWriteProtected sets the write-protect flag a mounting drive should
// honour.
func (d *D64) SetWriteProtected(v bool) { d.writeProtect = v }

// Raw returns the image's complete backing byte slice, for saving back to
// disk unmodified.
func (d *D64) Raw() []byte { return d.raw }

// BAM reads track 18 sector 0's block availability map: 4 bytes per track
// (free-sector count + 3-byte bitmap), disk name at offset 0x90 (16 bytes,
// $A0-padded), disk ID at 0xA2.
type BAM struct {
	FreeSectors [35]uint8
	DiskName    string
	DiskID      string
}

// ReadBAM parses the BAM sector (track 18, sector 0), the fixed location
// every 1541-formatted disk keeps it at.
func (d *D64) ReadBAM() (*BAM, error) {
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

// TotalBlocksFree sums the BAM's per-track free-sector counters, the value
// a directory listing's "BLOCKS FREE" line reports.
func (b *BAM) TotalBlocksFree() int {
	total := 0
	for _, n := range b.FreeSectors {
		total += int(n)
	}
	return total
}
