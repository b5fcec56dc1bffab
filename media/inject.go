// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

package media

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gocbm/c64core/hardware/memory/cpubus"
	"github.com/gocbm/c64core/petscii"
)

// BASIC zero-page pointers and KERNAL keyboard buffer locations a PRG/T64
// load writes to, so that a freshly-loaded program can be started the way a
// real C64 user would: by typing RUN and pressing return.
const (
	basicPRGStart = 0x0801

	txtab  = 0x2b // start of BASIC text
	vartab = 0x2d // start of simple variables
	arytab = 0x2f // start of arrays
	strend = 0x31 // end of string storage (end of BASIC program + vars)

	keyboardBufferCount = 0xc6    // number of keys queued, read by IRQ keyboard scan
	keyboardBuffer      = 0x0277 // KERNAL keyboard queue, up to 10 bytes
)

var runReturnKeys = []byte{0x52, 0x55, 0x4e, 0x0d} // "RUN" + carriage return, PETSCII

// p00Magic is the 8-byte signature ("C64File\x00") a .P00 container carries
// before its 17-byte internal filename and 1 reserved byte, 26 bytes total,
// ahead of the PRG payload proper.
var p00Magic = []byte("C64File\x00")

const p00HeaderLen = 26

// InjectPRG writes a PRG (or P00-wrapped PRG) image into mem at its embedded
// load address. If that address is $0801 - the BASIC program start - it also
// walks the tokenized program's line-link chain to find its end, updates the
// BASIC pointers a freshly-typed program would have, and queues a RUN<CR>
// keystroke sequence so the program starts running on its own.
func InjectPRG(mem cpubus.Memory, data []byte) error {
	pos := 0
	if len(data) >= p00HeaderLen && bytes.Equal(data[:len(p00Magic)], p00Magic) {
		pos = p00HeaderLen
	}

	if pos+2 > len(data) {
		return fmt.Errorf("media: PRG image is too small")
	}

	loadAddr := binary.LittleEndian.Uint16(data[pos : pos+2])
	pos += 2

	payload := data[pos:]
	end := uint32(loadAddr) + uint32(len(payload))
	if end > 0x10000 {
		return fmt.Errorf("media: program of %d bytes at $%04X does not fit in 64K RAM", len(payload), loadAddr)
	}

	for i, b := range payload {
		if err := mem.Write(loadAddr+uint16(i), b); err != nil {
			return fmt.Errorf("media: %w", err)
		}
	}

	if loadAddr == basicPRGStart {
		return queueBasicRun(mem, loadAddr)
	}
	return nil
}

// queueBasicRun scans the tokenized BASIC program starting at progStart for
// its terminating zero line-link, sets TXTAB/VARTAB/ARYTAB/STREND to match,
// and queues a RUN<CR> keystroke sequence in the KERNAL's keyboard buffer.
func queueBasicRun(mem cpubus.Memory, progStart uint16) error {
	scan := progStart
	for {
		lo, err := mem.Read(scan)
		if err != nil {
			return fmt.Errorf("media: %w", err)
		}
		hi, err := mem.Read(scan + 1)
		if err != nil {
			return fmt.Errorf("media: %w", err)
		}
		nextLine := uint16(lo) | uint16(hi)<<8
		if nextLine == 0 {
			break
		}
		scan = nextLine
	}
	basicEnd := scan + 2

	if err := write16(mem, txtab, progStart); err != nil {
		return err
	}
	if err := write16(mem, vartab, basicEnd); err != nil {
		return err
	}
	if err := write16(mem, arytab, basicEnd); err != nil {
		return err
	}
	if err := write16(mem, strend, basicEnd); err != nil {
		return err
	}

	return queueKeystrokes(mem, runReturnKeys)
}

func write16(mem cpubus.Memory, addr, value uint16) error {
	if err := mem.Write(addr, uint8(value)); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	if err := mem.Write(addr+1, uint8(value>>8)); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	return nil
}

// queueKeystrokes writes keys into the KERNAL's keyboard buffer and sets its
// count, exactly as the IRQ-driven keyboard scan routine would have had the
// keys been typed at the keyboard.
func queueKeystrokes(mem cpubus.Memory, keys []byte) error {
	if len(keys) > 10 {
		keys = keys[:10]
	}
	if err := mem.Write(keyboardBufferCount, uint8(len(keys))); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	for i, k := range keys {
		if err := mem.Write(keyboardBuffer+uint16(i), k); err != nil {
			return fmt.Errorf("media: %w", err)
		}
	}
	return nil
}

// T64Entry describes one PRG file packaged inside a T64 tape archive.
type T64Entry struct {
	Name         string
	StartAddress uint16
	EndAddress   uint16
	Data         []byte
}

const (
	t64HeaderLen = 64
	t64EntryLen  = 32
)

// ParseT64 reads a T64 archive's directory and returns every usable PRG
// entry it describes: a 64-byte tape header (magic, version, entry counts,
// tape name) followed by one 32-byte directory record per entry (entry
// type, file type, start/end address, data offset, filename).
func ParseT64(data []byte) ([]T64Entry, error) {
	if len(data) < t64HeaderLen {
		return nil, fmt.Errorf("media: T64 image is too small for a header")
	}

	usedEntries := int(binary.LittleEndian.Uint16(data[36:38]))
	dirStart := t64HeaderLen

	var entries []T64Entry
	for i := 0; i < usedEntries; i++ {
		recOffset := dirStart + i*t64EntryLen
		if recOffset+t64EntryLen > len(data) {
			break
		}
		rec := data[recOffset : recOffset+t64EntryLen]

		entryType := rec[0]
		if entryType == 0 {
			continue // free directory slot
		}

		start := binary.LittleEndian.Uint16(rec[2:4])
		end := binary.LittleEndian.Uint16(rec[4:6])
		fileOffset := binary.LittleEndian.Uint32(rec[8:12])
		name := petscii.TrimPadding(rec[16:32])

		length := int(end) - int(start)
		if end <= start {
			// some tools leave end==0; fall back to reading to EOF
			length = len(data) - int(fileOffset)
		}
		if length < 0 || int(fileOffset)+length > len(data) {
			continue
		}

		entries = append(entries, T64Entry{
			Name:         name,
			StartAddress: start,
			EndAddress:   uint16(int(start) + length),
			Data:         data[fileOffset : int(fileOffset)+length],
		})
	}

	return entries, nil
}

// InjectT64 loads the first usable PRG entry of a T64 archive into mem, the
// way a real datasette LOAD would, and queues a RUN<CR> keystroke when the
// program starts at $0801.
func InjectT64(mem cpubus.Memory, data []byte) error {
	entries, err := ParseT64(data)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("media: T64 image has no usable entries")
	}

	entry := entries[0]
	for i, b := range entry.Data {
		if err := mem.Write(entry.StartAddress+uint16(i), b); err != nil {
			return fmt.Errorf("media: %w", err)
		}
	}

	if entry.StartAddress == basicPRGStart {
		return queueBasicRun(mem, entry.StartAddress)
	}
	return nil
}
