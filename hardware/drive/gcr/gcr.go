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

// Package gcr implements the 1541/1571's group-code-recording bit
// encoding: every 4 data bytes (32 bits) become 5 encoded bytes (40 bits),
// using a 16-entry nibble table chosen so that no encoded byte has more
// than two consecutive zero bits - the constraint the drive's read
// circuitry needs to stay bit-synchronized off the raw flux transitions.
package gcr

import lru "github.com/hashicorp/golang-lru/v2"

// table5 maps a 4-bit data nibble to its 5-bit GCR code.
var table5 = [16]uint8{
	0x0A, 0x0B, 0x12, 0x13,
	0x0E, 0x0F, 0x16, 0x17,
	0x09, 0x19, 0x1A, 0x1B,
	0x0D, 0x1D, 0x1E, 0x15,
}

// decodeTable5 is table5 inverted: GCR code -> data nibble. Codes that
// don't appear in table5 decode to 0xff (invalid).
var decodeTable5 = func() [32]uint8 {
	var t [32]uint8
	for i := range t {
		t[i] = 0xff
	}
	for nibble, code := range table5 {
		t[code] = uint8(nibble)
	}
	return t
}()

// Encode4Bytes packs 4 data bytes (8 nibbles) into 5 GCR-encoded bytes (40
// GCR bits).
func Encode4Bytes(in [4]byte) [5]byte {
	nibbles := [8]uint8{
		in[0] >> 4, in[0] & 0x0f,
		in[1] >> 4, in[1] & 0x0f,
		in[2] >> 4, in[2] & 0x0f,
		in[3] >> 4, in[3] & 0x0f,
	}

	var bits uint64
	for _, n := range nibbles {
		bits = bits<<5 | uint64(table5[n]&0x1f)
	}

	var out [5]byte
	out[0] = byte(bits >> 32)
	out[1] = byte(bits >> 24)
	out[2] = byte(bits >> 16)
	out[3] = byte(bits >> 8)
	out[4] = byte(bits)
	return out
}

// Decode5Bytes is the inverse of Encode4Bytes. ok is false if any of the
// eight 5-bit groups is not a valid GCR code.
func Decode5Bytes(in [5]byte) (out [4]byte, ok bool) {
	bits := uint64(in[0])<<32 | uint64(in[1])<<24 | uint64(in[2])<<16 | uint64(in[3])<<8 | uint64(in[4])

	var nibbles [8]uint8
	for i := 7; i >= 0; i-- {
		code := uint8(bits & 0x1f)
		bits >>= 5
		nibble := decodeTable5[code]
		if nibble == 0xff {
			return out, false
		}
		nibbles[i] = nibble
	}

	out[0] = nibbles[0]<<4 | nibbles[1]
	out[1] = nibbles[2]<<4 | nibbles[3]
	out[2] = nibbles[4]<<4 | nibbles[5]
	out[3] = nibbles[6]<<4 | nibbles[7]
	return out, true
}

// EncodeBytes GCR-encodes in, which must be a multiple of 4 bytes long.
func EncodeBytes(in []byte) []byte {
	out := make([]byte, 0, len(in)/4*5)
	var chunk [4]byte
	for i := 0; i+4 <= len(in); i += 4 {
		copy(chunk[:], in[i:i+4])
		enc := Encode4Bytes(chunk)
		out = append(out, enc[:]...)
	}
	return out
}

// SectorsPerTrack1541 returns the number of 256-byte sectors the 1541's
// constant-angular-velocity zoned format gives track (1-based, 1-35): the
// drive slows its data rate as the head moves outward across four speed
// zones, packing more sectors onto the physically longer outer tracks.
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

// TrackCache memoizes the GCR-encoded byte stream for a track, keyed by
// disk identity and track number, so stepping back onto a recently-read
// track that hasn't been written to since doesn't re-run the encoder.
type TrackCache struct {
	cache *lru.Cache[trackKey, []byte]
}

type trackKey struct {
	disk  uintptr
	track int
}

// NewTrackCache builds a cache holding up to capacity tracks' encoded
// streams.
func NewTrackCache(capacity int) *TrackCache {
	c, _ := lru.New[trackKey, []byte](capacity)
	return &TrackCache{cache: c}
}

// Get returns a previously-cached encoded stream for (disk, track), if any.
func (tc *TrackCache) Get(disk uintptr, track int) ([]byte, bool) {
	return tc.cache.Get(trackKey{disk, track})
}

// Put stores the encoded stream for (disk, track), evicting the
// least-recently-used entry if the cache is full.
func (tc *TrackCache) Put(disk uintptr, track int, encoded []byte) {
	tc.cache.Add(trackKey{disk, track}, encoded)
}

// Invalidate drops any cached stream for (disk, track), called after a
// sector on that track is written.
func (tc *TrackCache) Invalidate(disk uintptr, track int) {
	tc.cache.Remove(trackKey{disk, track})
}
