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

// Package savestate implements the tagged-chunk save-state file format: a
// fixed "C64S" + little-endian u32 version header, followed by a sequence
// of chunks, each a 4-byte tag, a little-endian u32 payload length, and the
// payload itself. Every subsystem that wants to persist across a save/load
// owns one chunk tag (CPU0, PLA0, CIA1, CIA2, VIC0, SID0, SIDX, CASS, MED0,
// and one per mounted drive) and is responsible for its own payload layout;
// this package only implements the envelope and the little-endian primitive
// read/writes every chunk is built from.
package savestate

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the fixed 4-byte signature every save-state file begins with.
const Magic = "C64S"

// Version is the header version this package writes. A reader rejects any
// other value rather than guessing at an incompatible layout.
const Version uint32 = 1

// Chunk describes one decoded chunk header: its 4-byte tag and payload
// length. Reader.EnterChunkPayload/SkipChunk use the byte offsets recorded
// here to navigate without re-parsing.
type Chunk struct {
	Tag    [4]byte
	Length uint32

	payloadOffset int
}

// TagString returns the chunk's tag as a string, e.g. "CPU0".
func (c Chunk) TagString() string { return string(c.Tag[:]) }

// Writer builds a save-state file. Chunks may not be nested: BeginChunk
// must be followed by a matching EndChunk before another BeginChunk.
type Writer struct {
	out     bytes.Buffer
	pending *bytes.Buffer // payload accumulator for the chunk currently open, nil if none
	tag     [4]byte
}

// NewWriter creates a Writer and immediately writes the file header.
func NewWriter() *Writer {
	w := &Writer{}
	w.out.WriteString(Magic)
	_ = binary.Write(&w.out, binary.LittleEndian, Version)
	return w
}

// BeginChunk opens a new chunk with the given 4-character tag. Panics if a
// chunk is already open or tag isn't exactly 4 bytes - both are programmer
// errors, not malformed-input conditions.
func (w *Writer) BeginChunk(tag string) {
	if w.pending != nil {
		panic("savestate: BeginChunk called while a chunk is already open")
	}
	if len(tag) != 4 {
		panic(fmt.Sprintf("savestate: chunk tag must be 4 bytes, got %q", tag))
	}
	copy(w.tag[:], tag)
	w.pending = &bytes.Buffer{}
}

// EndChunk closes the currently open chunk, writing its tag, length and
// accumulated payload to the output.
func (w *Writer) EndChunk() {
	if w.pending == nil {
		panic("savestate: EndChunk called with no chunk open")
	}
	w.out.Write(w.tag[:])
	_ = binary.Write(&w.out, binary.LittleEndian, uint32(w.pending.Len()))
	w.out.Write(w.pending.Bytes())
	w.pending = nil
}

// dest returns the buffer primitive writes should target: the open chunk's
// payload, or the top-level output if none is open (used only for tests
// that write outside of any chunk).
func (w *Writer) dest() *bytes.Buffer {
	if w.pending != nil {
		return w.pending
	}
	return &w.out
}

func (w *Writer) WriteU8(v uint8)  { w.dest().WriteByte(v) }
func (w *Writer) WriteU16(v uint16) {
	_ = binary.Write(w.dest(), binary.LittleEndian, v)
}
func (w *Writer) WriteU32(v uint32) {
	_ = binary.Write(w.dest(), binary.LittleEndian, v)
}
func (w *Writer) WriteI32(v int32) {
	_ = binary.Write(w.dest(), binary.LittleEndian, v)
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.dest().WriteByte(1)
	} else {
		w.dest().WriteByte(0)
	}
}

// WriteBytes writes raw bytes with no length prefix - the reader must know
// the length in advance (e.g. a fixed-size register array).
func (w *Writer) WriteBytes(b []byte) { w.dest().Write(b) }

// WriteVectorU8 writes a u32 length prefix followed by b's bytes.
func (w *Writer) WriteVectorU8(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.dest().Write(b)
}

// WriteString writes a u32 length prefix followed by s's raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.dest().WriteString(s)
}

// Bytes returns the complete encoded save-state file. The Writer must have
// no chunk left open.
func (w *Writer) Bytes() ([]byte, error) {
	if w.pending != nil {
		return nil, fmt.Errorf("savestate: chunk %q was never closed", string(w.tag[:]))
	}
	return w.out.Bytes(), nil
}

// Reader walks a save-state file's header and chunk sequence.
type Reader struct {
	buf     []byte
	pos     int
	version uint32
}

// NewReader validates buf's header (magic and a supported version) and
// positions the cursor at the first chunk.
func NewReader(buf []byte) (*Reader, error) {
	if len(buf) < len(Magic)+4 {
		return nil, fmt.Errorf("savestate: file too small for a header")
	}
	if string(buf[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("savestate: bad magic %q", buf[:len(Magic)])
	}
	r := &Reader{buf: buf, pos: len(Magic)}
	if err := r.readU32(&r.version); err != nil {
		return nil, err
	}
	if r.version != Version {
		return nil, fmt.Errorf("savestate: unsupported version %d", r.version)
	}
	return r, nil
}

// Version returns the header version read from the file.
func (r *Reader) Version() uint32 { return r.version }

// Cursor returns the reader's current byte offset, and Size the total
// buffer length - diagnostics for a caller walking chunks manually.
func (r *Reader) Cursor() int { return r.pos }
func (r *Reader) Size() int   { return len(r.buf) }

func (r *Reader) ensure(n int) error {
	if r.pos+n > len(r.buf) {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// NextChunk reads the next chunk's tag and length, and positions the
// cursor at its payload. Call EnterChunkPayload first if you've navigated
// away (e.g. via SkipChunk on an earlier chunk then back).
func (r *Reader) NextChunk() (Chunk, error) {
	if err := r.ensure(8); err != nil {
		return Chunk{}, fmt.Errorf("savestate: %w", err)
	}
	var c Chunk
	copy(c.Tag[:], r.buf[r.pos:r.pos+4])
	r.pos += 4

	var length uint32
	if err := r.readU32(&length); err != nil {
		return Chunk{}, err
	}
	c.Length = length
	c.payloadOffset = r.pos

	if err := r.ensure(int(length)); err != nil {
		return Chunk{}, fmt.Errorf("savestate: chunk %q: %w", c.TagString(), err)
	}
	return c, nil
}

// EnterChunkPayload positions the cursor at the start of c's payload,
// letting a chunk handler read its own fields with ReadU8/ReadU32/etc.
func (r *Reader) EnterChunkPayload(c Chunk) {
	r.pos = c.payloadOffset
}

// SkipChunk positions the cursor just past c's payload, at the next
// chunk's tag (or EOF).
func (r *Reader) SkipChunk(c Chunk) {
	r.pos = c.payloadOffset + int(c.Length)
}

// AtEnd reports whether every chunk has been consumed.
func (r *Reader) AtEnd() bool { return r.pos >= len(r.buf) }

func (r *Reader) readU32(out *uint32) error {
	if err := r.ensure(4); err != nil {
		return fmt.Errorf("savestate: %w", err)
	}
	*out = binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.ensure(1); err != nil {
		return 0, fmt.Errorf("savestate: %w", err)
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.ensure(2); err != nil {
		return 0, fmt.Errorf("savestate: %w", err)
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	var v uint32
	err := r.readU32(&v)
	return v, err
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, fmt.Errorf("savestate: %w", err)
	}
	v := make([]byte, n)
	copy(v, r.buf[r.pos:r.pos+n])
	r.pos += n
	return v, nil
}

// ReadVectorU8 reads a u32 length prefix followed by that many bytes.
func (r *Reader) ReadVectorU8() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(int(n))
}

// ReadString reads a u32 length prefix followed by that many bytes, as a
// string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadVectorU8()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
