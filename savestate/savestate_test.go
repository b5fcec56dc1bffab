package savestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/savestate"
)

func TestWriterReaderRoundTripSingleChunk(t *testing.T) {
	w := savestate.NewWriter()
	w.BeginChunk("CPU0")
	w.WriteU32(1) // chunk version
	w.WriteU16(0x1234)
	w.WriteU8(0xff)
	w.WriteBool(true)
	w.WriteString("hello")
	w.EndChunk()

	data, err := w.Bytes()
	require.NoError(t, err)

	r, err := savestate.NewReader(data)
	require.NoError(t, err)
	assert.Equal(t, savestate.Version, r.Version())

	c, err := r.NextChunk()
	require.NoError(t, err)
	assert.Equal(t, "CPU0", c.TagString())

	r.EnterChunkPayload(c)

	ver, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ver)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), u8)

	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	assert.True(t, r.AtEnd())
}

func TestWriterReaderMultipleChunksAndSkip(t *testing.T) {
	w := savestate.NewWriter()
	w.BeginChunk("CIA1")
	w.WriteVectorU8([]byte{1, 2, 3, 4})
	w.EndChunk()

	w.BeginChunk("CIA2")
	w.WriteU32(42)
	w.EndChunk()

	data, err := w.Bytes()
	require.NoError(t, err)

	r, err := savestate.NewReader(data)
	require.NoError(t, err)

	first, err := r.NextChunk()
	require.NoError(t, err)
	assert.Equal(t, "CIA1", first.TagString())
	r.SkipChunk(first)

	second, err := r.NextChunk()
	require.NoError(t, err)
	assert.Equal(t, "CIA2", second.TagString())
	r.EnterChunkPayload(second)

	v, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)
}

func TestWriterRejectsUnclosedChunk(t *testing.T) {
	w := savestate.NewWriter()
	w.BeginChunk("VIC0")
	w.WriteU8(1)
	_, err := w.Bytes()
	assert.Error(t, err)
}

func TestReaderRejectsBadMagic(t *testing.T) {
	_, err := savestate.NewReader([]byte("XXXX\x01\x00\x00\x00"))
	assert.Error(t, err)
}

func TestReaderRejectsUnsupportedVersion(t *testing.T) {
	data := []byte("C64S\x02\x00\x00\x00")
	_, err := savestate.NewReader(data)
	assert.Error(t, err)
}

func TestNextChunkRejectsTruncatedPayload(t *testing.T) {
	w := savestate.NewWriter()
	w.BeginChunk("SID0")
	w.WriteU32(0xdeadbeef)
	w.EndChunk()
	data, err := w.Bytes()
	require.NoError(t, err)

	truncated := data[:len(data)-2]
	r, err := savestate.NewReader(truncated)
	require.NoError(t, err)

	_, err = r.NextChunk()
	assert.Error(t, err)
}
