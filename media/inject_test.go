package media_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/media"
)

// flatMemory is a trivial 64K cpubus.Memory backing for exercising PRG/T64
// injection without needing a real PLA-backed bus.
type flatMemory struct {
	ram [0x10000]uint8
}

func (m *flatMemory) Read(address uint16) (uint8, error) { return m.ram[address], nil }
func (m *flatMemory) Write(address uint16, value uint8) error {
	m.ram[address] = value
	return nil
}

// basicProgramBytes builds a tokenized BASIC program: a linked list of
// lines, each {2-byte link to the next line, 2-byte line number, tokenized
// body, zero terminator byte}, followed by a final 2-byte zero-link
// sentinel line marking the program's end - the address the tokenizer's
// line-link walk stops at.
func basicProgramBytes(loadAddr uint16, lines [][]byte) []byte {
	var buf []byte
	addr := loadAddr
	for _, line := range lines {
		// next line starts after this line's 2 link + 2 lineno + body + 1 terminator
		next := addr + uint16(2+2+len(line)+1)
		buf = append(buf, uint8(next), uint8(next>>8))
		buf = append(buf, 0x0a, 0x00) // line number 10, little-endian
		buf = append(buf, line...)
		buf = append(buf, 0x00)
		addr = next
	}
	buf = append(buf, 0x00, 0x00) // zero-link sentinel terminates the program
	return buf
}

func TestInjectPRGNonBasicAddressJustWritesBytes(t *testing.T) {
	mem := &flatMemory{}
	payload := []byte{0xa9, 0x01, 0x8d, 0x20, 0xd0}
	prg := append([]byte{0x00, 0xc0}, payload...) // load at $C000

	require.NoError(t, media.InjectPRG(mem, prg))

	for i, b := range payload {
		got, _ := mem.Read(0xc000 + uint16(i))
		assert.Equal(t, b, got)
	}
	// no RUN keystrokes queued for a non-BASIC load address
	count, _ := mem.Read(0xc6)
	assert.Equal(t, uint8(0), count)
}

func TestInjectPRGBasicProgramQueuesRun(t *testing.T) {
	mem := &flatMemory{}
	body := basicProgramBytes(0x0801, [][]byte{{0x99, 0x20, 0x22, 0x48, 0x49, 0x22}}) // PRINT "HI"

	prg := append([]byte{0x01, 0x08}, body...)
	require.NoError(t, media.InjectPRG(mem, prg))

	txtabLo, _ := mem.Read(0x2b)
	txtabHi, _ := mem.Read(0x2c)
	assert.Equal(t, uint16(0x0801), uint16(txtabLo)|uint16(txtabHi)<<8)

	count, _ := mem.Read(0xc6)
	assert.Equal(t, uint8(4), count)

	var keys []byte
	for i := 0; i < 4; i++ {
		b, _ := mem.Read(0x0277 + uint16(i))
		keys = append(keys, b)
	}
	assert.Equal(t, []byte("RUN\r"), keys)
}

func TestInjectPRGSkipsP00Header(t *testing.T) {
	mem := &flatMemory{}

	header := make([]byte, 26)
	copy(header, "C64File\x00")
	prg := append(header, 0x00, 0xc0, 0x42)

	require.NoError(t, media.InjectPRG(mem, prg))

	got, _ := mem.Read(0xc000)
	assert.Equal(t, uint8(0x42), got)
}

func TestInjectPRGRejectsOverflow(t *testing.T) {
	mem := &flatMemory{}
	prg := append([]byte{0x00, 0xff}, make([]byte, 0x200)...)
	assert.Error(t, media.InjectPRG(mem, prg))
}

func buildT64(entries []media.T64Entry) []byte {
	header := make([]byte, 64)
	copy(header, "C64 tape image file")
	binary.LittleEndian.PutUint16(header[36:38], uint16(len(entries)))

	buf := make([]byte, 64+len(entries)*32)
	copy(buf, header)

	dataOffset := len(buf)
	var payload []byte
	for i, e := range entries {
		rec := buf[64+i*32 : 64+i*32+32]
		rec[0] = 1 // normal file entry
		rec[1] = 0x82
		binary.LittleEndian.PutUint16(rec[2:4], e.StartAddress)
		binary.LittleEndian.PutUint16(rec[4:6], e.EndAddress)
		binary.LittleEndian.PutUint32(rec[8:12], uint32(dataOffset+len(payload)))
		name := e.Name
		for len(name) < 16 {
			name += " "
		}
		copy(rec[16:32], name)
		payload = append(payload, e.Data...)
	}
	buf = append(buf, payload...)
	return buf
}

func TestParseT64RoundTrip(t *testing.T) {
	entries := []media.T64Entry{
		{Name: "HELLO", StartAddress: 0x0801, EndAddress: 0x0801 + 6, Data: []byte{1, 2, 3, 4, 5, 6}},
	}
	raw := buildT64(entries)

	parsed, err := media.ParseT64(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "HELLO", parsed[0].Name)
	assert.Equal(t, uint16(0x0801), parsed[0].StartAddress)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, parsed[0].Data)
}

func TestInjectT64QueuesRunForBasicEntry(t *testing.T) {
	mem := &flatMemory{}
	body := basicProgramBytes(0x0801, [][]byte{{0x99, 0x20, 0x22, 0x48, 0x49, 0x22}})
	entries := []media.T64Entry{
		{Name: "HELLO", StartAddress: 0x0801, EndAddress: 0x0801 + uint16(len(body)), Data: body},
	}
	raw := buildT64(entries)

	require.NoError(t, media.InjectT64(mem, raw))

	count, _ := mem.Read(0xc6)
	assert.Equal(t, uint8(4), count)
}
