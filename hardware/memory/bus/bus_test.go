package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/hardware/memory/bus"
	"github.com/gocbm/c64core/hardware/pla"
)

func TestDefaultModeIsKernalBasicIO(t *testing.T) {
	b := bus.NewBus()
	kernal := make([]byte, 0x2000)
	kernal[0x1ffc], kernal[0x1ffd] = 0x34, 0x12 // reset vector
	b.LoadKernal(kernal)

	basic := make([]byte, 0x2000)
	basic[0] = 0xaa
	b.LoadBasic(basic)

	v, err := b.Read(0xa000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xaa), v)

	trace := b.DescribeAddress(0xa000)
	assert.Equal(t, pla.BasicROM, trace.Bank)
}

func TestWriteGoesToRAMEvenUnderROM(t *testing.T) {
	b := bus.NewBus()
	basic := make([]byte, 0x2000)
	basic[0] = 0xaa
	b.LoadBasic(basic)

	require.NoError(t, b.Write(0xa000, 0x55))
	v, err := b.Read(0xa000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xaa), v, "ROM still visible on read")

	peeked, err := b.Peek(0xa000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xaa), peeked)
}

func TestColorRAMMasksToNibble(t *testing.T) {
	b := bus.NewBus()
	require.NoError(t, b.Write(0xd800, 0xff))
	v, err := b.Read(0xd800)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), v, "high nibble reads back as open bus 1s")

	poked, err := b.Peek(0xd800)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x0f), poked)
}

func TestKernalVectorRAMZeroFallback(t *testing.T) {
	b := bus.NewBus()
	// kernal left at all-zero: NMI/IRQ vectors should fall back to RAM
	require.NoError(t, b.Write(0x0318, 0x00))
	require.NoError(t, b.Write(0x0319, 0xc0))

	v, err := b.Read(0xfffb)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xc0), v)
}

type fakeIO struct {
	reads, writes []uint16
	regs          [256]uint8
}

func (f *fakeIO) ReadRegister(offset uint16) uint8 {
	f.reads = append(f.reads, offset)
	return f.regs[offset]
}

func (f *fakeIO) WriteRegister(offset uint16, value uint8) {
	f.writes = append(f.writes, offset)
	f.regs[offset] = value
}

func TestIOAperture(t *testing.T) {
	b := bus.NewBus()
	vic := &fakeIO{}
	cia1 := &fakeIO{}
	b.VIC = vic
	b.CIA1 = cia1

	require.NoError(t, b.Write(0xd000, 0x11))
	assert.Equal(t, []uint16{0}, vic.writes)

	require.NoError(t, b.Write(0xd040, 0x22)) // mirrors $D000 every 64 bytes
	assert.Equal(t, []uint16{0, 0}, vic.writes)

	require.NoError(t, b.Write(0xdc00, 0x33))
	assert.Equal(t, []uint16{0}, cia1.writes)
}

func TestVICBankBase(t *testing.T) {
	assert.Equal(t, uint16(0x0000), bus.VICBankBase(0x03))
	assert.Equal(t, uint16(0xc000), bus.VICBankBase(0x00))
}
