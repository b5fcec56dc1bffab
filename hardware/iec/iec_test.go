package iec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocbm/c64core/hardware/iec"
)

type fakePeripheral struct {
	device                     int
	listened, talked, untalked bool
	secondary                  uint8
	atn, clk, data, srq        []bool
}

func (f *fakePeripheral) DeviceNumber() int { return f.device }
func (f *fakePeripheral) ATNChanged(v bool)  { f.atn = append(f.atn, v) }
func (f *fakePeripheral) CLKChanged(v bool)  { f.clk = append(f.clk, v) }
func (f *fakePeripheral) DATAChanged(v bool) { f.data = append(f.data, v) }
func (f *fakePeripheral) SRQChanged(v bool)  { f.srq = append(f.srq, v) }
func (f *fakePeripheral) OnListen()          { f.listened = true }
func (f *fakePeripheral) OnUnlisten()        {}
func (f *fakePeripheral) OnTalk()            { f.talked = true }
func (f *fakePeripheral) OnUntalk()          { f.untalked = true }
func (f *fakePeripheral) OnSecondaryAddress(ch uint8) { f.secondary = ch }

func sendByte(b *iec.Bus, value uint8) {
	for i := 7; i >= 0; i-- {
		bit := value&(1<<uint(i)) != 0
		b.SetDATA(bit)
		b.SetCLK(true)
		b.SetCLK(false)
	}
}

func TestWireOrLowWins(t *testing.T) {
	b := iec.NewBus()
	assert.False(t, b.CLK())

	b.SetCLK(true)
	assert.True(t, b.CLK())

	b.PeripheralControlCLK(8, true)
	b.SetCLK(false)
	assert.True(t, b.CLK(), "peripheral still holding CLK low")

	b.PeripheralControlCLK(8, false)
	assert.False(t, b.CLK())
}

func TestListenCommandDispatches(t *testing.T) {
	b := iec.NewBus()
	drive := &fakePeripheral{device: 8}
	b.Attach(drive)

	b.SetATN(true)
	sendByte(b, 0x28) // LISTEN device 8

	assert.True(t, drive.listened)
	assert.Equal(t, iec.StateListen, b.State())
}

func TestTalkThenSecondaryAddress(t *testing.T) {
	b := iec.NewBus()
	drive := &fakePeripheral{device: 8}
	b.Attach(drive)

	b.SetATN(true)
	sendByte(b, 0x48) // TALK device 8
	assert.True(t, drive.talked)
	assert.Equal(t, 8, b.CurrentTalker())

	sendByte(b, 0x6f) // secondary address channel 15
	assert.Equal(t, uint8(0x0f), drive.secondary)
}

func TestAttentionResetsListeners(t *testing.T) {
	b := iec.NewBus()
	drive := &fakePeripheral{device: 8}
	b.Attach(drive)

	b.SetATN(true)
	sendByte(b, 0x28)
	assert.Equal(t, iec.StateListen, b.State())

	b.SetATN(false)
	b.SetATN(true)
	assert.Equal(t, iec.StateAttention, b.State())
}
