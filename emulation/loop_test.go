package emulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocbm/c64core/emulation"
	"github.com/gocbm/c64core/hardware/cpu"
	"github.com/gocbm/c64core/hardware/irq"
)

type fakeMem struct {
	data [0x10000]uint8
}

func (m *fakeMem) Read(address uint16) (uint8, error) { return m.data[address], nil }

func (m *fakeMem) Write(address uint16, data uint8) error {
	m.data[address] = data
	return nil
}

type fakeTicker struct {
	ticks []int
}

func (f *fakeTicker) Tick(cycles int) error {
	f.ticks = append(f.ticks, cycles)
	return nil
}

type fakeDrive struct {
	fakeTicker
	multiplier float64
}

func (f *fakeDrive) ClockMultiplier() float64 { return f.multiplier }

type fakeFrames struct {
	complete bool
	buf      []byte
}

func (f *fakeFrames) FrameComplete() bool { return f.complete }
func (f *fakeFrames) Framebuffer() []byte { return f.buf }

type fakeDisplay struct {
	presented []byte
}

func (f *fakeDisplay) Present(frame []byte) { f.presented = frame }

func TestLoopStep(t *testing.T) {
	mem := &fakeMem{}
	mem.data[0] = 0xea // NOP

	mc := cpu.NewCPU(nil, mem)
	mc.Reset()

	vic := &fakeTicker{}
	cia1 := &fakeTicker{}
	cia2 := &fakeTicker{}
	drive := &fakeDrive{multiplier: 2}
	frames := &fakeFrames{complete: true, buf: []byte{1, 2, 3}}
	display := &fakeDisplay{}

	var irqLine irq.Line
	irqLine.Raise(irq.CIA1TimerA)

	loop := &emulation.Loop{
		CPU:    mc,
		VIC:    vic,
		CIA1:   cia1,
		CIA2:   cia2,
		Drives: []emulation.Drive{drive},
		IRQ:    &irqLine,
		Frames: frames,
		Display: display,
	}

	cycles, err := loop.Step(context.Background())
	require.NoError(t, err)
	assert.Greater(t, cycles, 0)
	assert.Equal(t, []int{cycles}, vic.ticks)
	assert.Equal(t, []int{cycles}, cia1.ticks)
	assert.Equal(t, []int{cycles}, cia2.ticks)
	assert.Equal(t, []int{cycles * 2}, drive.ticks)
	assert.Equal(t, []byte{1, 2, 3}, display.presented)
}

func TestLoopStepCancelled(t *testing.T) {
	mem := &fakeMem{}
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()

	loop := &emulation.Loop{CPU: mc}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loop.Step(ctx)
	assert.Error(t, err)
}
