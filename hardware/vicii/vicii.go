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

package vicii

import (
	"github.com/gocbm/c64core/hardware/clocks"
	"github.com/gocbm/c64core/hardware/irq"
)

// Memory is the VIC-II's bus-master view: a 14-bit address relative to a
// 16KiB bank base, with character ROM shadowed into every bank's
// $1000-$1FFF regardless of the CPU's CHAREN setting. ColorNibble reads the
// low nibble of color RAM at a 0-1023 screen offset (color RAM is wired
// directly to the VIC, not routed through a bank).
type Memory interface {
	VICRead(bankBase uint16, address uint16) uint8
	ColorNibble(offset uint16) uint8
}

// BusMaster is the CPU-side hook the VIC-II drives its BA/AEC bus-stealing
// signal through.
type BusMaster interface {
	SetBAHold(hold bool)
}

// timing holds the region-dependent cycle/line counts a Chip runs against,
// ported from the original NTSC_CONFIG/PAL_CONFIG tables.
type timing struct {
	cyclesPerLine    int
	linesPerFrame    int
	dmaStartCycle    int // cycle within the line at which a bad line's char/color DMA begins
	dmaEndCycle      int // one past the last DMA cycle (40 cycles after dmaStartCycle)
	spriteDMACycles  int
	firstVisibleLine int
	lastVisibleLine  int
}

func ntscTiming() timing {
	return timing{
		cyclesPerLine:    clocks.NTSCCyclesPerLine,
		linesPerFrame:    clocks.NTSCLinesPerFrame,
		dmaStartCycle:    15,
		dmaEndCycle:      55,
		spriteDMACycles:  24,
		firstVisibleLine: 0x1a,
		lastVisibleLine:  0xfa,
	}
}

func palTiming() timing {
	return timing{
		cyclesPerLine:    clocks.PALCyclesPerLine,
		linesPerFrame:    clocks.PALLinesPerFrame,
		dmaStartCycle:    14,
		dmaEndCycle:      54,
		spriteDMACycles:  24,
		firstVisibleLine: 0x10,
		lastVisibleLine:  0xf7,
	}
}

// spriteState tracks one sprite's per-frame pointer/data latches and
// display-row progress.
type spriteState struct {
	pointer    uint16 // fetched sprite data pointer * 64
	mcBase     uint16
	rowInSprite int  // 0-20, advances once per matching raster while the sprite is active
	active      bool // true once this sprite's Y has matched and it hasn't finished its 21 rows
	data        [3]uint8
	crossedX256 bool
}

// Chip is the VIC-II video controller: register file, raster-line timing
// engine, bad-line/AEC bus-stealing, and the four graphics modes plus
// sprites rendered one scanline at a time, matching the original engine's
// own per-line (not per-dot) rendering granularity.
type Chip struct {
	mem Memory
	cpu BusMaster
	irq *irq.Line

	ntsc bool
	cfg  timing

	// CurrentBank is called on every character, pattern and sprite fetch
	// to learn the 16KiB base CIA2 currently has selected.
	CurrentBank func() uint16

	regs registers
	// d011Latch/d016Latch/d018Latch record the value $D011/$D016/$D018 held
	// at the moment each raster line began, since a write mid-line must not
	// retroactively affect dma decisions already made for that line.
	d011Latch []uint8
	d016Latch []uint8
	d018Latch []uint8

	raster      int
	cycle       int
	rowCounter  uint8 // 0-7, the bad-line-tracked row within the current char row
	isFrameBad  bool  // true if the CURRENT line was a bad line
	aec         bool
	frameDone   bool

	sprites [8]spriteState

	// charBuf/colorBuf hold the 40 chars/colors fetched during this line's
	// bad-line DMA window, consumed by render at end-of-line.
	charBuf  [40]uint8
	colorBuf [40]uint8

	fb framebuffer
}

// registers mirrors the $D000-$D02E register file as named fields rather
// than a raw byte array, since several (raster compare, memory pointer,
// scroll) are read back combined with latched/derived bits.
type registers struct {
	spriteX   [8]uint16 // includes MSB bit folded in
	spriteY   [8]uint8
	control1  uint8
	rasterCmp uint8 // low 8 bits of the raster compare value; bit 8 lives in control1
	lightPenX uint8
	lightPenY uint8
	spriteEnable uint8
	control2     uint8
	spriteYExpansion uint8
	memoryPointer    uint8
	interruptStatus  uint8
	interruptEnable  uint8
	spritePriority      uint8
	spriteMulticolorEnable uint8
	spriteXExpansion       uint8
	spriteSpriteCollision     uint8
	spriteBackgroundCollision uint8
	borderColor  uint8
	background   [4]uint8
	spriteMulticolor [2]uint8
	spriteColor      [8]uint8
}

// NewChip constructs a Chip for the given region, driving irqLine's raster/
// collision bits and cpu's BA hold, reading screen/char/sprite data and
// color RAM through mem.
func NewChip(ntsc bool, mem Memory, cpu BusMaster, irqLine *irq.Line) *Chip {
	cfg := palTiming()
	if ntsc {
		cfg = ntscTiming()
	}
	c := &Chip{
		mem:  mem,
		cpu:  cpu,
		irq:  irqLine,
		ntsc: ntsc,
		cfg:  cfg,
	}
	c.d011Latch = make([]uint8, cfg.linesPerFrame)
	c.d016Latch = make([]uint8, cfg.linesPerFrame)
	c.d018Latch = make([]uint8, cfg.linesPerFrame)
	c.fb = newFramebuffer(cfg.linesPerFrame)
	return c
}

// Reset returns every register to its power-on value (all zero) and parks
// the raster at line 0.
func (c *Chip) Reset() {
	c.regs = registers{}
	c.raster = 0
	c.cycle = 0
	c.rowCounter = 0
	c.aec = true
	c.frameDone = false
	for i := range c.sprites {
		c.sprites[i] = spriteState{}
	}
}

// bankBase returns the 16KiB VIC bank base CurrentBank currently reports,
// or 0 if no callback has been wired yet.
func (c *Chip) bankBase() uint16 {
	if c.CurrentBank == nil {
		return 0
	}
	return c.CurrentBank()
}

// Framebuffer returns the chip's current indexed-colour framebuffer,
// satisfying emulation.FrameSink.
func (c *Chip) Framebuffer() []uint8 {
	return c.fb.pixels
}

// FrameWidth and FrameHeight describe the framebuffer's fixed dimensions.
func (c *Chip) FrameWidth() int  { return fbWidth }
func (c *Chip) FrameHeight() int { return c.cfg.linesPerFrame }

// FrameComplete reports whether a full frame has been rendered since the
// last call, clearing the flag as a side effect - satisfying
// emulation.FrameSink.
func (c *Chip) FrameComplete() bool {
	done := c.frameDone
	c.frameDone = false
	return done
}

// Tick advances the chip by cycles system clocks, one VIC cycle at a time,
// following the same cycle-by-cycle control flow as the raster engine this
// was ported from: D016 latches at cycle 12, D011/D018 latch plus sprite
// pointer fetch at the line's DMA start cycle, bad-line char/colour DMA
// fills charBuf/colorBuf across the DMA window, and end-of-line triggers
// rendering, collision detection, the row counter, the raster IRQ compare,
// and the raster/frame advance.
func (c *Chip) Tick(cycles int) error {
	for i := 0; i < cycles; i++ {
		c.stepCycle()
	}
	return nil
}

func (c *Chip) stepCycle() {
	c.cycle++

	switch c.cycle {
	case 12:
		c.d016Latch[c.raster] = c.regs.control2
	case c.cfg.dmaStartCycle:
		c.d011Latch[c.raster] = c.regs.control1
		c.d018Latch[c.raster] = c.regs.memoryPointer
		c.isFrameBad = c.isBadLine(c.raster)
		c.fetchSpritePointers()
	}

	if c.isFrameBad && c.cycle >= c.cfg.dmaStartCycle && c.cycle < c.cfg.dmaEndCycle {
		c.fetchCharAndColor(c.cycle - c.cfg.dmaStartCycle)
	}

	c.updateAEC()

	if c.cycle >= c.cfg.cyclesPerLine {
		c.cycle = 0
		c.endOfLine()
	}
}

// isBadLine reports whether raster is a bad line: the display must be
// enabled, the raster must fall within the fixed 0x30-0xf7 DMA window, and
// the raster's low 3 bits must match the current Y scroll value.
func (c *Chip) isBadLine(raster int) bool {
	if c.regs.control1&ctrl1DEN == 0 {
		return false
	}
	if raster < 0x30 || raster > 0xf7 {
		return false
	}
	return uint8(raster)&0x07 == c.regs.control1&ctrl1YScrollMask
}

// updateAEC computes whether the VIC is currently stealing the bus for
// character or sprite DMA and propagates the result to the CPU as a BA
// hold.
func (c *Chip) updateAEC() {
	inCharDMA := c.isFrameBad && c.cycle >= c.cfg.dmaStartCycle && c.cycle < c.cfg.dmaEndCycle
	inSpriteDMA := c.cycle >= c.cfg.dmaEndCycle && c.cycle < c.cfg.dmaEndCycle+c.cfg.spriteDMACycles && c.spriteDMANeededThisLine()
	c.aec = !(inCharDMA || inSpriteDMA)
	if c.cpu != nil {
		c.cpu.SetBAHold(!c.aec)
	}
}

func (c *Chip) spriteDMANeededThisLine() bool {
	for i := range c.sprites {
		if c.regs.spriteEnable&(1<<uint(i)) != 0 {
			return true
		}
	}
	return false
}

// fetchSpritePointers reads each enabled sprite's data pointer (screen RAM
// byte 1016+n, in the currently-selected bank, holding the pointer*64 base
// address of that sprite's 63-byte data).
func (c *Chip) fetchSpritePointers() {
	screenBase := uint16(c.regs.memoryPointer>>4) * 0x400
	bank := c.bankBase()
	for i := range c.sprites {
		ptr := c.mem.VICRead(bank, screenBase+1016+uint16(i))
		c.sprites[i].pointer = uint16(ptr) * 64
	}
}

// fetchCharAndColor pulls one (char, color) pair for column col (0-39) of
// the bad line's DMA window.
func (c *Chip) fetchCharAndColor(col int) {
	if col < 0 || col >= 40 {
		return
	}
	screenBase := uint16(c.regs.memoryPointer>>4) * 0x400
	bank := c.bankBase()
	c.charBuf[col] = c.mem.VICRead(bank, screenBase+uint16(col))
	c.colorBuf[col] = c.mem.ColorNibble(uint16(col))
}

// endOfLine renders the completed line, checks collisions, advances the row
// counter and raster position, and fires the raster IRQ if the new raster
// matches the compare value.
func (c *Chip) endOfLine() {
	c.renderLine(c.raster)
	c.detectSpriteSpriteCollision()
	c.detectSpriteBackgroundCollision()

	if c.isFrameBad {
		c.rowCounter = (c.rowCounter + 1) & 0x07
	}
	for i := range c.sprites {
		if c.sprites[i].active {
			c.sprites[i].rowInSprite++
			if c.sprites[i].rowInSprite >= 21 {
				c.sprites[i].active = false
			}
		}
	}

	c.raster++
	if c.raster >= c.cfg.linesPerFrame {
		c.raster = 0
		c.frameDone = true
		c.rowCounter = 0
	}

	if c.raster == c.rasterCompare() {
		c.regs.interruptStatus |= interruptRaster
		c.refreshIRQ()
	}
}

// rasterCompare folds control1's bit 7 back in as the raster compare
// value's 9th bit.
func (c *Chip) rasterCompare() int {
	v := int(c.regs.rasterCmp)
	if c.regs.control1&ctrl1RasterMSB != 0 {
		v |= 0x100
	}
	return v
}

// refreshIRQ recomputes $D019 bit 7 and asserts/deasserts each enabled
// interrupt source on the shared IRQ line.
func (c *Chip) refreshIRQ() {
	if c.regs.interruptStatus&c.regs.interruptEnable&0x0f != 0 {
		c.regs.interruptStatus |= interruptAnyPending
	} else {
		c.regs.interruptStatus &^= interruptAnyPending
	}

	if c.irq == nil {
		return
	}
	if c.regs.interruptStatus&interruptRaster != 0 && c.regs.interruptEnable&interruptRaster != 0 {
		c.irq.Raise(irq.VICRaster)
	} else {
		c.irq.Clear(irq.VICRaster)
	}
	if c.regs.interruptStatus&interruptSpriteSprite != 0 && c.regs.interruptEnable&interruptSpriteSprite != 0 {
		c.irq.Raise(irq.VICSpriteCollision)
	} else {
		c.irq.Clear(irq.VICSpriteCollision)
	}
	if c.regs.interruptStatus&interruptSpriteBackground != 0 && c.regs.interruptEnable&interruptSpriteBackground != 0 {
		c.irq.Raise(irq.VICSpriteBackgroundCollision)
	} else {
		c.irq.Clear(irq.VICSpriteBackgroundCollision)
	}
}

// graphicsMode decodes control1/control2's ECM/BMM/MCM bits into the
// current rendering mode, reporting ModeInvalid (rendered as solid black)
// for every combination with ECM set together with BMM or MCM.
func (c *Chip) graphicsMode() GraphicsMode {
	ecm := c.regs.control1&ctrl1ECM != 0
	bmm := c.regs.control1&ctrl1BMM != 0
	mcm := c.regs.control2&ctrl2MCM != 0

	switch {
	case !ecm && !bmm && !mcm:
		return ModeStandardText
	case !ecm && !bmm && mcm:
		return ModeMulticolorText
	case !ecm && bmm && !mcm:
		return ModeBitmap
	case !ecm && bmm && mcm:
		return ModeMulticolorBitmap
	case ecm && !bmm && !mcm:
		return ModeExtendedColorText
	default:
		return ModeInvalid
	}
}
