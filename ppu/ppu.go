// Package ppu implements the CPU visible register protocol of the 2C02
// video controller: the eight registers at 0x2000-0x2007 (mirrored
// through 0x3FFF on the outer bus), the configuration derived from
// control writes, the two phase VRAM address latch and the vblank/NMI
// edge the driver uses to raise interrupts. Pixel generation itself is
// left to an external consumer which only needs read access to the
// internal memory; see the rendering code in the console package.
package ppu

import (
	"github.com/Grillo-0/Rodomo/bus"
	"github.com/Grillo-0/Rodomo/irq"
	"github.com/Grillo-0/Rodomo/memory"
)

var (
	_ = memory.Bank(&Chip{})
	_ = irq.Sender(&Chip{})
)

// Register addresses as seen by the CPU after outer bus mirroring.
const (
	kPPUCTRL   = uint16(0x2000)
	kPPUMASK   = uint16(0x2001)
	kPPUSTATUS = uint16(0x2002)
	kOAMADDR   = uint16(0x2003)
	kOAMDATA   = uint16(0x2004)
	kPPUSCROLL = uint16(0x2005)
	kPPUADDR   = uint16(0x2006)
	kPPUDATA   = uint16(0x2007)

	// PPUCTRL bits.
	kCTRL_NAMETABLE      = uint8(0x03)
	kCTRL_VRAM_INCREMENT = uint8(0x04)
	kCTRL_SPRITE_TABLE   = uint8(0x08)
	kCTRL_BG_TABLE       = uint8(0x10)
	kCTRL_SPRITE_SIZE    = uint8(0x20)
	kCTRL_NMI_ENABLE     = uint8(0x80)

	// PPUSTATUS bits.
	kSTATUS_VBLANK = uint8(0x80)

	// Internal address space layout.
	kPATTERN_END    = uint16(0x1FFF)
	kNAMETABLE_MASK = uint16(0x2FFF)
	kPALETTE_MASK   = uint16(0x3F1F)
)

// Chip implements the PPU register file as a memory.Bank so the outer
// bus can mirror it across 0x2000-0x3FFF, plus the driver hooks for the
// vblank/NMI edge. The internal pattern/nametable/palette space is its
// own nested bus instance over one storage bank.
type Chip struct {
	control uint8
	mask    uint8
	status  uint8
	oamAddr uint8
	scroll  uint8

	// Derived on every control write.
	nametableBase     uint16
	vramIncrement     uint16
	spritePatternBase uint16
	bgPatternBase     uint16
	spriteHeight      int
	nmiEnabled        bool

	// The 16 bit VRAM address is exposed 8 bits at a time: first write
	// after a status read is the high byte, the next the low byte.
	vramAddr  uint16
	wantHigh  bool
	vblank    bool
	oam       [256]uint8
	vram      *bus.Bus
	storage   *memory.RAM
}

// ChipDef defines the pieces needed to set up a PPU. Empty today but
// kept so the constructor matches the other chips.
type ChipDef struct{}

// Init returns an initialized and powered on PPU with its internal bus
// routing pattern (0x0000-0x1FFF), nametable (0x2000-0x3EFF mirrored
// onto 0x2000-0x2FFF) and palette (0x3F00-0x3FFF mirrored onto the 32
// palette cells) regions onto one storage bank.
func Init(def *ChipDef) (*Chip, error) {
	p := &Chip{
		storage: memory.NewRAM(),
		vram:    bus.New(),
	}
	p.vram.RegisterRange(0x0000, kPATTERN_END, p.storage, 0xFFFF)
	p.vram.RegisterRange(0x2000, 0x3EFF, p.storage, kNAMETABLE_MASK)
	p.vram.RegisterRange(0x3F00, 0x3FFF, p.storage, kPALETTE_MASK)
	p.PowerOn()
	return p, nil
}

// PowerOn implements the memory.Bank interface for PowerOn. Registers
// clear, the address latch expects a high byte and vblank is down.
func (p *Chip) PowerOn() {
	p.control = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.scroll = 0
	p.vramAddr = 0
	p.wantHigh = true
	p.vblank = false
	for i := range p.oam {
		p.oam[i] = 0
	}
	p.recompute()
}

// recompute refreshes the configuration fields derived from the control
// register. Called on every control write; never retroactively touches
// an address already latched.
func (p *Chip) recompute() {
	p.nametableBase = 0x2000 + 0x400*uint16(p.control&kCTRL_NAMETABLE)
	p.vramIncrement = 1
	if p.control&kCTRL_VRAM_INCREMENT != 0 {
		p.vramIncrement = 32
	}
	p.spritePatternBase = 0
	if p.control&kCTRL_SPRITE_TABLE != 0 {
		p.spritePatternBase = 0x1000
	}
	p.bgPatternBase = 0
	if p.control&kCTRL_BG_TABLE != 0 {
		p.bgPatternBase = 0x1000
	}
	p.spriteHeight = 8
	if p.control&kCTRL_SPRITE_SIZE != 0 {
		p.spriteHeight = 16
	}
	p.nmiEnabled = p.control&kCTRL_NMI_ENABLE != 0
}

// Read implements the memory.Bank interface for Read. Reading the
// status register has side effects: vblank clears and the address latch
// resets to expect a high byte.
func (p *Chip) Read(addr uint16) uint8 {
	switch addr {
	case kPPUSTATUS:
		v := p.status &^ kSTATUS_VBLANK
		if p.vblank {
			v |= kSTATUS_VBLANK
		}
		p.vblank = false
		p.wantHigh = true
		return v
	case kOAMDATA:
		return p.oam[p.oamAddr]
	case kPPUDATA:
		v := p.vram.Read(p.vramAddr)
		p.vramAddr += p.vramIncrement
		return v
	case kPPUCTRL:
		return p.control
	case kPPUMASK:
		return p.mask
	}
	return 0
}

// Write implements the memory.Bank interface for Write.
func (p *Chip) Write(addr uint16, val uint8) {
	switch addr {
	case kPPUCTRL:
		p.control = val
		p.recompute()
	case kPPUMASK:
		p.mask = val
	case kOAMADDR:
		p.oamAddr = val
	case kOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case kPPUSCROLL:
		p.scroll = val
	case kPPUADDR:
		if p.wantHigh {
			p.vramAddr = uint16(val)<<8 | p.vramAddr&0x00FF
		} else {
			p.vramAddr = p.vramAddr&0xFF00 | uint16(val)
		}
		p.wantHigh = !p.wantHigh
	case kPPUDATA:
		p.vram.Write(p.vramAddr, val)
		p.vramAddr += p.vramIncrement
	}
}

// SetVBlank is invoked by the driver when the frame enters the vertical
// blanking scanline (241 in the NTSC cadence).
func (p *Chip) SetVBlank() {
	p.vblank = true
}

// ResetVBlank is invoked by the driver when a new frame starts.
func (p *Chip) ResetVBlank() {
	p.vblank = false
}

// ShouldNMI is the single predicate the driver polls to decide whether
// to invoke the CPU's NMI entry point.
func (p *Chip) ShouldNMI() bool {
	return p.vblank && p.nmiEnabled
}

// Raised implements irq.Sender. The NMI line is high while in vblank
// with NMI generation enabled.
func (p *Chip) Raised() bool {
	return p.ShouldNMI()
}

// LoadPattern loads a character ROM blob at offset 0 of the internal
// space (the cartridge interface).
func (p *Chip) LoadPattern(data []uint8) {
	p.storage.LoadAt(data, 0)
}

// WriteOAM stores one byte at the given offset from the current OAM
// address. Used by the console's OAMDMA port.
func (p *Chip) WriteOAM(off uint8, val uint8) {
	p.oam[p.oamAddr+off] = val
}

// ReadOAM returns the OAM byte at idx. Read only view for consumers.
func (p *Chip) ReadOAM(idx uint8) uint8 {
	return p.oam[idx]
}

// ReadVRAM exposes the internal space read only for the rendering
// consumer. The core never calls into rendering.
func (p *Chip) ReadVRAM(addr uint16) uint8 {
	return p.vram.Read(addr)
}

// NametableBase returns the derived nametable base address.
func (p *Chip) NametableBase() uint16 {
	return p.nametableBase
}

// BackgroundTableBase returns the derived background pattern table base.
func (p *Chip) BackgroundTableBase() uint16 {
	return p.bgPatternBase
}

// SpriteTableBase returns the derived sprite pattern table base.
func (p *Chip) SpriteTableBase() uint16 {
	return p.spritePatternBase
}

// SpriteHeight returns the derived sprite height (8 or 16).
func (p *Chip) SpriteHeight() int {
	return p.spriteHeight
}
