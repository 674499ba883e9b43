// Package nes is the main logic for pulling together a NES emulator.
// The actual chips are implemented in other packages and most of the
// logic here is simply to pull together the memory mappings for them
// and drive them at the hardware clock ratio.
package nes

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/Grillo-0/Rodomo/bus"
	"github.com/Grillo-0/Rodomo/cpu"
	"github.com/Grillo-0/Rodomo/irq"
	"github.com/Grillo-0/Rodomo/memory"
	"github.com/Grillo-0/Rodomo/ppu"
)

const (
	kSCANLINES_PER_FRAME = 262
	kTICKS_PER_SCANLINE  = 341
	kVBLANK_SCANLINE     = 241
	kCPU_DIVIDER         = 3 // One CPU instruction per 3 PPU ticks.

	kRAM_MIRROR_MASK = uint16(0x07FF)
	kPPU_MIRROR_MASK = uint16(0x2007)
	kNO_MIRROR       = uint16(0xFFFF)
	kOAMDMA_ADDR     = uint16(0x4014)
	kCART_WINDOW     = uint16(0x8000)

	Width  = 256
	Height = 240
)

// oamDMA is the one byte port at 0x4014. Writing page number v copies
// 0xv00-0xvFF from the outer bus into PPU OAM. It needs outer bus
// visibility which is why it lives here and not in the ppu package.
type oamDMA struct {
	outer memory.Bank
	ppu   *ppu.Chip
}

var _ = memory.Bank(&oamDMA{})

func (d *oamDMA) Read(addr uint16) uint8 { return 0 }

func (d *oamDMA) Write(addr uint16, val uint8) {
	page := uint16(val) << 8
	for i := 0; i <= 0xFF; i++ {
		d.ppu.WriteOAM(uint8(i), d.outer.Read(page|uint16(i)))
	}
}

func (d *oamDMA) PowerOn() {}

// NES owns handles to the CPU, the outer bus and the PPU register file
// and drives them through their public step/tick operations only.
type NES struct {
	cpu       *cpu.Chip
	ppu       *ppu.Chip
	bus       *bus.Bus
	nmi       irq.Sender
	picture   *image.NRGBA
	frameDone func(*image.NRGBA)
	debug     bool
	frames    uint64
}

// Def defines the pieces needed to set up a basic NES.
type Def struct {
	// Prg is the program ROM, loaded so it ends at the top of the
	// address space (0x10000 - len bytes).
	Prg []uint8
	// Chr is the optional character ROM loaded at offset 0 of the PPU
	// internal space.
	Chr []uint8
	// FrameDone is called with the rendered picture after every frame.
	FrameDone func(*image.NRGBA)
	// Debug if true emits per frame CPU state.
	Debug bool
}

// Init returns an initialized and powered on NES with the flat memory
// map: 2K internal RAM mirrored across 0x0000-0x1FFF, the PPU register
// file mirrored across 0x2000-0x3FFF, the OAMDMA port at 0x4014 and a
// cartridge window at 0x8000-0xFFFF.
func Init(def *Def) (*NES, error) {
	if len(def.Prg) == 0 {
		return nil, errors.New("Prg must be non-empty in def")
	}
	if len(def.Prg) > 0x8000 {
		return nil, fmt.Errorf("Prg larger than the cartridge window: %d bytes", len(def.Prg))
	}

	b := bus.New()

	ram := memory.NewRAM()
	b.RegisterRange(0x0000, 0x1FFF, ram, kRAM_MIRROR_MASK)

	p, err := ppu.Init(&ppu.ChipDef{})
	if err != nil {
		return nil, fmt.Errorf("can't initialize PPU: %v", err)
	}
	b.RegisterRange(0x2000, 0x3FFF, p, kPPU_MIRROR_MASK)
	b.Register(kOAMDMA_ADDR, &oamDMA{outer: b, ppu: p}, kNO_MIRROR)

	cart := memory.NewRAM()
	b.RegisterRange(kCART_WINDOW, 0xFFFF, cart, kNO_MIRROR)
	cart.LoadAt(def.Prg, uint16(0x10000-len(def.Prg)))

	if def.Chr != nil {
		p.LoadPattern(def.Chr)
	}

	// The CPU powers on last since its reset vector fetch needs the
	// program already in place.
	c, err := cpu.Init(&cpu.ChipDef{Ram: b})
	if err != nil {
		return nil, fmt.Errorf("can't initialize cpu: %v", err)
	}

	n := &NES{
		cpu:       c,
		ppu:       p,
		bus:       b,
		nmi:       p,
		picture:   image.NewNRGBA(image.Rect(0, 0, Width, Height)),
		frameDone: def.FrameDone,
		debug:     def.Debug,
	}
	return n, nil
}

// Frame advances the machine one full video frame: 262 scanlines of 341
// PPU ticks with the CPU stepped one instruction every third tick.
// Vblank rises entering scanline 241 and the NMI line is polled there;
// it falls again at scanline 0 of the next frame. The rendered picture
// goes to FrameDone at the end. A CPU fault (unimplemented opcode)
// stops the frame and propagates.
func (n *NES) Frame() error {
	for scanline := 0; scanline < kSCANLINES_PER_FRAME; scanline++ {
		if scanline == 0 {
			n.ppu.ResetVBlank()
		}
		if scanline == kVBLANK_SCANLINE {
			n.ppu.SetVBlank()
		}
		for tick := 0; tick < kTICKS_PER_SCANLINE; tick++ {
			if tick%kCPU_DIVIDER == 0 {
				if _, err := n.cpu.Step(); err != nil {
					return err
				}
			}
		}
		if scanline == kVBLANK_SCANLINE && n.nmi.Raised() {
			n.cpu.NMI()
		}
	}

	n.frames++
	if n.debug {
		log.Printf("frame %d: PC=0x%.4X A=0x%.2X X=0x%.2X Y=0x%.2X S=0x%.2X P=0x%.2X clocks=%d",
			n.frames, n.cpu.PC, n.cpu.A, n.cpu.X, n.cpu.Y, n.cpu.S, n.cpu.P, n.cpu.Clocks)
	}

	n.renderFrame()
	if n.frameDone != nil {
		n.frameDone(n.picture)
	}
	return nil
}

// CPU exposes the processor for test and tooling access.
func (n *NES) CPU() *cpu.Chip {
	return n.cpu
}

// PPU exposes the video register file for test and tooling access.
func (n *NES) PPU() *ppu.Chip {
	return n.ppu
}

// Read reads through the outer bus. Implements the memory map for
// anything wanting console level access (tests, tooling).
func (n *NES) Read(addr uint16) uint8 {
	return n.bus.Read(addr)
}

// Write writes through the outer bus.
func (n *NES) Write(addr uint16, val uint8) {
	n.bus.Write(addr, val)
}
