// Package functionality does basic end-end verification of the whole
// console: a synthetic cartridge image is parsed, loaded and run for
// whole frames with the CPU, bus and PPU wired together.
package functionality

import (
	"testing"

	"github.com/Grillo-0/Rodomo/ines"
	"github.com/Grillo-0/Rodomo/nes"
	"github.com/davecgh/go-spew/spew"
)

const (
	kHEADER_SIZE = 16
	kPRG_UNIT    = 16 * 1024
	kCHR_UNIT    = 8 * 1024
)

// makeCart assembles a complete 32K iNES image: prog at 0x8000, an NMI
// handler at 0x9000 and both vectors wired.
func makeCart(prog, handler []uint8) []uint8 {
	data := make([]uint8, kHEADER_SIZE+2*kPRG_UNIT+kCHR_UNIT)
	copy(data, []uint8{'N', 'E', 'S', 0x1A})
	data[4] = 2 // 32K PRG
	data[5] = 1 // 8K CHR

	prg := data[kHEADER_SIZE : kHEADER_SIZE+2*kPRG_UNIT]
	copy(prg, prog)
	copy(prg[0x1000:], handler)
	prg[0x7FFA] = 0x00 // NMI -> 0x9000
	prg[0x7FFB] = 0x90
	prg[0x7FFC] = 0x00 // Reset -> 0x8000
	prg[0x7FFD] = 0x80
	return data
}

func TestCartridgeBoot(t *testing.T) {
	// The program enables NMI generation, computes 5+3 into 0x10 and
	// spins. The handler counts frames at 0x00.
	prog := []uint8{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0xA9, 0x05, // LDA #$05
		0x18,       // CLC
		0x69, 0x03, // ADC #$03
		0x85, 0x10, // STA $10
		0x4C, 0x0C, 0x80, // spin: JMP spin
	}
	handler := []uint8{
		0xE6, 0x00, // INC $00
		0x40, // RTI
	}

	img, err := ines.Parse(makeCart(prog, handler))
	if err != nil {
		t.Fatalf("Can't parse cart - %v", err)
	}
	n, err := nes.Init(&nes.Def{Prg: img.Prg, Chr: img.Chr})
	if err != nil {
		t.Fatalf("Can't initialize NES - %v", err)
	}

	for frame := 1; frame <= 3; frame++ {
		if err := n.Frame(); err != nil {
			t.Fatalf("frame %d failed - %v\nstate: %s", frame, err, spew.Sdump(n.CPU()))
		}
		if got := n.Read(0x0000); got != uint8(frame) {
			t.Fatalf("after frame %d: NMI count got %.2X want %.2X\nstate: %s", frame, got, frame, spew.Sdump(n.CPU()))
		}
	}
	if got := n.Read(0x0010); got != 0x08 {
		t.Errorf("computed sum got %.2X want 08", got)
	}
}

func TestVRAMThroughRegisterFile(t *testing.T) {
	// Drive the PPU address latch and data port through the CPU visible
	// bus the way a boot routine clears nametables.
	prog := []uint8{
		0xAD, 0x02, 0x20, // LDA $2002 (reset the latch)
		0xA9, 0x20, // LDA #$20
		0x8D, 0x06, 0x20, // STA $2006 (high)
		0xA9, 0x00, // LDA #$00
		0x8D, 0x06, 0x20, // STA $2006 (low)
		0xA9, 0x33, // LDA #$33
		0x8D, 0x07, 0x20, // STA $2007
		0x8D, 0x07, 0x20, // STA $2007 (auto increments)
		0x4C, 0x15, 0x80, // spin: JMP spin
	}
	img, err := ines.Parse(makeCart(prog, []uint8{0x40}))
	if err != nil {
		t.Fatalf("Can't parse cart - %v", err)
	}
	n, err := nes.Init(&nes.Def{Prg: img.Prg, Chr: img.Chr})
	if err != nil {
		t.Fatalf("Can't initialize NES - %v", err)
	}
	if err := n.Frame(); err != nil {
		t.Fatalf("frame failed - %v", err)
	}
	for _, addr := range []uint16{0x2000, 0x2001} {
		if got := n.PPU().ReadVRAM(addr); got != 0x33 {
			t.Errorf("vram[%.4X] got %.2X want 33", addr, got)
		}
	}
}
