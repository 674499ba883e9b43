package bus

import (
	"testing"

	"github.com/Grillo-0/Rodomo/memory"
)

// countingBank records PowerOn calls so sharing can be verified.
type countingBank struct {
	memory.RAM
	powerCount int
}

func (c *countingBank) PowerOn() {
	c.powerCount++
	c.RAM.PowerOn()
}

func TestMirroredRangeAliases(t *testing.T) {
	b := New()
	r := memory.NewRAM()
	// 2K of RAM mirrored 4 times across 0x0000-0x1FFF, the console
	// arrangement.
	b.RegisterRange(0x0000, 0x1FFF, r, 0x07FF)

	b.Write(0x0000, 0x42)
	for _, alias := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := b.Read(alias); got != 0x42 {
			t.Errorf("alias %.4X got %.2X want 42", alias, got)
		}
	}

	// A write through any alias is visible at every other.
	b.Write(0x1FFF, 0x99)
	if got := b.Read(0x07FF); got != 0x99 {
		t.Errorf("write at 0x1FFF not visible at 0x07FF: got %.2X", got)
	}
}

func TestUnmappedAccess(t *testing.T) {
	b := New()
	r := memory.NewRAM()
	b.Register(0x1000, r, 0xFFFF)

	if got := b.Read(0x5000); got != 0 {
		t.Errorf("unmapped read got %.2X want 0", got)
	}
	// A dropped write must not leak into any device.
	b.Write(0x5000, 0xFF)
	if got := r.Read(0x5000); got != 0 {
		t.Errorf("dropped write leaked into device: got %.2X", got)
	}
}

func TestSingleSlotPerDevice(t *testing.T) {
	b := New()
	r := memory.NewRAM()
	b.RegisterRange(0x0000, 0x0FFF, r, 0xFFFF)
	b.RegisterRange(0x4000, 0x4FFF, r, 0x0FFF)
	b.Register(0x8000, r, 0x0FFF)
	if got := len(b.devices); got != 1 {
		t.Fatalf("device registered three times should hold one slot, got %d", got)
	}
	// The second range mirrors onto the first through its mask.
	b.Write(0x4123, 0x55)
	if got := b.Read(0x0123); got != 0x55 {
		t.Errorf("masked range dispatch broken: got %.2X want 55", got)
	}
}

func TestPowerOnHitsEachDeviceOnce(t *testing.T) {
	b := New()
	d := &countingBank{}
	b.RegisterRange(0x0000, 0x1FFF, d, 0x07FF)
	b.RegisterRange(0x8000, 0xFFFF, d, 0xFFFF)
	b.PowerOn()
	if d.powerCount != 1 {
		t.Errorf("PowerOn ran %d times, want 1", d.powerCount)
	}
}

func TestTopOfAddressSpace(t *testing.T) {
	b := New()
	r := memory.NewRAM()
	// A range ending at 0xFFFF must terminate instead of wrapping.
	b.RegisterRange(0xFFF0, 0xFFFF, r, 0xFFFF)
	b.Write(0xFFFF, 0xAB)
	if got := b.Read(0xFFFF); got != 0xAB {
		t.Errorf("read at 0xFFFF got %.2X want AB", got)
	}
	if got := b.Read(0xFFEF); got != 0 {
		t.Errorf("address below the range should be unmapped, got %.2X", got)
	}
}

func TestBusesNest(t *testing.T) {
	inner := New()
	r := memory.NewRAM()
	inner.RegisterRange(0x0000, 0x00FF, r, 0xFFFF)

	outer := New()
	outer.RegisterRange(0x2000, 0x20FF, inner, 0x00FF)

	outer.Write(0x2042, 0x7E)
	if got := inner.Read(0x0042); got != 0x7E {
		t.Errorf("nested dispatch broken: inner got %.2X want 7E", got)
	}
}
