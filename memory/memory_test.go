package memory

import "testing"

func TestRAMZeroAtPowerOn(t *testing.T) {
	r := NewRAM()
	for _, addr := range []uint16{0x0000, 0x1234, 0x8000, 0xFFFF} {
		if got := r.Read(addr); got != 0 {
			t.Errorf("fresh RAM at %.4X got %.2X want 0", addr, got)
		}
	}
}

func TestRAMRoundTrip(t *testing.T) {
	r := NewRAM()
	r.Write(0x0000, 0x01)
	r.Write(0xFFFF, 0xFF)
	r.Write(0x8000, 0x80)
	if got := r.Read(0x0000); got != 0x01 {
		t.Errorf("read at 0x0000 got %.2X want 01", got)
	}
	if got := r.Read(0xFFFF); got != 0xFF {
		t.Errorf("read at 0xFFFF got %.2X want FF", got)
	}
	if got := r.Read(0x8000); got != 0x80 {
		t.Errorf("read at 0x8000 got %.2X want 80", got)
	}

	r.PowerOn()
	if got := r.Read(0x8000); got != 0 {
		t.Errorf("PowerOn should clear cells, got %.2X", got)
	}
}

func TestReadAddrLittleEndian(t *testing.T) {
	r := NewRAM()
	r.Write(0xFFFC, 0x34)
	r.Write(0xFFFD, 0x12)
	if got := r.ReadAddr(0xFFFC); got != 0x1234 {
		t.Errorf("ReadAddr got %.4X want 1234", got)
	}
}

func TestLoadAt(t *testing.T) {
	r := NewRAM()
	blob := []uint8{0xDE, 0xAD, 0xBE, 0xEF}
	r.LoadAt(blob, 0xC000)
	for i, want := range blob {
		if got := r.Read(0xC000 + uint16(i)); got != want {
			t.Errorf("load at offset %d got %.2X want %.2X", i, got, want)
		}
	}
	if got := r.Read(0xBFFF); got != 0 {
		t.Errorf("cell before the load should stay zero, got %.2X", got)
	}
}
