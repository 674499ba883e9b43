// Package memory defines the basic interfaces for working
// with a 6502 family memory map. Since each implementation
// that is emulated has specific mappings (including shadowed
// regions) this is defined as an interface.
package memory

// Bank is the contract every addressable device implements. The bus,
// plain RAM and the PPU register file all present this same surface so
// routing code never cares what sits behind an address.
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// RAM is a flat bank covering the full 16 bit address space. Cells
// never written read back as zero.
type RAM struct {
	addr [65536]uint8
}

var _ = Bank(&RAM{})

// NewRAM returns a powered on flat RAM bank.
func NewRAM() *RAM {
	r := &RAM{}
	r.PowerOn()
	return r
}

// Read implements the Bank interface for Read.
func (r *RAM) Read(addr uint16) uint8 {
	return r.addr[addr]
}

// Write implements the Bank interface for Write.
func (r *RAM) Write(addr uint16, val uint8) {
	r.addr[addr] = val
}

// PowerOn implements the Bank interface for PowerOn. Cells preset to zeros.
func (r *RAM) PowerOn() {
	for i := range r.addr {
		r.addr[i] = 0x00
	}
}

// ReadAddr reads the little endian 16 bit value stored at addr. Used for
// vector fetches.
func (r *RAM) ReadAddr(addr uint16) uint16 {
	return (uint16(r.addr[addr+1]) << 8) | uint16(r.addr[addr])
}

// LoadAt bulk loads a blob starting at offset. Carts are small enough by
// modern standards that a straight copy is fine.
func (r *RAM) LoadAt(data []uint8, offset uint16) {
	for i, v := range data {
		r.addr[offset+uint16(i)] = v
	}
}
