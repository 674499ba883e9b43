// Package bus implements the address space controller which routes CPU
// and PPU memory traffic to the owning device. Each raw address can be
// bound to a device along with a mirror mask which aliases it onto a
// canonical address before dispatch. A Bus is itself a memory.Bank so
// instances nest (the PPU's internal space is a Bus over pattern,
// nametable and palette banks).
package bus

import (
	"log"

	"github.com/Grillo-0/Rodomo/memory"
)

const kUNMAPPED = int16(-1)

// Bus routes reads and writes by address. Devices live in a small slot
// arena and every bound address stores the slot index, so a device
// registered across a whole range is held exactly once no matter how
// many raw addresses alias it.
type Bus struct {
	devices []memory.Bank
	slots   [65536]int16
	masks   [65536]uint16
}

var _ = memory.Bank(&Bus{})

// New returns a Bus with no devices bound. Accesses to unbound
// addresses are misses: logged, reads return 0 and writes are dropped.
func New() *Bus {
	b := &Bus{}
	for i := range b.slots {
		b.slots[i] = kUNMAPPED
	}
	return b
}

func (b *Bus) slotFor(dev memory.Bank) int16 {
	for i, d := range b.devices {
		if d == dev {
			return int16(i)
		}
	}
	b.devices = append(b.devices, dev)
	return int16(len(b.devices) - 1)
}

// Register binds a single raw address to dev. A mask of 0xFFFF means no
// mirroring since masking with it is the identity.
func (b *Bus) Register(addr uint16, dev memory.Bank, mask uint16) {
	slot := b.slotFor(dev)
	b.slots[addr] = slot
	b.masks[addr] = mask
}

// RegisterRange binds every address in [first, last] (inclusive) to dev
// with the given mirror mask. The device occupies one arena slot which
// each address references.
func (b *Bus) RegisterRange(first, last uint16, dev memory.Bank, mask uint16) {
	slot := b.slotFor(dev)
	for a := uint32(first); a <= uint32(last); a++ {
		b.slots[a] = slot
		b.masks[a] = mask
	}
}

// Read implements the memory.Bank interface for Read. The device is
// looked up by the raw address and then handed the masked one, so
// mirrored addresses all collapse onto the same device cell.
func (b *Bus) Read(addr uint16) uint8 {
	slot := b.slots[addr]
	if slot == kUNMAPPED {
		log.Printf("bus: read from unmapped address 0x%.4X", addr)
		return 0
	}
	return b.devices[slot].Read(addr & b.masks[addr])
}

// Write implements the memory.Bank interface for Write.
func (b *Bus) Write(addr uint16, val uint8) {
	slot := b.slots[addr]
	if slot == kUNMAPPED {
		log.Printf("bus: write of 0x%.2X to unmapped address 0x%.4X", val, addr)
		return
	}
	b.devices[slot].Write(addr&b.masks[addr], val)
}

// PowerOn implements the memory.Bank interface for PowerOn. Each
// distinct device powers on once regardless of how many addresses it
// answers.
func (b *Bus) PowerOn() {
	for _, d := range b.devices {
		d.PowerOn()
	}
}
