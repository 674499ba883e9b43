// Package cpu defines the NMOS 6502 architecture (as found in the NES,
// minus BCD mode) and provides the methods needed to run the CPU and
// interface with it for emulation.
//
// The chip is stepped one whole instruction at a time. Each opcode is
// looked up in a static catalog mapping it to an operation tag, an
// addressing mode tag and a base cycle cost; one switch resolves the
// addressing mode, a second executes the operation. The catalog is the
// single source of truth for both execution and cycle accounting.
package cpu

import (
	"errors"
	"fmt"

	"github.com/Grillo-0/Rodomo/memory"
)

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)

	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_S1        = uint8(0x20) // Always 1
	P_B         = uint8(0x10) // Only set during BRK/PHP pushes. Cleared on all other interrupts.
	P_DECIMAL   = uint8(0x8)
	P_INTERRUPT = uint8(0x4)
	P_ZERO      = uint8(0x2)
	P_CARRY     = uint8(0x1)
)

// Chip implements an instruction stepped NMOS 6502. All memory traffic
// goes through the memory.Bank handed in at Init time (normally the
// outer bus) so devices and mirrors behave identically for opcode
// fetches, operands and stack traffic.
type Chip struct {
	A      uint8  // Accumulator register
	X      uint8  // X register
	Y      uint8  // Y register
	S      uint8  // Stack pointer. Stack lives at 0x0100-0x01FF.
	P      uint8  // Processor status register
	PC     uint16 // Program counter
	Clocks uint64 // Total cycles consumed since power on. Wraps; only used for timing ratios.
	ram    memory.Bank
}

// UnimplementedOpcode represents an opcode missing from the catalog.
// This is fatal by design: it means either the ROM uses something
// outside the emulated set or the catalog has a gap. It is deliberately
// a distinct type so it can never be confused with a (recoverable) bus
// miss.
type UnimplementedOpcode struct {
	Opcode uint8
}

// Error implements the interface for error types.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("0x%.2X is an unimplemented opcode", e.Opcode)
}

// ChipDef defines the pieces needed to set up a CPU.
type ChipDef struct {
	// Ram is the bank all fetches, operands and stack traffic route through.
	Ram memory.Bank
}

// Init returns an initialized and powered on 6502. The memory passed in
// is not powered on; the caller owns its lifecycle since it is normally
// shared with other chips.
func Init(def *ChipDef) (*Chip, error) {
	if def.Ram == nil {
		return nil, errors.New("Ram must be non-nil in def")
	}
	c := &Chip{
		ram: def.Ram,
	}
	c.PowerOn()
	return c, nil
}

// PowerOn resets the CPU to power on state. Registers are zero, stack
// ends up at 0xFD and P is cleared (except S1) with interrupts disabled.
// The starting PC value is loaded from the reset vector.
func (c *Chip) PowerOn() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.S = 0x0
	// This bit is always set.
	c.P = P_S1
	c.Clocks = 0
	c.Reset()
}

// Reset is similar to PowerOn except the main registers are not
// touched. The stack moves 3 bytes as if PC/P had been pushed,
// interrupts are disabled and the PC is loaded from the reset vector.
func (c *Chip) Reset() {
	c.S -= 3
	c.P |= P_INTERRUPT
	c.PC = c.readAddr(RESET_VECTOR)
}

// NMI preempts normal fetch: the current PC and status (B clear, S1
// set) are pushed and the PC is loaded from the NMI vector. Invoked by
// the driver between instructions, never self-triggered.
func (c *Chip) NMI() {
	c.pushLong(c.PC)
	c.push((c.P | P_S1) &^ P_B)
	c.P |= P_INTERRUPT
	c.PC = c.readAddr(NMI_VECTOR)
}

// Step executes one complete instruction and returns the cycles it
// consumed. An opcode absent from the catalog returns
// UnimplementedOpcode with the CPU state untouched.
func (c *Chip) Step() (int, error) {
	op := c.ram.Read(c.PC)
	def := opcodes[op]
	if def.op == kOP_UNIMPLEMENTED {
		return 0, UnimplementedOpcode{op}
	}
	addr := c.resolveAddr(def.mode)
	c.execute(def.op, def.mode, addr)
	c.Clocks += uint64(def.cycles)
	return def.cycles, nil
}

// readAddr reads the little endian 16 bit value at addr through the bus.
func (c *Chip) readAddr(addr uint16) uint16 {
	return uint16(c.ram.Read(addr+1))<<8 | uint16(c.ram.Read(addr))
}

// resolveAddr computes the effective address for the given mode,
// consuming operand bytes as it goes. On return the PC sits on the last
// byte of the instruction; the executing operation performs the final
// increment past it. Implied and accumulator modes consume nothing and
// return 0.
func (c *Chip) resolveAddr(mode addrMode) uint16 {
	switch mode {
	case kMODE_IMMEDIATE, kMODE_RELATIVE:
		// The operand byte itself is the effective address.
		c.PC++
		return c.PC
	case kMODE_ZP:
		c.PC++
		return uint16(c.ram.Read(c.PC))
	case kMODE_ZPX:
		c.PC++
		return uint16(c.ram.Read(c.PC) + c.X)
	case kMODE_ZPY:
		c.PC++
		return uint16(c.ram.Read(c.PC) + c.Y)
	case kMODE_ABSOLUTE:
		c.PC++
		lo := uint16(c.ram.Read(c.PC))
		c.PC++
		return uint16(c.ram.Read(c.PC))<<8 | lo
	case kMODE_ABSOLUTE_X:
		c.PC++
		lo := uint16(c.ram.Read(c.PC))
		c.PC++
		return (uint16(c.ram.Read(c.PC))<<8 | lo) + uint16(c.X)
	case kMODE_ABSOLUTE_Y:
		c.PC++
		lo := uint16(c.ram.Read(c.PC))
		c.PC++
		return (uint16(c.ram.Read(c.PC))<<8 | lo) + uint16(c.Y)
	case kMODE_INDIRECT:
		// JMP only. The NMOS page boundary bug is reproduced: a
		// pointer at 0xXXFF takes its high byte from 0xXX00.
		c.PC++
		lo := uint16(c.ram.Read(c.PC))
		c.PC++
		ptr := uint16(c.ram.Read(c.PC))<<8 | lo
		hi := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
		return uint16(c.ram.Read(hi))<<8 | uint16(c.ram.Read(ptr))
	case kMODE_INDIRECT_X:
		c.PC++
		zp := c.ram.Read(c.PC) + c.X
		return uint16(c.ram.Read(uint16(zp+1)))<<8 | uint16(c.ram.Read(uint16(zp)))
	case kMODE_INDIRECT_Y:
		c.PC++
		zp := c.ram.Read(c.PC)
		base := uint16(c.ram.Read(uint16(zp+1)))<<8 | uint16(c.ram.Read(uint16(zp)))
		return base + uint16(c.Y)
	}
	return 0
}

// execute runs the operation against the resolved effective address.
// Every micro operation advances the PC exactly once past the byte it
// ends on, which is what lets the fused undocumented opcodes compose
// two micro ops around a single PC rewind.
func (c *Chip) execute(op opType, mode addrMode, addr uint16) {
	switch op {
	case kOP_LDA:
		c.loadRegister(&c.A, c.ram.Read(addr))
	case kOP_LDX:
		c.loadRegister(&c.X, c.ram.Read(addr))
	case kOP_LDY:
		c.loadRegister(&c.Y, c.ram.Read(addr))
	case kOP_STA:
		c.store(c.A, addr)
	case kOP_STX:
		c.store(c.X, addr)
	case kOP_STY:
		c.store(c.Y, addr)
	case kOP_TAX:
		c.loadRegister(&c.X, c.A)
	case kOP_TAY:
		c.loadRegister(&c.Y, c.A)
	case kOP_TXA:
		c.loadRegister(&c.A, c.X)
	case kOP_TYA:
		c.loadRegister(&c.A, c.Y)
	case kOP_TSX:
		c.loadRegister(&c.X, c.S)
	case kOP_TXS:
		// No flags on TXS.
		c.S = c.X
		c.PC++
	case kOP_PHA:
		c.push(c.A)
		c.PC++
	case kOP_PHP:
		// B and S1 always read as set in the pushed copy.
		c.push(c.P | P_B | P_S1)
		c.PC++
	case kOP_PLA:
		c.loadRegister(&c.A, c.pop())
	case kOP_PLP:
		c.P = c.pop() | P_S1
		c.PC++
	case kOP_AND:
		c.iAND(addr)
	case kOP_EOR:
		c.iEOR(addr)
	case kOP_ORA:
		c.iORA(addr)
	case kOP_BIT:
		v := c.ram.Read(addr)
		c.flag(P_ZERO, c.A&v == 0)
		c.flag(P_OVERFLOW, v&P_OVERFLOW != 0)
		c.flag(P_NEGATIVE, v&P_NEGATIVE != 0)
		c.PC++
	case kOP_ADC:
		c.iADC(addr)
	case kOP_SBC:
		c.iSBC(addr)
	case kOP_CMP:
		c.iCMP(addr)
	case kOP_CPX:
		c.compare(c.X, c.ram.Read(addr))
	case kOP_CPY:
		c.compare(c.Y, c.ram.Read(addr))
	case kOP_INC:
		c.iINC(addr)
	case kOP_DEC:
		c.iDEC(addr)
	case kOP_INX:
		c.loadRegister(&c.X, c.X+1)
	case kOP_INY:
		c.loadRegister(&c.Y, c.Y+1)
	case kOP_DEX:
		c.loadRegister(&c.X, c.X-1)
	case kOP_DEY:
		c.loadRegister(&c.Y, c.Y-1)
	case kOP_ASL:
		if mode == kMODE_ACCUMULATOR {
			c.A = c.shiftLeft(c.A)
			c.PC++
		} else {
			c.iASL(addr)
		}
	case kOP_LSR:
		if mode == kMODE_ACCUMULATOR {
			c.A = c.shiftRight(c.A)
			c.PC++
		} else {
			c.iLSR(addr)
		}
	case kOP_ROL:
		if mode == kMODE_ACCUMULATOR {
			c.A = c.rotateLeft(c.A)
			c.PC++
		} else {
			c.iROL(addr)
		}
	case kOP_ROR:
		if mode == kMODE_ACCUMULATOR {
			c.A = c.rotateRight(c.A)
			c.PC++
		} else {
			c.iROR(addr)
		}
	case kOP_JMP:
		c.PC = addr
	case kOP_JSR:
		// PC still sits on the last operand byte here, one short of
		// the next instruction. RTS compensates by adding one.
		c.pushLong(c.PC)
		c.PC = addr
	case kOP_RTS:
		c.PC = c.popLong() + 1
	case kOP_RTI:
		c.P = c.pop() | P_S1
		c.PC = c.popLong()
	case kOP_BRK:
		c.iBRK()
	case kOP_BCC:
		c.branch(addr, c.P&P_CARRY == 0)
	case kOP_BCS:
		c.branch(addr, c.P&P_CARRY != 0)
	case kOP_BEQ:
		c.branch(addr, c.P&P_ZERO != 0)
	case kOP_BNE:
		c.branch(addr, c.P&P_ZERO == 0)
	case kOP_BMI:
		c.branch(addr, c.P&P_NEGATIVE != 0)
	case kOP_BPL:
		c.branch(addr, c.P&P_NEGATIVE == 0)
	case kOP_BVC:
		c.branch(addr, c.P&P_OVERFLOW == 0)
	case kOP_BVS:
		c.branch(addr, c.P&P_OVERFLOW != 0)
	case kOP_CLC:
		c.P &^= P_CARRY
		c.PC++
	case kOP_SEC:
		c.P |= P_CARRY
		c.PC++
	case kOP_CLD:
		c.P &^= P_DECIMAL
		c.PC++
	case kOP_SED:
		c.P |= P_DECIMAL
		c.PC++
	case kOP_CLI:
		c.P &^= P_INTERRUPT
		c.PC++
	case kOP_SEI:
		c.P |= P_INTERRUPT
		c.PC++
	case kOP_CLV:
		c.P &^= P_OVERFLOW
		c.PC++
	case kOP_NOP:
		c.PC++
	case kOP_SLO:
		// ASL on memory then ORA against the same address. Each micro
		// op bumps the PC for its own bookkeeping so rewind between.
		c.iASL(addr)
		c.PC--
		c.iORA(addr)
	case kOP_RLA:
		c.iROL(addr)
		c.PC--
		c.iAND(addr)
	case kOP_SRE:
		c.iLSR(addr)
		c.PC--
		c.iEOR(addr)
	case kOP_RRA:
		c.iROR(addr)
		c.PC--
		c.iADC(addr)
	case kOP_DCP:
		c.iDEC(addr)
		c.PC--
		c.iCMP(addr)
	case kOP_ISC:
		c.iINC(addr)
		c.PC--
		c.iSBC(addr)
	case kOP_LAX:
		// One memory read lands in both A and X.
		v := c.ram.Read(addr)
		c.A = v
		c.X = v
		c.zeroNegative(v)
		c.PC++
	case kOP_SAX:
		c.store(c.A&c.X, addr)
	}
}

// flag sets or clears the given status bit.
func (c *Chip) flag(mask uint8, on bool) {
	if on {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

func (c *Chip) zeroNegative(val uint8) {
	c.flag(P_ZERO, val == 0)
	c.flag(P_NEGATIVE, val&P_NEGATIVE != 0)
}

// loadRegister sets *reg to val, recomputes Z/N and finishes the micro op.
func (c *Chip) loadRegister(reg *uint8, val uint8) {
	*reg = val
	c.zeroNegative(val)
	c.PC++
}

func (c *Chip) store(val uint8, addr uint16) {
	c.ram.Write(addr, val)
	c.PC++
}

// compare performs the unsigned subtract without storing the result.
// Carry means register >= operand (no borrow).
func (c *Chip) compare(reg, val uint8) {
	res := reg - val
	c.flag(P_CARRY, reg >= val)
	c.flag(P_ZERO, reg == val)
	c.flag(P_NEGATIVE, res&P_NEGATIVE != 0)
	c.PC++
}

// addCarry is the two stage ADC core: operand plus accumulator, then
// plus carry in, with carry out from either stage overflowing 8 bits.
// Signed overflow is the usual sign rule on (~(A^operand) & (A^result)).
func (c *Chip) addCarry(val uint8) {
	t1 := c.A + val
	carry := t1 < c.A
	t2 := t1
	if c.P&P_CARRY != 0 {
		t2 = t1 + 1
		carry = carry || t2 < t1
	}
	c.flag(P_CARRY, carry)
	c.flag(P_OVERFLOW, (^(c.A^val)&(c.A^t2))&P_NEGATIVE != 0)
	c.A = t2
	c.zeroNegative(c.A)
}

func (c *Chip) iADC(addr uint16) {
	c.addCarry(c.ram.Read(addr))
	c.PC++
}

// iSBC reuses the ADC path with the operand inverted, the 6502
// subtract-via-carry convention. Carry set means no borrow.
func (c *Chip) iSBC(addr uint16) {
	c.addCarry(^c.ram.Read(addr))
	c.PC++
}

func (c *Chip) iCMP(addr uint16) {
	c.compare(c.A, c.ram.Read(addr))
}

func (c *Chip) iAND(addr uint16) {
	c.loadRegister(&c.A, c.A&c.ram.Read(addr))
}

func (c *Chip) iEOR(addr uint16) {
	c.loadRegister(&c.A, c.A^c.ram.Read(addr))
}

func (c *Chip) iORA(addr uint16) {
	c.loadRegister(&c.A, c.A|c.ram.Read(addr))
}

func (c *Chip) iINC(addr uint16) {
	v := c.ram.Read(addr) + 1
	c.ram.Write(addr, v)
	c.zeroNegative(v)
	c.PC++
}

func (c *Chip) iDEC(addr uint16) {
	v := c.ram.Read(addr) - 1
	c.ram.Write(addr, v)
	c.zeroNegative(v)
	c.PC++
}

// Shift and rotate cores. Carry always updates from the bit shifted out
// before Z/N update from the shifted result.
func (c *Chip) shiftLeft(val uint8) uint8 {
	c.flag(P_CARRY, val&P_NEGATIVE != 0)
	val <<= 1
	c.zeroNegative(val)
	return val
}

func (c *Chip) shiftRight(val uint8) uint8 {
	c.flag(P_CARRY, val&0x01 != 0)
	val >>= 1
	c.zeroNegative(val)
	return val
}

func (c *Chip) rotateLeft(val uint8) uint8 {
	carryIn := c.P & P_CARRY
	c.flag(P_CARRY, val&P_NEGATIVE != 0)
	val = val<<1 | carryIn
	c.zeroNegative(val)
	return val
}

func (c *Chip) rotateRight(val uint8) uint8 {
	carryIn := c.P & P_CARRY
	c.flag(P_CARRY, val&0x01 != 0)
	val = val>>1 | carryIn<<7
	c.zeroNegative(val)
	return val
}

func (c *Chip) iASL(addr uint16) {
	c.ram.Write(addr, c.shiftLeft(c.ram.Read(addr)))
	c.PC++
}

func (c *Chip) iLSR(addr uint16) {
	c.ram.Write(addr, c.shiftRight(c.ram.Read(addr)))
	c.PC++
}

func (c *Chip) iROL(addr uint16) {
	c.ram.Write(addr, c.rotateLeft(c.ram.Read(addr)))
	c.PC++
}

func (c *Chip) iROR(addr uint16) {
	c.ram.Write(addr, c.rotateRight(c.ram.Read(addr)))
	c.PC++
}

// branch applies the signed displacement at addr to the PC when taken.
// The displacement adds before the final increment so a taken branch
// with offset -2 from its own opcode re-executes that opcode.
func (c *Chip) branch(addr uint16, taken bool) {
	if taken {
		c.PC += uint16(int16(int8(c.ram.Read(addr))))
	}
	c.PC++
}

// iBRK runs the software interrupt sequence: PC+2 pushed (skipping the
// padding byte), B and S1 raised, status pushed, interrupts disabled
// and the PC loaded from the IRQ vector.
func (c *Chip) iBRK() {
	c.pushLong(c.PC + 2)
	c.P |= P_B | P_S1
	c.push(c.P)
	c.PC = c.readAddr(IRQ_VECTOR)
	c.P |= P_INTERRUPT
}

// Stack protocol: push stores then decrements, pop increments then
// reads, with S wrapping mod 256 inside the 0x0100 page.
func (c *Chip) push(val uint8) {
	c.ram.Write(0x0100|uint16(c.S), val)
	c.S--
}

func (c *Chip) pop() uint8 {
	c.S++
	return c.ram.Read(0x0100 | uint16(c.S))
}

// pushLong pushes high byte first so popLong recovers low byte first,
// matching the hardware return address convention.
func (c *Chip) pushLong(val uint16) {
	c.push(uint8(val >> 8))
	c.push(uint8(val & 0xFF))
}

func (c *Chip) popLong() uint16 {
	addr := uint16(c.pop())
	addr |= uint16(c.pop()) << 8
	return addr
}
