package cpu

// Opcode matrix taken from:
// http://wiki.nesdev.com/w/index.php/CPU_unofficial_opcodes
//
// Opcode descriptions/timing/etc:
// http://obelisk.me.uk/6502/reference.html
// http://www.ffd2.com/fridge/docs/6502-NMOS.extra.opcodes

type opType int

const (
	kOP_UNIMPLEMENTED opType = iota // Zero value so empty catalog entries fail the fetch.
	kOP_ADC
	kOP_AND
	kOP_ASL
	kOP_BCC
	kOP_BCS
	kOP_BEQ
	kOP_BIT
	kOP_BMI
	kOP_BNE
	kOP_BPL
	kOP_BRK
	kOP_BVC
	kOP_BVS
	kOP_CLC
	kOP_CLD
	kOP_CLI
	kOP_CLV
	kOP_CMP
	kOP_CPX
	kOP_CPY
	kOP_DEC
	kOP_DEX
	kOP_DEY
	kOP_EOR
	kOP_INC
	kOP_INX
	kOP_INY
	kOP_JMP
	kOP_JSR
	kOP_LDA
	kOP_LDX
	kOP_LDY
	kOP_LSR
	kOP_NOP
	kOP_ORA
	kOP_PHA
	kOP_PHP
	kOP_PLA
	kOP_PLP
	kOP_ROL
	kOP_ROR
	kOP_RTI
	kOP_RTS
	kOP_SBC
	kOP_SEC
	kOP_SED
	kOP_SEI
	kOP_STA
	kOP_STX
	kOP_STY
	kOP_TAX
	kOP_TAY
	kOP_TSX
	kOP_TXA
	kOP_TXS
	kOP_TYA

	// Undocumented opcodes. Each is two official micro operations fused
	// around one operand fetch (except LAX/SAX which combine registers).
	kOP_SLO // ASL + ORA
	kOP_RLA // ROL + AND
	kOP_SRE // LSR + EOR
	kOP_RRA // ROR + ADC
	kOP_DCP // DEC + CMP
	kOP_ISC // INC + SBC
	kOP_LAX // LDA + LDX from one read
	kOP_SAX // store A & X
)

type addrMode int

const (
	kMODE_IMPLIED addrMode = iota
	kMODE_ACCUMULATOR
	kMODE_IMMEDIATE
	kMODE_ZP
	kMODE_ZPX
	kMODE_ZPY
	kMODE_ABSOLUTE
	kMODE_ABSOLUTE_X
	kMODE_ABSOLUTE_Y
	kMODE_INDIRECT
	kMODE_INDIRECT_X
	kMODE_INDIRECT_Y
	kMODE_RELATIVE
)

// opDef describes one catalog entry. cycles is the base cost; page
// crossing and taken branch penalties are not modeled since the driver
// only consumes the fixed CPU:PPU clock ratio.
type opDef struct {
	op     opType
	mode   addrMode
	cycles int
}

// opcodes is the static instruction catalog, built once, consulted on
// every fetch. Entries left zero surface as UnimplementedOpcode.
var opcodes = [256]opDef{
	0x00: {kOP_BRK, kMODE_IMPLIED, 7},
	0x01: {kOP_ORA, kMODE_INDIRECT_X, 6},
	0x03: {kOP_SLO, kMODE_INDIRECT_X, 8},
	0x05: {kOP_ORA, kMODE_ZP, 3},
	0x06: {kOP_ASL, kMODE_ZP, 5},
	0x07: {kOP_SLO, kMODE_ZP, 5},
	0x08: {kOP_PHP, kMODE_IMPLIED, 3},
	0x09: {kOP_ORA, kMODE_IMMEDIATE, 2},
	0x0A: {kOP_ASL, kMODE_ACCUMULATOR, 2},
	0x0D: {kOP_ORA, kMODE_ABSOLUTE, 4},
	0x0E: {kOP_ASL, kMODE_ABSOLUTE, 6},
	0x0F: {kOP_SLO, kMODE_ABSOLUTE, 6},
	0x10: {kOP_BPL, kMODE_RELATIVE, 2},
	0x11: {kOP_ORA, kMODE_INDIRECT_Y, 5},
	0x13: {kOP_SLO, kMODE_INDIRECT_Y, 8},
	0x15: {kOP_ORA, kMODE_ZPX, 4},
	0x16: {kOP_ASL, kMODE_ZPX, 6},
	0x17: {kOP_SLO, kMODE_ZPX, 6},
	0x18: {kOP_CLC, kMODE_IMPLIED, 2},
	0x19: {kOP_ORA, kMODE_ABSOLUTE_Y, 4},
	0x1B: {kOP_SLO, kMODE_ABSOLUTE_Y, 7},
	0x1D: {kOP_ORA, kMODE_ABSOLUTE_X, 4},
	0x1E: {kOP_ASL, kMODE_ABSOLUTE_X, 7},
	0x1F: {kOP_SLO, kMODE_ABSOLUTE_X, 7},
	0x20: {kOP_JSR, kMODE_ABSOLUTE, 6},
	0x21: {kOP_AND, kMODE_INDIRECT_X, 6},
	0x23: {kOP_RLA, kMODE_INDIRECT_X, 8},
	0x24: {kOP_BIT, kMODE_ZP, 3},
	0x25: {kOP_AND, kMODE_ZP, 3},
	0x26: {kOP_ROL, kMODE_ZP, 5},
	0x27: {kOP_RLA, kMODE_ZP, 5},
	0x28: {kOP_PLP, kMODE_IMPLIED, 4},
	0x29: {kOP_AND, kMODE_IMMEDIATE, 2},
	0x2A: {kOP_ROL, kMODE_ACCUMULATOR, 2},
	0x2C: {kOP_BIT, kMODE_ABSOLUTE, 4},
	0x2D: {kOP_AND, kMODE_ABSOLUTE, 4},
	0x2E: {kOP_ROL, kMODE_ABSOLUTE, 6},
	0x2F: {kOP_RLA, kMODE_ABSOLUTE, 6},
	0x30: {kOP_BMI, kMODE_RELATIVE, 2},
	0x31: {kOP_AND, kMODE_INDIRECT_Y, 5},
	0x33: {kOP_RLA, kMODE_INDIRECT_Y, 8},
	0x35: {kOP_AND, kMODE_ZPX, 4},
	0x36: {kOP_ROL, kMODE_ZPX, 6},
	0x37: {kOP_RLA, kMODE_ZPX, 6},
	0x38: {kOP_SEC, kMODE_IMPLIED, 2},
	0x39: {kOP_AND, kMODE_ABSOLUTE_Y, 4},
	0x3B: {kOP_RLA, kMODE_ABSOLUTE_Y, 7},
	0x3D: {kOP_AND, kMODE_ABSOLUTE_X, 4},
	0x3E: {kOP_ROL, kMODE_ABSOLUTE_X, 7},
	0x3F: {kOP_RLA, kMODE_ABSOLUTE_X, 7},
	0x40: {kOP_RTI, kMODE_IMPLIED, 6},
	0x41: {kOP_EOR, kMODE_INDIRECT_X, 6},
	0x43: {kOP_SRE, kMODE_INDIRECT_X, 8},
	0x45: {kOP_EOR, kMODE_ZP, 3},
	0x46: {kOP_LSR, kMODE_ZP, 5},
	0x47: {kOP_SRE, kMODE_ZP, 5},
	0x48: {kOP_PHA, kMODE_IMPLIED, 3},
	0x49: {kOP_EOR, kMODE_IMMEDIATE, 2},
	0x4A: {kOP_LSR, kMODE_ACCUMULATOR, 2},
	0x4C: {kOP_JMP, kMODE_ABSOLUTE, 3},
	0x4D: {kOP_EOR, kMODE_ABSOLUTE, 4},
	0x4E: {kOP_LSR, kMODE_ABSOLUTE, 6},
	0x4F: {kOP_SRE, kMODE_ABSOLUTE, 6},
	0x50: {kOP_BVC, kMODE_RELATIVE, 2},
	0x51: {kOP_EOR, kMODE_INDIRECT_Y, 5},
	0x53: {kOP_SRE, kMODE_INDIRECT_Y, 8},
	0x55: {kOP_EOR, kMODE_ZPX, 4},
	0x56: {kOP_LSR, kMODE_ZPX, 6},
	0x57: {kOP_SRE, kMODE_ZPX, 6},
	0x58: {kOP_CLI, kMODE_IMPLIED, 2},
	0x59: {kOP_EOR, kMODE_ABSOLUTE_Y, 4},
	0x5B: {kOP_SRE, kMODE_ABSOLUTE_Y, 7},
	0x5D: {kOP_EOR, kMODE_ABSOLUTE_X, 4},
	0x5E: {kOP_LSR, kMODE_ABSOLUTE_X, 7},
	0x5F: {kOP_SRE, kMODE_ABSOLUTE_X, 7},
	0x60: {kOP_RTS, kMODE_IMPLIED, 6},
	0x61: {kOP_ADC, kMODE_INDIRECT_X, 6},
	0x63: {kOP_RRA, kMODE_INDIRECT_X, 8},
	0x65: {kOP_ADC, kMODE_ZP, 3},
	0x66: {kOP_ROR, kMODE_ZP, 5},
	0x67: {kOP_RRA, kMODE_ZP, 5},
	0x68: {kOP_PLA, kMODE_IMPLIED, 4},
	0x69: {kOP_ADC, kMODE_IMMEDIATE, 2},
	0x6A: {kOP_ROR, kMODE_ACCUMULATOR, 2},
	0x6C: {kOP_JMP, kMODE_INDIRECT, 5},
	0x6D: {kOP_ADC, kMODE_ABSOLUTE, 4},
	0x6E: {kOP_ROR, kMODE_ABSOLUTE, 6},
	0x6F: {kOP_RRA, kMODE_ABSOLUTE, 6},
	0x70: {kOP_BVS, kMODE_RELATIVE, 2},
	0x71: {kOP_ADC, kMODE_INDIRECT_Y, 5},
	0x73: {kOP_RRA, kMODE_INDIRECT_Y, 8},
	0x75: {kOP_ADC, kMODE_ZPX, 4},
	0x76: {kOP_ROR, kMODE_ZPX, 6},
	0x77: {kOP_RRA, kMODE_ZPX, 6},
	0x78: {kOP_SEI, kMODE_IMPLIED, 2},
	0x79: {kOP_ADC, kMODE_ABSOLUTE_Y, 4},
	0x7B: {kOP_RRA, kMODE_ABSOLUTE_Y, 7},
	0x7D: {kOP_ADC, kMODE_ABSOLUTE_X, 4},
	0x7E: {kOP_ROR, kMODE_ABSOLUTE_X, 7},
	0x7F: {kOP_RRA, kMODE_ABSOLUTE_X, 7},
	0x81: {kOP_STA, kMODE_INDIRECT_X, 6},
	0x83: {kOP_SAX, kMODE_INDIRECT_X, 6},
	0x84: {kOP_STY, kMODE_ZP, 3},
	0x85: {kOP_STA, kMODE_ZP, 3},
	0x86: {kOP_STX, kMODE_ZP, 3},
	0x87: {kOP_SAX, kMODE_ZP, 3},
	0x88: {kOP_DEY, kMODE_IMPLIED, 2},
	0x8A: {kOP_TXA, kMODE_IMPLIED, 2},
	0x8C: {kOP_STY, kMODE_ABSOLUTE, 4},
	0x8D: {kOP_STA, kMODE_ABSOLUTE, 4},
	0x8E: {kOP_STX, kMODE_ABSOLUTE, 4},
	0x8F: {kOP_SAX, kMODE_ABSOLUTE, 4},
	0x90: {kOP_BCC, kMODE_RELATIVE, 2},
	0x91: {kOP_STA, kMODE_INDIRECT_Y, 6},
	0x94: {kOP_STY, kMODE_ZPX, 4},
	0x95: {kOP_STA, kMODE_ZPX, 4},
	0x96: {kOP_STX, kMODE_ZPY, 4},
	0x97: {kOP_SAX, kMODE_ZPY, 4},
	0x98: {kOP_TYA, kMODE_IMPLIED, 2},
	0x99: {kOP_STA, kMODE_ABSOLUTE_Y, 5},
	0x9A: {kOP_TXS, kMODE_IMPLIED, 2},
	0x9D: {kOP_STA, kMODE_ABSOLUTE_X, 5},
	0xA0: {kOP_LDY, kMODE_IMMEDIATE, 2},
	0xA1: {kOP_LDA, kMODE_INDIRECT_X, 6},
	0xA2: {kOP_LDX, kMODE_IMMEDIATE, 2},
	0xA3: {kOP_LAX, kMODE_INDIRECT_X, 6},
	0xA4: {kOP_LDY, kMODE_ZP, 3},
	0xA5: {kOP_LDA, kMODE_ZP, 3},
	0xA6: {kOP_LDX, kMODE_ZP, 3},
	0xA7: {kOP_LAX, kMODE_ZP, 3},
	0xA8: {kOP_TAY, kMODE_IMPLIED, 2},
	0xA9: {kOP_LDA, kMODE_IMMEDIATE, 2},
	0xAA: {kOP_TAX, kMODE_IMPLIED, 2},
	0xAC: {kOP_LDY, kMODE_ABSOLUTE, 4},
	0xAD: {kOP_LDA, kMODE_ABSOLUTE, 4},
	0xAE: {kOP_LDX, kMODE_ABSOLUTE, 4},
	0xAF: {kOP_LAX, kMODE_ABSOLUTE, 4},
	0xB0: {kOP_BCS, kMODE_RELATIVE, 2},
	0xB1: {kOP_LDA, kMODE_INDIRECT_Y, 5},
	0xB3: {kOP_LAX, kMODE_INDIRECT_Y, 5},
	0xB4: {kOP_LDY, kMODE_ZPX, 4},
	0xB5: {kOP_LDA, kMODE_ZPX, 4},
	0xB6: {kOP_LDX, kMODE_ZPY, 4},
	0xB7: {kOP_LAX, kMODE_ZPY, 4},
	0xB8: {kOP_CLV, kMODE_IMPLIED, 2},
	0xB9: {kOP_LDA, kMODE_ABSOLUTE_Y, 4},
	0xBA: {kOP_TSX, kMODE_IMPLIED, 2},
	0xBC: {kOP_LDY, kMODE_ABSOLUTE_X, 4},
	0xBD: {kOP_LDA, kMODE_ABSOLUTE_X, 4},
	0xBE: {kOP_LDX, kMODE_ABSOLUTE_Y, 4},
	0xBF: {kOP_LAX, kMODE_ABSOLUTE_Y, 4},
	0xC0: {kOP_CPY, kMODE_IMMEDIATE, 2},
	0xC1: {kOP_CMP, kMODE_INDIRECT_X, 6},
	0xC3: {kOP_DCP, kMODE_INDIRECT_X, 8},
	0xC4: {kOP_CPY, kMODE_ZP, 3},
	0xC5: {kOP_CMP, kMODE_ZP, 3},
	0xC6: {kOP_DEC, kMODE_ZP, 5},
	0xC7: {kOP_DCP, kMODE_ZP, 5},
	0xC8: {kOP_INY, kMODE_IMPLIED, 2},
	0xC9: {kOP_CMP, kMODE_IMMEDIATE, 2},
	0xCA: {kOP_DEX, kMODE_IMPLIED, 2},
	0xCC: {kOP_CPY, kMODE_ABSOLUTE, 4},
	0xCD: {kOP_CMP, kMODE_ABSOLUTE, 4},
	0xCE: {kOP_DEC, kMODE_ABSOLUTE, 6},
	0xCF: {kOP_DCP, kMODE_ABSOLUTE, 6},
	0xD0: {kOP_BNE, kMODE_RELATIVE, 2},
	0xD1: {kOP_CMP, kMODE_INDIRECT_Y, 5},
	0xD3: {kOP_DCP, kMODE_INDIRECT_Y, 8},
	0xD5: {kOP_CMP, kMODE_ZPX, 4},
	0xD6: {kOP_DEC, kMODE_ZPX, 6},
	0xD7: {kOP_DCP, kMODE_ZPX, 6},
	0xD8: {kOP_CLD, kMODE_IMPLIED, 2},
	0xD9: {kOP_CMP, kMODE_ABSOLUTE_Y, 4},
	0xDB: {kOP_DCP, kMODE_ABSOLUTE_Y, 7},
	0xDD: {kOP_CMP, kMODE_ABSOLUTE_X, 4},
	0xDE: {kOP_DEC, kMODE_ABSOLUTE_X, 7},
	0xDF: {kOP_DCP, kMODE_ABSOLUTE_X, 7},
	0xE0: {kOP_CPX, kMODE_IMMEDIATE, 2},
	0xE1: {kOP_SBC, kMODE_INDIRECT_X, 6},
	0xE3: {kOP_ISC, kMODE_INDIRECT_X, 8},
	0xE4: {kOP_CPX, kMODE_ZP, 3},
	0xE5: {kOP_SBC, kMODE_ZP, 3},
	0xE6: {kOP_INC, kMODE_ZP, 5},
	0xE7: {kOP_ISC, kMODE_ZP, 5},
	0xE8: {kOP_INX, kMODE_IMPLIED, 2},
	0xE9: {kOP_SBC, kMODE_IMMEDIATE, 2},
	0xEA: {kOP_NOP, kMODE_IMPLIED, 2},
	0xEC: {kOP_CPX, kMODE_ABSOLUTE, 4},
	0xED: {kOP_SBC, kMODE_ABSOLUTE, 4},
	0xEE: {kOP_INC, kMODE_ABSOLUTE, 6},
	0xEF: {kOP_ISC, kMODE_ABSOLUTE, 6},
	0xF0: {kOP_BEQ, kMODE_RELATIVE, 2},
	0xF1: {kOP_SBC, kMODE_INDIRECT_Y, 5},
	0xF3: {kOP_ISC, kMODE_INDIRECT_Y, 8},
	0xF5: {kOP_SBC, kMODE_ZPX, 4},
	0xF6: {kOP_INC, kMODE_ZPX, 6},
	0xF7: {kOP_ISC, kMODE_ZPX, 6},
	0xF8: {kOP_SED, kMODE_IMPLIED, 2},
	0xF9: {kOP_SBC, kMODE_ABSOLUTE_Y, 4},
	0xFB: {kOP_ISC, kMODE_ABSOLUTE_Y, 7},
	0xFD: {kOP_SBC, kMODE_ABSOLUTE_X, 4},
	0xFE: {kOP_INC, kMODE_ABSOLUTE_X, 7},
	0xFF: {kOP_ISC, kMODE_ABSOLUTE_X, 7},
}
