package uxn

// Mode bits, or'd onto one of the 32 base opcodes to produce the full
// 256-entry instruction byte: bit 5 widens operands to 16 bits, bit 6
// swaps which stack operands are drawn from and results land on, bit 7
// leaves the operands on the stack instead of consuming them.
const (
	ModeShort  uint8 = 0x20
	ModeReturn uint8 = 0x40
	ModeKeep   uint8 = 0x80
	baseMask   uint8 = 0x1f
)

// Base opcodes, 0x00-0x1f. Names follow the reference instruction
// mnemonics; BRK and LIT ignore the keep bit (there is nothing to keep).
// BRK halts under every mode combination; LIT still honours the short
// bit (push two bytes) and the return bit (push onto the return stack).
const (
	OpBRK uint8 = 0x00
	OpLIT uint8 = 0x01
	OpNOP uint8 = 0x02
	OpPOP uint8 = 0x03
	OpDUP uint8 = 0x04
	OpSWP uint8 = 0x05
	OpOVR uint8 = 0x06
	OpROT uint8 = 0x07
	OpEQU uint8 = 0x08
	OpNEQ uint8 = 0x09
	OpGTH uint8 = 0x0a
	OpLTH uint8 = 0x0b
	OpJMP uint8 = 0x0c
	OpJCN uint8 = 0x0d
	OpJSR uint8 = 0x0e
	OpSTH uint8 = 0x0f
	OpLDZ uint8 = 0x10
	OpSTZ uint8 = 0x11
	OpLDR uint8 = 0x12
	OpSTR uint8 = 0x13
	OpLDA uint8 = 0x14
	OpSTA uint8 = 0x15
	OpDEI uint8 = 0x16
	OpDEO uint8 = 0x17
	OpADD uint8 = 0x18
	OpSUB uint8 = 0x19
	OpMUL uint8 = 0x1a
	OpDIV uint8 = 0x1b
	OpAND uint8 = 0x1c
	OpORA uint8 = 0x1d
	OpEOR uint8 = 0x1e
	OpSFT uint8 = 0x1f
)

var opcodeNames = [32]string{
	"BRK", "LIT", "NOP", "POP", "DUP", "SWP", "OVR", "ROT",
	"EQU", "NEQ", "GTH", "LTH", "JMP", "JCN", "JSR", "STH",
	"LDZ", "STZ", "LDR", "STR", "LDA", "STA", "DEI", "DEO",
	"ADD", "SUB", "MUL", "DIV", "AND", "ORA", "EOR", "SFT",
}

// OpcodeName renders the full mnemonic for an instruction byte, e.g.
// 0x98 -> "ADDk", 0xa1 -> "LIT2k", matching the suffix order the
// reference assembler and disassembler use (2, r, k).
func OpcodeName(instr uint8) string {
	name := opcodeNames[instr&baseMask]
	if instr&ModeShort != 0 {
		name += "2"
	}
	if instr&ModeReturn != 0 {
		name += "r"
	}
	if instr&ModeKeep != 0 {
		name += "k"
	}
	return name
}
