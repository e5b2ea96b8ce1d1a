package hc08

import "fmt"

// Prefix selects the stack-pointer opcode page.
const Prefix = 0x9E

// Opcode describes one table entry. Size counts every instruction byte except
// the page prefix.
type Opcode struct {
	Mnemonic string
	Mode     Mode
	Size     int
}

// Known reports whether the entry is populated.
func (o Opcode) Known() bool { return o.Size > 0 }

// Primary is the MC68HC908 opcode map.
var Primary = buildPrimary()

// Secondary is the page reached through Prefix.
var Secondary = [256]Opcode{
	0x60: {"NEG", StackPointer1, 2}, 0x61: {"CBEQ", StackPointer1Relative, 3},
	0x63: {"COM", StackPointer1, 2}, 0x64: {"LSR", StackPointer1, 2},
	0x66: {"ROR", StackPointer1, 2}, 0x67: {"ASR", StackPointer1, 2},
	0x68: {"LSL", StackPointer1, 2}, 0x69: {"ROL", StackPointer1, 2},
	0x6A: {"DEC", StackPointer1, 2}, 0x6B: {"DBNZ", StackPointer1Relative, 3},
	0x6C: {"INC", StackPointer1, 2}, 0x6D: {"TST", StackPointer1, 2},
	0x6F: {"CLR", StackPointer1, 2},

	0xD0: {"SUB", StackPointer2, 3}, 0xD1: {"CMP", StackPointer2, 3},
	0xD2: {"SBC", StackPointer2, 3}, 0xD3: {"CPX", StackPointer2, 3},
	0xD4: {"AND", StackPointer2, 3}, 0xD5: {"BIT", StackPointer2, 3},
	0xD6: {"LDA", StackPointer2, 3}, 0xD7: {"STA", StackPointer2, 3},
	0xD8: {"EOR", StackPointer2, 3}, 0xD9: {"ADC", StackPointer2, 3},
	0xDA: {"ORA", StackPointer2, 3}, 0xDB: {"ADD", StackPointer2, 3},
	0xDE: {"LDX", StackPointer2, 3}, 0xDF: {"STX", StackPointer2, 3},

	0xE0: {"SUB", StackPointer1, 2}, 0xE1: {"CMP", StackPointer1, 2},
	0xE2: {"SBC", StackPointer1, 2}, 0xE3: {"CPX", StackPointer1, 2},
	0xE4: {"AND", StackPointer1, 2}, 0xE5: {"BIT", StackPointer1, 2},
	0xE6: {"LDA", StackPointer1, 2}, 0xE7: {"STA", StackPointer1, 2},
	0xE8: {"EOR", StackPointer1, 2}, 0xE9: {"ADC", StackPointer1, 2},
	0xEA: {"ORA", StackPointer1, 2}, 0xEB: {"ADD", StackPointer1, 2},
	0xEE: {"LDX", StackPointer1, 2}, 0xEF: {"STX", StackPointer1, 2},
}

// aluOps is the column shared by the 0xA0..0xFF rows.
var aluOps = [16]string{
	"SUB", "CMP", "SBC", "CPX", "AND", "BIT", "LDA", "STA",
	"EOR", "ADC", "ORA", "ADD", "JMP", "JSR", "LDX", "STX",
}

func buildPrimary() [256]Opcode {
	t := [256]Opcode{
		// Branches
		0x20: {"BRA", Relative, 2}, 0x21: {"BRN", Relative, 2},
		0x22: {"BHI", Relative, 2}, 0x23: {"BLS", Relative, 2},
		0x24: {"BCC", Relative, 2}, 0x25: {"BCS", Relative, 2},
		0x26: {"BNE", Relative, 2}, 0x27: {"BEQ", Relative, 2},
		0x28: {"BHCC", Relative, 2}, 0x29: {"BHCS", Relative, 2},
		0x2A: {"BPL", Relative, 2}, 0x2B: {"BMI", Relative, 2},
		0x2C: {"BMC", Relative, 2}, 0x2D: {"BMS", Relative, 2},
		0x2E: {"BIL", Relative, 2}, 0x2F: {"BIH", Relative, 2},

		// Read-modify-write, direct
		0x30: {"NEG", Direct, 2}, 0x31: {"CBEQ", DirectRelative, 3},
		0x33: {"COM", Direct, 2}, 0x34: {"LSR", Direct, 2},
		0x35: {"STHX", Direct, 2}, 0x36: {"ROR", Direct, 2},
		0x37: {"ASR", Direct, 2}, 0x38: {"LSL", Direct, 2},
		0x39: {"ROL", Direct, 2}, 0x3A: {"DEC", Direct, 2},
		0x3B: {"DBNZ", DirectRelative, 3}, 0x3C: {"INC", Direct, 2},
		0x3D: {"TST", Direct, 2}, 0x3F: {"CLR", Direct, 2},

		// Accumulator
		0x40: {"NEGA", Inherent, 1}, 0x41: {"CBEQA", ImmediateRelative, 3},
		0x42: {"MUL", Inherent, 1}, 0x43: {"COMA", Inherent, 1},
		0x44: {"LSRA", Inherent, 1}, 0x45: {"LDHX", Immediate, 3},
		0x46: {"RORA", Inherent, 1}, 0x47: {"ASRA", Inherent, 1},
		0x48: {"LSLA", Inherent, 1}, 0x49: {"ROLA", Inherent, 1},
		0x4A: {"DECA", Inherent, 1}, 0x4B: {"DBNZA", Relative, 2},
		0x4C: {"INCA", Inherent, 1}, 0x4D: {"TSTA", Inherent, 1},
		0x4F: {"CLRA", Inherent, 1},

		// Index register
		0x50: {"NEGX", Inherent, 1}, 0x51: {"CBEQX", ImmediateRelative, 3},
		0x52: {"DIV", Inherent, 1}, 0x53: {"COMX", Inherent, 1},
		0x54: {"LSRX", Inherent, 1}, 0x55: {"LDHX", Direct, 2},
		0x56: {"RORX", Inherent, 1}, 0x57: {"ASRX", Inherent, 1},
		0x58: {"LSLX", Inherent, 1}, 0x59: {"ROLX", Inherent, 1},
		0x5A: {"DECX", Inherent, 1}, 0x5B: {"DBNZX", Relative, 2},
		0x5C: {"INCX", Inherent, 1}, 0x5D: {"TSTX", Inherent, 1},
		0x5F: {"CLRX", Inherent, 1},

		// Indexed, no offset
		0x60: {"NEG", Indexed, 1}, 0x61: {"CBEQ", IndexedRelative, 2},
		0x62: {"NSA", Inherent, 1}, 0x63: {"COM", Indexed, 1},
		0x64: {"LSR", Indexed, 1}, 0x65: {"CPHX", Immediate, 3},
		0x66: {"ROR", Indexed, 1}, 0x67: {"ASR", Indexed, 1},
		0x68: {"LSL", Indexed, 1}, 0x69: {"ROL", Indexed, 1},
		0x6A: {"DEC", Indexed, 1}, 0x6B: {"DBNZ", IndexedRelative, 2},
		0x6C: {"INC", Indexed, 1}, 0x6D: {"TST", Indexed, 1},
		0x6F: {"CLR", Indexed, 1},

		// Indexed, 8-bit offset
		0x70: {"NEG", Indexed1, 2}, 0x71: {"CBEQ", Indexed1Relative, 3},
		0x72: {"DAA", Inherent, 1}, 0x73: {"COM", Indexed1, 2},
		0x74: {"LSR", Indexed1, 2}, 0x75: {"CPHX", Direct, 2},
		0x76: {"ROR", Indexed1, 2}, 0x77: {"ASR", Indexed1, 2},
		0x78: {"LSL", Indexed1, 2}, 0x79: {"ROL", Indexed1, 2},
		0x7A: {"DEC", Indexed1, 2}, 0x7B: {"DBNZ", Indexed1Relative, 3},
		0x7C: {"INC", Indexed1, 2}, 0x7D: {"TST", Indexed1, 2},
		0x7F: {"CLR", Indexed1, 2},

		// Control
		0x80: {"RTI", Inherent, 1}, 0x81: {"RTS", Inherent, 1},
		0x83: {"SWI", Inherent, 1}, 0x84: {"TAP", Inherent, 1},
		0x85: {"TPA", Inherent, 1}, 0x86: {"PULA", Inherent, 1},
		0x87: {"PSHA", Inherent, 1}, 0x88: {"PULX", Inherent, 1},
		0x89: {"PSHX", Inherent, 1}, 0x8A: {"PULH", Inherent, 1},
		0x8B: {"PSHH", Inherent, 1}, 0x8C: {"CLRH", Inherent, 1},
		0x8E: {"STOP", Inherent, 1}, 0x8F: {"WAIT", Inherent, 1},

		0x90: {"BGE", Relative, 2}, 0x91: {"BLT", Relative, 2},
		0x92: {"BGT", Relative, 2}, 0x93: {"BLE", Relative, 2},
		0x94: {"TXS", Inherent, 1}, 0x95: {"TSX", Inherent, 1},
		0x97: {"TAX", Inherent, 1}, 0x98: {"CLC", Inherent, 1},
		0x99: {"SEC", Inherent, 1}, 0x9A: {"CLI", Inherent, 1},
		0x9B: {"SEI", Inherent, 1}, 0x9C: {"RSP", Inherent, 1},
		0x9D: {"NOP", Inherent, 1}, 0x9F: {"TXA", Inherent, 1},

		// Immediate row has its own exceptions
		0xA7: {"AIS", Immediate, 2},
		0xAD: {"BSR", Relative, 2},
		0xAF: {"AIX", Immediate, 2},
	}

	for i := 0; i < 8; i++ {
		t[0x00+i*2] = Opcode{fmt.Sprintf("BRSET%d", i), DirectRelative, 3}
		t[0x01+i*2] = Opcode{fmt.Sprintf("BRCLR%d", i), DirectRelative, 3}
		t[0x10+i*2] = Opcode{fmt.Sprintf("BSET%d", i), Direct, 2}
		t[0x11+i*2] = Opcode{fmt.Sprintf("BCLR%d", i), Direct, 2}
	}

	for lo, name := range aluOps {
		// no immediate form for STA, JMP, JSR; 0xA7/0xAD/0xAF are set above
		if lo != 0x7 && lo != 0xC && lo != 0xD && lo != 0xF {
			t[0xA0|lo] = Opcode{name, Immediate, 2}
		}
		t[0xB0|lo] = Opcode{name, Direct, 2}
		t[0xC0|lo] = Opcode{name, Extended, 3}
		t[0xD0|lo] = Opcode{name, Indexed2, 3}
		t[0xE0|lo] = Opcode{name, Indexed1, 2}
		t[0xF0|lo] = Opcode{name, Indexed, 1}
	}
	return t
}

// Lookup returns the table entry that starts at buf[off] and the number of
// bytes the instruction occupies, prefix included. ok is false when neither
// table knows the encoding.
func Lookup(buf []byte, off int) (op Opcode, size int, prefixed, ok bool) {
	if off < 0 || off >= len(buf) {
		return Opcode{}, 0, false, false
	}
	if buf[off] == Prefix && off+1 < len(buf) {
		if sec := Secondary[buf[off+1]]; sec.Known() {
			return sec, sec.Size + 1, true, true
		}
	}
	if op := Primary[buf[off]]; op.Known() {
		return op, op.Size, false, true
	}
	return Opcode{}, 0, false, false
}
