// Package hc08 decodes MC68HC908 machine code.
//
// Decoding is table driven: a primary [256]Opcode map indexed by the first
// byte and a secondary map for the stack-pointer page behind the 0x9E
// prefix. Decode never fails. Bytes that match no entry, or whose
// instruction would run past the end of the buffer, come back as a one byte
// DB record so a linear sweep always makes progress.
package hc08

import (
	"fmt"
	"slices"
	"strings"
)

// Undecoded is the pseudo mnemonic used for bytes that do not decode.
const Undecoded = "DB"

// Resolver maps an address to a register name.
type Resolver interface {
	Lookup(addr uint32) (string, bool)
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Address  uint32 // absolute address of the first byte
	Raw      []byte // encoding, prefix included; owned by the instruction
	Mnemonic string // Undecoded when Mode is ModeNone
	Mode     Mode
	Operand  string // rendered operand text
	Value    uint16 // immediate, address or offset operand
	Target   uint32 // branch target for relative modes
	Length   int
}

// Decoded reports whether the bytes matched an opcode table entry.
func (in Instruction) Decoded() bool { return in.Mode != ModeNone }

// HasTarget reports whether Target carries a computed branch destination.
func (in Instruction) HasTarget() bool { return in.Mode != ModeNone && in.Mode.IsRelative() }

// Text renders mnemonic and operand.
func (in Instruction) Text() string {
	if in.Operand == "" {
		return in.Mnemonic
	}
	return in.Mnemonic + " " + in.Operand
}

// HexBytes renders the raw encoding as space separated hex pairs.
func (in Instruction) HexBytes() string {
	var sb strings.Builder
	for i, b := range in.Raw {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// RelativeTarget applies the branch rule: the displacement is relative to
// the address following the instruction.
func RelativeTarget(addr uint32, length int, disp byte) uint32 {
	return uint32(int64(addr) + int64(length) + int64(int8(disp)))
}

// Decode decodes the instruction at buf[off]. base is the address of buf[0].
// The returned length is the number of bytes consumed and is always at least 1
// when off is inside buf.
func Decode(buf []byte, off int, base uint32, regs Resolver) (Instruction, int) {
	if off < 0 || off >= len(buf) {
		return Instruction{}, 0
	}
	addr := base + uint32(off)

	op, size, prefixed, ok := Lookup(buf, off)
	if !ok || off+size > len(buf) {
		return undecoded(buf[off], addr), 1
	}

	raw := slices.Clone(buf[off : off+size])
	operands := raw[1:]
	if prefixed {
		operands = raw[2:]
	}

	in := Instruction{
		Address:  addr,
		Raw:      raw,
		Mnemonic: op.Mnemonic,
		Mode:     op.Mode,
		Length:   size,
	}
	if in.Mode.IsRelative() {
		in.Target = RelativeTarget(addr, size, operands[len(operands)-1])
	}
	in.Operand, in.Value = render(in.Mode, operands, in.Target, regs)
	return in, size
}

func undecoded(b byte, addr uint32) Instruction {
	return Instruction{
		Address:  addr,
		Raw:      []byte{b},
		Mnemonic: Undecoded,
		Mode:     ModeNone,
		Operand:  fmt.Sprintf("$%02X", b),
		Value:    uint16(b),
		Length:   1,
	}
}

func render(mode Mode, ops []byte, target uint32, regs Resolver) (string, uint16) {
	switch mode {
	case Inherent:
		return "", 0
	case Immediate:
		if len(ops) == 2 {
			v := be16(ops)
			return fmt.Sprintf("#$%04X", v), v
		}
		return fmt.Sprintf("#$%02X", ops[0]), uint16(ops[0])
	case Direct:
		return direct(ops[0], regs), uint16(ops[0])
	case Extended:
		v := be16(ops)
		if name, ok := lookup(regs, uint32(v)); ok {
			return name, v
		}
		return fmt.Sprintf("$%04X", v), v
	case Indexed:
		return ",X", 0
	case Indexed1:
		return fmt.Sprintf("$%02X,X", ops[0]), uint16(ops[0])
	case Indexed2:
		v := be16(ops)
		return fmt.Sprintf("$%04X,X", v), v
	case Relative:
		return fmt.Sprintf("$%04X", target), uint16(int8(ops[0]))
	case DirectRelative:
		return fmt.Sprintf("%s, $%04X", direct(ops[0], regs), target), uint16(ops[0])
	case ImmediateRelative:
		return fmt.Sprintf("#$%02X, $%04X", ops[0], target), uint16(ops[0])
	case IndexedRelative:
		return fmt.Sprintf(",X, $%04X", target), 0
	case Indexed1Relative:
		return fmt.Sprintf("$%02X,X, $%04X", ops[0], target), uint16(ops[0])
	case StackPointer1:
		return fmt.Sprintf("$%02X,SP", ops[0]), uint16(ops[0])
	case StackPointer2:
		v := be16(ops)
		return fmt.Sprintf("$%04X,SP", v), v
	case StackPointer1Relative:
		return fmt.Sprintf("$%02X,SP, $%04X", ops[0], target), uint16(ops[0])
	case ModeNone:
	}
	panic(fmt.Sprintf("hc08: unhandled addressing mode %v", mode))
}

func direct(b byte, regs Resolver) string {
	if name, ok := lookup(regs, uint32(b)); ok {
		return "<" + name
	}
	return fmt.Sprintf("<$%02X", b)
}

func lookup(regs Resolver, addr uint32) (string, bool) {
	if regs == nil {
		return "", false
	}
	return regs.Lookup(addr)
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
