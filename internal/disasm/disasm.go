// Package disasm runs a linear sweep over a memory image and produces the
// instruction stream used by every other pass.
package disasm

import (
	"fmt"
	"sort"
	"strings"

	"hc08re/internal/hc08"
	"hc08re/internal/image"
)

// Inst is one decoded instruction in the stream.
type Inst = hc08.Instruction

// Stream is a linear sequence of instructions in address order.
type Stream []Inst

// Options controls a sweep.
type Options struct {
	// Limit stops the sweep after this many instructions. Zero means no limit.
	Limit int
	// Registers names direct and extended operands. May be nil.
	Registers hc08.Resolver
}

// DecodeAll decodes img from its first byte. Without a limit the stream
// covers every byte of the image exactly once.
func DecodeAll(img *image.Image, opts Options) Stream {
	buf := img.Raw()
	var out Stream
	if opts.Limit > 0 {
		out = make(Stream, 0, min(opts.Limit, len(buf)))
	} else {
		out = make(Stream, 0, len(buf)/2)
	}

	for off := 0; off < len(buf); {
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		in, n := hc08.Decode(buf, off, img.Start(), opts.Registers)
		out = append(out, in)
		off += n
	}
	return out
}

// Size returns the number of bytes the stream covers.
func (s Stream) Size() int {
	n := 0
	for _, in := range s {
		n += in.Length
	}
	return n
}

// Undecoded counts DB records.
func (s Stream) Undecoded() int {
	n := 0
	for _, in := range s {
		if !in.Decoded() {
			n++
		}
	}
	return n
}

// IndexOf returns the index of the instruction starting at addr.
func (s Stream) IndexOf(addr uint32) (int, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Address >= addr })
	if i < len(s) && s[i].Address == addr {
		return i, true
	}
	return -1, false
}

// Format renders a listing line:
//
//	8000: A6 05          LDA      #$05
func Format(in Inst) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X: %-14s %-8s", in.Address, in.HexBytes(), in.Mnemonic)
	if in.Operand != "" {
		sb.WriteByte(' ')
		sb.WriteString(in.Operand)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Listing renders the whole stream, one line per instruction.
func (s Stream) Listing() string {
	var sb strings.Builder
	for _, in := range s {
		sb.WriteString(Format(in))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Seek returns the index of the first instruction at or after addr.
func (s Stream) Seek(addr uint32) int {
	return sort.Search(len(s), func(i int) bool { return s[i].Address >= addr })
}

// Routine returns the instructions from addr up to and including the first
// RTS or RTI, capped at limit entries (0 for no cap). It returns nil when no
// instruction starts at addr.
func (s Stream) Routine(addr uint32, limit int) Stream {
	i, ok := s.IndexOf(addr)
	if !ok {
		return nil
	}
	j := i
	for j < len(s) {
		m := s[j].Mnemonic
		j++
		if m == "RTS" || m == "RTI" || (limit > 0 && j-i >= limit) {
			break
		}
	}
	return s[i:j]
}
