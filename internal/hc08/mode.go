package hc08

import "fmt"

// Mode is an HC08 addressing mode.
type Mode uint8

// The zero Mode marks a byte that did not decode.
const (
	ModeNone Mode = iota
	Inherent
	Immediate
	Direct
	Extended
	Indexed               // ,X
	Indexed1              // oo,X
	Indexed2              // oooo,X
	Relative              // rr
	DirectRelative        // dd,rr
	ImmediateRelative     // #ii,rr
	IndexedRelative       // ,X,rr
	Indexed1Relative      // oo,X,rr
	StackPointer1         // oo,SP
	StackPointer2         // oooo,SP
	StackPointer1Relative // oo,SP,rr
)

// Modes lists every real addressing mode.
var Modes = []Mode{
	Inherent, Immediate, Direct, Extended,
	Indexed, Indexed1, Indexed2,
	Relative, DirectRelative, ImmediateRelative, IndexedRelative, Indexed1Relative,
	StackPointer1, StackPointer2, StackPointer1Relative,
}

var modeNames = [...]string{
	ModeNone:              "NONE",
	Inherent:              "INH",
	Immediate:             "IMM",
	Direct:                "DIR",
	Extended:              "EXT",
	Indexed:               "IX",
	Indexed1:              "IX1",
	Indexed2:              "IX2",
	Relative:              "REL",
	DirectRelative:        "DIR_REL",
	ImmediateRelative:     "IMM_REL",
	IndexedRelative:       "IX_REL",
	Indexed1Relative:      "IX1_REL",
	StackPointer1:         "SP1",
	StackPointer2:         "SP2",
	StackPointer1Relative: "SP1_REL",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// IsRelative reports whether the last operand byte is a branch displacement.
func (m Mode) IsRelative() bool {
	switch m {
	case Relative, DirectRelative, ImmediateRelative, IndexedRelative,
		Indexed1Relative, StackPointer1Relative:
		return true
	case ModeNone, Inherent, Immediate, Direct, Extended, Indexed, Indexed1,
		Indexed2, StackPointer1, StackPointer2:
		return false
	}
	panic(fmt.Sprintf("hc08: unhandled addressing mode %v", m))
}

// MarshalText renders the mode by its short name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
