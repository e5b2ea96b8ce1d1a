package analysis

import "fmt"

// Loop is a backward branch: Target is at or before Branch.
type Loop struct {
	Branch   uint32 `json:"branch"`
	Target   uint32 `json:"target"`
	Distance uint32 `json:"distance"`
}

func (l Loop) String() string {
	return fmt.Sprintf("$%04X -> $%04X (%d bytes)", l.Branch, l.Target, l.Distance)
}

// String is a printable ASCII run found in the image.
type String struct {
	Address uint32 `json:"address"`
	Value   string `json:"value"`
}

// RAMRange is an inclusive address range.
type RAMRange struct {
	Low  uint32 `json:"low"`
	High uint32 `json:"high"`
}

// DefaultRAM is the MC68HC908GZ60 RAM.
var DefaultRAM = RAMRange{Low: DefaultRAMLow, High: DefaultRAMHigh}

// Contains reports whether addr is inside the range.
func (r RAMRange) Contains(addr uint32) bool {
	return addr >= r.Low && addr <= r.High
}

// Counter tallies accesses to one RAM address.
type Counter struct {
	Reads  int `json:"reads"`
	Writes int `json:"writes"`
}

// Total is Reads + Writes.
func (c Counter) Total() int { return c.Reads + c.Writes }

// RegisterAccess lists the instruction addresses that touch one register.
type RegisterAccess struct {
	Address uint32   `json:"address"`
	Name    string   `json:"name"`
	Reads   []uint32 `json:"reads"`
	Writes  []uint32 `json:"writes"`
}

// Hotspot is a RAM address with its counter.
type Hotspot struct {
	Address uint32 `json:"address"`
	Counter
}

// WordHits lists where a 16-bit constant appears in each byte order.
type WordHits struct {
	Value        uint16   `json:"value"`
	BigEndian    []uint32 `json:"big_endian"`
	LittleEndian []uint32 `json:"little_endian"`
}

// Vector is one interrupt vector table slot.
type Vector struct {
	Address uint32 `json:"address"`
	Name    string `json:"name"`
	Handler uint16 `json:"handler"`
}

// Region is an aligned address bucket.
type Region struct {
	Start uint32   `json:"start"`
	End   uint32   `json:"end"` // exclusive
	Addrs []uint32 `json:"addrs"`
}
