// Package analysis derives facts from an HC08 memory image: call targets,
// backward-branch loops, register and RAM access sites, embedded strings,
// constant locations and the interrupt vector table.
//
// Every pass is a pure linear scan over an immutable image and may run
// concurrently with the others.
package analysis

// Constants for analysis operations
const (
	// DefaultMinStringLength is the shortest printable run reported as a string
	DefaultMinStringLength = 4

	// DefaultLargeLoop is the backward distance above which a loop is
	// reported as a candidate main loop or state machine
	DefaultLargeLoop = 50

	// DefaultRegionSize groups addresses into 4 KiB regions
	DefaultRegionSize = 0x1000

	// DefaultRAMLow and DefaultRAMHigh bound the MC68HC908GZ60 RAM, inclusive
	DefaultRAMLow  = 0x0040
	DefaultRAMHigh = 0x083F

	// DefaultHotspots is how many RAM addresses a summary lists
	DefaultHotspots = 20
)

// DefaultConstants are CAN identifiers worth locating in firmware: the
// runtime input/output bases, the diagnostic request/response pair and the
// rebased request/response bases.
var DefaultConstants = []uint16{0x118, 0x500, 0x7E0, 0x7E8, 0x600, 0x608}
