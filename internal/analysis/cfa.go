package analysis

import (
	"sort"

	"hc08re/internal/hc08"
	"hc08re/internal/image"
)

const (
	opBSR    = 0xAD
	opJSRDir = 0xBD
	opJSRExt = 0xCD
)

// FindSubroutines collects call targets from a byte scan: JSR direct, JSR
// extended and BSR. The JSR direct target is the raw operand byte taken as an
// absolute address in page zero, which is what the CPU does; code there is
// rare, so such entries are usually data misread as code.
func FindSubroutines(img *image.Image) []uint32 {
	data := img.Raw()
	base := img.Start()
	seen := make(map[uint32]struct{})

	for pc := 0; pc < len(data); {
		switch op := data[pc]; {
		case op == opJSRDir && pc+1 < len(data):
			seen[uint32(data[pc+1])] = struct{}{}
			pc += 2
		case op == opJSRExt && pc+2 < len(data):
			seen[uint32(data[pc+1])<<8|uint32(data[pc+2])] = struct{}{}
			pc += 3
		case op == opBSR && pc+1 < len(data):
			seen[hc08.RelativeTarget(base+uint32(pc), 2, data[pc+1])] = struct{}{}
			pc += 2
		default:
			pc++
		}
	}

	out := make([]uint32, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// loopBranch marks BRA and the conditional branches. BRN never branches and
// BSR is a call.
var loopBranch = func() (t [256]bool) {
	t[0x20] = true
	for op := 0x22; op <= 0x2F; op++ {
		t[op] = true
	}
	for op := 0x90; op <= 0x93; op++ {
		t[op] = true
	}
	return t
}()

// FindLoops reports every relative branch whose target is at or before the
// branch itself, in scan order. The same loop may appear more than once.
func FindLoops(img *image.Image) []Loop {
	data := img.Raw()
	base := img.Start()
	var out []Loop

	for pc := 0; pc < len(data); {
		if !loopBranch[data[pc]] || pc+1 >= len(data) {
			pc++
			continue
		}
		branch := base + uint32(pc)
		target := hc08.RelativeTarget(branch, 2, data[pc+1])
		if target <= branch {
			out = append(out, Loop{Branch: branch, Target: target, Distance: branch - target})
		}
		pc += 2
	}
	return out
}

// LargeLoops returns the loops that jump back more than threshold bytes,
// longest first.
func LargeLoops(loops []Loop, threshold uint32) []Loop {
	var out []Loop
	for _, l := range loops {
		if l.Distance > threshold {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance > out[j].Distance })
	return out
}
