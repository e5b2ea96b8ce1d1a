package analysis

import (
	"sort"

	"hc08re/internal/hc08"
	"hc08re/internal/image"
)

// AccessMap is the result of ClassifyAccesses.
type AccessMap struct {
	regs map[uint32]*RegisterAccess
	ram  map[uint32]*Counter
}

type direction uint8

const (
	read direction = iota
	write
)

// registerOp describes an opcode the register scan recognizes.
type registerOp struct {
	size     int
	extended bool
	dir      direction
}

var registerOps = func() map[byte]registerOp {
	m := map[byte]registerOp{
		0xB6: {2, false, read},  // LDA dir
		0xBE: {2, false, read},  // LDX dir
		0xB7: {2, false, write}, // STA dir
		0xBF: {2, false, write}, // STX dir
		0xC6: {3, true, read},   // LDA ext
		0xC7: {3, true, write},  // STA ext
	}
	for op := byte(0x00); op <= 0x0F; op++ {
		m[op] = registerOp{3, false, read} // BRSET/BRCLR
	}
	for op := byte(0x10); op <= 0x1F; op++ {
		m[op] = registerOp{2, false, write} // BSET/BCLR
	}
	return m
}()

// ClassifyAccesses records which instructions touch named registers and how
// often extended-mode instructions touch each RAM address. The two scans walk
// the image independently, so a byte skipped as an operand by one can still
// start an instruction for the other.
func ClassifyAccesses(img *image.Image, regs hc08.Resolver, ram RAMRange) *AccessMap {
	am := &AccessMap{
		regs: make(map[uint32]*RegisterAccess),
		ram:  make(map[uint32]*Counter),
	}
	am.scanRegisters(img, regs)
	am.scanRAM(img, ram)
	return am
}

func (am *AccessMap) scanRegisters(img *image.Image, regs hc08.Resolver) {
	if regs == nil {
		return
	}
	data := img.Raw()
	for pc := 0; pc < len(data); {
		op, ok := registerOps[data[pc]]
		if !ok || pc+op.size > len(data) {
			pc++
			continue
		}
		target := uint32(data[pc+1])
		if op.extended {
			target = target<<8 | uint32(data[pc+2])
		}
		if name, ok := regs.Lookup(target); ok {
			am.record(target, name, img.Start()+uint32(pc), op.dir)
		}
		pc += op.size
	}
}

func (am *AccessMap) record(addr uint32, name string, site uint32, dir direction) {
	ra, ok := am.regs[addr]
	if !ok {
		ra = &RegisterAccess{Address: addr, Name: name}
		am.regs[addr] = ra
	}
	switch dir {
	case read:
		ra.Reads = append(ra.Reads, site)
	case write:
		ra.Writes = append(ra.Writes, site)
	}
}

// scanRAM covers the extended-mode data column 0xC0..0xCF except JMP and JSR.
func (am *AccessMap) scanRAM(img *image.Image, ram RAMRange) {
	data := img.Raw()
	for pc := 0; pc < len(data); {
		op := data[pc]
		if op < 0xC0 || op > 0xCF || op == 0xCC || op == 0xCD || pc+2 >= len(data) {
			pc++
			continue
		}
		addr := uint32(data[pc+1])<<8 | uint32(data[pc+2])
		if ram.Contains(addr) {
			c, ok := am.ram[addr]
			if !ok {
				c = &Counter{}
				am.ram[addr] = c
			}
			if op == 0xC7 || op == 0xCF { // STA, STX
				c.Writes++
			} else {
				c.Reads++
			}
		}
		pc += 3
	}
}

// Register returns the access record of the register at addr.
func (am *AccessMap) Register(addr uint32) (RegisterAccess, bool) {
	ra, ok := am.regs[addr]
	if !ok {
		return RegisterAccess{}, false
	}
	return *ra, true
}

// Registers returns every touched register ordered by address.
func (am *AccessMap) Registers() []RegisterAccess {
	out := make([]RegisterAccess, 0, len(am.regs))
	for _, ra := range am.regs {
		out = append(out, *ra)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// RAM returns the counter for addr.
func (am *AccessMap) RAM(addr uint32) (Counter, bool) {
	c, ok := am.ram[addr]
	if !ok {
		return Counter{}, false
	}
	return *c, true
}

// RAMLen returns the number of distinct RAM addresses touched.
func (am *AccessMap) RAMLen() int { return len(am.ram) }

// Hotspots returns up to n RAM addresses ordered by total accesses, busiest
// first, ties broken by address. n <= 0 returns all of them.
func (am *AccessMap) Hotspots(n int) []Hotspot {
	out := make([]Hotspot, 0, len(am.ram))
	for addr, c := range am.ram {
		out = append(out, Hotspot{Address: addr, Counter: *c})
	}
	sort.Slice(out, func(i, j int) bool {
		if ti, tj := out[i].Total(), out[j].Total(); ti != tj {
			return ti > tj
		}
		return out[i].Address < out[j].Address
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
