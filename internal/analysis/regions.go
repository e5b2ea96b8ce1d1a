package analysis

import "sort"

// GroupByRegion buckets addrs into size-aligned regions, ascending. Addresses
// keep their input order inside a region. size 0 means DefaultRegionSize.
func GroupByRegion(addrs []uint32, size uint32) []Region {
	if size == 0 {
		size = DefaultRegionSize
	}
	buckets := make(map[uint32]*Region)
	for _, a := range addrs {
		start := a - a%size
		r, ok := buckets[start]
		if !ok {
			end := uint64(start) + uint64(size)
			if end > 1<<32-1 {
				end = 1<<32 - 1
			}
			r = &Region{Start: start, End: uint32(end)}
			buckets[start] = r
		}
		r.Addrs = append(r.Addrs, a)
	}

	out := make([]Region, 0, len(buckets))
	for _, r := range buckets {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
