package analysis

import "hc08re/internal/image"

// FindWord returns every address where v is stored big-endian and every
// address where it is stored little-endian. Hits may overlap.
func FindWord(img *image.Image, v uint16) (be, le []uint32) {
	data := img.Raw()
	hi, lo := byte(v>>8), byte(v)
	for i := 0; i+1 < len(data); i++ {
		addr := img.Start() + uint32(i)
		if data[i] == hi && data[i+1] == lo {
			be = append(be, addr)
		}
		if data[i] == lo && data[i+1] == hi {
			le = append(le, addr)
		}
	}
	return be, le
}

// FindWords runs FindWord for each value and keeps those with at least one hit.
func FindWords(img *image.Image, values []uint16) []WordHits {
	var out []WordHits
	for _, v := range values {
		be, le := FindWord(img, v)
		if len(be) == 0 && len(le) == 0 {
			continue
		}
		out = append(out, WordHits{Value: v, BigEndian: be, LittleEndian: le})
	}
	return out
}
