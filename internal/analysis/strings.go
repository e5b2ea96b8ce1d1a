package analysis

import (
	"strings"

	"hc08re/internal/image"
)

func printableASCII(b byte) bool { return b >= 0x20 && b <= 0x7E }

// FindStrings reports every maximal run of printable ASCII (0x20..0x7E) of
// at least minLen bytes. minLen below 1 is treated as 1.
func FindStrings(img *image.Image, minLen int) []String {
	if minLen < 1 {
		minLen = 1
	}
	data := img.Raw()
	var out []String
	for i := 0; i < len(data); i++ {
		if !printableASCII(data[i]) {
			continue
		}
		start := i
		for i < len(data) && printableASCII(data[i]) {
			i++
		}
		if i-start >= minLen {
			out = append(out, String{
				Address: img.Start() + uint32(start),
				Value:   string(data[start:i]),
			})
		}
		// data[i] is the terminator; the loop increment steps past it
	}
	return out
}

// HexLike reports whether the string is made only of hex digits. Such runs
// are usually tables of ASCII-coded nibbles rather than text.
func (s String) HexLike() bool {
	return strings.Trim(s.Value, "0123456789ABCDEFabcdef") == ""
}
