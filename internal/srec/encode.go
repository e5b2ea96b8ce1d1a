package srec

import (
	"bufio"
	"fmt"
	"io"

	"hc08re/internal/image"
)

// bytesPerRecord is the data payload of every record Encode writes.
const bytesPerRecord = 32

// Encode writes img as S-records: an S0 header, S1 records when the image
// fits in 16-bit space and S2 otherwise, then an S9/S8 termination record
// pointing at the image start.
func Encode(w io.Writer, img *image.Image, header string) error {
	bw := bufio.NewWriter(w)

	end := uint64(img.Start()) + uint64(img.Len())
	dataKind, endKind, alen := byte('1'), byte('9'), 2
	if end > 0x10000 {
		dataKind, endKind, alen = '2', '8', 3
	}
	if end > 0x1000000 {
		dataKind, endKind, alen = '3', '7', 4
	}

	if err := writeRecord(bw, '0', 2, 0, []byte(header)); err != nil {
		return err
	}
	raw := img.Raw()
	for off := 0; off < len(raw); off += bytesPerRecord {
		end := min(off+bytesPerRecord, len(raw))
		if err := writeRecord(bw, dataKind, alen, img.Start()+uint32(off), raw[off:end]); err != nil {
			return err
		}
	}
	if err := writeRecord(bw, endKind, alen, img.Start(), nil); err != nil {
		return err
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, kind byte, alen int, addr uint32, payload []byte) error {
	count := alen + len(payload) + 1
	if count > 0xFF {
		return fmt.Errorf("srec: record of %d bytes does not fit", count)
	}

	sum := byte(count)
	fmt.Fprintf(w, "S%c%02X", kind, count)
	for i := alen - 1; i >= 0; i-- {
		b := byte(addr >> (8 * i))
		sum += b
		fmt.Fprintf(w, "%02X", b)
	}
	for _, b := range payload {
		sum += b
		fmt.Fprintf(w, "%02X", b)
	}
	_, err := fmt.Fprintf(w, "%02X\n", ^sum)
	return err
}
