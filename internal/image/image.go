// Package image holds the reconstructed program memory of a device: a dense,
// read-only byte buffer anchored at a start address.
package image

import (
	"errors"
	"fmt"
	"io"
)

// Erased is the value of flash cells that were never programmed.
const Erased = 0xFF

// ErrEmpty is returned when an image would contain no bytes.
var ErrEmpty = errors.New("image: no data")

// Image is an immutable memory image covering [Start, End).
type Image struct {
	start uint32
	data  []byte
}

// New returns an image of data placed at start. The slice is copied.
func New(start uint32, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if uint64(start)+uint64(len(data)) > 1<<32 {
		return nil, fmt.Errorf("image: %d bytes at 0x%X overflow the address space", len(data), start)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Image{start: start, data: buf}, nil
}

// ReadBinary reads a flat binary dump and places it at base.
func ReadBinary(r io.Reader, base uint32) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read binary: %w", err)
	}
	return New(base, data)
}

// Start returns the first address covered by the image.
func (im *Image) Start() uint32 { return im.start }

// End returns one past the last address covered by the image.
func (im *Image) End() uint32 { return im.start + uint32(len(im.data)) }

// Len returns the number of bytes in the image.
func (im *Image) Len() int { return len(im.data) }

// Bytes returns a copy of the image contents.
func (im *Image) Bytes() []byte {
	out := make([]byte, len(im.data))
	copy(out, im.data)
	return out
}

// Contains reports whether addr lies inside the image.
func (im *Image) Contains(addr uint32) bool {
	return addr >= im.start && uint64(addr) < uint64(im.start)+uint64(len(im.data))
}

// ByteAt returns the byte stored at addr.
func (im *Image) ByteAt(addr uint32) (byte, bool) {
	if !im.Contains(addr) {
		return 0, false
	}
	return im.data[addr-im.start], true
}

// Word returns the big-endian 16-bit value stored at addr.
func (im *Image) Word(addr uint32) (uint16, bool) {
	b, ok := im.Slice(addr, 2)
	if !ok {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// Slice returns size bytes starting at addr. The returned slice aliases the
// image and must not be modified.
func (im *Image) Slice(addr uint32, size int) ([]byte, bool) {
	if size < 0 || !im.Contains(addr) {
		return nil, false
	}
	off := int(addr - im.start)
	if off+size > len(im.data) {
		return nil, false
	}
	return im.data[off : off+size : off+size], true
}

// Raw exposes the backing buffer for read-only scanning passes.
func (im *Image) Raw() []byte { return im.data[:len(im.data):len(im.data)] }

// WriteTo writes the flat binary contents to w.
func (im *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(im.data)
	return int64(n), err
}
